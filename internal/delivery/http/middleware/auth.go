package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	h "collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/domain"
)

type contextKey string

const claimsKey contextKey = "claims"

// SetClaims returns a context carrying the verified identity. Used by auth middleware.
func SetClaims(ctx context.Context, claims *domain.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the verified identity from the context, if present.
func ClaimsFromContext(ctx context.Context) (*domain.AuthClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*domain.AuthClaims)
	return c, ok && c != nil
}

// SetUserID returns a context with only the user ID set.
func SetUserID(ctx context.Context, userID string) context.Context {
	claims := &domain.AuthClaims{UserID: userID}
	if c, ok := ClaimsFromContext(ctx); ok {
		copied := *c
		copied.UserID = userID
		claims = &copied
	}
	return SetClaims(ctx, claims)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok || c.UserID == "" {
		return "", false
	}
	return c.UserID, true
}

// RoleFromContext returns the authenticated user's role, if present.
func RoleFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok || c.Role == "" {
		return "", false
	}
	return c.Role, true
}

// RequireAuth returns a wrapper that validates the Bearer token and stores its claims in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetClaims(r.Context(), claims))
			next(w, r)
		}
	}
}

// RequireRole returns a wrapper that allows the request only when the authenticated role is one of roles.
// It must run inside RequireAuth.
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if !slices.Contains(roles, role) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient role")
				return
			}
			next(w, r)
		}
	}
}
