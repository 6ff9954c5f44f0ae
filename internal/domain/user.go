package domain

import (
	"context"
	"strings"
	"time"
)

// Application roles.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleStudent   = "student"
)

// ValidRole reports whether role is one of the known application roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOrganizer, RoleStudent:
		return true
	}
	return false
}

// User represents an account holder (student, organizer or admin).
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	RegNo        string    `json:"reg_no"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	Year         int       `json:"year"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(regNo, name, email, role, department string, year int, createdAt, updatedAt time.Time) *User {
	return &User{
		RegNo:      regNo,
		Name:       name,
		Email:      email,
		Role:       role,
		Department: department,
		Year:       year,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

var yearLabels = []string{"1st year", "2nd year", "3rd year", "4th year"}

// ParseYear converts a study year label ("1st year".."4th year") or digit to 1..4.
// Unknown values map to 1.
func ParseYear(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, l := range yearLabels {
		if label == l || label == string(rune('1'+i)) {
			return i + 1
		}
	}
	return 1
}

// YearLabel is the inverse of ParseYear.
func YearLabel(year int) string {
	if year < 1 || year > len(yearLabels) {
		return yearLabels[0]
	}
	return yearLabels[year-1]
}

// UserPatch holds optional user fields for partial updates; nil fields are unchanged.
type UserPatch struct {
	RegNo       *string
	Name        *string
	Email       *string
	Role        *string
	Department  *string
	Year        *int
	PhoneNumber *string
	Password    *string
}

// AuthClaims is the identity carried by a verified token.
type AuthClaims struct {
	UserID string
	Email  string
	Role   string
}

// PasswordHasher hashes and verifies passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*AuthClaims, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// UserService defines account management and authentication.
type UserService interface {
	SignUp(ctx context.Context, user *User, password string) error
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id string) error
}
