package helpers

import (
	"net/http"

	"github.com/google/uuid"
)

// PathUUID reads the named path value and checks that it is a UUID. On failure it writes
// a 400 JSON error and returns false.
func PathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a UUID")
		return "", false
	}
	return id.String(), true
}
