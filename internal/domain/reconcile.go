package domain

import "context"

// RowDuplicate reports a sheet row whose participant is already registered for the event.
type RowDuplicate struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// RowSkip reports a sheet row that was not processed.
type RowSkip struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// RowError reports a sheet row whose processing failed.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ReconcileResult is the outcome of one reconciliation pass over a sign-up sheet.
// swagger:model ReconcileResult
type ReconcileResult struct {
	InsertedParticipants  int            `json:"inserted_participants"`
	InsertedRegistrations int            `json:"inserted_registrations"`
	Duplicates            []RowDuplicate `json:"duplicates"`
	Skipped               []RowSkip      `json:"skipped"`
	Errors                []RowError     `json:"errors"`
	UpdatedRows           []int          `json:"updated_rows"`
	RegistrationsCount    int            `json:"registrations_count"`
}

// NewReconcileResult returns an empty result with non-nil lists.
func NewReconcileResult() *ReconcileResult {
	return &ReconcileResult{
		Duplicates:  []RowDuplicate{},
		Skipped:     []RowSkip{},
		Errors:      []RowError{},
		UpdatedRows: []int{},
	}
}

// WriteBackResult describes the outcome of a best-effort status write to a sheet row.
type WriteBackResult string

const (
	WriteBackWritten WriteBackResult = "written"
	WriteBackSkipped WriteBackResult = "skipped"
	WriteBackFailed  WriteBackResult = "failed"
)

// ReconcileService imports sign-up sheet rows into participants and registrations.
type ReconcileService interface {
	// Reconcile processes every row of the event's sign-up sheet. sheetOverride, when non-empty,
	// replaces the event's stored sheet link. Fails with ErrNotFound, ErrForbidden,
	// ErrSourceUnresolved or ErrSourceAccess before any row is processed.
	Reconcile(ctx context.Context, eventID, organizerID, sheetOverride string) (*ReconcileResult, error)
}
