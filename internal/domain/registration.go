package domain

import (
	"context"
	"time"
)

// Registration statuses.
const (
	RegistrationStatusRegistered = "Registered"
	RegistrationStatusAttended   = "Attended"
	RegistrationStatusCancelled  = "Cancelled"
	RegistrationStatusWaitlisted = "Waitlisted"
)

// ValidRegistrationStatus reports whether s is an accepted registration status.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusAttended, RegistrationStatusCancelled, RegistrationStatusWaitlisted:
		return true
	}
	return false
}

// Registration is a participant's enrollment in one event.
// At most one registration exists per (participant, event) pair.
// swagger:model Registration
type Registration struct {
	ID               string         `json:"id"`
	EventID          string         `json:"event_id"`
	ParticipantID    string         `json:"participant_id"`
	RegistrationTime time.Time      `json:"registration_time"`
	Status           string         `json:"status"`
	TeamName         string         `json:"team_name"`
	AdditionalInfo   map[string]any `json:"additional_info"`
}

// NewRegistration creates a Registered registration. ID is typically set by the repository on create.
func NewRegistration(eventID, participantID string, registeredAt time.Time) *Registration {
	return &Registration{
		EventID:          eventID,
		ParticipantID:    participantID,
		RegistrationTime: registeredAt,
		Status:           RegistrationStatusRegistered,
		AdditionalInfo:   map[string]any{},
	}
}

// RegistrationWithParticipant bundles a registration with its participant.
type RegistrationWithParticipant struct {
	Registration *Registration `json:"registration"`
	Participant  *Participant  `json:"participant"`
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationPatch holds optional registration fields for partial updates.
type RegistrationPatch struct {
	Status         *string
	TeamName       *string
	AdditionalInfo map[string]any
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration. Returns ErrAlreadyRegistered if the pair already exists.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*RegistrationWithParticipant, error)
	ListByParticipantID(ctx context.Context, participantID string) ([]*Registration, error)
	Update(ctx context.Context, reg *Registration) error
	Delete(ctx context.Context, id string) error
	DeleteByParticipantID(ctx context.Context, participantID string) (int64, error)
}

// RegistrationService defines direct registration and registration management.
type RegistrationService interface {
	// Register resolves or creates the participant and registers them for the event.
	// Returns (reg, created, err): created is false when the participant was already registered.
	Register(ctx context.Context, eventID, organizerID string, participant *Participant) (*Registration, bool, error)
	ListByEvent(ctx context.Context, eventID, organizerID string) ([]*RegistrationWithParticipant, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	Update(ctx context.Context, id, organizerID string, patch RegistrationPatch) (*Registration, error)
	Delete(ctx context.Context, id, organizerID string) error
	// ListForUser returns events the user is registered for, matched through a participant with the user's email.
	ListForUser(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}
