package domain

import (
	"context"
	"strings"
	"time"
)

// Participant is a person who signs up for events. Identity fields are free text.
// Email is the primary dedup key; RegNo is the secondary one.
// swagger:model Participant
type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	RegNo      string    `json:"reg_no"`
	Department string    `json:"department"`
	Year       string    `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParticipantPatch holds optional participant fields for partial updates.
type ParticipantPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	RegNo      *string
	Department *string
	Year       *string
}

// ParticipantRepository defines the interface for participant storage.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByEmail(ctx context.Context, email string) (*Participant, error)
	GetByRegNo(ctx context.Context, regNo string) (*Participant, error)
	List(ctx context.Context, params PaginationParams) ([]*Participant, int, error)
	Update(ctx context.Context, p *Participant) error
	Delete(ctx context.Context, id string) error
}

// ParticipantService defines participant management, including cascade deletion.
type ParticipantService interface {
	List(ctx context.Context, params PaginationParams) ([]*Participant, int, error)
	GetByID(ctx context.Context, id string) (*Participant, error)
	Update(ctx context.Context, id string, patch ParticipantPatch) (*Participant, error)
	// Delete removes the participant and all of its registrations, marking the matching
	// sheet rows "Deleted" on a best-effort basis.
	Delete(ctx context.Context, id string) error
}
