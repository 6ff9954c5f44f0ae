package domain

import (
	"context"
	"time"
)

// Event traffic-light statuses.
const (
	EventStatusGreen  = "Green"
	EventStatusYellow = "Yellow"
	EventStatusRed    = "Red"
)

// ValidEventStatus reports whether s is an accepted event status. Empty is allowed.
func ValidEventStatus(s string) bool {
	switch s {
	case "", EventStatusGreen, EventStatusYellow, EventStatusRed:
		return true
	}
	return false
}

// Event represents a college event owned by an organizer.
// RegistrationsCount is denormalized and recomputed after every registration insert or delete.
// swagger:model Event
type Event struct {
	ID                 string    `json:"id"`
	OrganizerID        string    `json:"organizer_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	VenueID            string    `json:"venue_id"`
	Venue              string    `json:"venue"`
	Date               string    `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	MaxParticipants    int       `json:"max_participants"`
	RegistrationsCount int       `json:"registrations_count"`
	Status             string    `json:"status"`
	ImageURL           string    `json:"image_url"`
	PhoneNumber        string    `json:"phone_number"`
	MailID             string    `json:"mail_id"`
	SheetLink          string    `json:"sheet_link"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// RecomputeRegistrationsCount sets registrations_count to the number of registrations
	// stored for the event and returns the new value.
	RecomputeRegistrationsCount(ctx context.Context, eventID string) (int, error)
}

// EventService defines event management. Mutations require the caller to own the event.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, organizerID string, event *Event) (*Event, error)
	Delete(ctx context.Context, eventID, organizerID string) error
}
