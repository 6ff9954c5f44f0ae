package domain

import (
	"context"
	"time"
)

// Venue is a place where events are held.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"venue_name"`
	Description string    `json:"venue_description"`
	ImageURL    string    `json:"image_url"`
	PhoneNumber string    `json:"phone_number"`
	MailID      string    `json:"mail_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
}

// VenueService defines venue management.
type VenueService interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
}
