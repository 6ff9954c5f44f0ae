package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"collegeevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, venueRepo domain.VenueRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		contextTimeout: timeout,
	}
}

// validate normalizes event fields and fills the venue display name from VenueID.
func (s *eventService) validate(ctx context.Context, event *domain.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	event.SheetLink = strings.TrimSpace(event.SheetLink)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !domain.ValidEventStatus(event.Status) {
		return fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, event.Status)
	}
	if event.MaxParticipants < 0 {
		return fmt.Errorf("%w: max_participants must not be negative", domain.ErrInvalidInput)
	}
	if event.VenueID != "" {
		venue, err := s.venueRepo.GetByID(ctx, event.VenueID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: unknown venue", domain.ErrInvalidInput)
			}
			return fmt.Errorf("get venue: %w", err)
		}
		event.Venue = venue.Name
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if err := s.validate(ctx, event); err != nil {
		return err
	}
	if event.Status == "" {
		event.Status = domain.EventStatusGreen
	}
	event.RegistrationsCount = 0
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.List(ctx)
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOrganizerID(ctx, organizerID)
}

// Update replaces the editable fields of the stored event with those of event.
// Ownership, creation time and the registrations count are kept.
func (s *eventService) Update(ctx context.Context, organizerID string, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if existing.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	if err := s.validate(ctx, event); err != nil {
		return nil, err
	}

	event.OrganizerID = existing.OrganizerID
	event.CreatedAt = existing.CreatedAt
	event.RegistrationsCount = existing.RegistrationsCount
	if event.Status == "" {
		event.Status = existing.Status
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID string, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
