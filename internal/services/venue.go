package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"collegeevents/internal/domain"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	contextTimeout time.Duration
}

func NewVenueService(venueRepo domain.VenueRepository, timeout time.Duration) domain.VenueService {
	return &venueService{venueRepo: venueRepo, contextTimeout: timeout}
}

func (s *venueService) Create(ctx context.Context, venue *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue.Name = strings.TrimSpace(venue.Name)
	if venue.Name == "" {
		return fmt.Errorf("%w: venue_name is required", domain.ErrInvalidInput)
	}
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, domain.ErrDuplicateVenue) {
			return err
		}
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.venueRepo.List(ctx)
}

func (s *venueService) Update(ctx context.Context, venue *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.venueRepo.GetByID(ctx, venue.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	venue.Name = strings.TrimSpace(venue.Name)
	if venue.Name == "" {
		return fmt.Errorf("%w: venue_name is required", domain.ErrInvalidInput)
	}
	venue.CreatedAt = existing.CreatedAt
	venue.UpdatedAt = time.Now()
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateVenue) {
			return err
		}
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}
