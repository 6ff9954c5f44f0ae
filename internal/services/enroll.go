package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"collegeevents/internal/domain"
)

// enroller resolves a participant by its dedup keys and registers it for an event.
// Sheet reconciliation and direct registration share it.
type enroller struct {
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
}

type enrollment struct {
	participant        *domain.Participant
	participantCreated bool
	registration       *domain.Registration
	duplicate          bool
}

// resolveParticipant looks p up by email, then by registration number, and creates it when
// neither matches. The returned flag reports whether a new participant was stored.
func (e *enroller) resolveParticipant(ctx context.Context, p *domain.Participant, now time.Time) (*domain.Participant, bool, error) {
	p.Email = domain.NormalizeEmail(p.Email)
	p.RegNo = strings.TrimSpace(p.RegNo)

	if p.Email != "" {
		existing, err := e.participantRepo.GetByEmail(ctx, p.Email)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("find participant by email: %w", err)
		}
	}
	if p.RegNo != "" {
		existing, err := e.participantRepo.GetByRegNo(ctx, p.RegNo)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("find participant by reg no: %w", err)
		}
	}

	p.CreatedAt = now
	if err := e.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// Created concurrently since the lookup above.
			existing, getErr := e.participantRepo.GetByEmail(ctx, p.Email)
			if getErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("create participant: %w", err)
	}
	return p, true, nil
}

// enroll registers p for the event. Once the participant is resolved the enrollment is
// returned even when err is set, so callers can account for a participant that was stored
// before the registration failed.
func (e *enroller) enroll(ctx context.Context, eventID string, p *domain.Participant, registeredAt, now time.Time) (*enrollment, error) {
	participant, created, err := e.resolveParticipant(ctx, p, now)
	if err != nil {
		return nil, err
	}
	out := &enrollment{participant: participant, participantCreated: created}

	existing, err := e.registrationRepo.GetByEventAndParticipant(ctx, eventID, participant.ID)
	if err == nil {
		out.registration = existing
		out.duplicate = true
		return out, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return out, fmt.Errorf("find registration: %w", err)
	}

	reg := domain.NewRegistration(eventID, participant.ID, registeredAt)
	if err := e.registrationRepo.Create(ctx, reg); err != nil {
		if !errors.Is(err, domain.ErrAlreadyRegistered) {
			return out, fmt.Errorf("create registration: %w", err)
		}
		// Registered concurrently since the lookup above.
		out.duplicate = true
		out.registration, err = e.registrationRepo.GetByEventAndParticipant(ctx, eventID, participant.ID)
		if err != nil {
			return out, fmt.Errorf("find concurrent registration: %w", err)
		}
		return out, nil
	}
	out.registration = reg
	return out, nil
}
