package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"collegeevents/internal/domain"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	enroller         *enroller
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

func NewRegistrationService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		participantRepo:  participantRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		enroller:         &enroller{participantRepo: participantRepo, registrationRepo: registrationRepo},
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

// ownedEvent loads the event and checks that organizerID owns it.
func (s *registrationService) ownedEvent(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *registrationService) Register(ctx context.Context, eventID, organizerID string, participant *domain.Participant) (*domain.Registration, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if participant == nil || (strings.TrimSpace(participant.Email) == "" && strings.TrimSpace(participant.RegNo) == "") {
		return nil, false, fmt.Errorf("%w: participant needs an email or registration number", domain.ErrInvalidInput)
	}
	event, err := s.ownedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	out, err := s.enroller.enroll(ctx, event.ID, participant, now, now)
	if err != nil {
		return nil, false, err
	}
	if out.duplicate {
		return out.registration, false, nil
	}

	if _, err := s.eventRepo.RecomputeRegistrationsCount(ctx, event.ID); err != nil {
		s.logger.WarnContext(ctx, "recompute registrations count", "event_id", event.ID, "err", err)
	}
	s.sendConfirmation(ctx, event, out.participant)
	return out.registration, true, nil
}

func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, p *domain.Participant) {
	if s.emailService == nil || p.Email == "" {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:      p.Email,
		Name:       p.Name,
		EventTitle: event.Title,
		Venue:      event.Venue,
		Date:       event.Date,
		StartTime:  event.StartTime,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed", "event_id", event.ID, "to", p.Email, "err", err)
	}
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID, organizerID string) ([]*domain.RegistrationWithParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, organizerID); err != nil {
		return nil, err
	}
	list, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return list, nil
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) Update(ctx context.Context, id, organizerID string, patch domain.RegistrationPatch) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if _, err := s.ownedEvent(ctx, reg.EventID, organizerID); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !domain.ValidRegistrationStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown registration status %q", domain.ErrInvalidInput, *patch.Status)
		}
		reg.Status = *patch.Status
	}
	if patch.TeamName != nil {
		reg.TeamName = strings.TrimSpace(*patch.TeamName)
	}
	if patch.AdditionalInfo != nil {
		reg.AdditionalInfo = patch.AdditionalInfo
	}
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, id, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if _, err := s.ownedEvent(ctx, reg.EventID, organizerID); err != nil {
		return err
	}
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	if _, err := s.eventRepo.RecomputeRegistrationsCount(ctx, reg.EventID); err != nil {
		s.logger.WarnContext(ctx, "recompute registrations count", "event_id", reg.EventID, "err", err)
	}
	return nil
}

func (s *registrationService) ListForUser(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	out := make([]*domain.RegistrationWithEvent, 0)
	participant, err := s.participantRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	regs, err := s.registrationRepo.ListByParticipantID(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	for _, reg := range regs {
		event, err := s.eventRepo.GetByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		out = append(out, &domain.RegistrationWithEvent{Registration: reg, Event: event})
	}
	return out, nil
}
