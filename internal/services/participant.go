package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"collegeevents/internal/domain"
	"collegeevents/internal/signup"
)

type participantService struct {
	participantRepo  domain.ParticipantRepository
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	opener           domain.SheetOpener
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewParticipantService(
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	opener domain.SheetOpener,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		participantRepo:  participantRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		opener:           opener,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *participantService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Participant, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.participantRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}
	return list, total, nil
}

func (s *participantService) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *participantService) Update(ctx context.Context, id string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		p.Email = domain.NormalizeEmail(*patch.Email)
	}
	if patch.Phone != nil {
		p.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.RegNo != nil {
		p.RegNo = strings.TrimSpace(*patch.RegNo)
	}
	if patch.Department != nil {
		p.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Year != nil {
		p.Year = strings.TrimSpace(*patch.Year)
	}
	if p.Email == "" && p.RegNo == "" {
		return nil, fmt.Errorf("%w: participant needs an email or registration number", domain.ErrInvalidInput)
	}
	if err := s.participantRepo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update participant: %w", err)
	}
	return p, nil
}

// Delete marks the participant's rows "Deleted" in each registered event's sheet, then
// removes its registrations and the participant itself. Sheet failures never block deletion.
func (s *participantService) Delete(ctx context.Context, id string) error {
	p, eventIDs, err := s.loadForDelete(ctx, id)
	if err != nil {
		return err
	}

	// Each sheet gets its own deadline; the deletes below start with a fresh one.
	for _, eventID := range eventIDs {
		sheetCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
		res := s.markDeleted(sheetCtx, eventID, p)
		cancel()
		s.logger.DebugContext(ctx, "sheet deletion mark", "participant_id", id, "event_id", eventID, "result", string(res))
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.registrationRepo.DeleteByParticipantID(ctx, id); err != nil {
		return fmt.Errorf("delete participant registrations: %w", err)
	}
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete participant: %w", err)
	}

	for _, eventID := range eventIDs {
		if _, err := s.eventRepo.RecomputeRegistrationsCount(ctx, eventID); err != nil {
			s.logger.WarnContext(ctx, "recompute registrations count", "event_id", eventID, "err", err)
		}
	}
	return nil
}

// loadForDelete returns the participant and the distinct events it is registered for.
func (s *participantService) loadForDelete(ctx context.Context, id string) (*domain.Participant, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get participant: %w", err)
	}

	regs, err := s.registrationRepo.ListByParticipantID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list participant registrations: %w", err)
	}

	eventIDs := make([]string, 0, len(regs))
	seen := make(map[string]struct{}, len(regs))
	for _, reg := range regs {
		if _, ok := seen[reg.EventID]; ok {
			continue
		}
		seen[reg.EventID] = struct{}{}
		eventIDs = append(eventIDs, reg.EventID)
	}
	return p, eventIDs, nil
}

// markDeleted writes "Deleted" into the first row of the event's sheet that matches p by
// email or registration number.
func (s *participantService) markDeleted(ctx context.Context, eventID string, p *domain.Participant) domain.WriteBackResult {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "load event for sheet sync", "event_id", eventID, "err", err)
		return domain.WriteBackFailed
	}
	if strings.TrimSpace(event.SheetLink) == "" {
		return domain.WriteBackSkipped
	}
	sheet, err := openSheet(ctx, s.opener, event.SheetLink)
	if err != nil {
		s.logger.WarnContext(ctx, "open sheet for deletion mark", "event_id", eventID, "err", err)
		return domain.WriteBackFailed
	}
	logger := s.logger.With("event_id", eventID, "sheet_id", sheet.id)
	for i, row := range sheet.rows {
		if signup.MatchesIdentity(signup.Normalize(sheet.header, row), p.Email, p.RegNo) {
			return sheet.writeStatus(ctx, logger, rowNumber(i), domain.SheetStatusDeleted)
		}
	}
	return domain.WriteBackSkipped
}
