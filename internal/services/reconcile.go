package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"collegeevents/internal/domain"
	"collegeevents/internal/signup"
)

const (
	reasonAlreadyProcessed      = "already processed"
	reasonMissingIdentity       = "missing identity"
	reasonDuplicateRegistration = "duplicate registration"
)

type reconcileService struct {
	eventRepo domain.EventRepository
	enroller  *enroller
	opener    domain.SheetOpener
	dateOrder signup.DateOrder
	logger    *slog.Logger
	now       func() time.Time
}

// NewReconcileService creates a ReconcileService that imports sign-up sheet rows opened
// through opener. dateOrder decides how ambiguous slash timestamps are read.
func NewReconcileService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	registrationRepo domain.RegistrationRepository,
	opener domain.SheetOpener,
	dateOrder signup.DateOrder,
	logger *slog.Logger,
) domain.ReconcileService {
	return &reconcileService{
		eventRepo: eventRepo,
		enroller:  &enroller{participantRepo: participantRepo, registrationRepo: registrationRepo},
		opener:    opener,
		dateOrder: dateOrder,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, eventID, organizerID, sheetOverride string) (*domain.ReconcileResult, error) {
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

	raw := sheetOverride
	if raw == "" {
		raw = event.SheetLink
	}
	sheet, err := openSheet(ctx, s.opener, raw)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("event_id", eventID, "sheet_id", sheet.id)
	result := domain.NewReconcileResult()
	for i, row := range sheet.rows {
		s.reconcileRow(ctx, logger, event.ID, sheet, rowNumber(i), row, result)
	}

	result.RegistrationsCount = event.RegistrationsCount
	if result.InsertedRegistrations > 0 {
		count, err := s.eventRepo.RecomputeRegistrationsCount(ctx, event.ID)
		if err != nil {
			logger.ErrorContext(ctx, "recompute registrations count", "err", err)
		} else {
			result.RegistrationsCount = count
		}
	}

	logger.InfoContext(ctx, "sheet reconciled",
		"rows", len(sheet.rows),
		"inserted_participants", result.InsertedParticipants,
		"inserted_registrations", result.InsertedRegistrations,
		"duplicates", len(result.Duplicates),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, nil
}

// reconcileRow classifies one sheet row as skipped, duplicate, inserted or errored and
// records the outcome in result.
func (s *reconcileService) reconcileRow(ctx context.Context, logger *slog.Logger, eventID string, sheet *openedSheet, row int, values map[string]string, result *domain.ReconcileResult) {
	fields := signup.Normalize(sheet.header, values)

	if status, ok := fields.Get(signup.FieldStatus); ok && signup.IsFinalStatus(status) {
		result.Skipped = append(result.Skipped, domain.RowSkip{Row: row, Reason: reasonAlreadyProcessed})
		return
	}
	if !fields.Has(signup.FieldEmail) && !fields.Has(signup.FieldRegNo) {
		result.Skipped = append(result.Skipped, domain.RowSkip{Row: row, Reason: reasonMissingIdentity})
		return
	}

	now := s.now()
	participant := &domain.Participant{
		Name:       fields.Value(signup.FieldName),
		Email:      fields.Value(signup.FieldEmail),
		Phone:      fields.Value(signup.FieldPhone),
		RegNo:      fields.Value(signup.FieldRegNo),
		Department: fields.Value(signup.FieldDepartment),
		Year:       fields.Value(signup.FieldYear),
	}
	registeredAt := signup.ParseTimestamp(fields.Value(signup.FieldTimestamp), s.dateOrder, now)

	out, err := s.enroller.enroll(ctx, eventID, participant, registeredAt, now)
	if out != nil && out.participantCreated {
		result.InsertedParticipants++
	}
	if err != nil {
		logger.WarnContext(ctx, "sheet row failed", "row", row, "err", err)
		result.Errors = append(result.Errors, domain.RowError{Row: row, Error: err.Error()})
		sheet.writeStatus(ctx, logger, row, domain.SheetStatusError)
		return
	}
	if out.duplicate {
		result.Duplicates = append(result.Duplicates, domain.RowDuplicate{
			Row:    row,
			Email:  participant.Email,
			Reason: reasonDuplicateRegistration,
		})
		sheet.writeStatus(ctx, logger, row, domain.SheetStatusDuplicate)
		return
	}

	result.InsertedRegistrations++
	if sheet.writeStatus(ctx, logger, row, domain.SheetStatusProcessed) == domain.WriteBackWritten {
		result.UpdatedRows = append(result.UpdatedRows, row)
	}
}
