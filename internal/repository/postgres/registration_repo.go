package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"collegeevents/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, event_id, participant_id, registration_time, status, team_name, additional_info`

func scanRegistration(s interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var info []byte
	err := s.Scan(&reg.ID, &reg.EventID, &reg.ParticipantID, &reg.RegistrationTime, &reg.Status, &reg.TeamName, &info)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := decodeInfo(info, &reg.AdditionalInfo); err != nil {
		return nil, err
	}
	return reg, nil
}

func encodeInfo(info map[string]any) ([]byte, error) {
	if info == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode additional_info: %w", err)
	}
	return b, nil
}

func decodeInfo(raw []byte, dest *map[string]any) error {
	*dest = map[string]any{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode additional_info: %w", err)
	}
	return nil
}

// Create inserts the registration; a concurrent insert of the same (event, participant)
// pair loses to the unique constraint and yields domain.ErrAlreadyRegistered.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	info, err := encodeInfo(reg.AdditionalInfo)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO event_registrations (event_id, participant_id, registration_time, status, team_name, additional_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, participant_id) DO NOTHING
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query, reg.EventID, reg.ParticipantID, reg.RegistrationTime, reg.Status, reg.TeamName, info).
		Scan(&reg.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM event_registrations WHERE id = $1`
	return scanRegistration(r.DB.QueryRowContext(ctx, query, id))
}

func (r *registrationRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE event_id = $1 AND participant_id = $2
	`
	return scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, participantID))
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.RegistrationWithParticipant, error) {
	query := `
		SELECT r.id, r.event_id, r.participant_id, r.registration_time, r.status, r.team_name, r.additional_info,
		       p.id, p.name, p.email, p.phone, p.reg_no, p.department, p.year, p.created_at
		FROM event_registrations r
		JOIN participants p ON p.id = r.participant_id
		WHERE r.event_id = $1
		ORDER BY r.registration_time DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.RegistrationWithParticipant, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		p := &domain.Participant{}
		var info []byte
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.ParticipantID, &reg.RegistrationTime, &reg.Status, &reg.TeamName, &info,
			&p.ID, &p.Name, &p.Email, &p.Phone, &p.RegNo, &p.Department, &p.Year, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := decodeInfo(info, &reg.AdditionalInfo); err != nil {
			return nil, err
		}
		out = append(out, &domain.RegistrationWithParticipant{Registration: reg, Participant: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *registrationRepository) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE participant_id = $1
		ORDER BY registration_time DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	info, err := encodeInfo(reg.AdditionalInfo)
	if err != nil {
		return err
	}
	query := `
		UPDATE event_registrations
		SET status = $1, team_name = $2, additional_info = $3
		WHERE id = $4
	`
	res, err := r.DB.ExecContext(ctx, query, reg.Status, reg.TeamName, info, reg.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) DeleteByParticipantID(ctx context.Context, participantID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_registrations WHERE participant_id = $1`, participantID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
