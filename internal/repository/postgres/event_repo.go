package postgres

import (
	"context"
	"database/sql"
	"errors"

	"collegeevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, organizer_id, title, description, category, venue_id, venue, date, start_time, end_time,
		max_participants, registrations_count, status, image_url, phone_number, mail_id, sheet_link, created_at, updated_at`

func scanEvent(s interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := s.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.Category, &e.VenueID, &e.Venue,
		&e.Date, &e.StartTime, &e.EndTime, &e.MaxParticipants, &e.RegistrationsCount,
		&e.Status, &e.ImageURL, &e.PhoneNumber, &e.MailID, &e.SheetLink, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, title, description, category, venue_id, venue, date, start_time, end_time,
			max_participants, status, image_url, phone_number, mail_id, sheet_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizerID, e.Title, e.Description, e.Category, e.VenueID, e.Venue, e.Date, e.StartTime, e.EndTime,
		e.MaxParticipants, e.Status, e.ImageURL, e.PhoneNumber, e.MailID, e.SheetLink, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, organizerID)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Update writes every editable column. registrations_count is owned by RecomputeRegistrationsCount.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, category = $3, venue_id = $4, venue = $5, date = $6, start_time = $7,
		    end_time = $8, max_participants = $9, status = $10, image_url = $11, phone_number = $12,
		    mail_id = $13, sheet_link = $14, updated_at = $15
		WHERE id = $16
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Category, e.VenueID, e.Venue, e.Date, e.StartTime,
		e.EndTime, e.MaxParticipants, e.Status, e.ImageURL, e.PhoneNumber,
		e.MailID, e.SheetLink, e.UpdatedAt, e.ID,
	)
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

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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

func (r *eventRepository) RecomputeRegistrationsCount(ctx context.Context, eventID string) (int, error) {
	query := `
		UPDATE events
		SET registrations_count = (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1)
		WHERE id = $1
		RETURNING registrations_count
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}
