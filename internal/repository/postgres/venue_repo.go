package postgres

import (
	"context"
	"database/sql"
	"errors"

	"collegeevents/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

const venueColumns = `id, venue_name, venue_description, image_url, phone_number, mail_id, created_at, updated_at`

func scanVenue(s interface{ Scan(...any) error }) (*domain.Venue, error) {
	v := &domain.Venue{}
	err := s.Scan(&v.ID, &v.Name, &v.Description, &v.ImageURL, &v.PhoneNumber, &v.MailID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (venue_name, venue_description, image_url, phone_number, mail_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, v.Name, v.Description, v.ImageURL, v.PhoneNumber, v.MailID, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateVenue
	}
	return err
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	return scanVenue(r.DB.QueryRowContext(ctx, query, id))
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY venue_name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues
		SET venue_name = $1, venue_description = $2, image_url = $3, phone_number = $4, mail_id = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query, v.Name, v.Description, v.ImageURL, v.PhoneNumber, v.MailID, v.UpdatedAt, v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateVenue
		}
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

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
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
