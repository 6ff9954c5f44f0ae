package postgres

import (
	"context"
	"database/sql"
	"errors"

	"collegeevents/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

const participantColumns = `id, name, email, phone, reg_no, department, year, created_at`

func scanParticipant(s interface{ Scan(...any) error }) (*domain.Participant, error) {
	p := &domain.Participant{}
	err := s.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.RegNo, &p.Department, &p.Year, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (name, email, phone, reg_no, department, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Name, p.Email, p.Phone, p.RegNo, p.Department, p.Year, p.CreatedAt).Scan(&p.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	return scanParticipant(r.DB.QueryRowContext(ctx, query, id))
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE email = $1 AND email <> '' LIMIT 1`
	return scanParticipant(r.DB.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

func (r *participantRepository) GetByRegNo(ctx context.Context, regNo string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE reg_no = $1 AND reg_no <> '' ORDER BY created_at LIMIT 1`
	return scanParticipant(r.DB.QueryRowContext(ctx, query, regNo))
}

func (r *participantRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Participant, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	query := `
		UPDATE participants
		SET name = $1, email = $2, phone = $3, reg_no = $4, department = $5, year = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query, p.Name, p.Email, p.Phone, p.RegNo, p.Department, p.Year, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
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

func (r *participantRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
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
