package repository

import (
	"context"
	"errors"
	"strings"

	"lazyintern/internal/database"
	"lazyintern/internal/domain/recruiter"

	"github.com/google/uuid"
)

var ErrRecruiterNotFound = errors.New("recruiter profile not found")

type RecruiterRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (recruiter.Profile, error)
	Upsert(ctx context.Context, p recruiter.Profile) (recruiter.Profile, error)
}

type PostgresRecruiterRepository struct {
	db database.DB
}

func NewPostgresRecruiterRepository(db database.DB) *PostgresRecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

func (r *PostgresRecruiterRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (recruiter.Profile, error) {
	var p recruiter.Profile
	err := r.db.QueryRow(ctx,
		`SELECT rp.id, rp.user_id, COALESCE(NULLIF(rp.name, ''), u.name), u.email, rp.phone,
			rp.company_name, rp.position, rp.location, rp.created_at, rp.updated_at
		 FROM recruiter_profiles rp
		 JOIN users u ON u.id = rp.user_id
		 WHERE rp.user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.CompanyName, &p.Position, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return recruiter.Profile{}, ErrRecruiterNotFound
		}
		return recruiter.Profile{}, err
	}
	return p, nil
}

func (r *PostgresRecruiterRepository) Upsert(ctx context.Context, p recruiter.Profile) (recruiter.Profile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO recruiter_profiles (id, user_id, name, phone, company_name, position, location)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			company_name = EXCLUDED.company_name,
			position = EXCLUDED.position,
			location = EXCLUDED.location,
			updated_at = now()`,
		uuid.New(), p.UserID, strings.TrimSpace(p.Name), p.Phone, p.CompanyName, p.Position, p.Location,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return recruiter.Profile{}, ErrRecruiterNotFound
		}
		return recruiter.Profile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}
