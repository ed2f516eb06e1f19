package repository

import (
	"context"
	"fmt"

	"lazyintern/internal/database"

	"github.com/google/uuid"
)

type ProfileViewRepository interface {
	// Record stores one view and bumps the student's view counter.
	Record(ctx context.Context, recruiterID, studentID uuid.UUID) error
	CountByRecruiter(ctx context.Context, recruiterID uuid.UUID) (int, error)
}

type PostgresProfileViewRepository struct {
	db database.DB
}

func NewPostgresProfileViewRepository(db database.DB) *PostgresProfileViewRepository {
	return &PostgresProfileViewRepository{db: db}
}

func (r *PostgresProfileViewRepository) Record(ctx context.Context, recruiterID, studentID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO profile_views (id, recruiter_id, student_id) VALUES ($1, $2, $3)`,
		uuid.New(), recruiterID, studentID,
	); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrStudentNotFound
		}
		return err
	}

	n, err := tx.Exec(ctx, `UPDATE student_profiles SET profile_views = profile_views + 1 WHERE id = $1`, studentID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresProfileViewRepository) CountByRecruiter(ctx context.Context, recruiterID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profile_views WHERE recruiter_id = $1`, recruiterID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
