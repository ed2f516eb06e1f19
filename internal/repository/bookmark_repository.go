package repository

import (
	"context"
	"errors"

	"lazyintern/internal/database"

	"github.com/google/uuid"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")

type BookmarkRepository interface {
	Exists(ctx context.Context, recruiterID, studentID uuid.UUID) (bool, error)
	// Add reports created=false when the bookmark already existed.
	Add(ctx context.Context, recruiterID, studentID uuid.UUID) (created bool, err error)
	Remove(ctx context.Context, recruiterID, studentID uuid.UUID) error
	ListStudentIDs(ctx context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context, recruiterID uuid.UUID) (int, error)
}

type PostgresBookmarkRepository struct {
	db database.DB
}

func NewPostgresBookmarkRepository(db database.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) Exists(ctx context.Context, recruiterID, studentID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM student_bookmarks WHERE recruiter_id = $1 AND student_id = $2)`,
		recruiterID, studentID,
	).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresBookmarkRepository) Add(ctx context.Context, recruiterID, studentID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO student_bookmarks (id, recruiter_id, student_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (recruiter_id, student_id) DO NOTHING`,
		uuid.New(), recruiterID, studentID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, ErrStudentNotFound
		}
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresBookmarkRepository) Remove(ctx context.Context, recruiterID, studentID uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM student_bookmarks WHERE recruiter_id = $1 AND student_id = $2`,
		recruiterID, studentID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) ListStudentIDs(ctx context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT student_id FROM student_bookmarks WHERE recruiter_id = $1 ORDER BY created_at DESC`,
		recruiterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBookmarkRepository) Count(ctx context.Context, recruiterID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM student_bookmarks WHERE recruiter_id = $1`, recruiterID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
