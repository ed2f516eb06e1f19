package seeder

import (
	"context"

	"lazyintern/internal/database"
)

type RecruiterSeeder struct{}

func (RecruiterSeeder) Name() string { return "recruiter" }

func (RecruiterSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "recruiter_profiles", "user_id", "name", "company_name", "position", "location"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	userID, err := upsertUser(ctx, tx, "recruiter@lazyintern.dev", "Rina Hartono", "recruiter")
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO recruiter_profiles (user_id, name, company_name, position, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, "Rina Hartono", "Nusantara Tech", "Talent Acquisition Lead", "Jakarta",
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
