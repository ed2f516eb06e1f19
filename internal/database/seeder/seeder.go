package seeder

import (
	"context"

	"lazyintern/internal/database"
)

// Seeder inserts demo data. Implementations must be safe to re-run.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
