package seeder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"lazyintern/internal/database"

	"go.uber.org/zap"
)

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
	// Only restricts the run to the named seeders when non-empty.
	Only []string
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if len(r.Only) > 0 && !slices.Contains(r.Only, s.Name()) {
			log.Debug("seeder skipped", zap.String("seeder", s.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			log.Error("seeder failed", zap.String("seeder", s.Name()), zap.Error(err))
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder done", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
