package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lazyintern/internal/app"
	"lazyintern/internal/config"
	"lazyintern/internal/database/migration"
	"lazyintern/internal/database/seeder"
	"lazyintern/internal/logger"
	"lazyintern/migrations"

	"go.uber.org/zap"
)

func main() {
	status := flag.Bool("status", false, "print migration status and exit")
	seed := flag.Bool("seed", false, "insert demo recruiter and student accounts after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := app.ConnectDB(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS, Logger: logger.Component(lg, "migrate")}

	if *status {
		list, err := r.Status(ctx, db.SQLDB())
		if err != nil {
			lg.Fatal("migration status failed", zap.Error(err))
		}
		for _, s := range list {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(os.Stdout, "%-8s V%d %s\n", state, s.Migration.Version, s.Migration.Name)
		}
		return
	}

	if err := r.Run(ctx, db.SQLDB()); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	lg.Info("migrations applied")

	if *seed {
		if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Component(lg, "seed")}).Run(ctx, db); err != nil {
			lg.Fatal("seeding failed", zap.Error(err))
		}
		lg.Info("demo data seeded", zap.String("password", seeder.DemoPassword))
	}
}
