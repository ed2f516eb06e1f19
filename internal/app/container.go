package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lazyintern/internal/config"
	"lazyintern/internal/database"
	dbpostgres "lazyintern/internal/database/postgres"
	"lazyintern/internal/database/sqldb"
	"lazyintern/internal/infrastructure/ai"
	"lazyintern/internal/infrastructure/cache"
	"lazyintern/internal/infrastructure/mailer"
	"lazyintern/internal/infrastructure/storage"
	"lazyintern/internal/logger"
	"lazyintern/internal/metrics"
	"lazyintern/internal/pkg/jwt"
	"lazyintern/internal/repository"
	"lazyintern/internal/usecase"
	ucauth "lazyintern/internal/usecase/auth"
	"lazyintern/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Files   *storage.S3
	Mailer  mailer.Mailer
	JWT     *jwt.HMACService
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	AI      *ai.Gemini

	Users      *repository.PostgresUserRepository
	Students   *repository.PostgresStudentRepository
	Recruiters *repository.PostgresRecruiterRepository
	Bookmarks  *repository.PostgresBookmarkRepository
	Views      *repository.PostgresProfileViewRepository

	AuthUC      *usecase.Auth
	UserUC      *usecase.User
	StudentUC   *usecase.Student
	RecruiterUC *usecase.Recruiter
	DashboardUC *usecase.Dashboard
	BookmarkUC  *usecase.Bookmark
	AISearchUC  *usecase.AISearch
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	log = log.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := ConnectDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewS3(ctx, cfg.Storage, logger.Component(log, "storage"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mail, err := mailer.New(ctx, cfg.Mail, logger.Component(log, "mailer"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	gemini, err := ai.New(ctx, cfg.AI, logger.Component(log, "ai"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger.Component(log, "cache")),
		Files:   files,
		Mailer:  mail,
		JWT:     jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
		Metrics: metrics.New(),
		Hub:     ws.NewHub(logger.Component(log, "ws")),
		AI:      gemini,
	}
	c.wire()
	return c, nil
}

// ConnectDB opens the configured adapter: the pgx pool by default or
// database/sql over pgx's stdlib driver.
func ConnectDB(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "pgx":
		return dbpostgres.Connect(ctx, cfg)
	case "stdlib":
		db, err := sqldb.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
}

func (c *Container) wire() {
	c.Users = repository.NewPostgresUserRepository(c.DB)
	c.Students = repository.NewPostgresStudentRepository(c.DB)
	c.Recruiters = repository.NewPostgresRecruiterRepository(c.DB)
	c.Bookmarks = repository.NewPostgresBookmarkRepository(c.DB)
	c.Views = repository.NewPostgresProfileViewRepository(c.DB)

	ucLog := logger.Component(c.Logger, "usecase")
	otp := cache.NewOTPStore(c.Cache, c.Config.OTP.TTL)
	store := usecase.NewProfileStore(c.Students, c.Bookmarks, c.Cache, ucLog)

	c.AuthUC = usecase.NewAuthUsecase(ucauth.NewService(c.Users), c.Users, c.JWT, otp, c.Mailer, ucLog)
	c.UserUC = usecase.NewUserUsecase(c.Users, c.Students, c.Recruiters)
	c.StudentUC = usecase.NewStudentUsecase(c.Students, store, c.Files, c.Hub, ucLog)
	c.RecruiterUC = usecase.NewRecruiterUsecase(c.Recruiters, ucLog)
	c.DashboardUC = usecase.NewDashboardUsecase(store, c.Students, c.Bookmarks, c.Views, c.Metrics, ucLog)
	c.BookmarkUC = usecase.NewBookmarkUsecase(c.Bookmarks, c.Metrics, ucLog)

	var gen usecase.JSONGenerator
	if c.AI != nil {
		gen = c.AI
	}
	c.AISearchUC = usecase.NewAISearchUsecase(c.DashboardUC, store, gen, ucLog)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Hub.Stop()

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
