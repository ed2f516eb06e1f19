package app

import (
	"fmt"
	"strings"

	"lazyintern/internal/config"
	"lazyintern/internal/delivery/http/handler"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/delivery/http/routes"
	"lazyintern/internal/logger"
	"lazyintern/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const maxUploadBody = 110 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: maxUploadBody,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger.Component(c.Logger, "http"))
	accessMw := middleware.NewAccessLogMiddleware(logger.Component(c.Logger, "access"), c.Metrics)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)

	var cachePing handler.Pinger
	if c.Cache != nil && c.Cache.Available() {
		cachePing = c.Cache
	}

	routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(c.DB, cachePing),
		Auth:      handler.NewAuthHandler(c.AuthUC),
		User:      handler.NewUserHandler(c.UserUC),
		Student:   handler.NewStudentHandler(c.StudentUC),
		Recruiter: handler.NewRecruiterHandler(c.RecruiterUC, c.DashboardUC, c.BookmarkUC, c.AISearchUC),
		WS:        ws.NewHandler(c.Hub, authMw, logger.Component(c.Logger, "ws")),
		Metrics:   c.Metrics.Handler(),
	}, authMw).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
