package routes

import (
	"net/http"

	"lazyintern/internal/delivery/http/handler"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Handlers is everything the router mounts. Nil entries are skipped.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Student   *handler.StudentHandler
	Recruiter *handler.RecruiterHandler
	WS        *ws.Handler
	Metrics   http.Handler
}

type Registry struct {
	h      Handlers
	authMw *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{h: h, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerInfra(app)
	r.registerAPI(app)
}

func (r *Registry) registerInfra(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.h.Metrics))
	}
	if r.h.WS != nil {
		app.Get("/ws/students", r.h.WS.HandleStudentsWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h, r.authMw)
}
