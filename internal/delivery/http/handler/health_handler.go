package handler

import (
	"context"
	"time"

	"lazyintern/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports database reachability. Redis is optional and only
// reported.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{"database": "ok", "cache": "disabled"}
	status := fiber.StatusOK
	msg := response.MessageOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "unreachable"
			status = fiber.StatusServiceUnavailable
			msg = "degraded"
		}
	}
	if h.cache != nil {
		data["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "unreachable"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, msg, data)
	}
	return response.Success(c, status, msg, data)
}
