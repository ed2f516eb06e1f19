package routes

import (
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", authMw.Middleware())

	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Student != nil {
		h.Student.RegisterRoutes(protected.Group("/students", middleware.RequireRole(user.RoleStudent)))
	}
	if h.Recruiter != nil {
		h.Recruiter.RegisterRoutes(protected.Group("/recruiters", middleware.RequireRole(user.RoleRecruiter)), middleware.RequireVerified())
	}
}
