// Package session carries the authenticated caller through a request. The
// auth middleware builds one from the access token and handlers pass it to
// usecases explicitly.
package session

import (
	"errors"

	"lazyintern/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const localsKey = "session"

var ErrNoSession = errors.New("no session")

type Session struct {
	UserID   uuid.UUID
	Email    string
	Role     user.Role
	Verified bool
}

func (s Session) IsRecruiter() bool { return s.Role == user.RoleRecruiter }
func (s Session) IsStudent() bool   { return s.Role == user.RoleStudent }

func Store(c fiber.Ctx, s Session) {
	c.Locals(localsKey, s)
}

func From(c fiber.Ctx) (Session, error) {
	s, ok := c.Locals(localsKey).(Session)
	if !ok || s.UserID == uuid.Nil {
		return Session{}, ErrNoSession
	}
	return s, nil
}
