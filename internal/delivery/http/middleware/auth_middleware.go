package middleware

import (
	"errors"
	"strings"

	"lazyintern/internal/domain/user"
	"lazyintern/internal/pkg/jwt"
	"lazyintern/internal/pkg/session"

	"github.com/gofiber/fiber/v3"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware authenticates the bearer access token and stores the caller's
// session for downstream handlers.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		s, err := m.Authenticate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		session.Store(c, s)
		return c.Next()
	}
}

// Authenticate turns an access token into a session. Refresh tokens and
// tokens without a known role are rejected.
func (m *AuthMiddleware) Authenticate(token string) (session.Session, error) {
	claims, err := m.jwt.ValidateAccessToken(token)
	if err != nil {
		return session.Session{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return session.Session{}, jwt.ErrTokenInvalid
	}
	role, ok := user.ParseRole(claims.Role)
	if !ok {
		return session.Session{}, jwt.ErrTokenInvalid
	}
	return session.Session{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     role,
		Verified: claims.Verified,
	}, nil
}

func RequireRole(role user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := session.From(c)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		if s.Role != role {
			return NewAppError(fiber.StatusForbidden, "Access restricted to "+string(role)+" accounts", nil, nil)
		}
		return c.Next()
	}
}

// RequireVerified blocks recruiters who have not confirmed their OTP yet.
func RequireVerified() fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := session.From(c)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		if !s.Verified {
			return NewAppError(fiber.StatusForbidden, "Account verification required", map[string]any{"verified": false}, nil)
		}
		return c.Next()
	}
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
