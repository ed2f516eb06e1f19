package handler

import (
	"errors"

	"lazyintern/internal/delivery/http/dto"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/pkg/response"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if errs := dto.Validate(req); errs != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", errs, nil)
	}
	return nil
}

func currentSession(c fiber.Ctx) (session.Session, error) {
	s, err := session.From(c)
	if err != nil {
		return session.Session{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	}
	return s, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrRoleMismatch):
		return middleware.NewAppError(fiber.StatusForbidden, "Account registered with a different role", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrVerificationPending):
		return middleware.NewAppError(fiber.StatusForbidden, "Account verification required", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrInvalidOTP):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or expired verification code", nil, err)
	case errors.Is(err, usecase.ErrTooManyOTPAttempts):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Too many verification attempts", nil, err)
	case errors.Is(err, usecase.ErrAlreadyVerified):
		return middleware.NewAppError(fiber.StatusConflict, "Account already verified", nil, err)
	case errors.Is(err, usecase.ErrStudentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrBookmarkNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Bookmark not found", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported file type", nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err)
	case errors.Is(err, usecase.ErrUploadUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "File uploads are not configured", nil, err)
	case errors.Is(err, usecase.ErrAISearchUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "AI search is not configured", nil, err)
	case errors.Is(err, usecase.ErrAISearchFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "AI search could not interpret the query", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
