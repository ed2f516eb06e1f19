package usecase

import (
	"errors"

	ucauth "lazyintern/internal/usecase/auth"
)

var (
	ErrInvalidInput           = ucauth.ErrInvalidInput
	ErrInvalidCredentials     = ucauth.ErrInvalidCredentials
	ErrEmailAlreadyRegistered = ucauth.ErrEmailAlreadyRegistered
	ErrInternal               = ucauth.ErrInternal

	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRoleMismatch        = errors.New("role mismatch")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrInvalidOTP          = errors.New("invalid or expired verification code")
	ErrTooManyOTPAttempts  = errors.New("too many verification attempts")
	ErrAlreadyVerified     = errors.New("account already verified")
	ErrVerificationPending = errors.New("recruiter account not verified")

	ErrStudentNotFound   = errors.New("student not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrUploadUnavailable = errors.New("file uploads are not configured")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file too large")

	ErrAISearchUnavailable = errors.New("ai search is not configured")
	ErrAISearchFailed      = errors.New("ai search could not interpret the query")
)
