package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lazyintern/internal/domain/user"
	"lazyintern/internal/infrastructure/cache"
	"lazyintern/internal/pkg/jwt"
	ucauth "lazyintern/internal/usecase/auth"

	"go.uber.org/zap"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	User   user.User
	Tokens TokenPair
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	VerifyOTP(ctx context.Context, email, code string) (AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	otp     OTPStore
	mailer  Mailer
	logger  *zap.Logger

	now func() time.Time
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service, otp OTPStore, mailer Mailer, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authSvc: authSvc,
		users:   users,
		jwt:     jwtSvc,
		otp:     otp,
		mailer:  mailer,
		logger:  logger,
		now:     time.Now,
	}
}

// Register creates the account and signs it in. Recruiters also get a
// verification code by email; a failed send is logged and can be retried
// through ResendOTP.
func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	if usr.Role == user.RoleRecruiter {
		if err := u.issueOTP(ctx, usr); err != nil {
			u.logger.Warn("otp not delivered on signup", zap.String("user_id", usr.ID.String()), zap.Error(err))
		}
	}

	tokens, err := u.tokensFor(usr)
	if err != nil {
		return AuthResult{}, err
	}
	u.logger.Info("user registered", zap.String("user_id", usr.ID.String()), zap.String("role", string(usr.Role)))
	return AuthResult{User: usr, Tokens: tokens}, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		if errors.Is(err, ucauth.ErrRoleMismatch) {
			return AuthResult{}, ErrRoleMismatch
		}
		return AuthResult{}, err
	}

	now := u.now().UTC()
	if err := u.users.TouchLastLogin(ctx, usr.ID, now); err != nil {
		u.logger.Warn("last login not recorded", zap.String("user_id", usr.ID.String()), zap.Error(err))
	} else {
		usr.LastLoginAt = &now
	}

	tokens, err := u.tokensFor(usr)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: usr, Tokens: tokens}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	return u.tokensFor(usr)
}

// VerifyOTP confirms a recruiter's code and returns tokens that carry the
// verified flag.
func (u *Auth) VerifyOTP(ctx context.Context, email, code string) (AuthResult, error) {
	if !ucauth.ValidOTPFormat(code) {
		return AuthResult{}, ErrInvalidOTP
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthResult{}, ErrInvalidOTP
		}
		return AuthResult{}, ErrInternal
	}
	if usr.IsVerified {
		return AuthResult{}, ErrAlreadyVerified
	}

	ok, err := u.otp.Consume(ctx, usr.Email, code)
	if err != nil {
		if errors.Is(err, cache.ErrOTPAttemptsExceeded) {
			return AuthResult{}, ErrTooManyOTPAttempts
		}
		u.logger.Error("otp consume failed", zap.Error(err))
		return AuthResult{}, ErrInternal
	}
	if !ok {
		return AuthResult{}, ErrInvalidOTP
	}

	if err := u.users.MarkVerified(ctx, usr.ID); err != nil {
		return AuthResult{}, ErrInternal
	}
	usr.IsVerified = true
	usr.PasswordHash = ""

	tokens, err := u.tokensFor(usr)
	if err != nil {
		return AuthResult{}, err
	}
	u.logger.Info("recruiter verified", zap.String("user_id", usr.ID.String()))
	return AuthResult{User: usr, Tokens: tokens}, nil
}

func (u *Auth) ResendOTP(ctx context.Context, email string) error {
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidInput
		}
		return ErrInternal
	}
	if usr.Role != user.RoleRecruiter {
		return ErrInvalidInput
	}
	if usr.IsVerified {
		return ErrAlreadyVerified
	}
	if err := u.issueOTP(ctx, usr); err != nil {
		u.logger.Error("otp resend failed", zap.String("user_id", usr.ID.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *Auth) issueOTP(ctx context.Context, usr user.User) error {
	code, err := ucauth.GenerateOTP()
	if err != nil {
		return err
	}
	if err := u.otp.Save(ctx, usr.Email, code); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	body := fmt.Sprintf("Hi %s,\n\nYour LazyIntern verification code is %s.\n", usr.Name, code)
	if err := u.mailer.Send(ctx, usr.Email, "Your LazyIntern verification code", body); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (u *Auth) tokensFor(usr user.User) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(jwt.Identity{
		UserID:   usr.ID,
		Email:    usr.Email,
		Role:     string(usr.Role),
		Verified: usr.IsVerified,
	})
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
