package usecase

import (
	"context"
	"errors"
	"strings"

	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/repository"

	"go.uber.org/zap"
)

type RecruiterProfileInput struct {
	Name        string
	Phone       string
	CompanyName string
	Position    string
	Location    string
}

type RecruiterUsecase interface {
	GetProfile(ctx context.Context, s session.Session) (recruiter.Profile, error)
	// SaveProfile reports created=true when no profile existed before.
	SaveProfile(ctx context.Context, s session.Session, in RecruiterProfileInput) (recruiter.Profile, bool, error)
}

type Recruiter struct {
	recruiters repository.RecruiterRepository
	logger     *zap.Logger
}

func NewRecruiterUsecase(recruiters repository.RecruiterRepository, logger *zap.Logger) *Recruiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recruiter{recruiters: recruiters, logger: logger}
}

func (u *Recruiter) GetProfile(ctx context.Context, s session.Session) (recruiter.Profile, error) {
	if !s.IsRecruiter() {
		return recruiter.Profile{}, ErrForbidden
	}
	p, err := u.recruiters.GetByUserID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrRecruiterNotFound) {
			return recruiter.Profile{}, ErrProfileNotFound
		}
		return recruiter.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Recruiter) SaveProfile(ctx context.Context, s session.Session, in RecruiterProfileInput) (recruiter.Profile, bool, error) {
	if !s.IsRecruiter() {
		return recruiter.Profile{}, false, ErrForbidden
	}

	created := false
	if _, err := u.recruiters.GetByUserID(ctx, s.UserID); err != nil {
		if !errors.Is(err, repository.ErrRecruiterNotFound) {
			return recruiter.Profile{}, false, ErrInternal
		}
		created = true
	}

	p, err := u.recruiters.Upsert(ctx, recruiter.Profile{
		UserID:      s.UserID,
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Position:    strings.TrimSpace(in.Position),
		Location:    strings.TrimSpace(in.Location),
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecruiterNotFound) {
			return recruiter.Profile{}, false, ErrUnauthorized
		}
		u.logger.Error("recruiter profile upsert failed", zap.String("user_id", s.UserID.String()), zap.Error(err))
		return recruiter.Profile{}, false, ErrInternal
	}
	return p, created, nil
}
