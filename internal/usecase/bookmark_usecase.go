package usecase

import (
	"context"
	"errors"

	"lazyintern/internal/pkg/session"
	"lazyintern/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookmarkUsecase interface {
	IsBookmarked(ctx context.Context, s session.Session, studentID uuid.UUID) (bool, error)
	Add(ctx context.Context, s session.Session, studentID uuid.UUID) (created bool, err error)
	Remove(ctx context.Context, s session.Session, studentID uuid.UUID) error
}

type Bookmark struct {
	bookmarks repository.BookmarkRepository
	metrics   FilterMetrics
	logger    *zap.Logger
}

func NewBookmarkUsecase(bookmarks repository.BookmarkRepository, metrics FilterMetrics, logger *zap.Logger) *Bookmark {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bookmark{bookmarks: bookmarks, metrics: metrics, logger: logger}
}

func (u *Bookmark) IsBookmarked(ctx context.Context, s session.Session, studentID uuid.UUID) (bool, error) {
	if !s.IsRecruiter() {
		return false, ErrForbidden
	}
	ok, err := u.bookmarks.Exists(ctx, s.UserID, studentID)
	if err != nil {
		return false, ErrInternal
	}
	return ok, nil
}

func (u *Bookmark) Add(ctx context.Context, s session.Session, studentID uuid.UUID) (bool, error) {
	if !s.IsRecruiter() {
		return false, ErrForbidden
	}
	if studentID == uuid.Nil {
		return false, ErrInvalidInput
	}
	created, err := u.bookmarks.Add(ctx, s.UserID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return false, ErrStudentNotFound
		}
		u.logger.Error("add bookmark failed", zap.Error(err))
		return false, ErrInternal
	}
	if created {
		u.metrics.ObserveBookmark("add")
	}
	return created, nil
}

func (u *Bookmark) Remove(ctx context.Context, s session.Session, studentID uuid.UUID) error {
	if !s.IsRecruiter() {
		return ErrForbidden
	}
	if err := u.bookmarks.Remove(ctx, s.UserID, studentID); err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return ErrBookmarkNotFound
		}
		return ErrInternal
	}
	u.metrics.ObserveBookmark("remove")
	return nil
}
