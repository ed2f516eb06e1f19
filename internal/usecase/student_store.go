package usecase

import (
	"context"

	"lazyintern/internal/domain/student"
	"lazyintern/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileStore supplies candidate lists to the dashboard. The full list is
// cached in Redis; bookmarked lists are always read from the database.
type ProfileStore struct {
	students  repository.StudentRepository
	bookmarks repository.BookmarkRepository
	cache     Cache
	logger    *zap.Logger
}

func NewProfileStore(students repository.StudentRepository, bookmarks repository.BookmarkRepository, cache Cache, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileStore{students: students, bookmarks: bookmarks, cache: cache, logger: logger}
}

func (s *ProfileStore) All(ctx context.Context) ([]student.Profile, error) {
	if s.cache != nil {
		var cached []student.Profile
		ok, err := s.cache.GetJSON(ctx, StudentsListCacheKey, &cached)
		if err != nil {
			s.logger.Warn("student list cache read failed", zap.Error(err))
		}
		if ok {
			return cached, nil
		}
	}

	var gen int64
	if s.cache != nil {
		g, err := s.cache.GetInt(ctx, studentsListGenKey)
		if err != nil {
			s.logger.Warn("student list generation read failed", zap.Error(err))
		}
		gen = g
	}

	list, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.repopulate(ctx, list, gen)
	}
	return list, nil
}

// repopulate writes list back only while the generation read before the
// database query is still current. An Invalidate racing the write bumps the
// generation, and the freshly written list is dropped again.
func (s *ProfileStore) repopulate(ctx context.Context, list []student.Profile, gen int64) {
	locked, err := s.cache.SetIfNotExists(ctx, studentsListLockKey, "1", studentsListLockTTL)
	if err != nil || !locked {
		return
	}
	defer func() {
		if err := s.cache.Delete(ctx, studentsListLockKey); err != nil {
			s.logger.Warn("student list cache unlock failed", zap.Error(err))
		}
	}()

	if !s.generationIs(ctx, gen) {
		return
	}
	if err := s.cache.SetJSON(ctx, StudentsListCacheKey, list, 0); err != nil {
		s.logger.Warn("student list cache write failed", zap.Error(err))
		return
	}
	if !s.generationIs(ctx, gen) {
		if err := s.cache.Delete(ctx, StudentsListCacheKey); err != nil {
			s.logger.Warn("stale student list eviction failed", zap.Error(err))
		}
	}
}

func (s *ProfileStore) generationIs(ctx context.Context, gen int64) bool {
	cur, err := s.cache.GetInt(ctx, studentsListGenKey)
	if err != nil {
		s.logger.Warn("student list generation read failed", zap.Error(err))
		return false
	}
	return cur == gen
}

func (s *ProfileStore) Bookmarked(ctx context.Context, recruiterID uuid.UUID) ([]student.Profile, error) {
	ids, err := s.bookmarks.ListStudentIDs(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	return s.students.ListByIDs(ctx, ids)
}

func (s *ProfileStore) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, studentsListGenKey); err != nil {
		s.logger.Warn("student list generation bump failed", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, StudentsListCacheKey); err != nil {
		s.logger.Warn("student list cache invalidation failed", zap.Error(err))
	}
}
