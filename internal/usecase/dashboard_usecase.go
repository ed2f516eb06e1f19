package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/domain/student"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/report"
	"lazyintern/internal/repository"
	"lazyintern/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Tab string

const (
	TabAll       Tab = "all"
	TabBookmarks Tab = "bookmarks"
)

func ParseTab(s string) (Tab, bool) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabAll:
		return TabAll, true
	case TabBookmarks:
		return TabBookmarks, true
	default:
		return "", false
	}
}

type DashboardUsecase interface {
	ListStudents(ctx context.Context, s session.Session, tab Tab, c search.Criteria) (search.Result, error)
	GetStudent(ctx context.Context, s session.Session, studentID uuid.UUID) (student.Profile, error)
	Stats(ctx context.Context, s session.Session) (recruiter.Stats, error)
	ExportStudent(ctx context.Context, s session.Session, studentID uuid.UUID) (Document, error)
}

// Document is a rendered file ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Dashboard is the recruiter's student browser: it fetches a candidate list
// and runs the filter engine over it on every request.
type Dashboard struct {
	store     *ProfileStore
	students  repository.StudentRepository
	bookmarks repository.BookmarkRepository
	views     repository.ProfileViewRepository
	metrics   FilterMetrics
	logger    *zap.Logger

	now func() time.Time
}

func NewDashboardUsecase(
	store *ProfileStore,
	students repository.StudentRepository,
	bookmarks repository.BookmarkRepository,
	views repository.ProfileViewRepository,
	metrics FilterMetrics,
	logger *zap.Logger,
) *Dashboard {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{store: store, students: students, bookmarks: bookmarks, views: views, metrics: metrics, logger: logger, now: time.Now}
}

func (u *Dashboard) ListStudents(ctx context.Context, s session.Session, tab Tab, c search.Criteria) (search.Result, error) {
	if !s.IsRecruiter() {
		return search.Result{}, ErrForbidden
	}
	if !c.InternshipType.Valid() {
		return search.Result{}, ErrInvalidInput
	}

	var (
		candidates []student.Profile
		err        error
	)
	switch tab {
	case TabBookmarks:
		candidates, err = u.store.Bookmarked(ctx, s.UserID)
	default:
		tab = TabAll
		candidates, err = u.store.All(ctx)
	}
	if err != nil {
		u.logger.Error("load candidates failed", zap.String("tab", string(tab)), zap.Error(err))
		return search.Result{}, ErrInternal
	}

	res := search.Apply(candidates, c)
	u.metrics.ObserveFilter(string(tab), res.HasActiveFilters, res.Matched)
	u.logger.Debug("students filtered",
		zap.String("tab", string(tab)),
		zap.Int("total", res.Total),
		zap.Int("matched", res.Matched),
		zap.Bool("active", res.HasActiveFilters),
	)
	return res, nil
}

// GetStudent returns the full profile and records the view.
func (u *Dashboard) GetStudent(ctx context.Context, s session.Session, studentID uuid.UUID) (student.Profile, error) {
	if !s.IsRecruiter() {
		return student.Profile{}, ErrForbidden
	}
	p, err := u.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return student.Profile{}, ErrStudentNotFound
		}
		return student.Profile{}, ErrInternal
	}

	if err := u.views.Record(ctx, s.UserID, studentID); err != nil {
		u.logger.Warn("profile view not recorded", zap.String("student_id", studentID.String()), zap.Error(err))
	} else {
		p.ProfileViews++
		u.metrics.ObserveProfileView()
	}
	return p, nil
}

func (u *Dashboard) Stats(ctx context.Context, s session.Session) (recruiter.Stats, error) {
	if !s.IsRecruiter() {
		return recruiter.Stats{}, ErrForbidden
	}
	total, err := u.students.Count(ctx)
	if err != nil {
		return recruiter.Stats{}, ErrInternal
	}
	marks, err := u.bookmarks.Count(ctx, s.UserID)
	if err != nil {
		return recruiter.Stats{}, ErrInternal
	}
	views, err := u.views.CountByRecruiter(ctx, s.UserID)
	if err != nil {
		return recruiter.Stats{}, ErrInternal
	}
	return recruiter.Stats{TotalStudents: total, Bookmarks: marks, ProfileViews: views}, nil
}

// ExportStudent renders the student's profile summary as a PDF. Exports do
// not count as profile views.
func (u *Dashboard) ExportStudent(ctx context.Context, s session.Session, studentID uuid.UUID) (Document, error) {
	if !s.IsRecruiter() {
		return Document{}, ErrForbidden
	}
	p, err := u.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return Document{}, ErrStudentNotFound
		}
		return Document{}, ErrInternal
	}

	var buf bytes.Buffer
	if err := report.StudentProfile(&buf, p, u.now()); err != nil {
		u.logger.Error("render profile pdf failed", zap.String("student_id", studentID.String()), zap.Error(err))
		return Document{}, ErrInternal
	}
	return Document{
		Filename:    report.ProfileFilename(p.Name),
		ContentType: report.ContentTypePDF,
		Body:        buf.Bytes(),
	}, nil
}
