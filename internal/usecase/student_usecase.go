package usecase

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"lazyintern/internal/domain/student"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudentProfileInput struct {
	Name                     string
	Phone                    string
	University               string
	Major                    string
	GraduationYear           string
	Bio                      string
	Location                 string
	GithubURL                string
	WebsiteURL               string
	LinkedinURL              string
	WebsiteURLs              []string
	InternshipTypePreference string
	PreferredLocation        string
	PreferredLocations       []string
	OpenToRelocate           bool
	Skills                   []string
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	URL      string
	Filename string
}

type uploadKind struct {
	folder  string
	maxSize int64
	exts    map[string]struct{}
}

var (
	resumeUpload = uploadKind{
		folder:  "resumes",
		maxSize: 10 << 20,
		exts:    extSet(".pdf", ".doc", ".docx"),
	}
	certificateUpload = uploadKind{
		folder:  "certificates",
		maxSize: 10 << 20,
		exts:    extSet(".pdf", ".png", ".jpg", ".jpeg"),
	}
	videoUpload = uploadKind{
		folder:  "project-videos",
		maxSize: 100 << 20,
		exts:    extSet(".mp4", ".mov", ".webm"),
	}
)

func extSet(exts ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		m[e] = struct{}{}
	}
	return m
}

type StudentUsecase interface {
	GetProfile(ctx context.Context, s session.Session) (student.Profile, error)
	UpdateProfile(ctx context.Context, s session.Session, in StudentProfileInput) (student.Profile, error)
	GetProjects(ctx context.Context, s session.Session) ([]student.Project, error)
	ReplaceProjects(ctx context.Context, s session.Session, projects []student.Project) ([]student.Project, error)
	GetCertifications(ctx context.Context, s session.Session) ([]student.Certification, error)
	ReplaceCertifications(ctx context.Context, s session.Session, certs []student.Certification) ([]student.Certification, error)
	Completion(ctx context.Context, s session.Session) (student.Completion, error)
	UploadResume(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error)
	DeleteResume(ctx context.Context, s session.Session) error
	UploadCertificateFile(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error)
	UploadProjectVideo(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error)
}

type Student struct {
	students repository.StudentRepository
	store    *ProfileStore
	files    FileStore
	notifier StudentNotifier
	logger   *zap.Logger
}

func NewStudentUsecase(students repository.StudentRepository, store *ProfileStore, files FileStore, notifier StudentNotifier, logger *zap.Logger) *Student {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Student{students: students, store: store, files: files, notifier: notifier, logger: logger}
}

func (u *Student) GetProfile(ctx context.Context, s session.Session) (student.Profile, error) {
	if !s.IsStudent() {
		return student.Profile{}, ErrForbidden
	}
	return u.own(ctx, s)
}

func (u *Student) UpdateProfile(ctx context.Context, s session.Session, in StudentProfileInput) (student.Profile, error) {
	if !s.IsStudent() {
		return student.Profile{}, ErrForbidden
	}
	it := student.InternshipType(strings.ToLower(strings.TrimSpace(in.InternshipTypePreference)))
	if !it.Valid() {
		return student.Profile{}, ErrInvalidInput
	}

	p, err := u.students.Upsert(ctx, student.Profile{
		UserID:                   s.UserID,
		Name:                     strings.TrimSpace(in.Name),
		Phone:                    strings.TrimSpace(in.Phone),
		University:               strings.TrimSpace(in.University),
		Major:                    strings.TrimSpace(in.Major),
		GraduationYear:           strings.TrimSpace(in.GraduationYear),
		Bio:                      strings.TrimSpace(in.Bio),
		Location:                 strings.TrimSpace(in.Location),
		GithubURL:                strings.TrimSpace(in.GithubURL),
		WebsiteURL:               strings.TrimSpace(in.WebsiteURL),
		LinkedinURL:              strings.TrimSpace(in.LinkedinURL),
		WebsiteURLs:              cleanList(in.WebsiteURLs),
		InternshipTypePreference: it,
		PreferredLocation:        strings.TrimSpace(in.PreferredLocation),
		PreferredLocations:       cleanList(in.PreferredLocations),
		OpenToRelocate:           in.OpenToRelocate,
		Skills:                   cleanList(in.Skills),
	})
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return student.Profile{}, ErrUnauthorized
		}
		u.logger.Error("student profile upsert failed", zap.String("user_id", s.UserID.String()), zap.Error(err))
		return student.Profile{}, ErrInternal
	}

	u.changed(ctx, p.ID)
	return p, nil
}

func (u *Student) GetProjects(ctx context.Context, s session.Session) ([]student.Project, error) {
	if !s.IsStudent() {
		return nil, ErrForbidden
	}
	p, err := u.own(ctx, s)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return []student.Project{}, nil
		}
		return nil, err
	}
	return nonNilProjects(p.Projects), nil
}

func (u *Student) ReplaceProjects(ctx context.Context, s session.Session, projects []student.Project) ([]student.Project, error) {
	if !s.IsStudent() {
		return nil, ErrForbidden
	}
	for i := range projects {
		projects[i].Title = strings.TrimSpace(projects[i].Title)
		if projects[i].Title == "" {
			return nil, ErrInvalidInput
		}
		projects[i].Technologies = cleanList(projects[i].Technologies)
	}

	p, err := u.own(ctx, s)
	if err != nil {
		return nil, err
	}
	out, err := u.students.ReplaceProjects(ctx, p.ID, projects)
	if err != nil {
		u.logger.Error("replace projects failed", zap.String("student_id", p.ID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	u.changed(ctx, p.ID)
	return out, nil
}

func (u *Student) GetCertifications(ctx context.Context, s session.Session) ([]student.Certification, error) {
	if !s.IsStudent() {
		return nil, ErrForbidden
	}
	p, err := u.own(ctx, s)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return []student.Certification{}, nil
		}
		return nil, err
	}
	if p.Certifications == nil {
		return []student.Certification{}, nil
	}
	return p.Certifications, nil
}

func (u *Student) ReplaceCertifications(ctx context.Context, s session.Session, certs []student.Certification) ([]student.Certification, error) {
	if !s.IsStudent() {
		return nil, ErrForbidden
	}
	for i := range certs {
		certs[i].Name = strings.TrimSpace(certs[i].Name)
		if certs[i].Name == "" {
			return nil, ErrInvalidInput
		}
	}

	p, err := u.own(ctx, s)
	if err != nil {
		return nil, err
	}
	out, err := u.students.ReplaceCertifications(ctx, p.ID, certs)
	if err != nil {
		u.logger.Error("replace certifications failed", zap.String("student_id", p.ID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	u.changed(ctx, p.ID)
	return out, nil
}

// Completion scores the stored profile. A student without a profile row
// scores zero.
func (u *Student) Completion(ctx context.Context, s session.Session) (student.Completion, error) {
	if !s.IsStudent() {
		return student.Completion{}, ErrForbidden
	}
	p, err := u.own(ctx, s)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return student.Completion{}, err
	}
	return student.CalculateCompletion(p), nil
}

func (u *Student) UploadResume(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error) {
	if !s.IsStudent() {
		return UploadResult{}, ErrForbidden
	}
	p, err := u.own(ctx, s)
	if err != nil {
		return UploadResult{}, err
	}

	res, err := u.upload(ctx, s.UserID, resumeUpload, in)
	if err != nil {
		return UploadResult{}, err
	}
	if err := u.students.UpdateResume(ctx, p.ID, res.URL, res.Filename); err != nil {
		u.logger.Error("store resume url failed", zap.String("student_id", p.ID.String()), zap.Error(err))
		return UploadResult{}, ErrInternal
	}
	u.removeObject(ctx, p.ResumeURL)

	u.changed(ctx, p.ID)
	return res, nil
}

func (u *Student) DeleteResume(ctx context.Context, s session.Session) error {
	if !s.IsStudent() {
		return ErrForbidden
	}
	p, err := u.own(ctx, s)
	if err != nil {
		return err
	}
	if p.ResumeURL == "" {
		return nil
	}
	if err := u.students.UpdateResume(ctx, p.ID, "", ""); err != nil {
		return ErrInternal
	}
	u.removeObject(ctx, p.ResumeURL)

	u.changed(ctx, p.ID)
	return nil
}

// UploadCertificateFile stores the file only; the returned URL is saved with
// the next certification list save.
func (u *Student) UploadCertificateFile(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error) {
	if !s.IsStudent() {
		return UploadResult{}, ErrForbidden
	}
	return u.upload(ctx, s.UserID, certificateUpload, in)
}

func (u *Student) UploadProjectVideo(ctx context.Context, s session.Session, in UploadInput) (UploadResult, error) {
	if !s.IsStudent() {
		return UploadResult{}, ErrForbidden
	}
	return u.upload(ctx, s.UserID, videoUpload, in)
}

func (u *Student) upload(ctx context.Context, owner uuid.UUID, kind uploadKind, in UploadInput) (UploadResult, error) {
	if u.files == nil || !u.files.Available() {
		return UploadResult{}, ErrUploadUnavailable
	}
	name := path.Base(strings.TrimSpace(in.Filename))
	if _, ok := kind.exts[strings.ToLower(path.Ext(name))]; !ok {
		return UploadResult{}, ErrUnsupportedFile
	}
	if in.Size <= 0 || in.Body == nil {
		return UploadResult{}, ErrInvalidInput
	}
	if in.Size > kind.maxSize {
		return UploadResult{}, ErrFileTooLarge
	}

	_, url, err := u.files.Put(ctx, kind.folder, owner, name, in.ContentType, in.Body)
	if err != nil {
		u.logger.Error("upload failed", zap.String("folder", kind.folder), zap.Error(err))
		return UploadResult{}, ErrInternal
	}
	return UploadResult{URL: url, Filename: name}, nil
}

func (u *Student) removeObject(ctx context.Context, url string) {
	if url == "" || u.files == nil {
		return
	}
	key, ok := u.files.KeyFromURL(url)
	if !ok {
		return
	}
	if err := u.files.Delete(ctx, key); err != nil {
		u.logger.Warn("old object not removed", zap.String("key", key), zap.Error(err))
	}
}

func (u *Student) own(ctx context.Context, s session.Session) (student.Profile, error) {
	p, err := u.students.GetByUserID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return student.Profile{}, ErrProfileNotFound
		}
		u.logger.Error("load student profile failed", zap.String("user_id", s.UserID.String()), zap.Error(err))
		return student.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Student) changed(ctx context.Context, studentID uuid.UUID) {
	if u.store != nil {
		u.store.Invalidate(ctx)
	}
	u.notifier.NotifyStudentsUpdated(studentID)
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func nonNilProjects(p []student.Project) []student.Project {
	if p == nil {
		return []student.Project{}
	}
	return p
}
