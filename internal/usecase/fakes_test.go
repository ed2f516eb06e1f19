package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/domain/student"
	"lazyintern/internal/domain/user"
	"lazyintern/internal/repository"

	"github.com/google/uuid"
)

type memUsers struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]user.User
	verified []uuid.UUID
	touched  []uuid.UUID
}

func newMemUsers(users ...user.User) *memUsers {
	m := &memUsers{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) MarkVerified(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID[id]
	u.IsVerified = true
	m.byID[id] = u
	m.verified = append(m.verified, id)
	return nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID[id]
	u.LastLoginAt = &at
	m.byID[id] = u
	m.touched = append(m.touched, id)
	return nil
}

type memStudents struct {
	profiles  []student.Profile
	listCalls int
	err       error
	resume    struct{ url, filename string }
	onList    func()
}

func (m *memStudents) ListAll(context.Context) ([]student.Profile, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.onList != nil {
		m.onList()
	}
	return append([]student.Profile(nil), m.profiles...), nil
}

func (m *memStudents) ListByIDs(_ context.Context, ids []uuid.UUID) ([]student.Profile, error) {
	out := []student.Profile{}
	for _, p := range m.profiles {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *memStudents) GetByID(_ context.Context, id uuid.UUID) (student.Profile, error) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return student.Profile{}, repository.ErrStudentNotFound
}

func (m *memStudents) GetByUserID(_ context.Context, userID uuid.UUID) (student.Profile, error) {
	if m.err != nil {
		return student.Profile{}, m.err
	}
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return student.Profile{}, repository.ErrStudentNotFound
}

func (m *memStudents) Upsert(_ context.Context, p student.Profile) (student.Profile, error) {
	for i, existing := range m.profiles {
		if existing.UserID == p.UserID {
			p.ID = existing.ID
			m.profiles[i] = p
			return p, nil
		}
	}
	p.ID = uuid.New()
	m.profiles = append(m.profiles, p)
	return p, nil
}

func (m *memStudents) ReplaceProjects(_ context.Context, studentID uuid.UUID, projects []student.Project) ([]student.Project, error) {
	for i := range projects {
		projects[i].ID = uuid.New()
		projects[i].StudentID = studentID
	}
	return projects, nil
}

func (m *memStudents) ReplaceCertifications(_ context.Context, studentID uuid.UUID, certs []student.Certification) ([]student.Certification, error) {
	for i := range certs {
		certs[i].ID = uuid.New()
		certs[i].StudentID = studentID
	}
	return certs, nil
}

func (m *memStudents) UpdateResume(_ context.Context, _ uuid.UUID, url, filename string) error {
	m.resume.url, m.resume.filename = url, filename
	return nil
}

func (m *memStudents) Count(context.Context) (int, error) { return len(m.profiles), nil }

type memBookmarks struct {
	marks map[uuid.UUID][]uuid.UUID
}

func newMemBookmarks() *memBookmarks { return &memBookmarks{marks: map[uuid.UUID][]uuid.UUID{}} }

func (m *memBookmarks) Exists(_ context.Context, recruiterID, studentID uuid.UUID) (bool, error) {
	for _, id := range m.marks[recruiterID] {
		if id == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookmarks) Add(ctx context.Context, recruiterID, studentID uuid.UUID) (bool, error) {
	if ok, _ := m.Exists(ctx, recruiterID, studentID); ok {
		return false, nil
	}
	m.marks[recruiterID] = append(m.marks[recruiterID], studentID)
	return true, nil
}

func (m *memBookmarks) Remove(_ context.Context, recruiterID, studentID uuid.UUID) error {
	ids := m.marks[recruiterID]
	for i, id := range ids {
		if id == studentID {
			m.marks[recruiterID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrBookmarkNotFound
}

func (m *memBookmarks) ListStudentIDs(_ context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error) {
	return m.marks[recruiterID], nil
}

func (m *memBookmarks) Count(_ context.Context, recruiterID uuid.UUID) (int, error) {
	return len(m.marks[recruiterID]), nil
}

type memViews struct {
	views map[uuid.UUID]int
	err   error
}

func (m *memViews) Record(_ context.Context, recruiterID, _ uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if m.views == nil {
		m.views = map[uuid.UUID]int{}
	}
	m.views[recruiterID]++
	return nil
}

func (m *memViews) CountByRecruiter(_ context.Context, recruiterID uuid.UUID) (int, error) {
	return m.views[recruiterID], nil
}

type memRecruiters struct {
	profiles map[uuid.UUID]recruiter.Profile
}

func (m *memRecruiters) GetByUserID(_ context.Context, userID uuid.UUID) (recruiter.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return recruiter.Profile{}, repository.ErrRecruiterNotFound
	}
	return p, nil
}

func (m *memRecruiters) Upsert(_ context.Context, p recruiter.Profile) (recruiter.Profile, error) {
	if m.profiles == nil {
		m.profiles = map[uuid.UUID]recruiter.Profile{}
	}
	if existing, ok := m.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	m.profiles[p.UserID] = p
	return p, nil
}

// memCache stores values as-is; GetJSON only supports []student.Profile.
type memCache struct {
	data    map[string]any
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string]any{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if dst, ok := out.(*[]student.Profile); ok {
		*dst = v.([]student.Profile)
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value
	return true, nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	n, _ := c.data[key].(int64)
	n++
	c.data[key] = n
	return n, nil
}

func (c *memCache) GetInt(_ context.Context, key string) (int64, error) {
	n, _ := c.data[key].(int64)
	return n, nil
}

type memOTP struct {
	codes map[string]string
}

func (o *memOTP) Save(_ context.Context, email, code string) error {
	if o.codes == nil {
		o.codes = map[string]string{}
	}
	o.codes[email] = code
	return nil
}

func (o *memOTP) Consume(_ context.Context, email, code string) (bool, error) {
	if o.codes[email] != code {
		return false, nil
	}
	delete(o.codes, email)
	return true, nil
}

type sentMail struct{ to, subject, body string }

type memMailer struct {
	sent []sentMail
	err  error
}

func (m *memMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type memFiles struct {
	available bool
	puts      []string
	deleted   []string
}

func (f *memFiles) Put(_ context.Context, folder string, owner uuid.UUID, filename, _ string, body io.Reader) (string, string, error) {
	_, _ = io.Copy(io.Discard, body)
	key := folder + "/" + owner.String() + "/" + filename
	f.puts = append(f.puts, key)
	return key, "https://cdn.test/" + key, nil
}

func (f *memFiles) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *memFiles) KeyFromURL(url string) (string, bool) {
	const base = "https://cdn.test/"
	if len(url) <= len(base) || url[:len(base)] != base {
		return "", false
	}
	return url[len(base):], true
}

func (f *memFiles) Available() bool { return f.available }

type recordedNotifier struct {
	ids []uuid.UUID
}

func (n *recordedNotifier) NotifyStudentsUpdated(id uuid.UUID) { n.ids = append(n.ids, id) }

type recordedMetrics struct {
	filters   []string
	bookmarks []string
	views     int
}

func (m *recordedMetrics) ObserveFilter(tab string, _ bool, _ int) {
	m.filters = append(m.filters, tab)
}

func (m *recordedMetrics) ObserveBookmark(op string) { m.bookmarks = append(m.bookmarks, op) }
func (m *recordedMetrics) ObserveProfileView()       { m.views++ }
