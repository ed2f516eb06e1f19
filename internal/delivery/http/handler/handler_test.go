package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lazyintern/internal/delivery/http/handler"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/delivery/http/routes"
	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/domain/student"
	"lazyintern/internal/domain/user"
	"lazyintern/internal/pkg/jwt"
	"lazyintern/internal/pkg/response"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/report"
	"lazyintern/internal/search"
	"lazyintern/internal/usecase"
	ucauth "lazyintern/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registerErr error
	lastLogin   ucauth.LoginInput
}

func (f *fakeAuth) Register(_ context.Context, in ucauth.RegisterInput) (usecase.AuthResult, error) {
	if f.registerErr != nil {
		return usecase.AuthResult{}, f.registerErr
	}
	u := user.User{ID: uuid.New(), Email: in.Email, Name: in.Name, Role: user.Role(in.Role), IsVerified: in.Role == "student"}
	return usecase.AuthResult{User: u, Tokens: usecase.TokenPair{AccessToken: "a", RefreshToken: "r"}}, nil
}

func (f *fakeAuth) Login(_ context.Context, in ucauth.LoginInput) (usecase.AuthResult, error) {
	f.lastLogin = in
	if in.Role == "recruiter" {
		return usecase.AuthResult{}, usecase.ErrRoleMismatch
	}
	return usecase.AuthResult{User: user.User{ID: uuid.New(), Email: in.Email, Role: user.RoleStudent}}, nil
}

func (f *fakeAuth) Refresh(context.Context, string) (usecase.TokenPair, error) {
	return usecase.TokenPair{}, usecase.ErrInvalidRefreshToken
}

func (f *fakeAuth) VerifyOTP(context.Context, string, string) (usecase.AuthResult, error) {
	return usecase.AuthResult{}, usecase.ErrInvalidOTP
}

func (f *fakeAuth) ResendOTP(context.Context, string) error { return nil }

type fakeDashboard struct {
	lastTab      usecase.Tab
	lastCriteria search.Criteria
	exportable   map[uuid.UUID]student.Profile
}

func (f *fakeDashboard) ListStudents(_ context.Context, _ session.Session, tab usecase.Tab, c search.Criteria) (search.Result, error) {
	f.lastTab, f.lastCriteria = tab, c
	students := []student.Profile{{ID: uuid.New(), Name: "Ada", Skills: []string{"Go"}}}
	return search.Result{Students: students, Total: 3, Matched: 1, HasActiveFilters: c.HasActive()}, nil
}

func (f *fakeDashboard) GetStudent(_ context.Context, _ session.Session, id uuid.UUID) (student.Profile, error) {
	return student.Profile{}, usecase.ErrStudentNotFound
}

func (f *fakeDashboard) Stats(context.Context, session.Session) (recruiter.Stats, error) {
	return recruiter.Stats{TotalStudents: 3, Bookmarks: 1, ProfileViews: 2}, nil
}

func (f *fakeDashboard) ExportStudent(_ context.Context, _ session.Session, id uuid.UUID) (usecase.Document, error) {
	p, ok := f.exportable[id]
	if !ok {
		return usecase.Document{}, usecase.ErrStudentNotFound
	}
	var buf bytes.Buffer
	if err := report.StudentProfile(&buf, p, time.Now()); err != nil {
		return usecase.Document{}, err
	}
	return usecase.Document{Filename: report.ProfileFilename(p.Name), ContentType: report.ContentTypePDF, Body: buf.Bytes()}, nil
}

type fakeAISearch struct {
	lastTab   usecase.Tab
	lastQuery string
	err       error
}

func (f *fakeAISearch) Search(_ context.Context, _ session.Session, tab usecase.Tab, query string) (usecase.AISearchResult, error) {
	f.lastTab, f.lastQuery = tab, query
	if f.err != nil {
		return usecase.AISearchResult{}, f.err
	}
	c := search.Criteria{Skills: "React", GraduationYears: []string{"2025"}}
	return usecase.AISearchResult{
		Criteria: c,
		Result:   search.Result{Students: []student.Profile{{ID: uuid.New(), Name: "Ada"}}, Total: 4, Matched: 1, HasActiveFilters: true},
	}, nil
}

type fakeBookmarks struct {
	marked map[uuid.UUID]bool
}

func (f *fakeBookmarks) IsBookmarked(_ context.Context, _ session.Session, id uuid.UUID) (bool, error) {
	return f.marked[id], nil
}

func (f *fakeBookmarks) Add(_ context.Context, _ session.Session, id uuid.UUID) (bool, error) {
	if f.marked[id] {
		return false, nil
	}
	f.marked[id] = true
	return true, nil
}

func (f *fakeBookmarks) Remove(_ context.Context, _ session.Session, id uuid.UUID) error {
	if !f.marked[id] {
		return usecase.ErrBookmarkNotFound
	}
	delete(f.marked, id)
	return nil
}

type fakeRecruiters struct{}

func (fakeRecruiters) GetProfile(context.Context, session.Session) (recruiter.Profile, error) {
	return recruiter.Profile{}, usecase.ErrProfileNotFound
}

func (fakeRecruiters) SaveProfile(_ context.Context, s session.Session, in usecase.RecruiterProfileInput) (recruiter.Profile, bool, error) {
	return recruiter.Profile{ID: uuid.New(), UserID: s.UserID, Name: in.Name, CompanyName: in.CompanyName}, true, nil
}

type fakeStudents struct {
	usecase.StudentUsecase
	uploaded usecase.UploadInput
}

func (f *fakeStudents) UploadResume(_ context.Context, _ session.Session, in usecase.UploadInput) (usecase.UploadResult, error) {
	body, _ := io.ReadAll(in.Body)
	in.Body = bytes.NewReader(body)
	f.uploaded = in
	return usecase.UploadResult{URL: "https://cdn.test/resumes/cv.pdf", Filename: in.Filename}, nil
}

type testServer struct {
	app       *fiber.App
	jwt       *jwt.HMACService
	auth      *fakeAuth
	dashboard *fakeDashboard
	bookmarks *fakeBookmarks
	students  *fakeStudents
	ai        *fakeAISearch
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		jwt:       jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
		auth:      &fakeAuth{},
		dashboard: &fakeDashboard{},
		bookmarks: &fakeBookmarks{marked: map[uuid.UUID]bool{}},
		students:  &fakeStudents{},
		ai:        &fakeAISearch{},
	}
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	authMw := middleware.NewAuthMiddleware(ts.jwt)
	routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(nil, nil),
		Auth:      handler.NewAuthHandler(ts.auth),
		Student:   handler.NewStudentHandler(ts.students),
		Recruiter: handler.NewRecruiterHandler(fakeRecruiters{}, ts.dashboard, ts.bookmarks, ts.ai),
	}, authMw).Register(app)
	ts.app = app
	return ts
}

func (ts *testServer) token(t *testing.T, role user.Role, verified bool) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(jwt.Identity{UserID: uuid.New(), Email: "x@test", Role: string(role), Verified: verified})
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, target, token string, body any) (*http.Response, response.SemanticResponse) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.send(t, req)
}

func (ts *testServer) send(t *testing.T, req *http.Request) (*http.Response, response.SemanticResponse) {
	t.Helper()
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	var env response.SemanticResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, env := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, env.Status)
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "ada@uni.test", "password": "password1", "name": "Ada", "role": "student",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := env.Data.(map[string]any)
	assert.Equal(t, "a", data["access_token"])
	assert.Equal(t, "student", data["user"].(map[string]any)["role"])
}

func TestSignup_Validation(t *testing.T) {
	ts := newTestServer(t)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "nope", "password": "password1", "name": "Ada", "role": "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Len(t, env.Data, 2)
}

func TestSignup_Conflict(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.registerErr = usecase.ErrEmailAlreadyRegistered

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "ada@uni.test", "password": "password1", "name": "Ada", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_RoleMismatch(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ada@uni.test", "password": "password1", "role": "recruiter",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "recruiter", ts.auth.lastLogin.Role)
}

func TestRecruiterRoutes_Guards(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/api/v1/recruiters/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/recruiters/students", ts.token(t, user.RoleStudent, true), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/recruiters/students", ts.token(t, user.RoleRecruiter, false), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Account verification required", env.Message)

	// profile routes stay open to unverified recruiters
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/recruiters/me", ts.token(t, user.RoleRecruiter, false), map[string]string{
		"name": "Rina", "company_name": "Acme",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestListStudents_ParsesCriteria(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, user.RoleRecruiter, true)

	target := "/api/v1/recruiters/students?tab=bookmarks&major=cs&skills=go,react&project_skills=docker" +
		"&location=jakarta&internship_type=Paid&graduation_year=2025,2026&graduation_year=2027"
	resp, env := ts.do(t, http.MethodGet, target, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, usecase.TabBookmarks, ts.dashboard.lastTab)
	assert.Equal(t, search.Criteria{
		Major:           "cs",
		Skills:          "go,react",
		ProjectSkills:   "docker",
		Location:        "jakarta",
		InternshipType:  student.InternshipPaid,
		GraduationYears: []string{"2025", "2026", "2027"},
	}, ts.dashboard.lastCriteria)

	data := env.Data.(map[string]any)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(1), data["matched"])
	assert.Equal(t, true, data["has_active_filters"])
	assert.Len(t, data["students"], 1)
}

func TestListStudents_BadTab(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := ts.do(t, http.MethodGet, "/api/v1/recruiters/students?tab=saved", ts.token(t, user.RoleRecruiter, true), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetStudent_NotFoundAndBadID(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, user.RoleRecruiter, true)

	resp, _ := ts.do(t, http.MethodGet, "/api/v1/recruiters/students/"+uuid.NewString(), tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/recruiters/students/not-a-uuid", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBookmarks(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, user.RoleRecruiter, true)
	id := uuid.NewString()

	resp, _ := ts.do(t, http.MethodPost, "/api/v1/recruiters/bookmarks", tok, map[string]string{"student_id": id})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/recruiters/bookmarks", tok, map[string]string{"student_id": id})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/recruiters/bookmarks/"+id, tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, env.Data.(map[string]any)["bookmarked"])

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/recruiters/bookmarks/"+id, tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/recruiters/bookmarks/"+id, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	resp, env := ts.do(t, http.MethodGet, "/api/v1/recruiters/stats", ts.token(t, user.RoleRecruiter, true), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), env.Data.(map[string]any)["profile_views"])
}

func TestUploadResume(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/me/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token(t, user.RoleStudent, true))

	resp, env := ts.send(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "cv.pdf", ts.students.uploaded.Filename)
	assert.Equal(t, int64(8), ts.students.uploaded.Size)
	assert.Equal(t, "https://cdn.test/resumes/cv.pdf", env.Data.(map[string]any)["url"])
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	ts := newTestServer(t)
	refresh, err := ts.jwt.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	resp, _ := ts.do(t, http.MethodGet, "/api/v1/students/me/completion", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExportStudentPDF(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()
	ts.dashboard.exportable = map[uuid.UUID]student.Profile{
		id: {ID: id, Name: "Ada Lovelace", Major: "Mathematics", Skills: []string{"Analysis"}},
	}
	tok := ts.token(t, user.RoleRecruiter, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recruiters/students/"+id.String()+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Ada_Lovelace_Profile_Summary.pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	r, _ := ts.do(t, http.MethodGet, "/api/v1/recruiters/students/"+uuid.NewString()+"/pdf", tok, nil)
	assert.Equal(t, http.StatusNotFound, r.StatusCode)

	r, _ = ts.do(t, http.MethodGet, "/api/v1/recruiters/students/"+id.String()+"/pdf", ts.token(t, user.RoleRecruiter, false), nil)
	assert.Equal(t, http.StatusForbidden, r.StatusCode)
}

func TestAISearch(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, user.RoleRecruiter, true)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/recruiters/students/ai-search", tok, map[string]string{
		"query": "react students graduating 2025", "tab": "bookmarks",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, usecase.TabBookmarks, ts.ai.lastTab)
	assert.Equal(t, "react students graduating 2025", ts.ai.lastQuery)

	data := env.Data.(map[string]any)
	crit := data["criteria"].(map[string]any)
	assert.Equal(t, "React", crit["skills"])
	assert.Equal(t, []any{"2025"}, crit["graduation_years"])
	assert.Equal(t, float64(1), data["matched"])
	assert.Len(t, data["students"], 1)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/recruiters/students/ai-search", tok, map[string]string{"query": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	ts.ai.err = usecase.ErrAISearchUnavailable
	resp, env = ts.do(t, http.MethodPost, "/api/v1/recruiters/students/ai-search", tok, map[string]string{"query": "go"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "AI search is not configured", env.Message)

	ts.ai.err = usecase.ErrAISearchFailed
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/recruiters/students/ai-search", tok, map[string]string{"query": "go"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
