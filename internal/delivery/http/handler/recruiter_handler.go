package handler

import (
	"strings"

	"lazyintern/internal/delivery/http/dto"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/domain/student"
	"lazyintern/internal/pkg/response"
	"lazyintern/internal/search"
	"lazyintern/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecruiterHandler struct {
	profiles  usecase.RecruiterUsecase
	dashboard usecase.DashboardUsecase
	bookmarks usecase.BookmarkUsecase
	ai        usecase.AISearchUsecase
}

func NewRecruiterHandler(
	profiles usecase.RecruiterUsecase,
	dashboard usecase.DashboardUsecase,
	bookmarks usecase.BookmarkUsecase,
	ai usecase.AISearchUsecase,
) *RecruiterHandler {
	return &RecruiterHandler{profiles: profiles, dashboard: dashboard, bookmarks: bookmarks, ai: ai}
}

// RegisterRoutes mounts profile routes on r. The student browser and
// bookmark routes run verified first.
func (h *RecruiterHandler) RegisterRoutes(r fiber.Router, verified fiber.Handler) {
	if r == nil || verified == nil {
		return
	}

	r.Get("/me", h.GetProfile)
	r.Post("/me", h.SaveProfile)
	r.Put("/me", h.SaveProfile)

	r.Get("/students", verified, h.ListStudents)
	r.Post("/students/ai-search", verified, h.AISearch)
	r.Get("/students/:id", verified, h.GetStudent)
	r.Get("/students/:id/pdf", verified, h.ExportStudent)
	r.Get("/stats", verified, h.Stats)
	r.Get("/bookmarks/:studentId", verified, h.BookmarkStatus)
	r.Post("/bookmarks", verified, h.AddBookmark)
	r.Delete("/bookmarks/:studentId", verified, h.RemoveBookmark)
}

func (h *RecruiterHandler) GetProfile(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.GetProfile(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterResponse(p))
}

func (h *RecruiterHandler) SaveProfile(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.RecruiterProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, created, err := h.profiles.SaveProfile(c.Context(), s, usecase.RecruiterProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Position:    req.Position,
		Location:    req.Location,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "Profile saved", dto.NewRecruiterResponse(p))
}

func (h *RecruiterHandler) ListStudents(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	tab, ok := usecase.ParseTab(c.Query("tab"))
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid tab", nil, nil)
	}

	res, err := h.dashboard.ListStudents(c.Context(), s, tab, criteriaFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.StudentListResponse{
		Students:         dto.NewStudentResponses(res.Students),
		Total:            res.Total,
		Matched:          res.Matched,
		HasActiveFilters: res.HasActiveFilters,
	})
}

// criteriaFromQuery reads the filter fields. graduation_year may repeat or
// carry a comma-joined list.
func criteriaFromQuery(c fiber.Ctx) search.Criteria {
	var years []string
	for _, raw := range c.RequestCtx().QueryArgs().PeekMulti("graduation_year") {
		for _, y := range strings.Split(string(raw), ",") {
			if y = strings.TrimSpace(y); y != "" {
				years = append(years, y)
			}
		}
	}
	return search.Criteria{
		Major:           c.Query("major"),
		Skills:          c.Query("skills"),
		ProjectSkills:   c.Query("project_skills"),
		Location:        c.Query("location"),
		InternshipType:  student.InternshipType(strings.ToLower(strings.TrimSpace(c.Query("internship_type")))),
		GraduationYears: years,
	}
}

func (h *RecruiterHandler) GetStudent(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.dashboard.GetStudent(c.Context(), s, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentResponse(p))
}

// ExportStudent streams the student's profile summary as a PDF attachment.
func (h *RecruiterHandler) ExportStudent(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.dashboard.ExportStudent(c.Context(), s, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Status(fiber.StatusOK).Send(doc.Body)
}

func (h *RecruiterHandler) AISearch(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if h.ai == nil {
		return mapUsecaseError(usecase.ErrAISearchUnavailable)
	}
	var req dto.AISearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tab, _ := usecase.ParseTab(req.Tab)

	res, err := h.ai.Search(c.Context(), s, tab, req.Query)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AISearchResponse{
		Criteria: dto.NewCriteriaResponse(res.Criteria),
		StudentListResponse: dto.StudentListResponse{
			Students:         dto.NewStudentResponses(res.Students),
			Total:            res.Total,
			Matched:          res.Matched,
			HasActiveFilters: res.HasActiveFilters,
		},
	})
}

func (h *RecruiterHandler) Stats(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	st, err := h.dashboard.Stats(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.StatsResponse{
		TotalStudents: st.TotalStudents,
		Bookmarks:     st.Bookmarks,
		ProfileViews:  st.ProfileViews,
	})
}

func (h *RecruiterHandler) BookmarkStatus(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "studentId")
	if err != nil {
		return err
	}
	ok, err := h.bookmarks.IsBookmarked(c.Context(), s, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BookmarkStatusResponse{Bookmarked: ok})
}

func (h *RecruiterHandler) AddBookmark(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.BookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := uuid.Parse(req.StudentID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid student_id", nil, err)
	}

	created, err := h.bookmarks.Add(c.Context(), s, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	if created {
		return response.Success(c, fiber.StatusCreated, "Student bookmarked", dto.BookmarkStatusResponse{Bookmarked: true})
	}
	return response.Success(c, fiber.StatusOK, "Already bookmarked", dto.BookmarkStatusResponse{Bookmarked: true})
}

func (h *RecruiterHandler) RemoveBookmark(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "studentId")
	if err != nil {
		return err
	}
	if err := h.bookmarks.Remove(c.Context(), s, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Bookmark removed", dto.BookmarkStatusResponse{Bookmarked: false})
}
