package handler

import (
	"context"

	"lazyintern/internal/delivery/http/dto"
	"lazyintern/internal/delivery/http/middleware"
	"lazyintern/internal/pkg/response"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	uc usecase.StudentUsecase
}

func NewStudentHandler(uc usecase.StudentUsecase) *StudentHandler {
	return &StudentHandler{uc: uc}
}

// RegisterRoutes expects r to be mounted at /students behind the auth and
// student role middleware.
func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetProfile)
	r.Put("/me", h.UpdateProfile)
	r.Get("/me/projects", h.GetProjects)
	r.Put("/me/projects", h.ReplaceProjects)
	r.Get("/me/certifications", h.GetCertifications)
	r.Put("/me/certifications", h.ReplaceCertifications)
	r.Get("/me/completion", h.Completion)
	r.Post("/me/resume", h.UploadResume)
	r.Delete("/me/resume", h.DeleteResume)
	r.Post("/me/certificate-file", h.UploadCertificateFile)
	r.Post("/me/project-video", h.UploadProjectVideo)
}

func (h *StudentHandler) GetProfile(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetProfile(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentResponse(p))
}

func (h *StudentHandler) UpdateProfile(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.StudentProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.uc.UpdateProfile(c.Context(), s, usecase.StudentProfileInput{
		Name:                     req.Name,
		Phone:                    req.Phone,
		University:               req.University,
		Major:                    req.Major,
		GraduationYear:           req.GraduationYear,
		Bio:                      req.Bio,
		Location:                 req.Location,
		GithubURL:                req.GithubURL,
		WebsiteURL:               req.WebsiteURL,
		LinkedinURL:              req.LinkedinURL,
		WebsiteURLs:              req.WebsiteURLs,
		InternshipTypePreference: req.InternshipTypePreference,
		PreferredLocation:        req.PreferredLocation,
		PreferredLocations:       req.PreferredLocations,
		OpenToRelocate:           req.OpenToRelocate,
		Skills:                   req.Skills,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile saved", dto.NewStudentResponse(p))
}

func (h *StudentHandler) GetProjects(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	projects, err := h.uc.GetProjects(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponses(projects))
}

func (h *StudentHandler) ReplaceProjects(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.ProjectsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	projects, err := h.uc.ReplaceProjects(c.Context(), s, req.Domain())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Projects saved", dto.NewProjectResponses(projects))
}

func (h *StudentHandler) GetCertifications(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	certs, err := h.uc.GetCertifications(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCertificationResponses(certs))
}

func (h *StudentHandler) ReplaceCertifications(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.CertificationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	certs, err := h.uc.ReplaceCertifications(c.Context(), s, req.Domain())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Certifications saved", dto.NewCertificationResponses(certs))
}

func (h *StudentHandler) Completion(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	comp, err := h.uc.Completion(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CompletionResponse{
		Percentage: comp.Percentage,
		Badge:      string(comp.Badge),
		Missing:    comp.Missing,
	})
}

func (h *StudentHandler) UploadResume(c fiber.Ctx) error {
	return h.upload(c, h.uc.UploadResume)
}

func (h *StudentHandler) UploadCertificateFile(c fiber.Ctx) error {
	return h.upload(c, h.uc.UploadCertificateFile)
}

func (h *StudentHandler) UploadProjectVideo(c fiber.Ctx) error {
	return h.upload(c, h.uc.UploadProjectVideo)
}

func (h *StudentHandler) DeleteResume(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteResume(c.Context(), s); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume removed", nil)
}

type uploadFunc func(ctx context.Context, s session.Session, in usecase.UploadInput) (usecase.UploadResult, error)

// upload reads the multipart "file" field and hands it to fn.
func (h *StudentHandler) upload(c fiber.Ctx, fn uploadFunc) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	res, err := fn(c.Context(), s, usecase.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "File uploaded", dto.UploadResponse{URL: res.URL, Filename: res.Filename})
}
