package handler

import (
	"lazyintern/internal/delivery/http/dto"
	"lazyintern/internal/pkg/response"
	"lazyintern/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	me, err := h.uc.GetMe(c.Context(), s)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := dto.MeResponse{User: dto.NewUserResponse(me.User)}
	if me.Student != nil {
		sp := dto.NewStudentResponse(*me.Student)
		res.Student = &sp
	}
	if me.Recruiter != nil {
		rp := dto.NewRecruiterResponse(*me.Recruiter)
		res.Recruiter = &rp
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
