package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/profile"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type profileRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Role       string   `json:"role" validate:"required,oneof=mentor mentee"`
	Industries []string `json:"industries"`
	About      *string  `json:"about" validate:"omitempty,max=1000"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// RegisterRoutes wires the directory endpoints on the public router and
// the owner endpoints behind auth. Mentee browsing stays mentor-only.
func (h *ProfileHandler) RegisterRoutes(public fiber.Router, authed fiber.Router, withProfile fiber.Router) {
	public.Get("/mentors", h.ListMentors)
	public.Get("/mentors/:id", h.GetMentor)

	authed.Post("/", h.Create)

	withProfile.Get("/me", h.GetMe)
	withProfile.Put("/me", h.UpdateMe)
	withProfile.Get("/mentees", h.ListMentees, middleware.RequireRole(profile.RoleMentor))

	public.Get("/:id", h.GetByID)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}
	if req.Role == string(profile.RoleMentee) && len(req.Industries) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "industries are only for mentors", nil, nil)
	}

	prof, err := h.uc.Create(c.Context(), userID, usecase.CreateProfileInput{
		Name:       req.Name,
		Role:       req.Role,
		Industries: req.Industries,
		About:      req.About,
	})
	if err != nil {
		return mapProfileError(err)
	}

	return response.Success(c, fiber.StatusCreated, "profile created successfully", prof)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	prof, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "profile retrieved successfully", prof)
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	current, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}
	if req.Role == string(profile.RoleMentee) && len(req.Industries) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "industries are only for mentors", nil, nil)
	}

	prof, err := h.uc.Update(c.Context(), current, usecase.UpdateProfileInput{
		Name:       req.Name,
		Role:       req.Role,
		Industries: req.Industries,
		About:      req.About,
	})
	if err != nil {
		return mapProfileError(err)
	}

	return response.Success(c, fiber.StatusOK, "profile updated successfully", prof)
}

func (h *ProfileHandler) ListMentors(c fiber.Ctx) error {
	mentors, err := h.uc.ListMentors(c.Context())
	if err != nil {
		return mapProfileError(err)
	}
	if mentors == nil {
		mentors = []profile.Profile{}
	}
	return response.Success(c, fiber.StatusOK, "mentors retrieved successfully", mentors)
}

func (h *ProfileHandler) GetMentor(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "mentor not found", nil, err)
	}

	mentor, err := h.uc.GetMentor(c.Context(), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "mentor not found", nil, err)
		}
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, "mentor retrieved successfully", mentor)
}

func (h *ProfileHandler) ListMentees(c fiber.Ctx) error {
	mentees, err := h.uc.ListMentees(c.Context())
	if err != nil {
		return mapProfileError(err)
	}
	if mentees == nil {
		mentees = []profile.Profile{}
	}
	return response.Success(c, fiber.StatusOK, "mentees retrieved successfully", mentees)
}

func (h *ProfileHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "profile not found", nil, err)
	}

	prof, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, "profile retrieved successfully", prof)
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "profile not found", nil, err)
	case errors.Is(err, profile.ErrAlreadyExists):
		return middleware.NewAppError(fiber.StatusBadRequest, "profile already exists for this user", nil, err)
	case errors.Is(err, usecase.ErrRoleLocked):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"role cannot change while mentorship requests are active", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
