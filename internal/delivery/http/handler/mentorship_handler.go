package handler

import (
	"context"
	"errors"
	"time"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/mentorship"
	"mentorlink/internal/domain/profile"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MentorshipHandler struct {
	uc usecase.MentorshipUsecase
}

type createMentorshipRequest struct {
	MentorID      uuid.UUID `json:"mentor_id" validate:"required"`
	Proposal      string    `json:"proposal" validate:"required,min=10,max=2000"`
	PreferredTime time.Time `json:"preferred_time" validate:"required"`
}

func NewMentorshipHandler(uc usecase.MentorshipUsecase) *MentorshipHandler {
	return &MentorshipHandler{uc: uc}
}

func (h *MentorshipHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/requests", h.Create, middleware.RequireRole(profile.RoleMentee))
	r.Get("/requests/me", h.ListMine)
	r.Get("/requests/:id", h.Get)
	r.Put("/requests/:id/accept", h.Accept, middleware.RequireRole(profile.RoleMentor))
	r.Put("/requests/:id/decline", h.Decline, middleware.RequireRole(profile.RoleMentor))
	r.Delete("/requests/:id", h.Cancel, middleware.RequireRole(profile.RoleMentee))
}

func (h *MentorshipHandler) Create(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	var req createMentorshipRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	view, err := h.uc.Create(c.Context(), caller, usecase.CreateRequestInput{
		MentorID:      req.MentorID,
		Proposal:      req.Proposal,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		return mapMentorshipError(err)
	}

	return response.Success(c, fiber.StatusCreated, "mentorship request created successfully", view)
}

func (h *MentorshipHandler) ListMine(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	views, err := h.uc.ListMine(c.Context(), caller)
	if err != nil {
		return mapMentorshipError(err)
	}
	if views == nil {
		views = []usecase.RequestView{}
	}

	return response.Success(c, fiber.StatusOK, "mentorship requests retrieved successfully", views)
}

func (h *MentorshipHandler) Get(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "mentorship request not found", nil, err)
	}

	view, err := h.uc.Get(c.Context(), caller, id)
	if err != nil {
		return mapMentorshipError(err)
	}

	return response.Success(c, fiber.StatusOK, "mentorship request retrieved successfully", view)
}

func (h *MentorshipHandler) Accept(c fiber.Ctx) error {
	return h.resolve(c, h.uc.Accept, "mentorship request accepted successfully")
}

func (h *MentorshipHandler) Decline(c fiber.Ctx) error {
	return h.resolve(c, h.uc.Decline, "mentorship request declined successfully")
}

func (h *MentorshipHandler) resolve(
	c fiber.Ctx,
	op func(ctx context.Context, caller profile.Profile, id uuid.UUID) (mentorship.Request, error),
	message string,
) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "mentorship request not found", nil, err)
	}

	req, err := op(c.Context(), caller, id)
	if err != nil {
		return mapMentorshipError(err)
	}

	return response.Success(c, fiber.StatusOK, message, req)
}

func (h *MentorshipHandler) Cancel(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "mentorship request not found", nil, err)
	}

	if err := h.uc.Cancel(c.Context(), caller, id); err != nil {
		if errors.Is(err, mentorship.ErrNotPending) {
			return middleware.NewAppError(fiber.StatusBadRequest, "cannot cancel non-pending request", nil, err)
		}
		return mapMentorshipError(err)
	}

	return response.Success(c, fiber.StatusOK, "mentorship request cancelled successfully", struct{}{})
}

func mapMentorshipError(err error) error {
	switch {
	case errors.Is(err, mentorship.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "mentorship request not found", nil, err)
	case errors.Is(err, usecase.ErrMentorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "mentor not found", nil, err)
	case errors.Is(err, mentorship.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusBadRequest, "mentorship request already exists for this mentor", nil, err)
	case errors.Is(err, mentorship.ErrNotPending):
		return middleware.NewAppError(fiber.StatusBadRequest, "request is not pending", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "not authorized for this request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
