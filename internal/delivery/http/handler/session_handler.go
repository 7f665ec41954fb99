package handler

import (
	"errors"
	"time"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/profile"
	"mentorlink/internal/domain/session"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type createSessionRequest struct {
	RequestID     uuid.UUID `json:"request_id" validate:"required"`
	MeetingLink   string    `json:"meeting_link" validate:"required,url"`
	ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
}

type updateSessionRequest struct {
	MeetingLink   string    `json:"meeting_link" validate:"required,url"`
	ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
}

type updateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/", h.Create, middleware.RequireRole(profile.RoleMentor))
	r.Get("/me", h.ListMine)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update, middleware.RequireRole(profile.RoleMentor))
	r.Put("/:id/status", h.UpdateStatus)
	r.Delete("/:id", h.Delete, middleware.RequireRole(profile.RoleMentor))
}

func (h *SessionHandler) Create(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	var req createSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	view, err := h.uc.Create(c.Context(), caller, usecase.CreateSessionInput{
		RequestID:     req.RequestID,
		MeetingLink:   req.MeetingLink,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		return mapSessionError(err)
	}

	return response.Success(c, fiber.StatusCreated, "session created successfully", view)
}

func (h *SessionHandler) ListMine(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	views, err := h.uc.ListMine(c.Context(), caller)
	if err != nil {
		return mapSessionError(err)
	}
	if views == nil {
		views = []usecase.SessionView{}
	}

	return response.Success(c, fiber.StatusOK, "sessions retrieved successfully", views)
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "session not found", nil, err)
	}

	view, err := h.uc.Get(c.Context(), caller, id)
	if err != nil {
		return mapSessionError(err)
	}

	return response.Success(c, fiber.StatusOK, "session retrieved successfully", view)
}

func (h *SessionHandler) Update(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "session not found", nil, err)
	}

	var req updateSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	view, err := h.uc.Update(c.Context(), caller, id, usecase.UpdateSessionInput{
		MeetingLink:   req.MeetingLink,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		return mapSessionError(err)
	}

	return response.Success(c, fiber.StatusOK, "session updated successfully", view)
}

func (h *SessionHandler) UpdateStatus(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "session not found", nil, err)
	}

	var req updateSessionStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest,
			"invalid status, must be scheduled, completed, or cancelled", errs, nil)
	}

	sess, err := h.uc.UpdateStatus(c.Context(), caller, id, req.Status)
	if err != nil {
		return mapSessionError(err)
	}

	return response.Success(c, fiber.StatusOK, "session status updated successfully", sess)
}

func (h *SessionHandler) Delete(c fiber.Ctx) error {
	caller, ok := middleware.ProfileFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusForbidden, "profile required", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "session not found", nil, err)
	}

	if err := h.uc.Delete(c.Context(), caller, id); err != nil {
		return mapSessionError(err)
	}

	return response.Success(c, fiber.StatusOK, "session deleted successfully", struct{}{})
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "session not found", nil, err)
	case errors.Is(err, session.ErrRequestNotAccepted):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"mentorship request must be accepted before creating a session", nil, err)
	case errors.Is(err, session.ErrAlreadyExists):
		return middleware.NewAppError(fiber.StatusBadRequest, "session already exists for this request", nil, err)
	case errors.Is(err, usecase.ErrInvalidSessionStatus):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"invalid status, must be scheduled, completed, or cancelled", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "not authorized for this session", nil, err)
	default:
		return mapSessionParentError(err)
	}
}

// Session creation reports a missing parent request as not-found; the
// mentorship sentinel surfaces here through the request lookup.
func mapSessionParentError(err error) error {
	return mapMentorshipError(err)
}
