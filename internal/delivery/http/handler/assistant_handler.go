package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssistantHandler struct {
	uc usecase.AssistantUsecase
}

type assistantChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

func NewAssistantHandler(uc usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

func (h *AssistantHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", h.Chat)
}

func (h *AssistantHandler) Chat(c fiber.Ctx) error {
	var req assistantChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	reply, err := h.uc.Chat(c.Context(), req.Message)
	if err != nil {
		if errors.Is(err, usecase.ErrAssistantUnavailable) {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "assistant is unavailable", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, "assistant reply generated", fiber.Map{
		"reply": reply,
	})
}
