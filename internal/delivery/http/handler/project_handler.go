package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/project"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/pkg/validate"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type projectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
	Status      string `json:"status" validate:"omitempty,oneof=active completed archived"`
}

type todoRequest struct {
	Text      string `json:"text" validate:"required,min=1,max=500"`
	Completed bool   `json:"completed"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/todos", h.AddTodo)
	r.Put("/:id/todos/:todoID", h.UpdateTodo)
	r.Delete("/:id/todos/:todoID", h.DeleteTodo)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}

	projects, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "projects retrieved successfully",
		dto.NewProjectListResponse(projects))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	proj, err := h.uc.Create(c.Context(), userID, usecase.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusCreated, "project created successfully", dto.NewProjectResponse(proj))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	userID, id, err := h.ownerAndID(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	proj, err := h.uc.Update(c.Context(), userID, id, usecase.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "project updated successfully", dto.NewProjectResponse(proj))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	userID, id, err := h.ownerAndID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "project deleted successfully", struct{}{})
}

func (h *ProjectHandler) AddTodo(c fiber.Ctx) error {
	userID, id, err := h.ownerAndID(c, "id")
	if err != nil {
		return err
	}

	var req todoRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	proj, err := h.uc.AddTodo(c.Context(), userID, id, usecase.TodoInput{Text: req.Text, Completed: req.Completed})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusCreated, "todo added successfully", dto.NewProjectResponse(proj))
}

func (h *ProjectHandler) UpdateTodo(c fiber.Ctx) error {
	userID, id, err := h.ownerAndID(c, "id")
	if err != nil {
		return err
	}
	todoID, err := uuid.Parse(c.Params("todoID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "todo not found", nil, err)
	}

	var req todoRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	}
	if errs := validate.Struct(req); errs != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	proj, err := h.uc.UpdateTodo(c.Context(), userID, id, todoID, usecase.TodoInput{Text: req.Text, Completed: req.Completed})
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "todo updated successfully", dto.NewProjectResponse(proj))
}

func (h *ProjectHandler) DeleteTodo(c fiber.Ctx) error {
	userID, id, err := h.ownerAndID(c, "id")
	if err != nil {
		return err
	}
	todoID, err := uuid.Parse(c.Params("todoID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "todo not found", nil, err)
	}

	proj, err := h.uc.DeleteTodo(c.Context(), userID, id, todoID)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "todo deleted successfully", dto.NewProjectResponse(proj))
}

func (h *ProjectHandler) Stats(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}

	stats, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Success(c, fiber.StatusOK, "project stats retrieved successfully", stats)
}

func (h *ProjectHandler) ownerAndID(c fiber.Ctx, param string) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "not authorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "project not found", nil, err)
	}
	return userID, id, nil
}

func mapProjectError(err error) error {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "project not found", nil, err)
	case errors.Is(err, project.ErrTodoNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "todo not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "not authorized for this project", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
