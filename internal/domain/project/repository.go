package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrTodoNotFound = errors.New("todo not found")
)

type Repository interface {
	Create(ctx context.Context, p Project) error
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error)

	AddTodo(ctx context.Context, t Todo) error
	UpdateTodo(ctx context.Context, t Todo) (bool, error)
	DeleteTodo(ctx context.Context, projectID, todoID uuid.UUID) (bool, error)

	StatsByUser(ctx context.Context, userID uuid.UUID) (Stats, error)
}
