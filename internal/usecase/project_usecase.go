package usecase

import (
	"context"

	"mentorlink/internal/domain/project"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectInput struct {
	Name        string
	Description string
	Status      string
}

type TodoInput struct {
	Text      string
	Completed bool
}

type ProjectUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]project.Project, error)
	Create(ctx context.Context, userID uuid.UUID, in ProjectInput) (project.Project, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ProjectInput) (project.Project, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddTodo(ctx context.Context, userID, projectID uuid.UUID, in TodoInput) (project.Project, error)
	UpdateTodo(ctx context.Context, userID, projectID, todoID uuid.UUID, in TodoInput) (project.Project, error)
	DeleteTodo(ctx context.Context, userID, projectID, todoID uuid.UUID) (project.Project, error)
	Stats(ctx context.Context, userID uuid.UUID) (project.Stats, error)
}

type Projects struct {
	projects project.Repository
	logger   *zap.Logger
}

func NewProjectUsecase(projects project.Repository, logger *zap.Logger) *Projects {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projects{projects: projects, logger: logger}
}

func (p *Projects) List(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	return p.projects.ListByUser(ctx, userID)
}

func (p *Projects) Create(ctx context.Context, userID uuid.UUID, in ProjectInput) (project.Project, error) {
	status := project.Status(in.Status)
	if in.Status == "" {
		status = project.StatusActive
	}
	if !status.Valid() {
		return project.Project{}, ErrInvalidInput
	}

	proj := project.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
	}
	if err := p.projects.Create(ctx, proj); err != nil {
		return project.Project{}, err
	}

	p.logger.Info("project created", zap.String("project_id", proj.ID.String()))
	return p.projects.GetByID(ctx, proj.ID)
}

func (p *Projects) Update(ctx context.Context, userID, id uuid.UUID, in ProjectInput) (project.Project, error) {
	proj, err := p.owned(ctx, userID, id)
	if err != nil {
		return project.Project{}, err
	}

	status := project.Status(in.Status)
	if in.Status == "" {
		status = proj.Status
	}
	if !status.Valid() {
		return project.Project{}, ErrInvalidInput
	}

	proj.Name = in.Name
	proj.Description = in.Description
	proj.Status = status
	if err := p.projects.Update(ctx, proj); err != nil {
		return project.Project{}, err
	}
	return p.projects.GetByID(ctx, id)
}

func (p *Projects) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := p.owned(ctx, userID, id); err != nil {
		return err
	}
	ok, err := p.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return project.ErrNotFound
	}
	p.logger.Info("project deleted", zap.String("project_id", id.String()))
	return nil
}

func (p *Projects) AddTodo(ctx context.Context, userID, projectID uuid.UUID, in TodoInput) (project.Project, error) {
	if _, err := p.owned(ctx, userID, projectID); err != nil {
		return project.Project{}, err
	}

	todo := project.Todo{
		ID:        uuid.New(),
		ProjectID: projectID,
		Text:      in.Text,
		Completed: in.Completed,
	}
	if err := p.projects.AddTodo(ctx, todo); err != nil {
		return project.Project{}, err
	}
	return p.projects.GetByID(ctx, projectID)
}

func (p *Projects) UpdateTodo(ctx context.Context, userID, projectID, todoID uuid.UUID, in TodoInput) (project.Project, error) {
	if _, err := p.owned(ctx, userID, projectID); err != nil {
		return project.Project{}, err
	}

	ok, err := p.projects.UpdateTodo(ctx, project.Todo{
		ID:        todoID,
		ProjectID: projectID,
		Text:      in.Text,
		Completed: in.Completed,
	})
	if err != nil {
		return project.Project{}, err
	}
	if !ok {
		return project.Project{}, project.ErrTodoNotFound
	}
	return p.projects.GetByID(ctx, projectID)
}

func (p *Projects) DeleteTodo(ctx context.Context, userID, projectID, todoID uuid.UUID) (project.Project, error) {
	if _, err := p.owned(ctx, userID, projectID); err != nil {
		return project.Project{}, err
	}

	ok, err := p.projects.DeleteTodo(ctx, projectID, todoID)
	if err != nil {
		return project.Project{}, err
	}
	if !ok {
		return project.Project{}, project.ErrTodoNotFound
	}
	return p.projects.GetByID(ctx, projectID)
}

func (p *Projects) Stats(ctx context.Context, userID uuid.UUID) (project.Stats, error) {
	return p.projects.StatsByUser(ctx, userID)
}

func (p *Projects) owned(ctx context.Context, userID, id uuid.UUID) (project.Project, error) {
	proj, err := p.projects.GetByID(ctx, id)
	if err != nil {
		return project.Project{}, err
	}
	if proj.UserID != userID {
		return project.Project{}, ErrForbidden
	}
	return proj, nil
}
