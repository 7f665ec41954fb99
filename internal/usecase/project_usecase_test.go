package usecase

import (
	"context"
	"errors"
	"testing"

	"mentorlink/internal/domain/project"

	"github.com/google/uuid"
)

type fakeProjectRepo struct {
	byID map[uuid.UUID]project.Project
}

func newFakeProjectRepo(projects ...project.Project) *fakeProjectRepo {
	f := &fakeProjectRepo{byID: make(map[uuid.UUID]project.Project)}
	for _, p := range projects {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProjectRepo) Create(_ context.Context, p project.Project) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p project.Project) error {
	existing, ok := f.byID[p.ID]
	if !ok {
		return project.ErrNotFound
	}
	p.Todos = existing.Todos
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (project.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]project.Project, error) {
	var out []project.Project
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) AddTodo(_ context.Context, t project.Todo) error {
	p, ok := f.byID[t.ProjectID]
	if !ok {
		return project.ErrNotFound
	}
	p.Todos = append(p.Todos, t)
	f.byID[t.ProjectID] = p
	return nil
}

func (f *fakeProjectRepo) UpdateTodo(_ context.Context, t project.Todo) (bool, error) {
	p, ok := f.byID[t.ProjectID]
	if !ok {
		return false, nil
	}
	for i := range p.Todos {
		if p.Todos[i].ID == t.ID {
			p.Todos[i].Text = t.Text
			p.Todos[i].Completed = t.Completed
			f.byID[t.ProjectID] = p
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) DeleteTodo(_ context.Context, projectID, todoID uuid.UUID) (bool, error) {
	p, ok := f.byID[projectID]
	if !ok {
		return false, nil
	}
	for i := range p.Todos {
		if p.Todos[i].ID == todoID {
			p.Todos = append(p.Todos[:i], p.Todos[i+1:]...)
			f.byID[projectID] = p
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) StatsByUser(_ context.Context, userID uuid.UUID) (project.Stats, error) {
	var stats project.Stats
	for _, p := range f.byID {
		if p.UserID != userID {
			continue
		}
		stats.Total++
		switch p.Status {
		case project.StatusActive:
			stats.Active++
		case project.StatusCompleted:
			stats.Completed++
		case project.StatusArchived:
			stats.Archived++
		}
	}
	return stats, nil
}

func TestProjectCreate_DefaultsToActive(t *testing.T) {
	uc := NewProjectUsecase(newFakeProjectRepo(), nil)

	p, err := uc.Create(context.Background(), uuid.New(), ProjectInput{Name: "Go study plan", Description: "weekly goals"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Status != project.StatusActive {
		t.Fatalf("expected active, got %s", p.Status)
	}
}

func TestProjectCreate_InvalidStatus(t *testing.T) {
	uc := NewProjectUsecase(newFakeProjectRepo(), nil)

	_, err := uc.Create(context.Background(), uuid.New(), ProjectInput{Name: "x", Description: "y", Status: "paused"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectUpdate_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	p := project.Project{ID: uuid.New(), UserID: owner, Name: "plan", Status: project.StatusActive}
	uc := NewProjectUsecase(newFakeProjectRepo(p), nil)

	_, err := uc.Update(context.Background(), uuid.New(), p.ID, ProjectInput{Name: "plan", Description: "d"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectTodos_Lifecycle(t *testing.T) {
	owner := uuid.New()
	p := project.Project{ID: uuid.New(), UserID: owner, Name: "plan", Status: project.StatusActive}
	uc := NewProjectUsecase(newFakeProjectRepo(p), nil)

	withTodo, err := uc.AddTodo(context.Background(), owner, p.ID, TodoInput{Text: "read pgx docs"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(withTodo.Todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(withTodo.Todos))
	}
	if withTodo.Progress() != 0 {
		t.Fatalf("expected 0%% progress")
	}

	todoID := withTodo.Todos[0].ID
	done, err := uc.UpdateTodo(context.Background(), owner, p.ID, todoID, TodoInput{Text: "read pgx docs", Completed: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if done.Progress() != 100 {
		t.Fatalf("expected 100%% progress, got %d", done.Progress())
	}

	_, err = uc.UpdateTodo(context.Background(), owner, p.ID, uuid.New(), TodoInput{Text: "x"})
	if !errors.Is(err, project.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}

	after, err := uc.DeleteTodo(context.Background(), owner, p.ID, todoID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(after.Todos) != 0 {
		t.Fatalf("expected todo removed")
	}
}

func TestProjectStats(t *testing.T) {
	owner := uuid.New()
	uc := NewProjectUsecase(newFakeProjectRepo(
		project.Project{ID: uuid.New(), UserID: owner, Status: project.StatusActive},
		project.Project{ID: uuid.New(), UserID: owner, Status: project.StatusCompleted},
		project.Project{ID: uuid.New(), UserID: uuid.New(), Status: project.StatusActive},
	), nil)

	stats, err := uc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Completed != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
