package postgres

import (
	"context"
	"errors"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/project"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository struct {
	db database.DB
}

func NewProjectRepository(db database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, user_id, name, description, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.Name, p.Description, p.Status,
	)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, p project.Project) error {
	n, err := r.db.Exec(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, status = $4, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Status,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return project.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return n > 0, err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, description, status, created_at, updated_at
		 FROM projects WHERE id = $1`, id)

	var p project.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, err
	}

	p.Todos, err = r.todosFor(ctx, []uuid.UUID{p.ID})
	return p, err
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, description, status, created_at, updated_at
		 FROM projects WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []project.Project
	var ids []uuid.UUID
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Todos = []project.Todo{}
		out = append(out, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return out, nil
	}

	todos, err := r.todosFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProject := make(map[uuid.UUID][]project.Todo, len(out))
	for _, t := range todos {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	for i := range out {
		if ts, ok := byProject[out[i].ID]; ok {
			out[i].Todos = ts
		}
	}
	return out, nil
}

func (r *ProjectRepository) AddTodo(ctx context.Context, t project.Todo) error {
	n, err := r.db.Exec(ctx,
		`INSERT INTO project_todos (id, project_id, text, completed)
		 SELECT $1, $2, $3, $4
		 WHERE EXISTS (SELECT 1 FROM projects WHERE id = $2)`,
		t.ID, t.ProjectID, t.Text, t.Completed,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return project.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) UpdateTodo(ctx context.Context, t project.Todo) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE project_todos
		 SET text = $3, completed = $4, updated_at = now()
		 WHERE id = $1 AND project_id = $2`,
		t.ID, t.ProjectID, t.Text, t.Completed,
	)
	return n > 0, err
}

func (r *ProjectRepository) DeleteTodo(ctx context.Context, projectID, todoID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`DELETE FROM project_todos WHERE id = $1 AND project_id = $2`, todoID, projectID)
	return n > 0, err
}

func (r *ProjectRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (project.Stats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE status = 'active'),
		        count(*) FILTER (WHERE status = 'completed'),
		        count(*) FILTER (WHERE status = 'archived')
		 FROM projects WHERE user_id = $1`, userID)

	var s project.Stats
	err := row.Scan(&s.Total, &s.Active, &s.Completed, &s.Archived)
	return s, err
}

func (r *ProjectRepository) todosFor(ctx context.Context, projectIDs []uuid.UUID) ([]project.Todo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, text, completed, created_at, updated_at
		 FROM project_todos WHERE project_id = ANY($1) ORDER BY created_at`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []project.Todo{}
	for rows.Next() {
		var t project.Todo
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
