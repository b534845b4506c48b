package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/taskboard/internal/model"
)

const projectColumns = "id, name, description, start_date, active, priority"

// ProjectPatch holds optional new values for a partial update. Nil
// fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *model.Date
	Active      *bool
	Priority    *int
}

func (p ProjectPatch) apply(dst *model.Project) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.StartDate != nil {
		dst.StartDate = *p.StartDate
	}
	if p.Active != nil {
		dst.Active = *p.Active
	}
	if p.Priority != nil {
		dst.Priority = *p.Priority
	}
}

// ListProjects returns all projects ordered by descending priority,
// ties broken by name.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+projectColumns+" FROM projects ORDER BY priority DESC, name ASC"))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.Active, &p.Priority); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches one project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+projectColumns+" FROM projects WHERE id = ?"), id).
		Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.Active, &p.Priority)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

// CreateProject validates and inserts a project, returning it with
// its generated id.
func (s *Store) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO projects (name, description, start_date, active, priority)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`),
		p.Name, p.Description, p.StartDate, p.Active, p.Priority,
	).Scan(&p.ID)
	if err != nil {
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// UpdateProject applies a patch to an existing project and returns
// the updated row. The merged result is validated before writing.
func (s *Store) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (model.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return model.Project{}, err
	}

	patch.apply(&p)
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`UPDATE projects
		 SET name = ?, description = ?, start_date = ?, active = ?, priority = ?
		 WHERE id = ?`),
		p.Name, p.Description, p.StartDate, p.Active, p.Priority, p.ID,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("update project %d: %w", id, err)
	}
	return p, nil
}

// DeleteProject removes a project and all its tasks in one
// transaction. The cascade is explicit so it holds even where the
// store lacks native support.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(
		"DELETE FROM tasks WHERE project_id = ?"), id); err != nil {
		return fmt.Errorf("delete project %d tasks: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, s.rebind(
		"DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
