package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/taskboard/internal/model"
)

const taskColumns = "id, project_id, title, notes, due_date, completed, estimate_hours"

// TaskPatch holds optional new values for a partial update. Nil
// fields are left untouched. The owning project is never patched.
type TaskPatch struct {
	Title         *string
	Notes         *string
	DueDate       *model.Date
	Completed     *bool
	EstimateHours *int
}

func (p TaskPatch) apply(dst *model.Task) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Notes != nil {
		dst.Notes = *p.Notes
	}
	if p.DueDate != nil {
		dst.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		dst.Completed = *p.Completed
	}
	if p.EstimateHours != nil {
		dst.EstimateHours = *p.EstimateHours
	}
}

// ListTasks returns a project's tasks ordered by due date, earliest
// first. The id tiebreak keeps the order stable across drivers.
func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT "+taskColumns+" FROM tasks WHERE project_id = ? ORDER BY due_date ASC, id ASC"),
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks for project %d: %w", projectID, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Notes, &t.DueDate, &t.Completed, &t.EstimateHours); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask fetches one task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id).
		Scan(&t.ID, &t.ProjectID, &t.Title, &t.Notes, &t.DueDate, &t.Completed, &t.EstimateHours)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// CreateTask validates and inserts a task under its project. The
// project must exist.
func (s *Store) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	// Referential integrity check up front so a missing project maps
	// to NotFound rather than a driver-specific FK error.
	if _, err := s.GetProject(ctx, t.ProjectID); err != nil {
		return model.Task{}, err
	}

	err := s.db.QueryRowContext(ctx, s.rebind(
		`INSERT INTO tasks (project_id, title, notes, due_date, completed, estimate_hours)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		t.ProjectID, t.Title, t.Notes, t.DueDate, t.Completed, t.EstimateHours,
	).Scan(&t.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// UpdateTask applies a patch to an existing task and returns the
// updated row.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (model.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	patch.apply(&t)
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`UPDATE tasks
		 SET title = ?, notes = ?, due_date = ?, completed = ?, estimate_hours = ?
		 WHERE id = ?`),
		t.Title, t.Notes, t.DueDate, t.Completed, t.EstimateHours, t.ID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return t, nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
