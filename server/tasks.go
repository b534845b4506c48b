package server

import (
	"net/http"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/labstack/echo/v4"
)

// requiredTaskFields must all be present in a create payload. The
// owning project comes from the URL, never the body.
var requiredTaskFields = []string{"title", "notes", "due_date", "completed", "estimate_hours"}

type taskResponse struct {
	Task model.Task `json:"task"`
}

type taskListResponse struct {
	Tasks []model.Task `json:"tasks"`
}

// handleListTasks returns a project's tasks, earliest due first
func (s *Server) handleListTasks(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	ctx := c.Request().Context()
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return s.storeError(c, err)
	}
	tasks, err := s.store.ListTasks(ctx, id)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusOK, taskListResponse{Tasks: tasks})
}

// handleCreateTask creates a task under the project in the URL
func (s *Server) handleCreateTask(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	p := parsePayload(c)
	if !p.has(requiredTaskFields...) {
		return errorJSON(c, http.StatusBadRequest, msgMissingFields)
	}

	task, err := taskFromPayload(id, p)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	created, err := s.store.CreateTask(c.Request().Context(), task)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusCreated, taskResponse{Task: created})
}

// handleGetTask returns one task
func (s *Server) handleGetTask(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	task, err := s.store.GetTask(c.Request().Context(), id)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

// handleUpdateTask applies the payload's recognized fields
func (s *Server) handleUpdateTask(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	patch, err := taskPatchFromPayload(parsePayload(c))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.store.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusOK, taskResponse{Task: updated})
}

// handleDeleteTask deletes a task
func (s *Server) handleDeleteTask(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	if err := s.store.DeleteTask(c.Request().Context(), id); err != nil {
		return s.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// taskFromPayload coerces a complete create payload. All required
// keys are known present.
func taskFromPayload(projectID int64, p payload) (model.Task, error) {
	task := model.Task{ProjectID: projectID}
	var err error

	if task.Title, err = p.str("title"); err != nil {
		return model.Task{}, err
	}
	if task.Notes, err = p.str("notes"); err != nil {
		return model.Task{}, err
	}
	if task.DueDate, err = p.date("due_date"); err != nil {
		return model.Task{}, err
	}
	if task.Completed, err = p.boolean("completed"); err != nil {
		return model.Task{}, err
	}
	if task.EstimateHours, err = p.integer("estimate_hours"); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// taskPatchFromPayload coerces whichever recognized fields are
// present; unknown keys are ignored.
func taskPatchFromPayload(p payload) (store.TaskPatch, error) {
	var patch store.TaskPatch

	if p.has("title") {
		v, err := p.str("title")
		if err != nil {
			return store.TaskPatch{}, err
		}
		patch.Title = &v
	}
	if p.has("notes") {
		v, err := p.str("notes")
		if err != nil {
			return store.TaskPatch{}, err
		}
		patch.Notes = &v
	}
	if p.has("due_date") {
		v, err := p.date("due_date")
		if err != nil {
			return store.TaskPatch{}, err
		}
		patch.DueDate = &v
	}
	if p.has("completed") {
		v, err := p.boolean("completed")
		if err != nil {
			return store.TaskPatch{}, err
		}
		patch.Completed = &v
	}
	if p.has("estimate_hours") {
		v, err := p.integer("estimate_hours")
		if err != nil {
			return store.TaskPatch{}, err
		}
		patch.EstimateHours = &v
	}
	return patch, nil
}
