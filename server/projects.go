package server

import (
	"net/http"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/labstack/echo/v4"
)

// requiredProjectFields must all be present in a create payload.
var requiredProjectFields = []string{"name", "description", "start_date", "active", "priority"}

type projectResponse struct {
	Project model.Project `json:"project"`
}

type projectListResponse struct {
	Projects []model.Project `json:"projects"`
}

// projectDetail is a project with its tasks embedded, used when a
// single project is fetched.
type projectDetail struct {
	model.Project
	Tasks []model.Task `json:"tasks"`
}

type projectDetailResponse struct {
	Project projectDetail `json:"project"`
}

// handleListProjects returns all projects, highest priority first
func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(c.Request().Context())
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

// handleCreateProject creates a project from a full payload
func (s *Server) handleCreateProject(c echo.Context) error {
	p := parsePayload(c)
	if !p.has(requiredProjectFields...) {
		return errorJSON(c, http.StatusBadRequest, msgMissingFields)
	}

	proj, err := projectFromPayload(p)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	created, err := s.store.CreateProject(c.Request().Context(), proj)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusCreated, projectResponse{Project: created})
}

// handleGetProject returns one project with its tasks embedded
func (s *Server) handleGetProject(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	ctx := c.Request().Context()
	proj, err := s.store.GetProject(ctx, id)
	if err != nil {
		return s.storeError(c, err)
	}
	tasks, err := s.store.ListTasks(ctx, id)
	if err != nil {
		return s.storeError(c, err)
	}

	return c.JSON(http.StatusOK, projectDetailResponse{
		Project: projectDetail{Project: proj, Tasks: tasks},
	})
}

// handleUpdateProject applies the payload's recognized fields
func (s *Server) handleUpdateProject(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	patch, err := projectPatchFromPayload(parsePayload(c))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.store.UpdateProject(c.Request().Context(), id, patch)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(http.StatusOK, projectResponse{Project: updated})
}

// handleDeleteProject deletes a project and, with it, all its tasks
func (s *Server) handleDeleteProject(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	if err := s.store.DeleteProject(c.Request().Context(), id); err != nil {
		return s.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// projectFromPayload coerces a complete create payload. All required
// keys are known present.
func projectFromPayload(p payload) (model.Project, error) {
	var proj model.Project
	var err error

	if proj.Name, err = p.str("name"); err != nil {
		return model.Project{}, err
	}
	if proj.Description, err = p.str("description"); err != nil {
		return model.Project{}, err
	}
	if proj.StartDate, err = p.date("start_date"); err != nil {
		return model.Project{}, err
	}
	if proj.Active, err = p.boolean("active"); err != nil {
		return model.Project{}, err
	}
	if proj.Priority, err = p.integer("priority"); err != nil {
		return model.Project{}, err
	}
	return proj, nil
}

// projectPatchFromPayload coerces whichever recognized fields are
// present; unknown keys are ignored.
func projectPatchFromPayload(p payload) (store.ProjectPatch, error) {
	var patch store.ProjectPatch

	if p.has("name") {
		v, err := p.str("name")
		if err != nil {
			return store.ProjectPatch{}, err
		}
		patch.Name = &v
	}
	if p.has("description") {
		v, err := p.str("description")
		if err != nil {
			return store.ProjectPatch{}, err
		}
		patch.Description = &v
	}
	if p.has("start_date") {
		v, err := p.date("start_date")
		if err != nil {
			return store.ProjectPatch{}, err
		}
		patch.StartDate = &v
	}
	if p.has("active") {
		v, err := p.boolean("active")
		if err != nil {
			return store.ProjectPatch{}, err
		}
		patch.Active = &v
	}
	if p.has("priority") {
		v, err := p.integer("priority")
		if err != nil {
			return store.ProjectPatch{}, err
		}
		patch.Priority = &v
	}
	return patch, nil
}
