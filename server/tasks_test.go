package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/existflow/taskboard/internal/model"
	"github.com/stretchr/testify/require"
)

const taskPayload = `{"title":"Write report","notes":"q3 numbers","due_date":"2024-02-01","completed":false,"estimate_hours":4}`

func createTestTask(t *testing.T, s *Server, projectID int64, payload string) model.Task {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", projectID), payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body taskBody
	decodeBody(t, rec, &body)
	return body.Task
}

func TestCreateTaskEchoesFields(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)

	task := createTestTask(t, s, proj.ID, taskPayload)
	require.NotZero(t, task.ID)
	require.Equal(t, proj.ID, task.ProjectID)
	require.Equal(t, "Write report", task.Title)
	require.Equal(t, "q3 numbers", task.Notes)
	require.Equal(t, "2024-02-01", task.DueDate.String())
	require.False(t, task.Completed)
	require.Equal(t, 4, task.EstimateHours)
}

func TestCreateTaskMissingFields(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)

	rec := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", proj.ID),
		`{"title":"incomplete"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	require.Equal(t, "Missing required fields.", body.Error)
}

func TestCreateTaskProjectNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/projects/999/tasks/", taskPayload)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTaskCoercion(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)

	task := createTestTask(t, s, proj.ID,
		`{"title":"t","notes":"","due_date":"2024-02-01","completed":"true","estimate_hours":"8"}`)
	require.True(t, task.Completed)
	require.Equal(t, 8, task.EstimateHours)

	rec := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", proj.ID),
		`{"title":"t","notes":"","due_date":"tomorrow","completed":false,"estimate_hours":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTaskTitleTooLong(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)

	payload := fmt.Sprintf(
		`{"title":%q,"notes":"","due_date":"2024-02-01","completed":false,"estimate_hours":1}`,
		strings.Repeat("x", 201))
	rec := doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks/", proj.ID), payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	require.Contains(t, body.Error, "title")
}

func TestListTasksForProject(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)

	rec := doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks/", proj.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"tasks":[]}`, rec.Body.String())

	createTestTask(t, s, proj.ID,
		`{"title":"later","notes":"","due_date":"2024-03-01","completed":false,"estimate_hours":1}`)
	createTestTask(t, s, proj.ID,
		`{"title":"sooner","notes":"","due_date":"2024-01-15","completed":false,"estimate_hours":1}`)

	rec = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks/", proj.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body taskListBody
	decodeBody(t, rec, &body)
	require.Len(t, body.Tasks, 2)
	require.Equal(t, "sooner", body.Tasks[0].Title)
	require.Equal(t, "later", body.Tasks[1].Title)
}

func TestListTasksProjectNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/projects/999/tasks/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTask(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)
	task := createTestTask(t, s, proj.ID, taskPayload)

	rec := doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/tasks/%d/", task.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body taskBody
	decodeBody(t, rec, &body)
	require.Equal(t, task, body.Task)

	rec = doRequest(t, s, http.MethodGet, "/api/tasks/999/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskPartial(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)
	task := createTestTask(t, s, proj.ID, taskPayload)

	rec := doRequest(t, s, http.MethodPut, fmt.Sprintf("/api/tasks/%d/", task.ID), `{"completed": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body taskBody
	decodeBody(t, rec, &body)
	require.True(t, body.Task.Completed)
	require.Equal(t, task.Title, body.Task.Title)
	require.Equal(t, task.Notes, body.Task.Notes)
	require.Equal(t, task.DueDate.String(), body.Task.DueDate.String())
	require.Equal(t, task.EstimateHours, body.Task.EstimateHours)
	require.Equal(t, task.ProjectID, body.Task.ProjectID)
}

func TestUpdateTaskBadCoercion(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)
	task := createTestTask(t, s, proj.ID, taskPayload)

	rec := doRequest(t, s, http.MethodPut, fmt.Sprintf("/api/tasks/%d/", task.ID),
		`{"estimate_hours": "many"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	require.Contains(t, body.Error, "estimate_hours")
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/tasks/999/", `{"completed": true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	s := newTestServer(t)
	proj := createTestProject(t, s, projectPayload)
	task := createTestTask(t, s, proj.ID, taskPayload)

	rec := doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/", task.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = doRequest(t, s, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/", task.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Project survives its task's deletion
	rec = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/projects/%d/", proj.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
}
