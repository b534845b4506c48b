package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

// Response shells mirroring the wire envelopes.

type projectBody struct {
	Project model.Project `json:"project"`
}

type projectListBody struct {
	Projects []model.Project `json:"projects"`
}

type projectDetailBody struct {
	Project struct {
		model.Project
		Tasks []model.Task `json:"tasks"`
	} `json:"project"`
}

type taskBody struct {
	Task model.Task `json:"task"`
}

type taskListBody struct {
	Tasks []model.Task `json:"tasks"`
}

type errorBody struct {
	Error string `json:"error"`
}

const projectPayload = `{"name":"A","description":"","start_date":"2024-01-01","active":true,"priority":3}`

func createTestProject(t *testing.T, s *Server, payload string) model.Project {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/projects/", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body projectBody
	decodeBody(t, rec, &body)
	return body.Project
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIndexServesShellAndCSRFCookie(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	require.Contains(t, rec.Body.String(), `id="app"`)

	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == csrfCookieName {
			csrf = c
		}
	}
	require.NotNil(t, csrf, "expected a csrftoken cookie")
	require.NotEmpty(t, csrf.Value)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPatch, "/api/projects/", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	allow := rec.Header().Get(echo.HeaderAllow)
	require.Contains(t, allow, http.MethodGet)
	require.Contains(t, allow, http.MethodPost)
}
