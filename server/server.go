package server

import (
	"net/http"

	"github.com/existflow/taskboard/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the project/task API server
type Server struct {
	store *store.Store
	echo  *echo.Echo
}

// New creates a new server over an injected store
func New(st *store.Store) *Server {
	s := &Server{store: st}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Frontend shell
	e.GET("/", s.handleIndex)

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")

	api.GET("/projects/", s.handleListProjects)
	api.POST("/projects/", s.handleCreateProject)
	api.GET("/projects/:id/", s.handleGetProject)
	api.PUT("/projects/:id/", s.handleUpdateProject)
	api.DELETE("/projects/:id/", s.handleDeleteProject)

	api.GET("/projects/:id/tasks/", s.handleListTasks)
	api.POST("/projects/:id/tasks/", s.handleCreateTask)

	api.GET("/tasks/:id/", s.handleGetTask)
	api.PUT("/tasks/:id/", s.handleUpdateTask)
	api.DELETE("/tasks/:id/", s.handleDeleteTask)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
