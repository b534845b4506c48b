package server

import (
	_ "embed"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var indexHTML []byte

// csrfCookieName matches the cookie the client-side app echoes back
// in the X-CSRFToken header on state-changing requests.
const csrfCookieName = "csrftoken"

// handleIndex serves the static shell that bootstraps the client-side
// app and issues the CSRF cookie. Token verification is delegated to
// the hosting layer.
func (s *Server) handleIndex(c echo.Context) error {
	if _, err := c.Cookie(csrfCookieName); err != nil {
		c.SetCookie(&http.Cookie{
			Name:     csrfCookieName,
			Value:    uuid.NewString(),
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
