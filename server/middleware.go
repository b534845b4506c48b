package server

import (
	"time"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request and its outcome
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)

		res := c.Response()
		logger.Info("HTTP request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
			logger.F("remote", req.RemoteAddr))

		return err
	}
}
