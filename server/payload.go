package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
	"github.com/labstack/echo/v4"
)

// msgMissingFields is returned when a create payload lacks a required key.
const msgMissingFields = "Missing required fields."

// payload is a loosely-typed JSON request body. Malformed or empty
// bodies decode to an empty payload instead of failing the request;
// the missing keys then surface through the create/update contract.
type payload map[string]interface{}

func parsePayload(c echo.Context) payload {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var p payload
	if err := dec.Decode(&p); err != nil || p == nil {
		return payload{}
	}
	return p
}

// has reports whether every key is present.
func (p payload) has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := p[k]; !ok {
			return false
		}
	}
	return true
}

func (p payload) str(key string) (string, error) {
	s, ok := p[key].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

// boolean coerces a JSON bool or boolean string ("true", "1", ...).
func (p payload) boolean(key string) (bool, error) {
	switch v := p[key].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s must be a boolean", key)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%s must be a boolean", key)
	}
}

// integer coerces an integral JSON number or numeric string.
// Fractional values are rejected.
func (p payload) integer(key string) (int, error) {
	switch v := p[key].(type) {
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

func (p payload) date(key string) (model.Date, error) {
	s, err := p.str(key)
	if err != nil {
		return model.Date{}, err
	}
	return model.ParseDate(s)
}

// paramID parses the :id path parameter. A non-numeric id behaves
// like an unknown resource.
func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func notFound(c echo.Context) error {
	return errorJSON(c, http.StatusNotFound, "not found")
}

// storeError maps store failures onto the response contract: unknown
// ids to 404, constraint violations to 400, everything else to 500.
func (s *Server) storeError(c echo.Context, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(c)
	case errors.As(err, &ve):
		return errorJSON(c, http.StatusBadRequest, ve.Error())
	default:
		logger.Error("store error",
			logger.F("uri", c.Request().RequestURI),
			logger.F("error", err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
}
