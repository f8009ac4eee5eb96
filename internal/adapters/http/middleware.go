package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const headerRequestID = "X-Request-Id"

// RequestIDMiddleware ensures every request has a unique X-Request-Id.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
			}
			c.Response().Header().Set(headerRequestID, id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}

// LoggingMiddleware logs one line per request. 5xx responses and handler
// errors log at error level, other 4xx at warn.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			attrs := []any{
				"request_id", requestID(c),
				"remote_ip", c.RealIP(),
				"method", c.Request().Method,
				"route", c.Path(),
				"path", c.Request().URL.Path,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if id, ok := c.Get("reading_id").(string); ok {
				attrs = append(attrs, "reading_id", id)
			}

			level := slog.LevelInfo
			switch {
			case err != nil || status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)
			return err
		}
	}
}

// responseStatus is the status the client will see. A returned error has not
// been written yet; echo's error handler turns it into a response later.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
