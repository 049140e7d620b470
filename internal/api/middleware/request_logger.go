package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusevents/event-platform/pkg/logger"
)

// ContextLogger stores base, tagged with the request id, in the request
// context. Mount it after echo's RequestID middleware.
func ContextLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				l = base.With().Str("request_id", id).Logger()
			}
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
			return next(c)
		}
	}
}
