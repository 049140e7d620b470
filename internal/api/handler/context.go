package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campusevents/event-platform/internal/api/middleware"
	"github.com/campusevents/event-platform/internal/core/domain"
)

// callerID returns the user id the Auth middleware put on the context.
// An empty id means the route was mounted without Auth.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
