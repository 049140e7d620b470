package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

// EventHandler serves the event catalog, registrations and recommendations.
type EventHandler struct {
	events          ports.EventService
	registrations   ports.RegistrationService
	recommendations ports.RecommendationService
}

func NewEventHandler(
	events ports.EventService,
	registrations ports.RegistrationService,
	recommendations ports.RecommendationService,
) *EventHandler {
	return &EventHandler{
		events:          events,
		registrations:   registrations,
		recommendations: recommendations,
	}
}

// Create handles POST /api/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	organizerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
		Venue:       req.Venue,
		Capacity:    *req.Capacity,
		OrganizerID: organizerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// List handles GET /api/events.
//
// @Summary      List all events with their organizer
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.EventWithOrganizer
// @Failure      500  {object}  errorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Available handles GET /api/events/available.
//
// @Summary      List events with free seats
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  errorResponse
// @Router       /api/events/available [get]
func (h *EventHandler) Available(c echo.Context) error {
	events, err := h.events.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Register handles POST /api/events/:eventId/register.
//
// @Summary      Register the calling student for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        eventId  path      string  true  "Event ID"
// @Success      201      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/events/{eventId}/register [post]
func (h *EventHandler) Register(c echo.Context) error {
	studentID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.registrations.Register(c.Request().Context(), studentID, c.Param("eventId")); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "successfully registered for event"})
}

// MyRegistrations handles GET /api/events/my-registrations.
//
// @Summary      Events the calling student registered for
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/events/my-registrations [get]
func (h *EventHandler) MyRegistrations(c echo.Context) error {
	studentID, err := callerID(c)
	if err != nil {
		return err
	}

	events, err := h.registrations.ListMine(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// MyEvents handles GET /api/events/my-events.
//
// @Summary      Events created by the calling organizer, newest first
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/events/my-events [get]
func (h *EventHandler) MyEvents(c echo.Context) error {
	organizerID, err := callerID(c)
	if err != nil {
		return err
	}

	events, err := h.events.ListByOrganizer(c.Request().Context(), organizerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Recommended handles GET /api/events/recommended.
//
// @Summary      Events recommended to the calling student
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/events/recommended [get]
func (h *EventHandler) Recommended(c echo.Context) error {
	studentID, err := callerID(c)
	if err != nil {
		return err
	}

	events, err := h.recommendations.Recommend(c.Request().Context(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseEventDate accepts an RFC 3339 timestamp, a datetime-local value or a bare date.
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("date must be an RFC 3339 timestamp or YYYY-MM-DD")
}
