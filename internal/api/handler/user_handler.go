package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

// UserHandler exposes the caller's own profile.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /api/users/me.
//
// @Summary      Current user's profile with completion year
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	profile, err := h.users.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateInterests handles PUT /api/users/interests.
//
// @Summary      Replace the current student's interests
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateInterestsRequest  true  "Interest categories"
// @Success      200   {object}  ports.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/interests [put]
func (h *UserHandler) UpdateInterests(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateInterestsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateInterests(c.Request().Context(), userID, req.Interests)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

// UpdateMe handles PUT /api/users/me.
//
// @Summary      Update editable fields of the current user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  ports.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

func toProfile(u *domain.User) *ports.Profile {
	return &ports.Profile{User: u, CompletionYear: u.CompletionYear()}
}
