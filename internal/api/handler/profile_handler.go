package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/api/middleware"
	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/presenter"
)

// ProfileHandler exposes the signed-in user's own account.
type ProfileHandler struct {
	profiles ports.ProfileService
	pool     presenter.Executor
	log      zerolog.Logger
}

func NewProfileHandler(profiles ports.ProfileService, pool presenter.Executor, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, pool: pool, log: log}
}

func (h *ProfileHandler) bind(v *view) *presenter.ProfilePresenter {
	p := presenter.NewProfilePresenter(h.profiles, h.pool, h.log)
	p.Bind(v)
	return p
}

// Get godoc
// @Summary      Current profile
// @Description  Returns the caller's directory profile. Empty when the account cannot be resolved.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	v := newView()
	h.bind(v).Load(c.Request().Context(), middleware.CallerFrom(c), reply[domain.ProfileView](v, http.StatusOK))
	return v.render(c)
}

// UpdatePersonalInfo godoc
// @Summary      Update name and email
// @Description  Renames the account and rewrites the author snapshots on the caller's posts and comments.
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  personalInfoRequest  true  "Personal info"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) UpdatePersonalInfo(c echo.Context) error {
	var req personalInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).UpdatePersonalInfo(c.Request().Context(), req.FirstName, req.LastName, req.Email,
		middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  passwordChangeRequest  true  "Passwords"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/profile/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req passwordChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword,
		middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}
