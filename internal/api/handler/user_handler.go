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

// UserHandler exposes directory administration.
type UserHandler struct {
	users    ports.UserAdminService
	profiles ports.ProfileService
	pool     presenter.Executor
	log      zerolog.Logger
}

func NewUserHandler(users ports.UserAdminService, profiles ports.ProfileService, pool presenter.Executor, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, profiles: profiles, pool: pool, log: log}
}

func (h *UserHandler) bind(v *view) *presenter.UserPresenter {
	p := presenter.NewUserPresenter(h.users, h.profiles, h.pool, h.log)
	p.Bind(v)
	return p
}

// List godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	v := newView()
	h.bind(v).List(c.Request().Context(), middleware.CallerFrom(c), reply[[]domain.Account](v, http.StatusOK))
	return v.render(c)
}

// Create godoc
// @Summary      Create a user
// @Description  New accounts get the default profile attributes.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := ports.NewUserInput{Username: req.Username, Email: req.Email, Password: req.Password, Enabled: true}
	if req.Enabled != nil {
		in.Enabled = *req.Enabled
	}

	v := newView()
	h.bind(v).Create(c.Request().Context(), in, middleware.CallerFrom(c),
		replyAs(v, http.StatusCreated, func(id string) any { return createUserResponse{ID: id} }))
	return v.render(c)
}

// Update godoc
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "User ID"
// @Param        body  body  updateUserRequest  true  "User"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v := newView()
	h.bind(v).Update(c.Request().Context(), c.Param("id"), req.Username, req.Email, *req.Enabled,
		middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// ResetPassword godoc
// @Summary      Reset a user's password
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "User ID"
// @Param        body  body  resetPasswordRequest  true  "Password"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id}/password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).ResetPassword(c.Request().Context(), c.Param("id"), req.Password, middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	v := newView()
	h.bind(v).Delete(c.Request().Context(), c.Param("id"), middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// Reconcile godoc
// @Summary      Reconcile author snapshots
// @Description  Reruns the author rename cascade from old_email to new_email. Idempotent.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reconcileRequest  true  "Reconciliation"
// @Success      200   {object}  reconcileResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/authors/reconcile [post]
func (h *UserHandler) Reconcile(c echo.Context) error {
	var req reconcileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).Reconcile(c.Request().Context(), req.OldEmail, req.NewEmail, req.FullName, middleware.CallerFrom(c),
		replyAs(v, http.StatusOK, func(r *ports.ReconcileResult) any {
			return reconcileResponse{
				PostEmails:    r.PostEmails,
				CommentEmails: r.CommentEmails,
				PostNames:     r.PostNames,
				CommentNames:  r.CommentNames,
			}
		}))
	return v.render(c)
}
