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

// CommentHandler handles HTTP requests for comments and replies.
type CommentHandler struct {
	comments ports.CommentService
	pool     presenter.Executor
	log      zerolog.Logger
}

func NewCommentHandler(comments ports.CommentService, pool presenter.Executor, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, pool: pool, log: log}
}

func (h *CommentHandler) bind(v *view) *presenter.CommentPresenter {
	p := presenter.NewCommentPresenter(h.comments, h.pool, h.log)
	p.Bind(v)
	return p
}

// ListForPost godoc
// @Summary      List a post's comments
// @Description  Oldest first. Replies carry parent_id.
// @Tags         comments
// @Produce      json
// @Param        id   path     string  true  "Post ID"
// @Success      200  {array}  domain.Comment
// @Router       /v1/posts/{id}/comments [get]
func (h *CommentHandler) ListForPost(c echo.Context) error {
	v := newView()
	h.bind(v).ListForPost(c.Request().Context(), c.Param("id"), reply[[]domain.Comment](v, http.StatusOK))
	return v.render(c)
}

// ListAll godoc
// @Summary      List all comments
// @Description  Moderation view, newest first.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Comment
// @Failure      403  {object}  errorResponse
// @Router       /v1/comments [get]
func (h *CommentHandler) ListAll(c echo.Context) error {
	v := newView()
	h.bind(v).ListAll(c.Request().Context(), middleware.CallerFrom(c), reply[[]domain.Comment](v, http.StatusOK))
	return v.render(c)
}

// Add godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).Add(c.Request().Context(), c.Param("id"), req.Content, middleware.CallerFrom(c),
		reply[*domain.Comment](v, http.StatusCreated))
	return v.render(c)
}

// Reply godoc
// @Summary      Reply to a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string          true  "Post ID"
// @Param        commentId  path      string          true  "Parent comment ID"
// @Param        body       body      commentRequest  true  "Reply"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{id}/comments/{commentId}/replies [post]
func (h *CommentHandler) Reply(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	h.bind(v).Reply(c.Request().Context(), c.Param("id"), c.Param("commentId"), req.Content,
		middleware.CallerFrom(c), reply[*domain.Comment](v, http.StatusCreated))
	return v.render(c)
}

// Delete godoc
// @Summary      Delete a comment
// @Description  Allowed for the comment's author or an administrator.
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	v := newView()
	h.bind(v).Delete(c.Request().Context(), c.Param("id"), middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// Flag godoc
// @Summary      Flag or unflag a comment
// @Tags         comments
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Comment ID"
// @Param        body  body  flagRequest  true  "Flag"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/comments/{id}/flag [put]
func (h *CommentHandler) Flag(c echo.Context) error {
	var req flagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v := newView()
	h.bind(v).Flag(c.Request().Context(), c.Param("id"), *req.Inappropriate, middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}
