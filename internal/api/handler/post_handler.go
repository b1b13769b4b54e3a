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

// PostHandler handles HTTP requests for the posts resource.
type PostHandler struct {
	posts ports.PostService
	pool  presenter.Executor
	log   zerolog.Logger
}

func NewPostHandler(posts ports.PostService, pool presenter.Executor, log zerolog.Logger) *PostHandler {
	return &PostHandler{posts: posts, pool: pool, log: log}
}

func (h *PostHandler) bind(v *view) *presenter.PostPresenter {
	p := presenter.NewPostPresenter(h.posts, h.pool, h.log)
	p.Bind(v)
	return p
}

// List godoc
// @Summary      List posts
// @Description  Returns every post newest first. With q set, returns all posts matching the keyword.
// @Tags         posts
// @Produce      json
// @Param        q    query     string  false  "Keyword"
// @Success      200  {array}   domain.Post
// @Failure      503  {object}  errorResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	v := newView()
	p := h.bind(v)
	if q := c.QueryParam("q"); q != "" {
		p.SearchAll(c.Request().Context(), q, reply[[]domain.Post](v, http.StatusOK))
	} else {
		p.List(c.Request().Context(), reply[[]domain.Post](v, http.StatusOK))
	}
	return v.render(c)
}

// Search godoc
// @Summary      Search posts
// @Description  Returns one page of posts whose title or content contains q.
// @Tags         posts
// @Produce      json
// @Param        q          query     string  false  "Keyword"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200  {object}  postPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/posts/search [get]
func (h *PostHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v := newView()
	h.bind(v).Search(c.Request().Context(), q.Q, q.Page, q.PageSize,
		replyAs(v, http.StatusOK, func(pg *domain.PostPage) any {
			return postPageResponse{
				Items:      pg.Items,
				Total:      pg.Total,
				Page:       pg.Page,
				PageSize:   pg.PageSize,
				TotalPages: pg.TotalPages,
			}
		}))
	return v.render(c)
}

// Get godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	v := newView()
	h.bind(v).Load(c.Request().Context(), c.Param("id"), reply[*domain.Post](v, http.StatusOK))
	return v.render(c)
}

// Create godoc
// @Summary      Publish a post
// @Description  The caller becomes the post's author.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	return h.save(c, "", http.StatusCreated)
}

// Update godoc
// @Summary      Edit a post
// @Description  Allowed for the post's author or an administrator.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post ID"
// @Param        body  body      postRequest  true  "Post"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	return h.save(c, c.Param("id"), http.StatusOK)
}

func (h *PostHandler) save(c echo.Context, id string, status int) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	in := ports.PostInput{Title: req.Title, Content: req.Content}
	h.bind(v).Save(c.Request().Context(), id, in, middleware.CallerFrom(c), reply[*domain.Post](v, status))
	return v.render(c)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Removes the post and all of its comments.
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	v := newView()
	h.bind(v).Delete(c.Request().Context(), c.Param("id"), middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}
