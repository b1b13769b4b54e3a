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

// MessageHandler handles the contact form and its admin inbox.
type MessageHandler struct {
	messages ports.MessageService
	pool     presenter.Executor
	log      zerolog.Logger
}

func NewMessageHandler(messages ports.MessageService, pool presenter.Executor, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, pool: pool, log: log}
}

func (h *MessageHandler) bind(v *view) *presenter.MessagePresenter {
	p := presenter.NewMessagePresenter(h.messages, h.pool, h.log)
	p.Bind(v)
	return p
}

// Submit godoc
// @Summary      Send a contact message
// @Description  Public. Identical submissions inside the duplicate window are rejected.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      messageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/messages [post]
func (h *MessageHandler) Submit(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	v := newView()
	in := ports.MessageInput{Name: req.Name, Email: req.Email, Subject: req.Subject, Content: req.Content}
	h.bind(v).Submit(c.Request().Context(), in, reply[*domain.Message](v, http.StatusCreated))
	return v.render(c)
}

// List godoc
// @Summary      List contact messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Message
// @Failure      403  {object}  errorResponse
// @Router       /v1/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	v := newView()
	h.bind(v).List(c.Request().Context(), middleware.CallerFrom(c), reply[[]domain.Message](v, http.StatusOK))
	return v.render(c)
}

// CountUnread godoc
// @Summary      Count unread messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadResponse
// @Router       /v1/messages/unread/count [get]
func (h *MessageHandler) CountUnread(c echo.Context) error {
	v := newView()
	h.bind(v).CountUnread(c.Request().Context(), middleware.CallerFrom(c),
		replyAs(v, http.StatusOK, func(n int64) any { return unreadResponse{Unread: n} }))
	return v.render(c)
}

// MarkRead godoc
// @Summary      Mark a message read or unread
// @Tags         messages
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Message ID"
// @Param        body  body  readRequest  true  "Read flag"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var req readRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v := newView()
	h.bind(v).MarkRead(c.Request().Context(), c.Param("id"), *req.Read, middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}

// Delete godoc
// @Summary      Delete a message
// @Tags         messages
// @Security     BearerAuth
// @Param        id   path  string  true  "Message ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	v := newView()
	h.bind(v).Delete(c.Request().Context(), c.Param("id"), middleware.CallerFrom(c), noContent(v))
	return v.render(c)
}
