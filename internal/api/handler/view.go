package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blogplatform/blog/internal/presenter"
	"github.com/blogplatform/blog/internal/ui"
)

// view is the per-request UI a presenter is bound to. The first result it
// receives becomes the response; the request goroutine runs the loop.
type view struct {
	*ui.Loop
	status int
	body   any
}

func newView() *view {
	return &view{Loop: ui.NewLoop()}
}

// reply renders a successful result as JSON with status.
func reply[T any](v *view, status int) func(presenter.Result[T]) {
	return replyAs(v, status, func(val T) any { return val })
}

// replyAs renders a successful result through mapFn.
func replyAs[T any](v *view, status int, mapFn func(T) any) func(presenter.Result[T]) {
	return func(r presenter.Result[T]) {
		if r.Failure != nil {
			v.fail(r.Failure)
		} else {
			v.status, v.body = status, mapFn(r.Value)
		}
		v.Detach()
	}
}

// noContent renders a successful result as 204.
func noContent(v *view) func(presenter.Result[struct{}]) {
	return func(r presenter.Result[struct{}]) {
		if r.Failure != nil {
			v.fail(r.Failure)
		} else {
			v.status, v.body = http.StatusNoContent, nil
		}
		v.Detach()
	}
}

func (v *view) fail(f *presenter.Failure) {
	v.status = StatusFor(f.Kind)
	v.body = errorResponse{
		Error:    strings.Join(f.Messages, "; "),
		Kind:     f.Kind,
		Messages: f.Messages,
	}
}

// render waits for the result and writes it.
func (v *view) render(c echo.Context) error {
	if err := v.Run(c.Request().Context()); err != nil {
		return err
	}
	if v.status == 0 {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no result produced")
	}
	if v.body == nil {
		return c.NoContent(v.status)
	}
	return c.JSON(v.status, v.body)
}

// StatusFor maps a failure kind to its HTTP status code.
func StatusFor(k presenter.Kind) int {
	switch k {
	case presenter.KindValidation:
		return http.StatusBadRequest
	case presenter.KindNotFound:
		return http.StatusNotFound
	case presenter.KindUnauthenticated:
		return http.StatusUnauthorized
	case presenter.KindForbidden:
		return http.StatusForbidden
	case presenter.KindConflict:
		return http.StatusConflict
	case presenter.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
