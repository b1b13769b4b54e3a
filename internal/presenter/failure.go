package presenter

import (
	"errors"
	"strings"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/validation"
	"github.com/blogplatform/blog/internal/infrastructure/queue"
)

// Kind classifies a Failure for the view.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindUnavailable     Kind = "unavailable"
	KindInternal        Kind = "internal"
)

// Failure is the only error shape handed to view code. Messages are safe to
// show to the user as-is.
type Failure struct {
	Kind     Kind     `json:"kind"`
	Messages []string `json:"messages"`
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + strings.Join(f.Messages, "; ")
}

func newFailure(kind Kind, msgs ...string) *Failure {
	return &Failure{Kind: kind, Messages: msgs}
}

func internalFailure() *Failure {
	return newFailure(KindInternal, "Something went wrong. Please try again.")
}

// invalid turns a failed validation result into a Failure, or nil.
func invalid(r validation.Result) *Failure {
	if r.Valid {
		return nil
	}
	return newFailure(KindValidation, r.Errors...)
}

// FailureFrom converts any error raised below the presenter into a
// user-facing Failure.
func FailureFrom(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if ve, ok := domain.AsValidation(err); ok {
		return newFailure(KindValidation, ve.Messages...)
	}

	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return newFailure(KindNotFound, "Post not found.")
	case errors.Is(err, domain.ErrCommentNotFound):
		return newFailure(KindNotFound, "Comment not found.")
	case errors.Is(err, domain.ErrMessageNotFound):
		return newFailure(KindNotFound, "Message not found.")
	case errors.Is(err, domain.ErrAccountNotFound):
		return newFailure(KindNotFound, "User not found.")
	case errors.Is(err, domain.ErrNotFound):
		return newFailure(KindNotFound, "The requested item does not exist.")
	case errors.Is(err, domain.ErrUnauthenticated):
		return newFailure(KindUnauthenticated, "Please sign in to continue.")
	case errors.Is(err, domain.ErrForbidden):
		return newFailure(KindForbidden, "You are not allowed to do that.")
	case errors.Is(err, domain.ErrAccountExists):
		return newFailure(KindConflict, "A user with this username or email already exists.")
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return newFailure(KindConflict, "This message has already been sent.")
	case errors.Is(err, domain.ErrDirectory):
		return newFailure(KindUnavailable, "The user directory is unavailable. Please try again later.")
	case errors.Is(err, domain.ErrStore):
		return newFailure(KindUnavailable, "Content storage is unavailable. Please try again later.")
	case errors.Is(err, queue.ErrPoolStopped):
		return newFailure(KindUnavailable, "The server is shutting down. Please try again shortly.")
	}
	return internalFailure()
}

// requireCaller and requireAdmin mirror the service checks so the view gets
// an immediate answer for anonymous or unprivileged callers.
func requireCaller(c domain.Caller) *Failure {
	if !c.Authenticated() {
		return FailureFrom(domain.ErrUnauthenticated)
	}
	return nil
}

func requireAdmin(c domain.Caller) *Failure {
	if f := requireCaller(c); f != nil {
		return f
	}
	if !c.IsAdmin() {
		return FailureFrom(domain.ErrForbidden)
	}
	return nil
}

func required(value, field string) *Failure {
	if strings.TrimSpace(value) == "" {
		return newFailure(KindValidation, field+" is required")
	}
	return nil
}

// firstOf returns the first non-nil failure.
func firstOf(fs ...*Failure) *Failure {
	for _, f := range fs {
		if f != nil {
			return f
		}
	}
	return nil
}
