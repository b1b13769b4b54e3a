package ports

import (
	"context"

	"github.com/blogplatform/blog/internal/core/domain"
)

// MessageRepository persists contact-form submissions.
type MessageRepository interface {
	Save(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListAll returns every message, newest first.
	ListAll(ctx context.Context) ([]domain.Message, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

// SubmissionGuard rejects repeated identical contact-form submissions within
// a time window.
type SubmissionGuard interface {
	IsDuplicate(ctx context.Context, msg *domain.Message) (bool, error)
	Mark(ctx context.Context, msg *domain.Message) error
}
