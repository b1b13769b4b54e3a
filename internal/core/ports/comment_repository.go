package ports

import (
	"context"

	"github.com/blogplatform/blog/internal/core/domain"
)

// CommentRepository persists comments.
type CommentRepository interface {
	AuthorRewriter

	// ListByPost returns the post's comments, oldest first.
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	// ListAll returns every comment, newest first.
	ListAll(ctx context.Context) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Save(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
	SetInappropriate(ctx context.Context, id string, flagged bool) error
}
