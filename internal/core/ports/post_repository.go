package ports

import (
	"context"

	"github.com/blogplatform/blog/internal/core/domain"
)

// AuthorRewriter rewrites denormalized author snapshots in bulk. Both
// methods return 0 without writing when an input is blank or unchanged.
type AuthorRewriter interface {
	RewriteAuthorEmail(ctx context.Context, oldEmail, newEmail string) (int64, error)
	RewriteAuthorName(ctx context.Context, email, newName string) (int64, error)
}

// PostRepository persists posts.
type PostRepository interface {
	AuthorRewriter

	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Search matches keyword case-insensitively against title or content.
	// page is 1-based.
	Search(ctx context.Context, keyword string, page, pageSize int) (*domain.PostPage, error)
	// SearchAll is the unpaged Search; a blank keyword lists everything.
	SearchAll(ctx context.Context, keyword string) ([]domain.Post, error)
	// Save inserts or replaces a post. An id is assigned on insert and the
	// publication time on first save only.
	Save(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// Delete removes the post document. Its comments are removed separately
	// through CommentRepository.DeleteByPost.
	Delete(ctx context.Context, id string) error
}
