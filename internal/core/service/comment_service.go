package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

type CommentService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewCommentService(posts ports.PostRepository, comments ports.CommentRepository, log zerolog.Logger) *CommentService {
	return &CommentService{posts: posts, comments: comments, log: log}
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *CommentService) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return s.comments.ListAll(ctx)
}

// Create adds a top-level comment authored by the caller.
func (s *CommentService) Create(ctx context.Context, postID, content string, caller domain.Caller) (*domain.Comment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.Save(ctx, &domain.Comment{
		Content:     content,
		AuthorEmail: caller.Email,
		AuthorName:  validation.AuthorName(caller),
		PostID:      postID,
	})
}

// Save validates the comment and checks that its post, and its parent when
// it is a reply, exist before persisting.
func (s *CommentService) Save(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if err := validation.ValidateComment(comment).Err(); err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, comment.PostID); err != nil {
		return nil, err
	}
	if comment.IsReply() {
		if _, err := s.parent(ctx, comment.PostID, comment.ParentID); err != nil {
			return nil, err
		}
	}

	saved, err := s.comments.Save(ctx, comment)
	if err != nil {
		s.log.Error().Err(err).Str("post_id", comment.PostID).Msg("failed to save comment")
		return nil, err
	}
	return saved, nil
}

// CreateReply answers parentID on postID. Both must resolve, and the parent
// must belong to the same post.
func (s *CommentService) CreateReply(ctx context.Context, postID, parentID, content, authorName, authorEmail string) (*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	if _, err := s.parent(ctx, postID, parentID); err != nil {
		return nil, err
	}

	reply := &domain.Comment{
		Content:     content,
		AuthorEmail: strings.TrimSpace(authorEmail),
		AuthorName:  strings.TrimSpace(authorName),
		PostID:      postID,
		ParentID:    parentID,
	}
	if err := validation.ValidateComment(reply).Err(); err != nil {
		return nil, err
	}
	saved, err := s.comments.Save(ctx, reply)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("comment_id", saved.ID).Str("parent_id", parentID).Msg("reply created")
	return saved, nil
}

func (s *CommentService) parent(ctx context.Context, postID, parentID string) (*domain.Comment, error) {
	parent, err := s.comments.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.PostID != postID {
		return nil, domain.ErrCommentNotFound
	}
	return parent, nil
}

// DeleteByID removes a single comment. Only its author or an administrator
// may do so. The post and any replies are left in place.
func (s *CommentService) DeleteByID(ctx context.Context, id string, caller domain.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAuthorOrAdmin(caller, c.AuthorEmail); err != nil {
		s.log.Warn().Str("comment_id", id).Str("caller", caller.Email).Msg("comment deletion denied")
		return err
	}
	if err := s.comments.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("comment_id", id).Str("by", caller.Email).Msg("comment deleted")
	return nil
}

// SetInappropriate flags or clears a comment for moderation. Admin only.
func (s *CommentService) SetInappropriate(ctx context.Context, id string, flagged bool, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return s.comments.SetInappropriate(ctx, id, flagged)
}
