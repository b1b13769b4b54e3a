package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, comments: comments, log: log}
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListAll(ctx)
}

// Get returns the post with its comments attached.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	post.Comments = comments
	return post, nil
}

// Search normalizes paging (1-based, page size capped at maxPageSize).
func (s *PostService) Search(ctx context.Context, keyword string, page, pageSize int) (*domain.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return s.posts.Search(ctx, strings.TrimSpace(keyword), page, pageSize)
}

func (s *PostService) SearchAll(ctx context.Context, keyword string) ([]domain.Post, error) {
	return s.posts.SearchAll(ctx, strings.TrimSpace(keyword))
}

// Create publishes a post under the caller's current identity.
func (s *PostService) Create(ctx context.Context, in ports.PostInput, caller domain.Caller) (*domain.Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	post := &domain.Post{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		AuthorEmail: caller.Email,
		AuthorName:  validation.AuthorName(caller),
	}
	if err := validation.ValidatePost(post).Err(); err != nil {
		return nil, err
	}

	saved, err := s.posts.Save(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, err
	}
	s.log.Info().Str("post_id", saved.ID).Str("author", saved.AuthorEmail).Msg("post created")
	return saved, nil
}

// Update replaces title and content. Only the author or an administrator may
// edit a post; the author snapshot and publication time are kept.
func (s *PostService) Update(ctx context.Context, id string, in ports.PostInput, caller domain.Caller) (*domain.Post, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthorOrAdmin(caller, post.AuthorEmail); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	if err := validation.ValidatePost(post).Err(); err != nil {
		return nil, err
	}

	saved, err := s.posts.Save(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, err
	}
	return saved, nil
}

// Delete removes a post's comments and then the post itself.
func (s *PostService) Delete(ctx context.Context, id string, caller domain.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAuthorOrAdmin(caller, post.AuthorEmail); err != nil {
		return err
	}
	removed, err := s.comments.DeleteByPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("post_id", id).Int64("comments", removed).Str("by", caller.Email).Msg("post deleted")
	return nil
}
