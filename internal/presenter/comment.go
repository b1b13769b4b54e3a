package presenter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

type CommentPresenter struct {
	base
	comments ports.CommentService
}

func NewCommentPresenter(comments ports.CommentService, pool Executor, log zerolog.Logger) *CommentPresenter {
	p := &CommentPresenter{comments: comments}
	p.init(pool, log, "comment")
	return p
}

func (p *CommentPresenter) ListForPost(ctx context.Context, postID string, cb func(Result[[]domain.Comment])) {
	if f := required(postID, "post id"); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "list_comments", cb, func(ctx context.Context) ([]domain.Comment, error) {
		return p.comments.ListByPost(ctx, postID)
	})
}

// ListAll feeds the moderation queue and is limited to administrators.
func (p *CommentPresenter) ListAll(ctx context.Context, caller domain.Caller, cb func(Result[[]domain.Comment])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "list_all_comments", cb, p.comments.ListAll)
}

func (p *CommentPresenter) Add(ctx context.Context, postID, content string, caller domain.Caller, cb func(Result[*domain.Comment])) {
	if f := firstOf(requireCaller(caller), required(postID, "post id"), invalid(validation.ValidateCommentContent(content))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "add_comment", cb, func(ctx context.Context) (*domain.Comment, error) {
		return p.comments.Create(ctx, postID, content, caller)
	})
}

// Reply answers parentID under the caller's current identity.
func (p *CommentPresenter) Reply(ctx context.Context, postID, parentID, content string, caller domain.Caller, cb func(Result[*domain.Comment])) {
	f := firstOf(
		requireCaller(caller),
		required(postID, "post id"),
		required(parentID, "parent comment id"),
		invalid(validation.ValidateCommentContent(content)),
	)
	if f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "reply_comment", cb, func(ctx context.Context) (*domain.Comment, error) {
		return p.comments.CreateReply(ctx, postID, parentID, content, validation.AuthorName(caller), caller.Email)
	})
}

func (p *CommentPresenter) Delete(ctx context.Context, id string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := requireCaller(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "delete_comment", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.comments.DeleteByID(ctx, id, caller)
	})
}

// Flag marks or clears a comment as inappropriate.
func (p *CommentPresenter) Flag(ctx context.Context, id string, flagged bool, caller domain.Caller, cb func(Result[struct{}])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "flag_comment", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.comments.SetInappropriate(ctx, id, flagged, caller)
	})
}
