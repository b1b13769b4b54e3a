package presenter

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

type PostPresenter struct {
	base
	posts ports.PostService
}

func NewPostPresenter(posts ports.PostService, pool Executor, log zerolog.Logger) *PostPresenter {
	p := &PostPresenter{posts: posts}
	p.init(pool, log, "post")
	return p
}

func (p *PostPresenter) List(ctx context.Context, cb func(Result[[]domain.Post])) {
	dispatch(ctx, &p.base, "list_posts", cb, p.posts.List)
}

// Load fetches one post with its comments.
func (p *PostPresenter) Load(ctx context.Context, id string, cb func(Result[*domain.Post])) {
	if f := required(id, "post id"); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "load_post", cb, func(ctx context.Context) (*domain.Post, error) {
		return p.posts.Get(ctx, id)
	})
}

func (p *PostPresenter) Search(ctx context.Context, keyword string, page, pageSize int, cb func(Result[*domain.PostPage])) {
	dispatch(ctx, &p.base, "search_posts", cb, func(ctx context.Context) (*domain.PostPage, error) {
		return p.posts.Search(ctx, keyword, page, pageSize)
	})
}

func (p *PostPresenter) SearchAll(ctx context.Context, keyword string, cb func(Result[[]domain.Post])) {
	dispatch(ctx, &p.base, "search_all_posts", cb, func(ctx context.Context) ([]domain.Post, error) {
		return p.posts.SearchAll(ctx, keyword)
	})
}

// Save creates a post when id is blank and updates it otherwise.
func (p *PostPresenter) Save(ctx context.Context, id string, in ports.PostInput, caller domain.Caller, cb func(Result[*domain.Post])) {
	in.Title = strings.TrimSpace(in.Title)
	if f := firstOf(requireCaller(caller), invalid(validation.ValidatePostInput(in.Title, in.Content))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "save_post", cb, func(ctx context.Context) (*domain.Post, error) {
		if id == "" {
			return p.posts.Create(ctx, in, caller)
		}
		return p.posts.Update(ctx, id, in, caller)
	})
}

func (p *PostPresenter) Delete(ctx context.Context, id string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := firstOf(requireCaller(caller), required(id, "post id")); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "delete_post", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.posts.Delete(ctx, id, caller)
	})
}
