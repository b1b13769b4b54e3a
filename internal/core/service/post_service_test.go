package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
)

func TestPostCreate(t *testing.T) {
	f := newContent()
	svc := NewPostService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.PostInput{Title: "  Go in practice ", Content: "Channels and goroutines"}, author("bob@x.com", "Bob Lee"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Go in practice" || p.AuthorEmail != "bob@x.com" || p.AuthorName != "Bob Lee" || p.PublishedAt.IsZero() {
		t.Errorf("unexpected post: %+v", p)
	}

	_, err = svc.Create(ctx, ports.PostInput{Title: "Hi!", Content: "short"}, author("bob@x.com", "Bob Lee"))
	ve, ok := domain.AsValidation(err)
	if !ok || len(ve.Messages) != 2 {
		t.Fatalf("expected title and content messages, got %v", err)
	}

	_, err = svc.Create(ctx, ports.PostInput{Title: "Go in practice", Content: "Channels and goroutines"}, domain.Caller{})
	expectErr(t, err, domain.ErrUnauthenticated)
}

func TestPostCreate_NamelessAccount(t *testing.T) {
	f := newContent()
	svc := NewPostService(f.posts, f.comments, zerolog.Nop())

	p, err := svc.Create(context.Background(),
		ports.PostInput{Title: "Go in practice", Content: "Channels and goroutines"},
		domain.Caller{Email: "jdoe42@x.com", Username: "jdoe42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AuthorName != "jdoe" {
		t.Errorf("author name = %q, want %q", p.AuthorName, "jdoe")
	}
}

func TestPostUpdateAndDelete_Authorization(t *testing.T) {
	f := newContent()
	svc := NewPostService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	in := ports.PostInput{Title: "Hello again", Content: "Updated content body"}

	_, err := svc.Update(ctx, post.ID, in, author("ann@x.com", "Ann Smith"))
	expectErr(t, err, domain.ErrForbidden)

	updated, err := svc.Update(ctx, post.ID, in, author("bob@x.com", "Bob Lee"))
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Title != "Hello again" || !updated.PublishedAt.Equal(post.PublishedAt) {
		t.Errorf("unexpected update result: %+v", updated)
	}

	expectErr(t, svc.Delete(ctx, post.ID, author("ann@x.com", "Ann Smith")), domain.ErrForbidden)
	if err := svc.Delete(ctx, post.ID, admin()); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	_, err = svc.Get(ctx, post.ID)
	expectErr(t, err, domain.ErrPostNotFound)
}

type countingComments struct {
	ports.CommentRepository
	byPost []string
}

func (c *countingComments) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	c.byPost = append(c.byPost, postID)
	return c.CommentRepository.DeleteByPost(ctx, postID)
}

func TestPostDelete_RemovesComments(t *testing.T) {
	f := newContent()
	counting := &countingComments{CommentRepository: f.comments}
	svc := NewPostService(f.posts, counting, zerolog.Nop())
	ctx := context.Background()
	doomed := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	kept := mustPost(t, f, "bob@x.com", "Bob Lee", "Still here")
	mustComment(t, f, doomed.ID, "ann@x.com", "Ann Smith")
	mustComment(t, f, doomed.ID, "carl@x.com", "Carl Jones")
	mustComment(t, f, kept.ID, "ann@x.com", "Ann Smith")

	expectErr(t, svc.Delete(ctx, doomed.ID, author("ann@x.com", "Ann Smith")), domain.ErrForbidden)
	if len(counting.byPost) != 0 {
		t.Fatalf("comments touched on forbidden delete: %v", counting.byPost)
	}

	if err := svc.Delete(ctx, doomed.ID, author("bob@x.com", "Bob Lee")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(counting.byPost) != 1 || counting.byPost[0] != doomed.ID {
		t.Fatalf("DeleteByPost calls = %v", counting.byPost)
	}
	if left, _ := f.comments.ListByPost(ctx, doomed.ID); len(left) != 0 {
		t.Errorf("expected comments removed, got %d", len(left))
	}
	if left, _ := f.comments.ListByPost(ctx, kept.ID); len(left) != 1 {
		t.Errorf("expected other post's comment kept, got %d", len(left))
	}
}

func TestPostGet_AttachesComments(t *testing.T) {
	f := newContent()
	svc := NewPostService(f.posts, f.comments, zerolog.Nop())
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")
	mustComment(t, f, post.ID, "carl@x.com", "Carl Jones")

	got, err := svc.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Errorf("expected 2 comments, got %d", len(got.Comments))
	}
}

func TestPostSearch_NormalizesPaging(t *testing.T) {
	f := newContent()
	svc := NewPostService(f.posts, f.comments, zerolog.Nop())
	for _, title := range []string{"Go one", "Go two", "Rust three"} {
		mustPost(t, f, "bob@x.com", "Bob Lee", title)
	}
	ctx := context.Background()

	page, err := svc.Search(ctx, " go ", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.PageSize != defaultPageSize || page.Total != 2 || len(page.Items) != 2 {
		t.Errorf("unexpected page: %+v", page)
	}

	page, err = svc.Search(ctx, "", 1, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.PageSize != maxPageSize || page.Total != 3 {
		t.Errorf("unexpected page: %+v", page)
	}
}
