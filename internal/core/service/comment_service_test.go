package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
)

func TestCommentCreate_SnapshotsCaller(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")

	c, err := svc.Create(context.Background(), post.ID, "Nice article, thanks!", author("ann@x.com", "Ann Smith"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.AuthorEmail != "ann@x.com" || c.AuthorName != "Ann Smith" || c.PostID != post.ID {
		t.Errorf("unexpected comment: %+v", c)
	}
}

func TestCommentCreate_NamelessAccount(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")

	c, err := svc.Create(context.Background(), post.ID, "Nice article, thanks!", domain.Caller{Email: "k9@x.com", Username: "k9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.AuthorName != "Member" {
		t.Errorf("author name = %q, want fallback", c.AuthorName)
	}
}

func TestCommentCreate_Errors(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	ctx := context.Background()

	if _, err := svc.Create(ctx, post.ID, "Nice article, thanks!", domain.Caller{}); err != domain.ErrUnauthenticated {
		t.Errorf("anonymous: got %v", err)
	}
	if _, err := svc.Create(ctx, "missing", "Nice article, thanks!", author("ann@x.com", "Ann Smith")); err == nil {
		t.Error("missing post: expected error")
	} else {
		expectErr(t, err, domain.ErrNotFound)
	}

	_, err := svc.Create(ctx, post.ID, "short", author("ann@x.com", "Ann Smith"))
	ve, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Messages) != 1 || ve.Messages[0] != "content is too short (minimum 10 characters)" {
		t.Errorf("unexpected messages: %v", ve.Messages)
	}
}

func TestCreateReply(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	otherPost := mustPost(t, f, "bob@x.com", "Bob Lee", "Another one")
	parent := mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")

	reply, err := svc.CreateReply(ctx, post.ID, parent.ID, "I agree with this one", "Carl Jones", "carl@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.IsReply() || reply.ParentID != parent.ID {
		t.Errorf("expected reply to %s, got %+v", parent.ID, reply)
	}

	_, err = svc.CreateReply(ctx, "missing", parent.ID, "I agree with this one", "Carl Jones", "carl@x.com")
	expectErr(t, err, domain.ErrPostNotFound)

	_, err = svc.CreateReply(ctx, post.ID, "missing", "I agree with this one", "Carl Jones", "carl@x.com")
	expectErr(t, err, domain.ErrCommentNotFound)

	_, err = svc.CreateReply(ctx, otherPost.ID, parent.ID, "I agree with this one", "Carl Jones", "carl@x.com")
	expectErr(t, err, domain.ErrCommentNotFound)

	_, err = svc.CreateReply(ctx, post.ID, parent.ID, "I agree with this one", "C", "not-an-email")
	ve, ok := domain.AsValidation(err)
	if !ok || len(ve.Messages) != 2 {
		t.Fatalf("expected two validation messages, got %v", err)
	}
}

func TestCommentDeleteByID_Authorization(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")

	c := mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")
	expectErr(t, svc.DeleteByID(ctx, c.ID, domain.Caller{}), domain.ErrUnauthenticated)
	expectErr(t, svc.DeleteByID(ctx, c.ID, author("bob@x.com", "Bob Lee")), domain.ErrForbidden)

	if err := svc.DeleteByID(ctx, c.ID, author("ANN@x.com", "Ann Smith")); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	expectErr(t, svc.DeleteByID(ctx, c.ID, admin()), domain.ErrCommentNotFound)

	c2 := mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")
	if err := svc.DeleteByID(ctx, c2.ID, admin()); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestCommentDeleteByID_KeepsReplies(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	parent := mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")
	reply, err := svc.CreateReply(ctx, post.ID, parent.ID, "I agree with this one", "Carl Jones", "carl@x.com")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	if err := svc.DeleteByID(ctx, parent.ID, admin()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.comments.FindByID(ctx, reply.ID); err != nil {
		t.Errorf("reply should survive parent deletion: %v", err)
	}
	if _, err := f.posts.FindByID(ctx, post.ID); err != nil {
		t.Errorf("post should survive comment deletion: %v", err)
	}
}

func TestSetInappropriate_AdminOnly(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())
	ctx := context.Background()
	post := mustPost(t, f, "bob@x.com", "Bob Lee", "Hello world")
	c := mustComment(t, f, post.ID, "ann@x.com", "Ann Smith")

	expectErr(t, svc.SetInappropriate(ctx, c.ID, true, author("ann@x.com", "Ann Smith")), domain.ErrForbidden)
	if err := svc.SetInappropriate(ctx, c.ID, true, admin()); err != nil {
		t.Fatalf("admin flag: %v", err)
	}
	got, _ := f.comments.FindByID(ctx, c.ID)
	if !got.Inappropriate {
		t.Error("expected comment to be flagged")
	}
}

func TestCommentListByPost_UnknownPost(t *testing.T) {
	f := newContent()
	svc := NewCommentService(f.posts, f.comments, zerolog.Nop())

	_, err := svc.ListByPost(context.Background(), "missing")
	expectErr(t, err, domain.ErrPostNotFound)
}
