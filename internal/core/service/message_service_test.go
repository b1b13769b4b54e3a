package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
)

type stubGuard struct {
	seen     map[string]bool
	checkErr error
}

func newStubGuard() *stubGuard { return &stubGuard{seen: make(map[string]bool)} }

func (g *stubGuard) key(m *domain.Message) string { return m.Email + "|" + m.Subject + "|" + m.Content }

func (g *stubGuard) IsDuplicate(_ context.Context, m *domain.Message) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.seen[g.key(m)], nil
}

func (g *stubGuard) Mark(_ context.Context, m *domain.Message) error {
	g.seen[g.key(m)] = true
	return nil
}

var contact = ports.MessageInput{Name: "Ann Smith", Email: "ann@x.com", Subject: "Hello", Content: "I have a question about posting"}

func TestMessageSubmit_RejectsDuplicates(t *testing.T) {
	f := newContent()
	svc := NewMessageService(f.messages, newStubGuard(), zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Submit(ctx, contact)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.ID == "" || first.SentAt.IsZero() || first.Read {
		t.Errorf("unexpected message: %+v", first)
	}

	_, err = svc.Submit(ctx, contact)
	expectErr(t, err, domain.ErrDuplicateSubmission)

	msgs, _ := f.messages.ListAll(ctx)
	if len(msgs) != 1 {
		t.Errorf("expected 1 stored message, got %d", len(msgs))
	}
}

func TestMessageSubmit_GuardFailureStillAccepts(t *testing.T) {
	f := newContent()
	g := newStubGuard()
	g.checkErr = errors.New("redis: connection refused")
	svc := NewMessageService(f.messages, g, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), contact); err != nil {
		t.Fatalf("expected submit to succeed, got %v", err)
	}
}

func TestMessageSubmit_WithoutGuard(t *testing.T) {
	f := newContent()
	svc := NewMessageService(f.messages, nil, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(ctx, contact); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
}

func TestMessageSubmit_Validation(t *testing.T) {
	f := newContent()
	svc := NewMessageService(f.messages, nil, zerolog.Nop())

	_, err := svc.Submit(context.Background(), ports.MessageInput{Name: "A", Email: "nope", Subject: "Hi", Content: "short"})
	ve, ok := domain.AsValidation(err)
	if !ok || len(ve.Messages) != 4 {
		t.Fatalf("expected four validation messages, got %v", err)
	}
}

func TestMessageAdminOperations(t *testing.T) {
	f := newContent()
	svc := NewMessageService(f.messages, nil, zerolog.Nop())
	ctx := context.Background()
	msg, err := svc.Submit(ctx, contact)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = svc.List(ctx, author("ann@x.com", "Ann Smith"))
	expectErr(t, err, domain.ErrForbidden)
	_, err = svc.CountUnread(ctx, domain.Caller{})
	expectErr(t, err, domain.ErrUnauthenticated)

	if n, _ := svc.CountUnread(ctx, admin()); n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}
	if err := svc.MarkRead(ctx, msg.ID, true, admin()); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if n, _ := svc.CountUnread(ctx, admin()); n != 0 {
		t.Errorf("unread = %d, want 0", n)
	}
	if err := svc.Delete(ctx, msg.ID, admin()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectErr(t, svc.Delete(ctx, msg.ID, admin()), domain.ErrMessageNotFound)
}
