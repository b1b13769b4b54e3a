package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// In-memory stub directory
// ---------------------------------------------------------------------------

type stubDirectory struct {
	accounts map[string]*domain.Account
	calls    []string
	seq      int

	updateErr error // if set, UpdateAccount returns this error
	resetErr  error // if set, ResetPassword returns this error
	passwords map[string]string
}

func newStubDirectory(accounts ...domain.Account) *stubDirectory {
	d := &stubDirectory{
		accounts:  make(map[string]*domain.Account),
		passwords: make(map[string]string),
	}
	for i := range accounts {
		a := accounts[i]
		d.accounts[a.ID] = &a
	}
	return d
}

func (d *stubDirectory) record(op string) { d.calls = append(d.calls, op) }

func (d *stubDirectory) ListUsers(_ context.Context) ([]domain.Account, error) {
	d.record("ListUsers")
	out := make([]domain.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (d *stubDirectory) CreateAccount(_ context.Context, username, email, password string, enabled bool) (string, error) {
	d.record("CreateAccount")
	for _, a := range d.accounts {
		if strings.EqualFold(a.Username, username) {
			return "", domain.ErrAccountExists
		}
	}
	d.seq++
	id := fmt.Sprintf("new-%d", d.seq)
	d.accounts[id] = &domain.Account{ID: id, Username: username, Email: email, Enabled: enabled}
	d.passwords[id] = password
	return id, nil
}

func (d *stubDirectory) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	d.record("GetAccount")
	a, ok := d.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (d *stubDirectory) UpdateAccount(_ context.Context, account *domain.Account) error {
	d.record("UpdateAccount")
	if d.updateErr != nil {
		return d.updateErr
	}
	if _, ok := d.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	clone := *account
	d.accounts[account.ID] = &clone
	return nil
}

func (d *stubDirectory) ResetPassword(_ context.Context, id, newPassword string) error {
	d.record("ResetPassword")
	if d.resetErr != nil {
		return d.resetErr
	}
	if _, ok := d.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	d.passwords[id] = newPassword
	return nil
}

func (d *stubDirectory) DeleteAccount(_ context.Context, id string) error {
	d.record("DeleteAccount")
	if _, ok := d.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(d.accounts, id)
	return nil
}

func (d *stubDirectory) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	d.record("FindByEmail")
	for _, a := range d.accounts {
		if domain.SameEmail(a.Email, email) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	d.record("FindByUsername")
	for _, a := range d.accounts {
		if strings.EqualFold(a.Username, username) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errDirectoryDown = fmt.Errorf("connection refused: %w", domain.ErrDirectory)

type contentFixture struct {
	posts    *memory.PostRepository
	comments *memory.CommentRepository
	messages *memory.MessageRepository
}

func newContent() contentFixture {
	store := memory.NewStore()
	return contentFixture{
		posts:    memory.NewPostRepository(store),
		comments: memory.NewCommentRepository(store),
		messages: memory.NewMessageRepository(store),
	}
}

func author(email, name string) domain.Caller {
	return domain.Caller{Email: email, DisplayName: name}
}

func admin() domain.Caller {
	return domain.Caller{Email: "root@blog.io", DisplayName: "Site Admin", Roles: []string{domain.RoleAdmin}}
}

func mustPost(t *testing.T, f contentFixture, email, name, title string) *domain.Post {
	t.Helper()
	p, err := f.posts.Save(context.Background(), &domain.Post{
		Title:       title,
		Content:     "Some meaningful post content",
		AuthorEmail: email,
		AuthorName:  name,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func mustComment(t *testing.T, f contentFixture, postID, email, name string) *domain.Comment {
	t.Helper()
	c, err := f.comments.Save(context.Background(), &domain.Comment{
		Content:     "A thoughtful comment body",
		AuthorEmail: email,
		AuthorName:  name,
		PostID:      postID,
	})
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

func expectErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
