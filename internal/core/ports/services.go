package ports

import (
	"context"

	"github.com/blogplatform/blog/internal/core/domain"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// PostService defines use-case operations for posts.
type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	// Get returns the post with its comments loaded.
	Get(ctx context.Context, id string) (*domain.Post, error)
	Search(ctx context.Context, keyword string, page, pageSize int) (*domain.PostPage, error)
	SearchAll(ctx context.Context, keyword string) ([]domain.Post, error)
	Create(ctx context.Context, in PostInput, caller domain.Caller) (*domain.Post, error)
	Update(ctx context.Context, id string, in PostInput, caller domain.Caller) (*domain.Post, error)
	Delete(ctx context.Context, id string, caller domain.Caller) error
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	ListAll(ctx context.Context) ([]domain.Comment, error)
	Create(ctx context.Context, postID, content string, caller domain.Caller) (*domain.Comment, error)
	Save(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	CreateReply(ctx context.Context, postID, parentID, content, authorName, authorEmail string) (*domain.Comment, error)
	DeleteByID(ctx context.Context, id string, caller domain.Caller) error
	SetInappropriate(ctx context.Context, id string, flagged bool, caller domain.Caller) error
}

// MessageInput is a contact-form submission as typed by the visitor.
type MessageInput struct {
	Name    string
	Email   string
	Subject string
	Content string
}

// MessageService defines use-case operations for contact messages.
type MessageService interface {
	Submit(ctx context.Context, in MessageInput) (*domain.Message, error)
	List(ctx context.Context, caller domain.Caller) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string, read bool, caller domain.Caller) error
	Delete(ctx context.Context, id string, caller domain.Caller) error
	CountUnread(ctx context.Context, caller domain.Caller) (int64, error)
}

// ReconcileResult reports how many snapshots a reconciliation rewrote.
type ReconcileResult struct {
	PostEmails    int64
	CommentEmails int64
	PostNames     int64
	CommentNames  int64
}

// ProfileService synchronizes the caller's directory profile with the
// author snapshots held by the content store. Its entry points never return
// errors; false or an empty view means the operation did not complete.
type ProfileService interface {
	LoadCurrentProfile(ctx context.Context, caller domain.Caller) domain.ProfileView
	UpdatePersonalInfo(ctx context.Context, firstName, lastName, email string, caller domain.Caller) bool
	ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string, caller domain.Caller) bool
	// ReconcileAuthor reruns the cascading author rewrite. It is idempotent.
	ReconcileAuthor(ctx context.Context, oldEmail, newEmail, fullName string) (*ReconcileResult, error)
}

// NewUserInput carries the fields for creating a directory account.
type NewUserInput struct {
	Username string
	Email    string
	Password string
	Enabled  bool
}

// UserAdminService exposes directory administration to administrators.
type UserAdminService interface {
	ListUsers(ctx context.Context, caller domain.Caller) ([]domain.Account, error)
	CreateUser(ctx context.Context, in NewUserInput, caller domain.Caller) (string, error)
	UpdateUser(ctx context.Context, id, username, email string, enabled bool, caller domain.Caller) error
	ResetPassword(ctx context.Context, id, newPassword string, caller domain.Caller) error
	DeleteUser(ctx context.Context, id string, caller domain.Caller) error
	FindByEmail(ctx context.Context, email string, caller domain.Caller) (*domain.Account, error)
}
