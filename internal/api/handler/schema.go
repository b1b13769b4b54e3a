package handler

import (
	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/presenter"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string         `json:"error"`
	Kind     presenter.Kind `json:"kind,omitempty"`
	Messages []string       `json:"messages,omitempty"`
}

// --- Posts ---

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type searchQuery struct {
	Q        string `query:"q"`
	Page     int    `query:"page"      validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type postPageResponse struct {
	Items      []domain.Post `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// --- Comments ---

type commentRequest struct {
	Content string `json:"content"`
}

type flagRequest struct {
	Inappropriate *bool `json:"inappropriate" validate:"required"`
}

// --- Messages ---

type messageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

type readRequest struct {
	Read *bool `json:"read" validate:"required"`
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

// --- Profile ---

type personalInfoRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Enabled  *bool  `json:"enabled"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Enabled  *bool  `json:"enabled" validate:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type reconcileRequest struct {
	OldEmail string `json:"old_email"`
	NewEmail string `json:"new_email"`
	FullName string `json:"full_name"`
}

type reconcileResponse struct {
	PostEmails    int64 `json:"post_emails"`
	CommentEmails int64 `json:"comment_emails"`
	PostNames     int64 `json:"post_names"`
	CommentNames  int64 `json:"comment_names"`
}
