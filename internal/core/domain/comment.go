package domain

import "time"

// Comment belongs to exactly one Post and may reply to another Comment on
// the same Post.
type Comment struct {
	ID            string    `json:"id" bson:"_id"`
	Content       string    `json:"content" bson:"content" validate:"required,trimmin=10,trimmax=5000"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	AuthorEmail   string    `json:"author_email" bson:"author_email" validate:"required,blogemail"`
	AuthorName    string    `json:"author_name" bson:"author_name" validate:"required,personname"`
	PostID        string    `json:"post_id" bson:"post_id" validate:"required"`
	ParentID      string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Inappropriate bool      `json:"inappropriate" bson:"inappropriate"`
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != ""
}
