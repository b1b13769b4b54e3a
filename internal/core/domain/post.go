package domain

import "time"

// Post is a published article. AuthorEmail and AuthorName are snapshots of
// the author's account taken at write time, not references.
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title" validate:"required,blogtitle"`
	Content     string    `json:"content" bson:"content" validate:"required,trimmin=10,trimmax=5000"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	AuthorEmail string    `json:"author_email" bson:"author_email" validate:"required,blogemail"`
	AuthorName  string    `json:"author_name" bson:"author_name" validate:"required,personname"`
	Comments    []Comment `json:"comments,omitempty" bson:"-" validate:"-"`
}

// PostPage is one page of a keyword search.
type PostPage struct {
	Items      []Post
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}
