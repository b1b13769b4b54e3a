package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/blogplatform/blog/internal/core/domain"
)

type commentRow struct {
	comment domain.Comment
	seq     int64
}

// CommentRepository implements ports.CommentRepository in memory.
type CommentRepository struct {
	s *Store
}

func NewCommentRepository(s *Store) *CommentRepository {
	return &CommentRepository{s: s}
}

func (r *CommentRepository) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(c *domain.Comment) bool { return c.PostID == postID }, false), nil
}

func (r *CommentRepository) ListAll(_ context.Context) ([]domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*domain.Comment) bool { return true }, true), nil
}

func (r *CommentRepository) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c := row.comment
	return &c, nil
}

func (r *CommentRepository) Save(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *comment
	if c.ID == "" {
		c.ID = newID()
	}
	seq := r.s.nextSeq()
	if existing, ok := r.s.comments[c.ID]; ok {
		c.CreatedAt = existing.comment.CreatedAt
		seq = existing.seq
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.s.now()
	}
	r.s.comments[c.ID] = &commentRow{comment: c, seq: seq}
	return &c, nil
}

func (r *CommentRepository) DeleteByID(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *CommentRepository) DeleteByPost(_ context.Context, postID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, row := range r.s.comments {
		if row.comment.PostID == postID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) SetInappropriate(_ context.Context, id string, flagged bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	row.comment.Inappropriate = flagged
	return nil
}

func (r *CommentRepository) RewriteAuthorEmail(_ context.Context, oldEmail, newEmail string) (int64, error) {
	if skipRewrite(oldEmail, newEmail) {
		return 0, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.comments {
		if domain.SameEmail(row.comment.AuthorEmail, oldEmail) {
			row.comment.AuthorEmail = newEmail
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) RewriteAuthorName(_ context.Context, email, newName string) (int64, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(newName) == "" {
		return 0, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.comments {
		if domain.SameEmail(row.comment.AuthorEmail, email) && row.comment.AuthorName != newName {
			row.comment.AuthorName = newName
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) collect(keep func(*domain.Comment) bool, newestFirst bool) []domain.Comment {
	rows := make([]*commentRow, 0)
	for _, row := range r.s.comments {
		if keep(&row.comment) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if newestFirst {
			a, b = b, a
		}
		if !a.comment.CreatedAt.Equal(b.comment.CreatedAt) {
			return a.comment.CreatedAt.Before(b.comment.CreatedAt)
		}
		return a.seq < b.seq
	})
	out := make([]domain.Comment, len(rows))
	for i, row := range rows {
		out[i] = row.comment
	}
	return out
}
