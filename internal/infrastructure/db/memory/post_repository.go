package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/blogplatform/blog/internal/core/domain"
)

type postRow struct {
	post domain.Post
	seq  int64
}

// PostRepository implements ports.PostRepository in memory.
type PostRepository struct {
	s *Store
}

func NewPostRepository(s *Store) *PostRepository {
	return &PostRepository{s: s}
}

func (r *PostRepository) ListAll(_ context.Context) ([]domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(*domain.Post) bool { return true }), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p := row.post
	return &p, nil
}

func (r *PostRepository) Search(_ context.Context, keyword string, page, pageSize int) (*domain.PostPage, error) {
	r.s.mu.RLock()
	matched := r.collect(matcher(keyword))
	r.s.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = len(matched)
	}
	out := &domain.PostPage{
		Items:    []domain.Post{},
		Total:    int64(len(matched)),
		Page:     page,
		PageSize: pageSize,
	}
	if pageSize > 0 {
		out.TotalPages = (len(matched) + pageSize - 1) / pageSize
	}
	skip := (page - 1) * pageSize
	if skip >= len(matched) {
		return out, nil
	}
	end := skip + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	out.Items = matched[skip:end]
	return out, nil
}

func (r *PostRepository) SearchAll(_ context.Context, keyword string) ([]domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(matcher(keyword)), nil
}

func (r *PostRepository) Save(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := *post
	p.Comments = nil
	if p.ID == "" {
		p.ID = newID()
	}
	seq := r.s.nextSeq()
	if existing, ok := r.s.posts[p.ID]; ok {
		p.PublishedAt = existing.post.PublishedAt
		seq = existing.seq
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = r.s.now()
	}
	r.s.posts[p.ID] = &postRow{post: p, seq: seq}
	return &p, nil
}

// Delete removes the post only; comments go through CommentRepository.DeleteByPost.
func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *PostRepository) RewriteAuthorEmail(_ context.Context, oldEmail, newEmail string) (int64, error) {
	if skipRewrite(oldEmail, newEmail) {
		return 0, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.posts {
		if domain.SameEmail(row.post.AuthorEmail, oldEmail) {
			row.post.AuthorEmail = newEmail
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) RewriteAuthorName(_ context.Context, email, newName string) (int64, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(newName) == "" {
		return 0, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.posts {
		if domain.SameEmail(row.post.AuthorEmail, email) && row.post.AuthorName != newName {
			row.post.AuthorName = newName
			n++
		}
	}
	return n, nil
}

// collect returns matching posts newest first. Caller holds the lock.
func (r *PostRepository) collect(keep func(*domain.Post) bool) []domain.Post {
	rows := make([]*postRow, 0, len(r.s.posts))
	for _, row := range r.s.posts {
		if keep(&row.post) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].post.PublishedAt.Equal(rows[j].post.PublishedAt) {
			return rows[i].post.PublishedAt.After(rows[j].post.PublishedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]domain.Post, len(rows))
	for i, row := range rows {
		out[i] = row.post
	}
	return out
}

func matcher(keyword string) func(*domain.Post) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return func(*domain.Post) bool { return true }
	}
	return func(p *domain.Post) bool {
		return containsFold(p.Title, keyword) || containsFold(p.Content, keyword)
	}
}
