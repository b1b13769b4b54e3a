package memory

import (
	"context"
	"sort"

	"github.com/blogplatform/blog/internal/core/domain"
)

type messageRow struct {
	msg domain.Message
	seq int64
}

// MessageRepository implements ports.MessageRepository in memory.
type MessageRepository struct {
	s *Store
}

func NewMessageRepository(s *Store) *MessageRepository {
	return &MessageRepository{s: s}
}

func (r *MessageRepository) Save(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := *msg
	if m.ID == "" {
		m.ID = newID()
	}
	if m.SentAt.IsZero() {
		m.SentAt = r.s.now()
	}
	seq := r.s.nextSeq()
	if existing, ok := r.s.messages[m.ID]; ok {
		seq = existing.seq
	}
	r.s.messages[m.ID] = &messageRow{msg: m, seq: seq}
	return &m, nil
}

func (r *MessageRepository) FindByID(_ context.Context, id string) (*domain.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	m := row.msg
	return &m, nil
}

func (r *MessageRepository) ListAll(_ context.Context) ([]domain.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*messageRow, 0, len(r.s.messages))
	for _, row := range r.s.messages {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].msg.SentAt.Equal(rows[j].msg.SentAt) {
			return rows[i].msg.SentAt.After(rows[j].msg.SentAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]domain.Message, len(rows))
	for i, row := range rows {
		out[i] = row.msg
	}
	return out, nil
}

func (r *MessageRepository) SetRead(_ context.Context, id string, read bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.messages[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	row.msg.Read = read
	return nil
}

func (r *MessageRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.s.messages, id)
	return nil
}

func (r *MessageRepository) CountUnread(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, row := range r.s.messages {
		if !row.msg.Read {
			n++
		}
	}
	return n, nil
}
