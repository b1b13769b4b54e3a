// Package memory is a process-local content store used for local
// development (STORE_DRIVER=memory) and tests. It mirrors the Mongo
// repositories' semantics, including ordering and cascading deletes.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds posts, comments and messages behind a single lock.
type Store struct {
	mu       sync.RWMutex
	posts    map[string]*postRow
	comments map[string]*commentRow
	messages map[string]*messageRow
	seq      int64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		posts:    make(map[string]*postRow),
		comments: make(map[string]*commentRow),
		messages: make(map[string]*messageRow),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID() string {
	return uuid.NewString()
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// skipRewrite reports whether a bulk rewrite has nothing to do.
func skipRewrite(from, to string) bool {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	return from == "" || to == "" || from == to
}
