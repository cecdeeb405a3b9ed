// Package conversation owns the per-session rolling history used by
// conversational mode.
//
// A Store holds one bounded history per session id. Histories are
// capped at a fixed number of exchange pairs (FIFO eviction), and the
// session map itself is capped by LRU eviction of whole sessions so a
// long-running server cannot grow without bound.
package conversation

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MessagePair is one completed exchange: the user's message and the
// assistant's reply. Seq increases monotonically per session and is
// never reused, so FIFO eviction is observable from the retained tail.
type MessagePair struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Seq       uint64 `json:"seq"`
}

// Stats summarizes one session's history.
type Stats struct {
	MessageCount int  `json:"message_count"`
	HasContext   bool `json:"has_context"`
}

// Info describes one live session for listing surfaces.
type Info struct {
	ID           string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// session is the unit of isolation: its mutex serializes history
// mutation for one session id without blocking other sessions.
type session struct {
	mu        sync.Mutex
	pairs     []MessagePair
	nextSeq   uint64
	createdAt time.Time
}

// Store is a bounded, concurrency-safe map of session histories.
//
// Locking is striped: Store.mu guards only session lookup/insert in
// the LRU map, and each session's own mutex guards its history. Calls
// against different session ids never contend on history operations.
type Store struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *session]
	maxPairs int
}

// DefaultMaxPairs is the history capacity used when callers pass a
// non-positive value to New.
const DefaultMaxPairs = 3

// DefaultMaxSessions bounds the number of live sessions when callers
// pass a non-positive value to New.
const DefaultMaxSessions = 128

// New creates a Store keeping at most maxPairs exchange pairs per
// session and at most maxSessions sessions. Non-positive arguments
// fall back to the defaults.
func New(maxPairs, maxSessions int) *Store {
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	// lru.New only errors on size <= 0, which is excluded above.
	cache, _ := lru.New[string, *session](maxSessions)
	return &Store{sessions: cache, maxPairs: maxPairs}
}

// MaxPairs returns the per-session history capacity.
func (s *Store) MaxPairs() int { return s.maxPairs }

// lookup returns the session for id without creating it. A hit bumps
// the session's LRU recency.
func (s *Store) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Get(id)
}

// getOrCreate returns the session for id, creating it if absent.
func (s *Store) getOrCreate(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions.Get(id); ok {
		return sess
	}
	sess := &session{createdAt: time.Now()}
	s.sessions.Add(id, sess)
	return sess
}

// Create registers a new empty session, reporting whether it was
// created. Returns false without side effects if the id already
// exists.
func (s *Store) Create(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions.Peek(id); ok {
		return false
	}
	s.sessions.Add(id, &session{createdAt: time.Now()})
	return true
}

// Context returns a snapshot of the session's history in insertion
// order, oldest first. Unknown sessions yield an empty slice. The
// returned slice is a copy and safe for the caller to retain.
func (s *Store) Context(id string) []MessagePair {
	sess, ok := s.lookup(id)
	if !ok {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	snapshot := make([]MessagePair, len(sess.pairs))
	copy(snapshot, sess.pairs)
	return snapshot
}

// Append records a completed exchange for the session, creating the
// session if absent. When the history is at capacity the oldest pair
// is evicted. Append never fails; callers only append successful
// exchanges.
func (s *Store) Append(id, user, assistant string) {
	sess := s.getOrCreate(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pairs = append(sess.pairs, MessagePair{
		User:      user,
		Assistant: assistant,
		Seq:       sess.nextSeq,
	})
	sess.nextSeq++
	if overflow := len(sess.pairs) - s.maxPairs; overflow > 0 {
		sess.pairs = append(sess.pairs[:0], sess.pairs[overflow:]...)
	}
}

// Clear discards the session's history. The session itself stays
// registered and its sequence counter keeps running. No-op for unknown
// sessions; idempotent.
func (s *Store) Clear(id string) {
	sess, ok := s.lookup(id)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pairs = nil
}

// Stats reports the session's current pair count. Unknown sessions
// report zero.
func (s *Store) Stats(id string) Stats {
	sess, ok := s.lookup(id)
	if !ok {
		return Stats{}
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	n := len(sess.pairs)
	return Stats{MessageCount: n, HasContext: n > 0}
}

// Sessions lists all live sessions, least recently used first.
func (s *Store) Sessions() []Info {
	s.mu.Lock()
	keys := s.sessions.Keys()
	infos := make([]Info, 0, len(keys))
	for _, id := range keys {
		sess, ok := s.sessions.Peek(id)
		if !ok {
			continue
		}
		sess.mu.Lock()
		infos = append(infos, Info{
			ID:           id,
			CreatedAt:    sess.createdAt,
			MessageCount: len(sess.pairs),
		})
		sess.mu.Unlock()
	}
	s.mu.Unlock()
	return infos
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
