package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

// SessionRepository persists navigator sessions keyed by the browser session id.
// Implementations must be safe for concurrent use.
type SessionRepository interface {
	// Get returns the stored session. ok is false when none exists or it expired.
	Get(ctx context.Context, id string) (s navigator.Session, ok bool, err error)
	// Save stores the session, replacing any previous value, for ttl.
	Save(ctx context.Context, id string, s navigator.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	session   navigator.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionRepository creates an empty in-memory repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (navigator.Session, bool, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok || r.now().After(e.expiresAt) {
		return navigator.Session{}, false, nil
	}
	return e.session, true, nil
}

func (r *MemorySessionRepository) Save(_ context.Context, id string, s navigator.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[id] = memoryEntry{session: s, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	return nil
}

// PurgeExpired drops expired entries and returns how many were removed.
func (r *MemorySessionRepository) PurgeExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := r.now()
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}
