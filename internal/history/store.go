package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"resume-review/internal/shared/storage/kv"
	"resume-review/internal/shared/telemetry"
)

// DefaultKey is the key holding the serialized history list.
const DefaultKey = "resumeAnalysisHistory"

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history entry not found")

// Store keeps the insertion-ordered history in memory and mirrors the whole
// list to a single key of the backing kv.Store on every change.
type Store struct {
	backend kv.Store
	key     string
	now     func() time.Time

	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates a store over backend. Call Load before serving reads.
func NewStore(backend kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key, now: time.Now}
}

// Load reads the persisted list. A missing key yields an empty history; an
// unreadable value is logged and also treated as empty so the next append
// replaces it.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		s.replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		telemetry.Warn("history.load_failed", map[string]any{
			"key":   s.key,
			"error": err.Error(),
		})
		s.replace(nil)
		return nil
	}
	s.replace(entries)
	return nil
}

func (s *Store) replace(entries []Entry) {
	if entries == nil {
		entries = []Entry{}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Append assigns the next id, persists the full list and only then makes the
// entry visible. If persisting fails the in-memory history is unchanged.
func (s *Store) Append(ctx context.Context, entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if n := len(s.entries); n > 0 && id <= s.entries[n-1].ID {
		id = s.entries[n-1].ID + 1
	}
	entry.ID = id

	next := make([]Entry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, entry)

	data, err := json.Marshal(next)
	if err != nil {
		return Entry{}, fmt.Errorf("encode history: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return Entry{}, fmt.Errorf("persist history: %w", err)
	}
	s.entries = next
	return entry, nil
}

// Clear removes the persisted list and empties the in-memory history.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.entries = []Entry{}
	return nil
}

// List returns the entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
