package cache

import (
	"sync"
	"time"

	"engineering-sync/internal/model"
)

// DefaultTTL is the freshness window for both cache tiers.
const DefaultTTL = 900 * time.Second

// Store holds two independent time-bounded snapshots of the category list:
// the basic tier (fetched, unenriched) and the enriched tier (summaries and
// scores attached). A read never triggers I/O; staleness and absence both
// surface as a nil result so the caller decides whether to fetch.
//
// Goroutines are real threads here, so each tier's check-then-set sequence
// is guarded by the mutex.
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	basic      []model.Category
	basicAt    time.Time
	enriched   []model.Category
	enrichedAt time.Time
}

// NewStore creates a cache store. A nil clock defaults to time.Now, a
// non-positive ttl to DefaultTTL.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Store{ttl: ttl, now: now}
}

// GetBasic returns the basic snapshot, or nil on miss or expiry.
func (s *Store) GetBasic() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(s.basic, s.basicAt)
}

// GetEnriched returns the enriched snapshot, or nil on miss or expiry.
func (s *Store) GetEnriched() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(s.enriched, s.enrichedAt)
}

// SetBasic stores the basic snapshot with a fresh timestamp.
func (s *Store) SetBasic(categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basic = categories
	s.basicAt = s.now()
}

// SetEnriched stores the enriched snapshot with a fresh timestamp.
func (s *Store) SetEnriched(categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enriched = categories
	s.enrichedAt = s.now()
}

// InvalidateAll clears both tiers in one critical section.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basic = nil
	s.basicAt = time.Time{}
	s.enriched = nil
	s.enrichedAt = time.Time{}
}

func (s *Store) get(data []model.Category, at time.Time) []model.Category {
	if data == nil || at.IsZero() {
		return nil
	}
	if s.now().Sub(at) >= s.ttl {
		return nil
	}
	return data
}
