// Package repository holds the historical session store and its workbook loader.
package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/smokehouse/internal/domain/model"
	"github.com/okian/smokehouse/pkg/metrics"
)

// Store provides read access to historical sessions.
type Store interface {
	// All returns every session in load order.
	All(ctx context.Context) []model.Session

	// ByMeatType returns the sessions whose meat type equals meatType exactly,
	// in load order. An unknown meat type yields an empty slice.
	ByMeatType(ctx context.Context, meatType string) []model.Session

	// Count returns the number of sessions held.
	Count(ctx context.Context) int
}

// InMemoryStore implements Store over a slice loaded once.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions []model.Session
	byMeat   map[string][]int
}

// NewInMemoryStore creates a store holding sessions.
func NewInMemoryStore(_ context.Context, opts ...Option) *InMemoryStore {
	s := &InMemoryStore{}

	for _, opt := range opts {
		opt(s)
	}

	s.byMeat = indexByMeat(s.sessions)
	metrics.UpdateHistorySessions(len(s.sessions))
	return s
}

// Replace swaps the held sessions for a freshly loaded set. Readers see
// either the old set or the new one, never a mix.
func (s *InMemoryStore) Replace(_ context.Context, sessions []model.Session) {
	next := slices.Clone(sessions)
	idx := indexByMeat(next)

	s.mu.Lock()
	s.sessions = next
	s.byMeat = idx
	s.mu.Unlock()

	metrics.UpdateHistorySessions(len(next))
}

func indexByMeat(sessions []model.Session) map[string][]int {
	idx := make(map[string][]int)
	for i, sess := range sessions {
		idx[sess.MeatType] = append(idx[sess.MeatType], i)
	}
	return idx
}

// All returns a copy of every session.
func (s *InMemoryStore) All(_ context.Context) []model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions)
}

// ByMeatType returns a copy of the matching sessions.
func (s *InMemoryStore) ByMeatType(_ context.Context, meatType string) []model.Session {
	start := time.Now()
	defer func() {
		metrics.RecordHistoryQuery(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.byMeat[meatType]
	out := make([]model.Session, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.sessions[i])
	}
	return out
}

// Count returns the number of sessions.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
