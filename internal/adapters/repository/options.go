package repository

import (
	"slices"

	"github.com/okian/smokehouse/internal/domain/model"
)

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithSessions seeds the store.
func WithSessions(sessions ...model.Session) Option {
	return func(s *InMemoryStore) {
		s.sessions = slices.Clone(sessions)
	}
}
