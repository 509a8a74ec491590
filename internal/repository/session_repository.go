package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/travelplanner/service-trip/internal/domain/shared"
	"github.com/travelplanner/service-trip/internal/domain/trip"
)

// MemorySessionRepository keeps live trip sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*trip.Session
}

// NewMemorySessionRepository creates an empty session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]*trip.Session)}
}

// Save stores the session under its ID.
func (r *MemorySessionRepository) Save(_ context.Context, s *trip.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return nil
}

// FindByID retrieves a session by its ID.
func (r *MemorySessionRepository) FindByID(_ context.Context, id uuid.UUID) (*trip.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, shared.NewNotFoundError("Trip", id.String())
	}
	return s, nil
}

// Delete removes the session.
func (r *MemorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// PruneIdle removes sessions whose last update is before the cutoff.
func (r *MemorySessionRepository) PruneIdle(_ context.Context, before time.Time) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned []uuid.UUID
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(before) {
			delete(r.sessions, id)
			pruned = append(pruned, id)
		}
	}
	return pruned, nil
}

// Count returns the number of live sessions.
func (r *MemorySessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
