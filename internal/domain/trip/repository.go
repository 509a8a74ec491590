package trip

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository stores live trip sessions.
type SessionRepository interface {
	// Save stores a new or updated session.
	Save(ctx context.Context, s *Session) error

	// FindByID returns the session or a not found error.
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// PruneIdle removes sessions not updated since before and returns their IDs.
	PruneIdle(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
