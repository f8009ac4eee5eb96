package ports

import (
	"context"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

// SessionStore persists in-progress casting sessions between launches.
type SessionStore interface {
	SaveSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// LatestIncompleteSession returns the most recently updated session that
	// still needs lines, or domain.ErrSessionNotFound.
	LatestIncompleteSession(ctx context.Context) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// ReadingStore keeps completed readings.
type ReadingStore interface {
	SaveReading(ctx context.Context, rec domain.ReadingRecord) error
	GetReading(ctx context.Context, id string) (domain.ReadingRecord, error)
	ListReadings(ctx context.Context, limit int) ([]domain.ReadingRecord, error)
}

// IDGenerator produces identifiers for sessions and readings.
type IDGenerator interface {
	NewID() string
}
