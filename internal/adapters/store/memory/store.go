// Package memory keeps sessions and readings in process memory. It backs the
// daemon and CLI when no database path is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	readings map[string]domain.ReadingRecord
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*domain.Session),
		readings: make(map[string]domain.ReadingRecord),
	}
}

func (s *Store) SaveSession(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *Store) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *Store) LatestIncompleteSession(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.Session
	for _, sess := range s.sessions {
		if sess.Complete {
			continue
		}
		if latest == nil || sess.UpdatedAt.After(latest.UpdatedAt) ||
			(sess.UpdatedAt.Equal(latest.UpdatedAt) && sess.ID > latest.ID) {
			latest = sess
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	return latest.Clone(), nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) SaveReading(_ context.Context, rec domain.ReadingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings[rec.ID] = rec
	return nil
}

func (s *Store) GetReading(_ context.Context, id string) (domain.ReadingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.readings[id]
	if !ok {
		return domain.ReadingRecord{}, domain.ErrReadingNotFound
	}
	return rec, nil
}

// ListReadings returns up to limit readings, newest first.
func (s *Store) ListReadings(_ context.Context, limit int) ([]domain.ReadingRecord, error) {
	s.mu.RLock()
	out := make([]domain.ReadingRecord, 0, len(s.readings))
	for _, rec := range s.readings {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Reading.CreatedAt, out[j].Reading.CreatedAt
		if a.Equal(b) {
			return out[i].ID > out[j].ID
		}
		return a.After(b)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
