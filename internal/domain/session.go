package domain

import (
	"fmt"
	"slices"
	"time"
)

// Session is an in-progress cast: lines accumulate bottom to top across
// separate user actions until six are present. Unlike Reading it is mutable
// and is not safe for concurrent use.
type Session struct {
	ID        string    `json:"id"`
	Question  string    `json:"question,omitempty"`
	Lines     []Line    `json:"lines"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id, question string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Question:  question,
		Lines:     make([]Line, 0, LinesPerHexagram),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddLine appends the next line. The sixth line completes the session.
func (s *Session) AddLine(l Line, now time.Time) error {
	if s.Complete || len(s.Lines) >= LinesPerHexagram {
		return fmt.Errorf("%w: session %s", ErrSessionComplete, s.ID)
	}
	if !l.Type.Valid() {
		return fmt.Errorf("%w: line has no type", ErrInvalidInput)
	}
	s.Lines = append(s.Lines, l)
	s.Complete = len(s.Lines) == LinesPerHexagram
	s.UpdatedAt = now
	return nil
}

// Remaining is the number of lines still to cast.
func (s *Session) Remaining() int {
	return LinesPerHexagram - len(s.Lines)
}

// Reading assembles the reading for a complete session.
func (s *Session) Reading(at time.Time) (Reading, error) {
	if !s.Complete {
		return Reading{}, fmt.Errorf("%w: %d of %d lines cast", ErrSessionIncomplete, len(s.Lines), LinesPerHexagram)
	}
	return AssembleReadingAt(s.Lines, at)
}

// Clone returns a deep copy, so stores can hand out sessions without aliasing.
func (s *Session) Clone() *Session {
	c := *s
	c.Lines = slices.Clone(s.Lines)
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return &c
}
