package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

func TestStore_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sess := domain.NewSession("s1", "q", now)
	require.NoError(t, s.SaveSession(ctx, sess))

	line, err := domain.LineFromValue(7)
	require.NoError(t, err)
	require.NoError(t, sess.AddLine(line, now))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.Lines, "stored session must not alias the caller's")

	got.Lines = append(got.Lines, line)
	again, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again.Lines)
}

func TestStore_LatestIncompleteSession(t *testing.T) {
	ctx := context.Background()
	s := New()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.LatestIncompleteSession(ctx)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	older := domain.NewSession("a", "", t0)
	newer := domain.NewSession("b", "", t0.Add(time.Hour))
	done := domain.NewSession("c", "", t0.Add(2*time.Hour))
	done.Complete = true
	for _, sess := range []*domain.Session{older, newer, done} {
		require.NoError(t, s.SaveSession(ctx, sess))
	}

	got, err := s.LatestIncompleteSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestStore_ListReadings(t *testing.T) {
	ctx := context.Background()
	s := New()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	lines, err := domain.LinesFromValues([]int{7, 7, 7, 8, 8, 8})
	require.NoError(t, err)
	for i, id := range []string{"r1", "r2", "r3"} {
		r, err := domain.AssembleReadingAt(lines, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, s.SaveReading(ctx, domain.ReadingRecord{ID: id, Reading: r}))
	}

	recs, err := s.ListReadings(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r3", recs[0].ID)
	assert.Equal(t, "r2", recs[1].ID)

	_, err = s.GetReading(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrReadingNotFound)
}
