package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "threecoins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustLines(t *testing.T, values ...int) []domain.Line {
	t.Helper()
	lines, err := domain.LinesFromValues(values)
	require.NoError(t, err)
	return lines
}

func TestOpen_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	v, err := s.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		require.NoError(t, s.Close())
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created := time.UnixMilli(1_700_000_000_000)
	sess := domain.NewSession("s1", "Which way?", created)
	for i, l := range mustLines(t, 9, 8, 6) {
		require.NoError(t, sess.AddLine(l, created.Add(time.Duration(i+1)*time.Second)))
	}
	require.NoError(t, s.SaveSession(ctx, sess))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Question, got.Question)
	assert.Equal(t, sess.Lines, got.Lines)
	assert.False(t, got.Complete)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, sess.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSession_UpsertMarksComplete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	now := time.UnixMilli(1_700_000_000_000)
	sess := domain.NewSession("s1", "", now)
	require.NoError(t, s.SaveSession(ctx, sess))

	for _, l := range mustLines(t, 7, 7, 7, 7, 7, 7) {
		require.NoError(t, sess.AddLine(l, now))
	}
	require.NoError(t, s.SaveSession(ctx, sess))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Complete)
	assert.Len(t, got.Lines, 6)
}

func TestSession_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetSession(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))

	err = s.DeleteSession(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestLatestIncompleteSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.UnixMilli(1_700_000_000_000)
	older := domain.NewSession("older", "", base)
	newer := domain.NewSession("newer", "", base.Add(time.Minute))
	done := domain.NewSession("done", "", base.Add(time.Hour))
	for _, l := range mustLines(t, 7, 7, 7, 7, 7, 7) {
		require.NoError(t, done.AddLine(l, base.Add(time.Hour)))
	}
	for _, sess := range []*domain.Session{older, newer, done} {
		require.NoError(t, s.SaveSession(ctx, sess))
	}

	got, err := s.LatestIncompleteSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newer", got.ID)

	require.NoError(t, s.DeleteSession(ctx, "newer"))
	require.NoError(t, s.DeleteSession(ctx, "older"))
	_, err = s.LatestIncompleteSession(ctx)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestReading_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	reading, err := domain.AssembleReadingAt(mustLines(t, 9, 7, 6, 8, 7, 9), time.UnixMilli(1_700_000_000_000))
	require.NoError(t, err)
	rec := domain.ReadingRecord{ID: "r1", SessionID: "s1", Question: "Now?", Reading: reading}
	require.NoError(t, s.SaveReading(ctx, rec))

	got, err := s.GetReading(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, rec.Question, got.Question)
	assert.Equal(t, reading.Primary, got.Reading.Primary)
	require.NotNil(t, got.Reading.Transformed)
	assert.Equal(t, *reading.Transformed, *got.Reading.Transformed)
	assert.Equal(t, []int{1, 3, 6}, got.Reading.ChangingLines)
	assert.Equal(t, reading.Lines, got.Reading.Lines)
	assert.True(t, reading.CreatedAt.Equal(got.Reading.CreatedAt))
}

func TestReading_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetReading(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrReadingNotFound))
}

func TestListReadings_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.UnixMilli(1_700_000_000_000)
	for i, id := range []string{"a", "b", "c"} {
		reading, err := domain.AssembleReadingAt(mustLines(t, 7, 8, 7, 8, 7, 8), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, s.SaveReading(ctx, domain.ReadingRecord{ID: id, Reading: reading}))
	}

	got, err := s.ListReadings(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Nil(t, got[0].Reading.Transformed)
	assert.Equal(t, 63, got[0].Reading.Primary.Number)
}

func TestReading_DetectsTamperedPrimary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	reading, err := domain.AssembleReadingAt(mustLines(t, 7, 7, 7, 7, 7, 7), time.UnixMilli(1_700_000_000_000))
	require.NoError(t, err)
	require.NoError(t, s.SaveReading(ctx, domain.ReadingRecord{ID: "r1", Reading: reading}))

	_, err = s.db.ExecContext(ctx, `UPDATE readings SET primary_number = 2 WHERE id = 'r1'`)
	require.NoError(t, err)

	_, err = s.GetReading(ctx, "r1")
	assert.True(t, errors.Is(err, domain.ErrDataIntegrity))
}

func TestReading_DetectsTamperedColumns(t *testing.T) {
	ctx := context.Background()

	reading, err := domain.AssembleReadingAt(mustLines(t, 9, 7, 7, 7, 7, 7), time.UnixMilli(1_700_000_000_000))
	require.NoError(t, err)
	require.NotNil(t, reading.Transformed)
	wrong := reading.Transformed.Number%64 + 1

	tests := []struct {
		name   string
		update string
		args   []any
	}{
		{"transformed cleared", `UPDATE readings SET transformed_number = NULL WHERE id = 'r1'`, nil},
		{"transformed changed", `UPDATE readings SET transformed_number = ? WHERE id = 'r1'`, []any{wrong}},
		{"changing lines dropped", `UPDATE readings SET changing_lines_json = '[]' WHERE id = 'r1'`, nil},
		{"changing lines moved", `UPDATE readings SET changing_lines_json = '[4]' WHERE id = 'r1'`, nil},
		{"changing lines garbled", `UPDATE readings SET changing_lines_json = 'nope' WHERE id = 'r1'`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := openTestStore(t)
			require.NoError(t, s.SaveReading(ctx, domain.ReadingRecord{ID: "r1", Reading: reading}))

			_, err := s.GetReading(ctx, "r1")
			require.NoError(t, err)

			_, err = s.db.ExecContext(ctx, tc.update, tc.args...)
			require.NoError(t, err)

			_, err = s.GetReading(ctx, "r1")
			assert.ErrorIs(t, err, domain.ErrDataIntegrity)
			_, err = s.ListReadings(ctx, 10)
			assert.ErrorIs(t, err, domain.ErrDataIntegrity)
		})
	}
}

func TestReading_StaticTransformedMustBeNull(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	reading, err := domain.AssembleReadingAt(mustLines(t, 7, 8, 7, 8, 7, 8), time.UnixMilli(1_700_000_000_000))
	require.NoError(t, err)
	require.Nil(t, reading.Transformed)
	require.NoError(t, s.SaveReading(ctx, domain.ReadingRecord{ID: "r1", Reading: reading}))

	_, err = s.db.ExecContext(ctx, `UPDATE readings SET transformed_number = 1 WHERE id = 'r1'`)
	require.NoError(t, err)

	_, err = s.GetReading(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}
