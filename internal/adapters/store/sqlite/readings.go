package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

func (s *Store) SaveReading(ctx context.Context, rec domain.ReadingRecord) error {
	linesJSON, err := json.Marshal(rec.Reading.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	changing := rec.Reading.ChangingLines
	if changing == nil {
		changing = []int{}
	}
	changingJSON, err := json.Marshal(changing)
	if err != nil {
		return fmt.Errorf("marshal changing lines: %w", err)
	}

	var transformed sql.NullInt64
	if rec.Reading.Transformed != nil {
		transformed = sql.NullInt64{Int64: int64(rec.Reading.Transformed.Number), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO readings (id, session_id, question, primary_number, transformed_number,
			changing_lines_json, lines_json, created_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SessionID, rec.Question, rec.Reading.Primary.Number, transformed,
		string(changingJSON), string(linesJSON), rec.Reading.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert reading %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) GetReading(ctx context.Context, id string) (domain.ReadingRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, question, primary_number, transformed_number,
			changing_lines_json, lines_json, created_at_unix_ms
		FROM readings WHERE id = ?
	`, id)
	rec, err := scanReading(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ReadingRecord{}, domain.ErrReadingNotFound
	}
	return rec, err
}

// ListReadings returns up to limit readings, newest first.
func (s *Store) ListReadings(ctx context.Context, limit int) ([]domain.ReadingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, question, primary_number, transformed_number,
			changing_lines_json, lines_json, created_at_unix_ms
		FROM readings
		ORDER BY created_at_unix_ms DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	out := []domain.ReadingRecord{}
	for rows.Next() {
		rec, err := scanReading(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}

// scanReading rebuilds a reading from its stored lines and verifies the
// resolved hexagrams and changing lines against the stored columns.
func scanReading(scan func(dest ...any) error) (domain.ReadingRecord, error) {
	var (
		rec          domain.ReadingRecord
		primaryNum   int
		transformed  sql.NullInt64
		changingJSON string
		linesJSON    string
		createdMS    int64
	)
	if err := scan(&rec.ID, &rec.SessionID, &rec.Question, &primaryNum, &transformed,
		&changingJSON, &linesJSON, &createdMS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan reading: %w", err)
	}

	var lines []domain.Line
	if err := json.Unmarshal([]byte(linesJSON), &lines); err != nil {
		return rec, fmt.Errorf("%w: reading %s lines: %w", domain.ErrDataIntegrity, rec.ID, err)
	}
	reading, err := domain.AssembleReadingAt(lines, time.UnixMilli(createdMS))
	if err != nil {
		return rec, fmt.Errorf("%w: reading %s: %w", domain.ErrDataIntegrity, rec.ID, err)
	}
	if reading.Primary.Number != primaryNum {
		return rec, fmt.Errorf("%w: reading %s stored primary %d, lines resolve to %d",
			domain.ErrDataIntegrity, rec.ID, primaryNum, reading.Primary.Number)
	}
	if err := checkTransformed(reading.Transformed, transformed); err != nil {
		return rec, fmt.Errorf("%w: reading %s: %w", domain.ErrDataIntegrity, rec.ID, err)
	}

	var changing []int
	if err := json.Unmarshal([]byte(changingJSON), &changing); err != nil {
		return rec, fmt.Errorf("%w: reading %s changing lines: %w", domain.ErrDataIntegrity, rec.ID, err)
	}
	if !slices.Equal(changing, reading.ChangingLines) {
		return rec, fmt.Errorf("%w: reading %s stored changing lines %v, lines resolve to %v",
			domain.ErrDataIntegrity, rec.ID, changing, reading.ChangingLines)
	}

	rec.Reading = reading
	return rec, nil
}

func checkTransformed(resolved *domain.Hexagram, stored sql.NullInt64) error {
	switch {
	case resolved == nil && !stored.Valid:
		return nil
	case resolved == nil:
		return fmt.Errorf("stored transformed %d, lines have no changing line", stored.Int64)
	case !stored.Valid:
		return fmt.Errorf("no stored transformed, lines resolve to %d", resolved.Number)
	case int64(resolved.Number) != stored.Int64:
		return fmt.Errorf("stored transformed %d, lines resolve to %d", stored.Int64, resolved.Number)
	}
	return nil
}
