package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	lines := sess.Lines
	if lines == nil {
		lines = []domain.Line{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, question, lines_json, complete, created_at_unix_ms, updated_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			lines_json = excluded.lines_json,
			complete = excluded.complete,
			updated_at_unix_ms = excluded.updated_at_unix_ms
	`, sess.ID, sess.Question, string(linesJSON), boolToInt(sess.Complete),
		sess.CreatedAt.UnixMilli(), sess.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, lines_json, complete, created_at_unix_ms, updated_at_unix_ms
		FROM sessions WHERE id = ?
	`, id)
	return scanSession(row)
}

func (s *Store) LatestIncompleteSession(ctx context.Context) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, lines_json, complete, created_at_unix_ms, updated_at_unix_ms
		FROM sessions WHERE complete = 0
		ORDER BY updated_at_unix_ms DESC, id DESC
		LIMIT 1
	`)
	return scanSession(row)
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var (
		sess      domain.Session
		linesJSON string
		complete  int
		createdMS int64
		updatedMS int64
	)
	err := row.Scan(&sess.ID, &sess.Question, &linesJSON, &complete, &createdMS, &updatedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(linesJSON), &sess.Lines); err != nil {
		return nil, fmt.Errorf("%w: session %s lines: %w", domain.ErrDataIntegrity, sess.ID, err)
	}
	sess.Complete = complete != 0
	sess.CreatedAt = time.UnixMilli(createdMS)
	sess.UpdatedAt = time.UnixMilli(updatedMS)
	return &sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
