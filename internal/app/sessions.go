package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// CastLineResponse reports one line cast within a session. Record is set
// once the sixth line completes the session.
type CastLineResponse struct {
	Session *domain.Session
	Line    domain.Line
	Record  *domain.ReadingRecord
}

// SessionService drives line-by-line casting. It invokes the reading
// assembler exactly once per completed session.
//
// Updates to one session are serialized within the process, so concurrent
// line casts neither lose lines nor complete a session twice.
type SessionService struct {
	coins    domain.CoinSource
	sessions ports.SessionStore
	readings ports.ReadingStore
	locks    sessionLocks
	opts     options
}

// sessionLocks hands out one mutex per session id, dropping it once no
// caller holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func NewSessionService(rng domain.RNG, sessions ports.SessionStore, readings ports.ReadingStore, opts ...Option) *SessionService {
	return &SessionService{
		coins:    domain.NewCoinSource(rng),
		sessions: sessions,
		readings: readings,
		opts:     buildOptions(opts),
	}
}

// Start opens a new session. Starting over is just starting another one.
func (s *SessionService) Start(ctx context.Context, question string) (*domain.Session, error) {
	sess := domain.NewSession(s.opts.ids.NewID(), question, s.opts.now())
	if err := s.sessions.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Resume returns the latest session left incomplete.
func (s *SessionService) Resume(ctx context.Context) (*domain.Session, error) {
	sess, err := s.sessions.LatestIncompleteSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	return sess, nil
}

func (s *SessionService) Discard(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CastLine tosses the coins for the session's next line.
func (s *SessionService) CastLine(ctx context.Context, id string) (CastLineResponse, error) {
	line, err := s.coins.CastLine()
	if err != nil {
		return CastLineResponse{}, fmt.Errorf("cast line: %w", err)
	}
	return s.AddLine(ctx, id, line)
}

// AddLine appends a line cast elsewhere, such as with physical coins.
func (s *SessionService) AddLine(ctx context.Context, id string, line domain.Line) (CastLineResponse, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return CastLineResponse{}, fmt.Errorf("get session: %w", err)
	}

	now := s.opts.now()
	if err := sess.AddLine(line, now); err != nil {
		return CastLineResponse{}, err
	}
	if err := s.sessions.SaveSession(ctx, sess); err != nil {
		return CastLineResponse{}, fmt.Errorf("save session: %w", err)
	}

	resp := CastLineResponse{Session: sess, Line: line}
	if !sess.Complete {
		return resp, nil
	}

	reading, err := sess.Reading(now)
	if err != nil {
		return CastLineResponse{}, fmt.Errorf("assemble reading: %w", err)
	}
	rec := domain.ReadingRecord{
		ID:        s.opts.ids.NewID(),
		SessionID: sess.ID,
		Question:  sess.Question,
		Reading:   reading,
	}
	if err := s.readings.SaveReading(ctx, rec); err != nil {
		return CastLineResponse{}, fmt.Errorf("save reading: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "session complete",
		"session_id", sess.ID,
		"reading_id", rec.ID,
		"primary", reading.Primary.Number,
	)
	resp.Record = &rec
	return resp, nil
}
