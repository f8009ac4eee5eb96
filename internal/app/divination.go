package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// CastRequest is the application-level input (no HTTP types).
type CastRequest struct {
	Question  string
	Lang      string
	Interpret bool
}

// ValuesRequest casts from traditional numbers entered by the user,
// bottom line first.
type ValuesRequest struct {
	Question  string
	Lang      string
	Values    []int
	Interpret bool
}

// CastResponse is the application-level output.
type CastResponse struct {
	Record         domain.ReadingRecord
	Interpretation *ports.InterpretOutput
	Model          string
	LatencyMS      int64
}

// HexagramView joins a table entry with its trigrams and commentary.
type HexagramView struct {
	Hexagram domain.Hexagram
	Upper    domain.Trigram
	Lower    domain.Trigram
	Details  *domain.HexagramDetails
}

// DivinationService orchestrates casting, persistence and LLM interpretation.
type DivinationService struct {
	coins       domain.CoinSource
	interpreter ports.Interpreter
	details     ports.DetailsStore
	readings    ports.ReadingStore
	model       string
	opts        options
}

// NewDivinationService wires the service. interp and details may be nil:
// interpretation then fails with domain.ErrNoInterpreter and lookups carry
// no commentary.
func NewDivinationService(rng domain.RNG, interp ports.Interpreter, details ports.DetailsStore, readings ports.ReadingStore, model string, opts ...Option) *DivinationService {
	return &DivinationService{
		coins:       domain.NewCoinSource(rng),
		interpreter: interp,
		details:     details,
		readings:    readings,
		model:       model,
		opts:        buildOptions(opts),
	}
}

func (s *DivinationService) Cast(ctx context.Context, req CastRequest) (CastResponse, error) {
	lines, err := s.coins.CastLines(domain.LinesPerHexagram)
	if err != nil {
		return CastResponse{}, fmt.Errorf("cast lines: %w", err)
	}
	return s.complete(ctx, lines, req.Question, req.Lang, req.Interpret)
}

func (s *DivinationService) ReadFromValues(ctx context.Context, req ValuesRequest) (CastResponse, error) {
	lines, err := domain.LinesFromValues(req.Values)
	if err != nil {
		return CastResponse{}, fmt.Errorf("parse values: %w", err)
	}
	return s.complete(ctx, lines, req.Question, req.Lang, req.Interpret)
}

// complete assembles and stores the reading. A reading that cannot be
// interpreted for lack of an interpreter is not stored. When interpretation
// fails upstream the stored record is still returned alongside the error.
func (s *DivinationService) complete(ctx context.Context, lines []domain.Line, question, lang string, interpret bool) (CastResponse, error) {
	if interpret && s.interpreter == nil {
		return CastResponse{}, domain.ErrNoInterpreter
	}

	reading, err := domain.AssembleReadingAt(lines, s.opts.now())
	if err != nil {
		return CastResponse{}, fmt.Errorf("assemble reading: %w", err)
	}

	rec := domain.ReadingRecord{
		ID:       s.opts.ids.NewID(),
		Question: question,
		Reading:  reading,
	}
	if err := s.readings.SaveReading(ctx, rec); err != nil {
		return CastResponse{}, fmt.Errorf("save reading: %w", err)
	}

	resp := CastResponse{Record: rec}
	if !interpret {
		return resp, nil
	}
	return s.interpretRecord(ctx, rec, lang)
}

func (s *DivinationService) GetReading(ctx context.Context, id string) (domain.ReadingRecord, error) {
	rec, err := s.readings.GetReading(ctx, id)
	if err != nil {
		return domain.ReadingRecord{}, fmt.Errorf("get reading: %w", err)
	}
	return rec, nil
}

// InterpretReading interprets a stored reading, e.g. one completed through a
// casting session.
func (s *DivinationService) InterpretReading(ctx context.Context, id, lang string) (CastResponse, error) {
	rec, err := s.readings.GetReading(ctx, id)
	if err != nil {
		return CastResponse{}, fmt.Errorf("get reading: %w", err)
	}
	return s.interpretRecord(ctx, rec, lang)
}

func (s *DivinationService) interpretRecord(ctx context.Context, rec domain.ReadingRecord, lang string) (CastResponse, error) {
	if s.interpreter == nil {
		return CastResponse{}, domain.ErrNoInterpreter
	}

	summary := rec.Reading.Summary()
	llmInput := ports.InterpretInput{
		Question:      rec.Question,
		Lang:          lang,
		Primary:       summary.Primary,
		Transformed:   summary.Transformed,
		ChangingLines: summary.ChangingLines,
		Values:        rec.Reading.Values(),
	}

	start := time.Now()
	interpretation, err := s.interpreter.Interpret(ctx, llmInput)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return CastResponse{Record: rec}, fmt.Errorf("interpret reading %s: %w", rec.ID, err)
	}

	return CastResponse{
		Record:         rec,
		Interpretation: &interpretation,
		Model:          interpretationModel(interpretation.Model, s.model),
		LatencyMS:      latency,
	}, nil
}

// LookupHexagram resolves key as a King Wen number ("11") or a top-first
// binary signature ("000111").
func (s *DivinationService) LookupHexagram(ctx context.Context, key string) (HexagramView, error) {
	h, err := resolveHexagramKey(key)
	if err != nil {
		return HexagramView{}, err
	}
	upper, err := h.Upper()
	if err != nil {
		return HexagramView{}, fmt.Errorf("%w: %w", domain.ErrDataIntegrity, err)
	}
	lower, err := h.Lower()
	if err != nil {
		return HexagramView{}, fmt.Errorf("%w: %w", domain.ErrDataIntegrity, err)
	}

	view := HexagramView{Hexagram: h, Upper: upper, Lower: lower}
	if s.details != nil {
		d, err := s.details.GetDetails(ctx, h.Number)
		switch {
		case err == nil:
			view.Details = &d
		case errors.Is(err, domain.ErrHexagramNotFound):
			s.opts.logger.WarnContext(ctx, "no details for hexagram", "number", h.Number)
		default:
			return HexagramView{}, fmt.Errorf("get details: %w", err)
		}
	}
	return view, nil
}

// History returns the most recent readings, newest first.
func (s *DivinationService) History(ctx context.Context, limit int) ([]domain.ReadingRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	recs, err := s.readings.ListReadings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return recs, nil
}

func resolveHexagramKey(key string) (domain.Hexagram, error) {
	if len(key) == domain.LinesPerHexagram {
		if h, err := domain.HexagramByBinary(key); err == nil {
			return h, nil
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return domain.Hexagram{}, fmt.Errorf("%w: hexagram key %q is neither a number nor a binary signature", domain.ErrInvalidInput, key)
	}
	return domain.HexagramByNumber(n)
}

func interpretationModel(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}
