package http

import (
	"time"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

// ReadingResponse is the JSON shape of a completed reading.
type ReadingResponse struct {
	ID             string              `json:"id"`
	SessionID      string              `json:"session_id,omitempty"`
	Question       string              `json:"question,omitempty"`
	Primary        HexagramResp        `json:"primary"`
	Transformed    *HexagramResp       `json:"transformed"`
	ChangingLines  []int               `json:"changing_lines"`
	Lines          []LineResp          `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
	Interpretation *InterpretationResp `json:"interpretation,omitempty"`
	Meta           *MetaResp           `json:"meta,omitempty"`
}

type HexagramResp struct {
	Number       int    `json:"number"`
	EnglishName  string `json:"english_name"`
	ChineseName  string `json:"chinese_name"`
	Pinyin       string `json:"pinyin"`
	Binary       string `json:"binary"`
	Symbol       string `json:"symbol"`
	UpperTrigram int    `json:"upper_trigram"`
	LowerTrigram int    `json:"lower_trigram"`
}

type LineResp struct {
	Position int             `json:"position"`
	Coins    [3]domain.Coin  `json:"coins"`
	Type     domain.LineType `json:"line_type"`
	Changing bool            `json:"is_changing"`
	Value    int             `json:"value"`
}

type InterpretationResp struct {
	Style      string `json:"style"`
	Text       string `json:"text"`
	Disclaimer string `json:"disclaimer"`
}

type MetaResp struct {
	Model     string `json:"model"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

// HexagramDetailResponse is returned by GET /v1/hexagrams/:key.
type HexagramDetailResponse struct {
	HexagramResp
	Upper    domain.Trigram          `json:"upper"`
	Lower    domain.Trigram          `json:"lower"`
	Details  *domain.HexagramDetails `json:"details,omitempty"`
	Sequence int                     `json:"sequence"`
}

type SessionResponse struct {
	ID        string           `json:"id"`
	Question  string           `json:"question,omitempty"`
	Lines     []LineResp       `json:"lines"`
	Complete  bool             `json:"complete"`
	Remaining int              `json:"remaining"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Reading   *ReadingResponse `json:"reading,omitempty"`
}

type HistoryResponse struct {
	Readings []ReadingResponse `json:"readings"`
}

// ValuesRequest is the body of POST /v1/readings.
type ValuesRequest struct {
	Values    []int  `json:"values"`
	Question  string `json:"question"`
	Lang      string `json:"lang"`
	Interpret bool   `json:"interpret"`
}

// StartSessionRequest is the body of POST /v1/sessions.
type StartSessionRequest struct {
	Question string `json:"question"`
}

// AddLineRequest is the optional body of POST /v1/sessions/:id/lines. With
// no value the server tosses the coins.
type AddLineRequest struct {
	Value *int `json:"value"`
}

// ErrorResponse carries the id of a reading that was stored before the
// request failed, so clients can fetch or re-interpret it.
type ErrorResponse struct {
	Error     string `json:"error"`
	ReadingID string `json:"reading_id,omitempty"`
}

func toHexagramResp(h domain.Hexagram) HexagramResp {
	return HexagramResp{
		Number:       h.Number,
		EnglishName:  h.EnglishName,
		ChineseName:  h.ChineseName,
		Pinyin:       h.Pinyin,
		Binary:       h.Binary,
		Symbol:       h.Symbol(),
		UpperTrigram: h.UpperTrigram,
		LowerTrigram: h.LowerTrigram,
	}
}

func toLineResps(lines []domain.Line) []LineResp {
	out := make([]LineResp, len(lines))
	for i, l := range lines {
		out[i] = LineResp{
			Position: i + 1,
			Coins:    l.Coins,
			Type:     l.Type,
			Changing: l.Changing,
			Value:    l.Value,
		}
	}
	return out
}

func toReadingResponse(rec domain.ReadingRecord) ReadingResponse {
	r := rec.Reading
	resp := ReadingResponse{
		ID:            rec.ID,
		SessionID:     rec.SessionID,
		Question:      rec.Question,
		Primary:       toHexagramResp(r.Primary),
		ChangingLines: r.ChangingLines,
		Lines:         toLineResps(r.Lines),
		CreatedAt:     r.CreatedAt,
	}
	if resp.ChangingLines == nil {
		resp.ChangingLines = []int{}
	}
	if r.Transformed != nil {
		t := toHexagramResp(*r.Transformed)
		resp.Transformed = &t
	}
	return resp
}

func toSessionResponse(s *domain.Session, rec *domain.ReadingRecord) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		Question:  s.Question,
		Lines:     toLineResps(s.Lines),
		Complete:  s.Complete,
		Remaining: s.Remaining(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if rec != nil {
		r := toReadingResponse(*rec)
		resp.Reading = &r
	}
	return resp
}
