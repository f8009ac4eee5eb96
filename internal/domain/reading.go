package domain

import (
	"slices"
	"time"
)

// Reading is the result of one completed six-line cast. It is a snapshot:
// nothing in this package modifies a Reading after it is built.
type Reading struct {
	Primary       Hexagram  `json:"primary"`
	Transformed   *Hexagram `json:"transformed"`
	ChangingLines []int     `json:"changing_lines"`
	Lines         []Line    `json:"lines"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssembleReading builds a reading stamped with the current time.
func AssembleReading(lines []Line) (Reading, error) {
	return AssembleReadingAt(lines, time.Now())
}

// AssembleReadingAt builds a reading with an explicit timestamp.
// The lines are copied.
func AssembleReadingAt(lines []Line, at time.Time) (Reading, error) {
	primary, err := FindPrimaryHexagram(lines)
	if err != nil {
		return Reading{}, err
	}
	transformed, err := FindTransformedHexagram(lines)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Primary:       primary,
		Transformed:   transformed,
		ChangingLines: ChangingLineIndices(lines),
		Lines:         slices.Clone(lines),
		CreatedAt:     at,
	}, nil
}

// ReadingSummary is what the interpretation backend needs from a reading.
type ReadingSummary struct {
	Primary       HexagramSummary  `json:"primary"`
	Transformed   *HexagramSummary `json:"transformed,omitempty"`
	ChangingLines []int            `json:"changing_lines"`
}

func (r Reading) Summary() ReadingSummary {
	s := ReadingSummary{
		Primary:       r.Primary.Summary(),
		ChangingLines: slices.Clone(r.ChangingLines),
	}
	if r.Transformed != nil {
		t := r.Transformed.Summary()
		s.Transformed = &t
	}
	return s
}

// Values returns the traditional numbers of the lines, bottom line first.
func (r Reading) Values() []int {
	out := make([]int, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Value
	}
	return out
}

// ReadingRecord is a reading as kept in history.
type ReadingRecord struct {
	ID        string  `json:"id"`
	SessionID string  `json:"session_id,omitempty"`
	Question  string  `json:"question,omitempty"`
	Reading   Reading `json:"reading"`
}
