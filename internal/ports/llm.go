package ports

import (
	"context"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

// InterpretInput holds everything the LLM needs to generate an interpretation.
type InterpretInput struct {
	Question      string
	Lang          string
	Primary       domain.HexagramSummary
	Transformed   *domain.HexagramSummary
	ChangingLines []int
	// Values are the traditional numbers, bottom line first.
	Values []int
}

// InterpretOutput is the structured interpretation returned by the LLM.
type InterpretOutput struct {
	Text       string `json:"text"`
	Style      string `json:"style"`
	Disclaimer string `json:"disclaimer"`
	Model      string `json:"-"`
}

// Interpreter generates an I Ching interpretation via an LLM.
type Interpreter interface {
	Interpret(ctx context.Context, in InterpretInput) (InterpretOutput, error)
}
