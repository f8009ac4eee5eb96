package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathankoerschner/threecoins/internal/adapters/details"
	"github.com/nathankoerschner/threecoins/internal/adapters/store/memory"
	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/bootstrap"
	"github.com/nathankoerschner/threecoins/internal/domain"
)

// HexagramResult is the JSON payload of the hexagram command.
type HexagramResult struct {
	Hexagram domain.Hexagram         `json:"hexagram"`
	Symbol   string                  `json:"symbol"`
	Upper    domain.Trigram          `json:"upper"`
	Lower    domain.Trigram          `json:"lower"`
	Details  *domain.HexagramDetails `json:"details,omitempty"`
}

func NewHexagramCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexagram <number|binary>",
		Short: "Look up a hexagram by King Wen number or binary signature",
		Long: `Show one of the 64 hexagrams with its trigrams and commentary.

The key is either the King Wen number (1-64) or the six-digit binary
signature written top line first, 1 for yang and 0 for yin.`,
		Example:       "  threecoins hexagram 11\n  threecoins hexagram 000111",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			logger := newLogger(rootOpts, cmd.ErrOrStderr())

			svc := app.NewDivinationService(bootstrap.StdRNG{}, nil, details.NewEmbeddedStore(), memory.New(), "", app.WithLogger(logger))
			view, err := svc.LookupHexagram(cmd.Context(), args[0])
			if err != nil {
				return formatter.Fail(failureCode(err), "lookup failed", err)
			}

			result := HexagramResult{
				Hexagram: view.Hexagram,
				Symbol:   view.Hexagram.Symbol(),
				Upper:    view.Upper,
				Lower:    view.Lower,
				Details:  view.Details,
			}
			return formatter.Success(result, func(w io.Writer) { renderHexagram(w, result) })
		},
	}
	return cmd
}

func renderHexagram(w io.Writer, r HexagramResult) {
	h := r.Hexagram
	fmt.Fprintf(w, "%s %s  %s\n", r.Symbol, h, h.Pinyin)
	for _, bit := range h.Binary {
		if bit == '1' {
			fmt.Fprintf(w, "  %s\n", yangGlyph)
		} else {
			fmt.Fprintf(w, "  %s\n", yinGlyph)
		}
	}
	fmt.Fprintf(w, "Upper: %s %s (%s, %s)\n", r.Upper.Symbol, r.Upper.Name, r.Upper.Image, r.Upper.Attribute)
	fmt.Fprintf(w, "Lower: %s %s (%s, %s)\n", r.Lower.Symbol, r.Lower.Name, r.Lower.Image, r.Lower.Attribute)

	if d := r.Details; d != nil {
		fmt.Fprintf(w, "\nJudgment: %s\n", d.Judgment)
		fmt.Fprintf(w, "Image:    %s\n", d.Image)
		if len(d.Keywords) > 0 {
			fmt.Fprintf(w, "Keywords: %s\n", strings.Join(d.Keywords, ", "))
		}
	}
}
