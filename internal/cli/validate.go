package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nathankoerschner/threecoins/internal/adapters/details"
	"github.com/nathankoerschner/threecoins/internal/domain"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid     bool `json:"valid"`
	Hexagrams int  `json:"hexagrams"`
	Trigrams  int  `json:"trigrams"`
	Details   int  `json:"details"`
}

func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the built-in hexagram and trigram tables",
		Long: `Check that the 64 hexagrams and 8 trigrams are complete and consistent:
unique numbers and signatures, and halves that match their trigrams.
Also checks that every hexagram has commentary.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			if err := domain.ValidateTables(); err != nil {
				return formatter.Fail(ExitFailure, "table validation failed", err)
			}
			formatter.VerboseLog("hexagram and trigram tables ok")

			n, err := details.NewEmbeddedStore().Count()
			if err != nil {
				return formatter.Fail(ExitFailure, "commentary validation failed", err)
			}
			if n != len(domain.Hexagrams()) {
				return formatter.Fail(ExitFailure, fmt.Sprintf("commentary covers %d of %d hexagrams", n, len(domain.Hexagrams())), domain.ErrDataIntegrity)
			}

			result := ValidationResult{
				Valid:     true,
				Hexagrams: len(domain.Hexagrams()),
				Trigrams:  len(domain.Trigrams()),
				Details:   n,
			}
			return formatter.Success(result, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %d hexagrams, %d trigrams and %d commentaries valid\n", result.Hexagrams, result.Trigrams, result.Details)
			})
		},
	}
	return cmd
}
