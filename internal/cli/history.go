package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/bootstrap"
	"github.com/nathankoerschner/threecoins/internal/domain"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DBPath string
	Limit  int
}

func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recent readings, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if opts.DBPath == "" {
				return formatter.Fail(ExitCommandError, "--db is required", nil)
			}

			stores, err := bootstrap.OpenStores(opts.DBPath)
			if err != nil {
				return formatter.Fail(ExitCommandError, "open store", err)
			}
			defer stores.Close()

			svc := app.NewDivinationService(bootstrap.StdRNG{}, nil, nil, stores.Readings, "",
				app.WithLogger(newLogger(rootOpts, cmd.ErrOrStderr())))
			recs, err := svc.History(cmd.Context(), opts.Limit)
			if err != nil {
				return formatter.Fail(failureCode(err), "list readings", err)
			}
			if recs == nil {
				recs = []domain.ReadingRecord{}
			}

			return formatter.Success(recs, func(w io.Writer) {
				if len(recs) == 0 {
					fmt.Fprintln(w, "No readings yet.")
					return
				}
				for _, rec := range recs {
					renderHistoryLine(w, rec)
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database holding reading history")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum readings to list")

	return cmd
}

func renderHistoryLine(w io.Writer, rec domain.ReadingRecord) {
	r := rec.Reading
	line := fmt.Sprintf("%s  %s %s", r.CreatedAt.Format("2006-01-02 15:04"), r.Primary.Symbol(), r.Primary)
	if r.Transformed != nil {
		line += fmt.Sprintf(" -> %s %s", r.Transformed.Symbol(), *r.Transformed)
	}
	if rec.Question != "" {
		line += fmt.Sprintf("  %q", rec.Question)
	}
	fmt.Fprintln(w, line)
}
