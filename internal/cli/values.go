package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/bootstrap"
)

func NewValuesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadingOptions{}

	cmd := &cobra.Command{
		Use:   "values <v1> <v2> <v3> <v4> <v5> <v6>",
		Short: "Read a hexagram from line values cast with physical coins",
		Long: `Build a reading from six traditional line values, bottom line first:
6 old yin, 7 young yang, 8 young yin, 9 old yang.`,
		Example:       "  threecoins values 7 8 9 7 6 8",
		Args:          cobra.ExactArgs(6),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]int, len(args))
			for i, a := range args {
				v, err := strconv.Atoi(a)
				if err != nil {
					formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
					return formatter.Fail(ExitCommandError, "line "+strconv.Itoa(i+1)+" is not a number", err)
				}
				values[i] = v
			}
			return runReading(cmd, rootOpts, *opts, bootstrap.StdRNG{}, func(ctx context.Context, svc *app.DivinationService) (app.CastResponse, error) {
				return svc.ReadFromValues(ctx, app.ValuesRequest{
					Question:  opts.Question,
					Lang:      opts.Lang,
					Values:    values,
					Interpret: opts.Interpret,
				})
			})
		},
	}

	addReadingFlags(cmd, opts)
	return cmd
}
