package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nathankoerschner/threecoins/internal/adapters/details"
	"github.com/nathankoerschner/threecoins/internal/app"
	"github.com/nathankoerschner/threecoins/internal/bootstrap"
	"github.com/nathankoerschner/threecoins/internal/config"
	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// ReadingOptions are the flags shared by cast and values.
type ReadingOptions struct {
	Question  string
	Lang      string
	Interpret bool
	DBPath    string
}

// CastOptions holds flags for the cast command.
type CastOptions struct {
	ReadingOptions
	Seed uint64
}

// loadInterpreter reads LLM settings from the environment. Replaced in tests.
var loadInterpreter = func(logger *slog.Logger) (ports.Interpreter, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	interp, err := bootstrap.NewInterpreter(cfg, logger)
	if err != nil {
		return nil, "", err
	}
	return interp, cfg.LLMModel, nil
}

// CastResult is the JSON payload of cast and values.
type CastResult struct {
	Record         domain.ReadingRecord   `json:"record"`
	Interpretation *ports.InterpretOutput `json:"interpretation,omitempty"`
	Model          string                 `json:"model,omitempty"`
}

func NewCastCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CastOptions{}

	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Toss three coins six times and show the reading",
		Long: `Cast a full hexagram by tossing three coins for each of the six
lines, bottom line first.

Use --seed to replay a cast, and --db to keep it in history.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng domain.RNG = bootstrap.StdRNG{}
			if cmd.Flags().Changed("seed") {
				rng = bootstrap.NewSeededRNG(opts.Seed)
			}
			return runReading(cmd, rootOpts, opts.ReadingOptions, rng, func(ctx context.Context, svc *app.DivinationService) (app.CastResponse, error) {
				return svc.Cast(ctx, app.CastRequest{
					Question:  opts.Question,
					Lang:      opts.Lang,
					Interpret: opts.Interpret,
				})
			})
		},
	}

	addReadingFlags(cmd, &opts.ReadingOptions)
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed the coin tosses for a repeatable cast")

	return cmd
}

func addReadingFlags(cmd *cobra.Command, opts *ReadingOptions) {
	cmd.Flags().StringVarP(&opts.Question, "question", "q", "", "question to ask")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "interpretation language (BCP 47 tag)")
	cmd.Flags().BoolVar(&opts.Interpret, "interpret", false, "ask the configured LLM for an interpretation")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database for reading history")
}

type readingFunc func(ctx context.Context, svc *app.DivinationService) (app.CastResponse, error)

func runReading(cmd *cobra.Command, rootOpts *RootOptions, opts ReadingOptions, rng domain.RNG, read readingFunc) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(rootOpts, cmd.ErrOrStderr())

	stores, err := bootstrap.OpenStores(opts.DBPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, "open store", err)
	}
	defer stores.Close()

	var (
		interp ports.Interpreter
		model  string
	)
	if opts.Interpret {
		interp, model, err = loadInterpreter(logger)
		if err != nil {
			return formatter.Fail(ExitCommandError, "load interpreter", err)
		}
	}

	svc := app.NewDivinationService(rng, interp, details.NewEmbeddedStore(), stores.Readings, model, app.WithLogger(logger))
	resp, err := read(cmd.Context(), svc)
	if err != nil {
		return formatter.Fail(failureCode(err), "reading failed", err)
	}
	formatter.VerboseLog("reading %s saved", resp.Record.ID)

	result := CastResult{Record: resp.Record, Interpretation: resp.Interpretation, Model: resp.Model}
	return formatter.Success(result, func(w io.Writer) {
		renderReading(w, resp.Record)
		if resp.Interpretation != nil {
			renderInterpretation(w, *resp.Interpretation)
		}
	})
}

func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
