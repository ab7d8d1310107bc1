// Package estimate holds the commit and branch commands.
package estimate

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/predictor"
	"github.com/thomas-vilte/commitcost/internal/report"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"github.com/urfave/cli/v3"
)

// Flag names. The global ones live on the root command and are read through the lineage.
const (
	FlagConfig      = "config"
	FlagVerbose     = "verbose"
	FlagDebug       = "debug"
	FlagModel       = "model"
	FlagProvider    = "provider"
	FlagConcurrency = "concurrency"

	flagBranch = "branch"
	flagOutput = "output"
)

// GlobalFlags returns the flags shared by every estimate command.
func GlobalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   t.GetMessage("flag_config", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagVerbose,
			Usage: t.GetMessage("flag_verbose", 0, nil),
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: t.GetMessage("flag_debug", 0, nil),
		},
		&cli.StringFlag{
			Name:    FlagModel,
			Aliases: []string{"m"},
			Usage:   t.GetMessage("flag_model", 0, nil),
		},
		&cli.StringFlag{
			Name:  FlagProvider,
			Usage: t.GetMessage("flag_provider", 0, nil),
		},
		&cli.IntFlag{
			Name:  FlagConcurrency,
			Usage: t.GetMessage("flag_concurrency", 0, nil),
		},
	}
}

type settings struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

type Option func(*settings)

// WithOutput redirects console output. Logs and errors go to errOut.
func WithOutput(out, errOut io.Writer) Option {
	return func(s *settings) {
		s.out = out
		s.errOut = errOut
	}
}

// WithClock overrides the clock used to stamp and name reports.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		out:    os.Stdout,
		errOut: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// environment is everything an estimate command needs once startup succeeded.
type environment struct {
	cfg    *config.Config
	repo   vcs.Repository
	source vcs.CommitSource
	model  predictor.Predictor
	format report.NumberFormat
}

// prepare runs the startup sequence: config, model artifact, token and commit source.
// Nothing is retrieved from the provider before the model loaded.
func prepare(ctx context.Context, cmd *cli.Command, base *config.Config, t *i18n.Translations, sources *vcs.Registry, repoID string) (*environment, error) {
	cfg, err := resolveConfig(cmd, base)
	if err != nil {
		return nil, err
	}
	if cfg.Language != t.Language() {
		if err := t.SetLanguage(cfg.Language); err != nil {
			return nil, err
		}
	}

	repo, err := vcs.ParseRepository(repoID)
	if err != nil {
		return nil, err
	}

	format, err := report.NewNumberFormat(cfg.NumberLocale, cfg.Currency)
	if err != nil {
		return nil, err
	}

	var model *predictor.LinearModel
	err = ui.WithSpinner(t.GetMessage("loading_model", 0, nil), func() error {
		var loadErr error
		model, loadErr = predictor.Load(cfg.ModelPath)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	source, err := sources.CreateSource(ctx, cfg.Provider, repo, cfg.Token, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "startup complete",
		"provider", cfg.Provider,
		"repository", repo.FullName(),
		"model", cfg.ModelPath)

	return &environment{
		cfg:    cfg,
		repo:   repo,
		source: source,
		model:  model,
		format: format,
	}, nil
}

// resolveConfig applies --config and the per-run flag overrides on top of base.
func resolveConfig(cmd *cli.Command, base *config.Config) (*config.Config, error) {
	cfg := *base
	if path := cmd.String(FlagConfig); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if cmd.IsSet(FlagModel) {
		cfg.ModelPath = cmd.String(FlagModel)
	}
	if cmd.IsSet(FlagProvider) {
		cfg.Provider = cmd.String(FlagProvider)
	}
	if cmd.IsSet(FlagConcurrency) {
		cfg.Concurrency = int(cmd.Int(FlagConcurrency))
	}
	if cmd.IsSet(flagOutput) {
		cfg.ReportDir = cmd.String(flagOutput)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// commandContext attaches a logger honoring --debug and --verbose.
func commandContext(ctx context.Context, cmd *cli.Command, w io.Writer) context.Context {
	return logger.WithLogger(ctx, logger.New(w, cmd.Bool(FlagDebug), cmd.Bool(FlagVerbose)))
}

// reportLabels fills the report texts from the active language.
func reportLabels(t *i18n.Translations) report.Labels {
	msg := func(id string) string {
		return t.GetMessage(id, 0, nil)
	}

	return report.Labels{
		Title:       msg("report_title"),
		Repository:  msg("report_repository"),
		Branch:      msg("report_branch"),
		GeneratedAt: msg("report_generated_at"),

		Number:    msg("report_col_number"),
		Hash:      msg("report_col_hash"),
		Message:   msg("report_col_message"),
		Additions: msg("report_col_additions"),
		Deletions: msg("report_col_deletions"),
		Files:     msg("report_col_files"),
		Cost:      msg("report_col_cost"),

		Totals:         msg("report_totals"),
		TotalCommits:   msg("report_total_commits"),
		TotalAdditions: msg("report_total_additions"),
		TotalDeletions: msg("report_total_deletions"),
		TotalFiles:     msg("report_total_files"),
		TotalCost:      msg("report_total_cost"),
		AverageCost:    msg("report_average_cost"),
	}
}
