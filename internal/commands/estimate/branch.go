package estimate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/models"
	"github.com/thomas-vilte/commitcost/internal/report"
	"github.com/thomas-vilte/commitcost/internal/services/estimation"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"github.com/urfave/cli/v3"
)

type BranchCommandFactory struct {
	sources  *vcs.Registry
	settings settings
}

func NewBranchCommandFactory(sources *vcs.Registry, opts ...Option) *BranchCommandFactory {
	return &BranchCommandFactory{
		sources:  sources,
		settings: newSettings(opts),
	}
}

func (f *BranchCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "branch",
		Aliases:   []string{"estimate:repository"},
		Usage:     t.GetMessage("branch_command_usage", 0, nil),
		ArgsUsage: "<owner/repo>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagBranch,
				Aliases: []string{"b"},
				Usage:   t.GetMessage("flag_branch", 0, nil),
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   t.GetMessage("flag_output", 0, nil),
			},
		},
		Action: f.createAction(t, cfg),
	}
}

func (f *BranchCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 1 {
			return fmt.Errorf("%s", t.GetMessage("error_branch_args", 0, nil))
		}

		ctx = commandContext(ctx, cmd, f.settings.errOut)

		env, err := prepare(ctx, cmd, cfg, t, f.sources, cmd.Args().First())
		if err != nil {
			return err
		}

		out := f.settings.out
		printConnection(ctx, out, t, env)

		svc := estimation.NewService(env.source, env.model,
			estimation.WithConcurrency(env.cfg.Concurrency),
			estimation.WithClock(f.settings.now),
			estimation.WithResolved(func(r estimation.Resolution) {
				printResolution(out, t, r)
			}),
			estimation.WithProgress(func(p models.EstimationProgress) {
				printProgress(out, t, env.format, p)
			}),
		)

		estimate, err := svc.EstimateBranch(ctx, cmd.String(flagBranch))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out)
		ui.PrintSuccess(out, t.GetMessage("commits_processed", estimate.Report.Statistics.TotalCommits, nil))

		exporter := report.NewExporter(
			report.WithLabels(reportLabels(t)),
			report.WithNumberFormat(env.format),
			report.WithDateTimeLayout(env.cfg.DateTimeLayout),
			report.WithClock(f.settings.now),
		)
		dir := filepath.Join(env.cfg.ReportDir, env.repo.Name)
		path, exportErr := exporter.Export(ctx, estimate.Report, dir)

		printSummary(out, t, env.format, estimate.Report.Statistics)

		if exportErr != nil {
			ui.PrintWarning(out, t.GetMessage("report_failed", 0, nil))
			return exportErr
		}

		ui.PrintSuccess(out, t.GetMessage("report_saved", 0, map[string]interface{}{"Path": path}))
		return nil
	}
}

// printConnection reports who the token authenticates as. A failed check does not stop the run,
// some tokens can read repositories but not the user endpoint.
func printConnection(ctx context.Context, w io.Writer, t *i18n.Translations, env *environment) {
	user, err := env.source.AuthenticatedUser(ctx)
	if err != nil {
		logger.Warn(ctx, "connection check failed", "error", err)
	} else {
		ui.PrintSuccess(w, t.GetMessage("connection_ok", 0, map[string]interface{}{
			"Provider": env.cfg.Provider,
			"User":     user,
		}))
	}
	ui.PrintInfo(w, t.GetMessage("repository_label", 0, map[string]interface{}{"Repository": env.repo.FullName()}))
}

func printResolution(w io.Writer, t *i18n.Translations, r estimation.Resolution) {
	_, _ = fmt.Fprintf(w, "\n%s\n", t.GetMessage("available_branches", len(r.Branches), nil))
	marker := t.GetMessage("default_branch_marker", 0, nil)
	for _, b := range r.Branches {
		if b.Name == r.DefaultBranch {
			_, _ = fmt.Fprintf(w, "  - %s %s\n", b.Name, ui.Dim.Sprintf("(%s)", marker))
			continue
		}
		_, _ = fmt.Fprintf(w, "  - %s\n", b.Name)
	}
	_, _ = fmt.Fprintln(w)

	if r.FellBack {
		ui.PrintWarning(w, t.GetMessage("branch_fallback", 0, map[string]interface{}{
			"Requested": r.RequestedBranch,
			"Default":   r.DefaultBranch,
		}))
	}
	ui.PrintInfo(w, t.GetMessage("estimating_branch", 0, map[string]interface{}{"Branch": r.ResolvedBranch}))
}

// printProgress prints one line per finished commit:
// [i/n] hash summary | +additions -deletions | files | cost
func printProgress(w io.Writer, t *i18n.Translations, format report.NumberFormat, p models.EstimationProgress) {
	r := p.Record
	_, _ = fmt.Fprintf(w, "%s %s %s | %s | %s | %s\n",
		ui.Dim.Sprintf("[%d/%d]", p.Current, p.Total),
		ui.Info.Sprint(r.Hash),
		report.CleanMessage(r.Summary),
		strings.Join([]string{
			ui.Success.Sprintf("+%s", format.Int(r.Additions)),
			ui.Error.Sprintf("-%s", format.Int(r.Deletions)),
		}, " "),
		t.GetMessage("files_count", r.FilesChanged, nil),
		ui.Accent.Sprint(format.Cost(r.Cost)),
	)
}

func printSummary(w io.Writer, t *i18n.Translations, format report.NumberFormat, stats models.BranchStatistics) {
	labels := reportLabels(t)

	_, _ = fmt.Fprintln(w)
	ui.PrintTable(w, t.GetMessage("summary_title", 0, nil), []ui.Row{
		{Label: labels.TotalCommits, Value: format.Int(stats.TotalCommits)},
		{Label: labels.TotalAdditions, Value: format.Int(stats.TotalAdditions)},
		{Label: labels.TotalDeletions, Value: format.Int(stats.TotalDeletions)},
		{Label: labels.TotalFiles, Value: format.Int(stats.TotalFiles)},
		{Label: labels.TotalCost, Value: format.Cost(stats.TotalCost)},
		{Label: labels.AverageCost, Value: format.Cost(stats.AverageCost)},
	})
}
