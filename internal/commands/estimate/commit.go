package estimate

import (
	"context"
	"fmt"
	"io"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/report"
	"github.com/thomas-vilte/commitcost/internal/services/estimation"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"github.com/urfave/cli/v3"
)

type CommitCommandFactory struct {
	sources  *vcs.Registry
	settings settings
}

func NewCommitCommandFactory(sources *vcs.Registry, opts ...Option) *CommitCommandFactory {
	return &CommitCommandFactory{
		sources:  sources,
		settings: newSettings(opts),
	}
}

func (f *CommitCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "commit",
		Aliases:   []string{"estimate:commit"},
		Usage:     t.GetMessage("commit_command_usage", 0, nil),
		ArgsUsage: "<owner/repo> <hash>",
		Action:    f.createAction(t, cfg),
	}
}

func (f *CommitCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 2 {
			return fmt.Errorf("%s", t.GetMessage("error_commit_args", 0, nil))
		}
		repoID, hash := cmd.Args().Get(0), cmd.Args().Get(1)

		ctx = commandContext(ctx, cmd, f.settings.errOut)

		env, err := prepare(ctx, cmd, cfg, t, f.sources, repoID)
		if err != nil {
			return err
		}

		svc := estimation.NewService(env.source, env.model)

		var estimate *estimation.CommitEstimate
		err = ui.WithSpinner(t.GetMessage("fetching_commit", 0, map[string]interface{}{"Hash": hash}), func() error {
			var estErr error
			estimate, estErr = svc.EstimateCommit(ctx, hash)
			return estErr
		})
		if err != nil {
			return err
		}

		printCommitEstimate(f.settings.out, t, env, estimate)
		return nil
	}
}

func printCommitEstimate(w io.Writer, t *i18n.Translations, env *environment, estimate *estimation.CommitEstimate) {
	detail := estimate.Detail
	msg := func(id string) string {
		return t.GetMessage(id, 0, nil)
	}

	ui.PrintSectionBanner(w, msg("commit_details_title"))
	ui.PrintKeyValue(w, msg("report_repository"), env.repo.FullName())
	ui.PrintKeyValue(w, msg("commit_hash"), detail.Hash)
	ui.PrintKeyValue(w, msg("commit_author"), detail.Author)
	if !detail.Date.IsZero() {
		ui.PrintKeyValue(w, msg("commit_date"), detail.Date.Format(env.cfg.DateTimeLayout))
	}
	ui.PrintKeyValue(w, msg("commit_message"), report.CleanMessage(detail.Message))

	ui.PrintSectionBanner(w, msg("commit_stats_title"))
	ui.PrintKeyValue(w, msg("report_col_additions"), "+"+env.format.Int(detail.Additions))
	ui.PrintKeyValue(w, msg("report_col_deletions"), "-"+env.format.Int(detail.Deletions))
	ui.PrintKeyValue(w, msg("report_col_files"), t.GetMessage("files_count", detail.FilesChanged(), nil))
	ui.PrintFilesTree(w, msg("report_col_files")+":", detail.Files)

	_, _ = fmt.Fprintln(w)
	ui.PrintSuccess(w, fmt.Sprintf("%s: %s", msg("estimated_cost"), env.format.Cost(estimate.Record.Cost)))
}
