package config

import (
	"context"
	"strconv"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(c.out, t.GetMessage("current_config", 0, map[string]interface{}{"Path": cfg.PathFile}))

			ui.PrintKeyValue(c.out, "provider", cfg.Provider)
			if cfg.BaseURL != "" {
				ui.PrintKeyValue(c.out, "base_url", cfg.BaseURL)
			}
			ui.PrintKeyValue(c.out, "model_path", cfg.ModelPath)
			ui.PrintKeyValue(c.out, "report_dir", cfg.ReportDir)
			ui.PrintKeyValue(c.out, "language", cfg.Language)
			ui.PrintKeyValue(c.out, "number_locale", cfg.NumberLocale)
			ui.PrintKeyValue(c.out, "currency", cfg.Currency)
			ui.PrintKeyValue(c.out, "concurrency", strconv.Itoa(cfg.Concurrency))
			ui.PrintKeyValue(c.out, "datetime_layout", cfg.DateTimeLayout)

			if cfg.Token == "" {
				ui.PrintWarning(c.out, t.GetMessage("token_not_set", 0, nil))
			} else {
				ui.PrintKeyValue(c.out, "REPO_TOKEN", maskToken(cfg.Token))
			}

			return nil
		},
	}
}

// maskToken keeps the last four characters visible.
func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return "****"
	}
	return "****" + token[len(token)-visible:]
}
