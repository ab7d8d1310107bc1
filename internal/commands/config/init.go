package config

import (
	"context"
	"os"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/urfave/cli/v3"
)

// newInitCommand writes the default settings to the configuration file.
func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   t.GetMessage("config_init_force_flag", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if _, err := os.Stat(cfg.PathFile); err == nil && !command.Bool("force") {
				ui.PrintWarning(c.out, t.GetMessage("config_init_exists", 0, map[string]interface{}{"Path": cfg.PathFile}))
				return nil
			}

			defaults := config.Default()
			defaults.PathFile = cfg.PathFile
			if err := config.SaveConfig(defaults); err != nil {
				return err
			}

			*cfg = *defaults
			ui.PrintSuccess(c.out, t.GetMessage("config_init_success", 0, map[string]interface{}{"Path": cfg.PathFile}))
			return nil
		},
	}
}
