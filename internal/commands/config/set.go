package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thomas-vilte/commitcost/internal/config"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() != 2 {
				return fmt.Errorf("%s", t.GetMessage("config_set_error_args", 0, nil))
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			updated := *cfg
			if err := setValue(&updated, key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(&updated); err != nil {
				return err
			}

			*cfg = updated
			ui.PrintSuccess(c.out, t.GetMessage("config_set_success", 0, map[string]interface{}{
				"Key":   key,
				"Value": value,
			}))
			return nil
		},
	}
}

func setValue(cfg *config.Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "base_url", "base-url":
		cfg.BaseURL = value
	case "model_path", "model":
		cfg.ModelPath = value
	case "report_dir", "output":
		cfg.ReportDir = value
	case "language", "lang":
		cfg.Language = value
	case "number_locale", "locale":
		cfg.NumberLocale = value
	case "currency":
		cfg.Currency = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domainErrors.ErrInvalidConfig.
				WithError(err).
				WithContext("key", key).
				WithContext("value", value)
		}
		cfg.Concurrency = n
	case "datetime_layout":
		cfg.DateTimeLayout = value
	default:
		return domainErrors.ErrInvalidConfig.
			WithError(fmt.Errorf("unknown configuration key: %s", key)).
			WithContext("key", key).
			WithSuggestion("Keys: provider, base_url, model_path, report_dir, language, number_locale, currency, concurrency, datetime_layout")
	}
	return nil
}
