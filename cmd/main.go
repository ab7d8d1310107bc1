package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thomas-vilte/commitcost/internal/commands/config"
	"github.com/thomas-vilte/commitcost/internal/commands/estimate"
	"github.com/thomas-vilte/commitcost/internal/commands/registry"
	cfg "github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/ui"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"github.com/thomas-vilte/commitcost/internal/vcs/github"
	"github.com/thomas-vilte/commitcost/internal/vcs/gitlab"
	"github.com/thomas-vilte/commitcost/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Initialize(false, false)

	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, false, nil)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, app.Bool(estimate.FlagDebug), translations)
		stop()
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	if err := cfg.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfgApp, err := cfg.LoadConfig(os.Getenv("COMMITCOST_CONFIG"))
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	sources := vcs.NewRegistry()
	if err := sources.Register(github.NewGitHubProviderFactory()); err != nil {
		return nil, nil, err
	}
	if err := sources.Register(gitlab.NewGitLabProviderFactory()); err != nil {
		return nil, nil, err
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	factories := map[string]registry.CommandFactory{
		"commit":  estimate.NewCommitCommandFactory(sources),
		"branch":  estimate.NewBranchCommandFactory(sources),
		"config":  config.NewConfigCommandFactory(),
		"version": version.NewVersionCommandFactory(),
	}
	for name, factory := range factories {
		if err := registerCommand.Register(name, factory); err != nil {
			return nil, nil, err
		}
	}

	return &cli.Command{
		Name:        "commitcost",
		Usage:       translations.GetMessage("app_description", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags:       estimate.GlobalFlags(translations),
		Commands:    registerCommand.CreateCommands(),
	}, translations, nil
}
