package version

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/urfave/cli/v3"
)

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "0.1.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}

type CommandFactory struct {
	out io.Writer
}

func NewVersionCommandFactory() *CommandFactory {
	return &CommandFactory{out: os.Stdout}
}

func (f *CommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(f.out, "commitcost %s\n", FullVersion())
			return err
		},
	}
}
