package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/commitcost/internal/config"
	"github.com/thomas-vilte/commitcost/internal/i18n"
	"github.com/urfave/cli/v3"
)

func TestFullVersion(t *testing.T) {
	assert.Equal(t, "v"+Version, FullVersion())
}

func TestVersionCommand(t *testing.T) {
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	var out bytes.Buffer
	f := &CommandFactory{out: &out}
	app := &cli.Command{Name: "commitcost", Commands: []*cli.Command{f.CreateCommand(trans, config.Default())}}

	require.NoError(t, app.Run(context.Background(), []string{"commitcost", "version"}))
	assert.Equal(t, "commitcost v"+Version+"\n", out.String())
}
