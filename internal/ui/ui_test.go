package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/i18n"
)

func init() {
	color.NoColor = true
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer

	PrintSuccess(&buf, "done")
	PrintError(&buf, "failed")
	PrintWarning(&buf, "careful")
	PrintInfo(&buf, "note")
	PrintKeyValue(&buf, "Branch", "main")

	assert.Equal(t, "✓ done\n✗ failed\n! careful\ni note\n   Branch: main\n", buf.String())
}

func TestHandleAppError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppError(&buf, errors.New("boom"), false, nil)
		assert.Equal(t, "✗ boom\n", buf.String())
	})

	t.Run("nil error prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		HandleAppError(&buf, nil, true, nil)
		assert.Empty(t, buf.String())
	})

	t.Run("app error with suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrRateLimit.
			WithError(errors.New("403 API rate limit")).
			WithContext("upstream", "API rate limit exceeded for user").
			WithContext("operation", "list commits")

		HandleAppError(&buf, err, false, nil)

		out := buf.String()
		assert.Contains(t, out, "Error [RETRIEVAL]: API rate limit exceeded")
		assert.Contains(t, out, "Details: 403 API rate limit")
		assert.Contains(t, out, "API rate limit exceeded for user")
		assert.Contains(t, out, "Suggestion: Wait a few minutes")
		assert.NotContains(t, out, "operation=list commits")
	})

	t.Run("debug prints context and chain", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrWriteReport.
			WithError(errors.New("disk full")).
			WithContext("path", "data/hello/report.csv")

		HandleAppError(&buf, err, true, nil)

		out := buf.String()
		assert.Contains(t, out, "path=data/hello/report.csv")
		assert.Contains(t, out, "└ disk full")
	})

	t.Run("translated labels", func(t *testing.T) {
		trans, err := i18n.NewTranslations("es")
		require.NoError(t, err)

		var buf bytes.Buffer
		HandleAppError(&buf, domainErrors.ErrEmptyHistory, false, trans)

		out := buf.String()
		assert.Contains(t, out, trans.GetMessage("error_label", 0, nil)+" [EMPTY_HISTORY]")
		assert.Contains(t, out, trans.GetMessage("error_suggestion", 0, nil)+": Pick another branch")
	})
}

func TestPrintFilesTree(t *testing.T) {
	var buf bytes.Buffer

	PrintFilesTree(&buf, "Files", []string{
		"README.md",
		"internal/report/exporter.go",
		"internal/report/format.go",
		"cmd/main.go",
	})

	expected := "\nFiles\n" +
		"├── cmd/\n" +
		"│   └── main.go\n" +
		"├── internal/\n" +
		"│   └── report/\n" +
		"│       ├── exporter.go\n" +
		"│       └── format.go\n" +
		"└── README.md\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintFilesTree_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintFilesTree(&buf, "Files", nil)
	assert.Empty(t, buf.String())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	PrintTable(&buf, "Summary", []Row{
		{Label: "Commits", Value: "3"},
		{Label: "Total cost", Value: "1,980.50 $"},
	})

	expected := "┌─────────────────────────┐\n" +
		"│ Summary                 │\n" +
		"├─────────────────────────┤\n" +
		"│ Commits    │          3 │\n" +
		"│ Total cost │ 1,980.50 $ │\n" +
		"└─────────────────────────┘\n"
	assert.Equal(t, expected, buf.String())
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4, false))
	assert.Equal(t, "  ab", pad("ab", 4, true))
	assert.Equal(t, "abcdef", pad("abcdef", 4, true))
	assert.Equal(t, "тест ", pad("тест", 5, false))
}
