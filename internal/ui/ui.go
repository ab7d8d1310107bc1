package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// SmartSpinner is a spinner that writes to stderr so it never mixes with piped output.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+initialMessage),
		spinner.WithWriter(os.Stderr),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint("✓"), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("✗"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Warning.Sprint("!"), Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Info.Sprint("i"), Info.Sprint(msg))
}

func PrintSectionBanner(w io.Writer, title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	_, _ = fmt.Fprintf(w, "\n%s\n", separator)
	_, _ = fmt.Fprintf(w, "%s\n", Accent.Sprint(title))
	_, _ = fmt.Fprintf(w, "%s\n", separator)
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError prints err in a friendly way. With debug set the error context and the
// whole wrapped chain are printed too. If translations is nil, English labels are used.
func HandleAppError(w io.Writer, err error, debug bool, t *i18n.Translations) {
	if err == nil {
		return
	}

	label := func(id, fallback string) string {
		if t == nil {
			return fallback
		}
		return t.GetMessage(id, 0, nil)
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	suggestionColor := color.New(color.FgCyan)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("✗"), Error.Sprintf("%s [%s]: %s", label("error_label", "Error"), appErr.Type, appErr.Message))

	if appErr.Err != nil {
		_, _ = fmt.Fprintf(w, "   %s\n", Dim.Sprintf("%s: %v", label("error_details", "Details"), appErr.Err))
	}
	if upstream, ok := appErr.Context["upstream"].(string); ok && upstream != "" {
		_, _ = fmt.Fprintf(w, "   %s\n", Dim.Sprint(upstream))
	}

	if debug {
		for _, k := range appErr.ContextKeys() {
			_, _ = fmt.Fprintf(w, "   %s\n", Dim.Sprintf("%s=%v", k, appErr.Context[k]))
		}
		depth := 0
		for e := errors.Unwrap(err); e != nil; e = errors.Unwrap(e) {
			depth++
			_, _ = fmt.Fprintf(w, "   %s\n", Dim.Sprintf("%s└ %v", strings.Repeat(" ", depth-1), e))
		}
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		lines := strings.Split(appErr.Suggestion, "\n")
		_, _ = suggestionColor.Fprintf(w, "%s: %s\n", label("error_suggestion", "Suggestion"), lines[0])
		for _, line := range lines[1:] {
			_, _ = fmt.Fprintf(w, "       %s\n", line)
		}
	}
	_, _ = fmt.Fprintln(w)
}

// WithSpinner runs fn while a spinner shows message.
func WithSpinner(message string, fn func() error) error {
	s := NewSmartSpinner(message)
	s.Start()
	defer s.Stop()

	return fn()
}
