package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Row is one line of a two column table.
type Row struct {
	Label string
	Value string
}

// PrintTable prints rows inside a box, values right aligned.
func PrintTable(w io.Writer, title string, rows []Row) {
	labelWidth, valueWidth := 0, 0
	for _, r := range rows {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
		valueWidth = max(valueWidth, utf8.RuneCountInString(r.Value))
	}
	inner := labelWidth + valueWidth + 3
	if t := utf8.RuneCountInString(title); t+2 > inner {
		valueWidth += t + 2 - inner
		inner = t + 2
	}

	border := strings.Repeat("─", inner+2)
	_, _ = fmt.Fprintf(w, "┌%s┐\n", border)
	if title != "" {
		_, _ = fmt.Fprintf(w, "│ %s │\n", Accent.Sprint(pad(title, inner, false)))
		_, _ = fmt.Fprintf(w, "├%s┤\n", border)
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "│ %s │ %s │\n", pad(r.Label, labelWidth, false), Success.Sprint(pad(r.Value, valueWidth, true)))
	}
	_, _ = fmt.Fprintf(w, "└%s┘\n", border)
}

func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
