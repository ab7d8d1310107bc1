// Package report writes branch estimates to delimited text files.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/models"
)

const (
	Extension = ".csv"
	Delimiter = ';'

	// DefaultDateTimeLayout is used for the generation timestamp in the header block.
	DefaultDateTimeLayout = "02.01.2006 15:04:05"

	fileDateLayout = "2006-01-02"
	utf8BOM        = "\xEF\xBB\xBF"
)

type Exporter struct {
	labels         Labels
	format         NumberFormat
	dateTimeLayout string
	now            func() time.Time
}

type Option func(*Exporter)

func WithLabels(l Labels) Option {
	return func(e *Exporter) {
		e.labels = l
	}
}

func WithNumberFormat(f NumberFormat) Option {
	return func(e *Exporter) {
		e.format = f
	}
}

func WithDateTimeLayout(layout string) Option {
	return func(e *Exporter) {
		if layout != "" {
			e.dateTimeLayout = layout
		}
	}
}

// WithClock sets the clock that dates the report file name.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		labels:         DefaultLabels(),
		format:         DefaultNumberFormat(),
		dateTimeLayout: DefaultDateTimeLayout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileName returns <short repository name>_<branch>_<YYYY-MM-DD>.csv. Slashes in the
// branch name are replaced so the file stays in the target directory.
func FileName(repository, branch string, day time.Time) string {
	short := repository
	if i := strings.LastIndex(repository, "/"); i >= 0 {
		short = repository[i+1:]
	}
	branch = strings.NewReplacer("/", "-", "\\", "-").Replace(branch)

	return fmt.Sprintf("%s_%s_%s%s", short, branch, day.Format(fileDateLayout), Extension)
}

// Export writes report into dir, creating it if needed, and returns the path of the file.
// A report written earlier the same day for the same repository and branch is replaced.
func (e *Exporter) Export(ctx context.Context, report models.EstimationReport, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", domainErrors.ErrCreateReportDir.
			WithError(err).
			WithContext("path", dir)
	}

	path := filepath.Join(dir, FileName(report.Repository, report.Branch, e.now()))

	f, err := os.Create(path)
	if err != nil {
		return "", domainErrors.ErrWriteReport.
			WithError(err).
			WithContext("path", path)
	}

	if err := e.write(f, report); err != nil {
		_ = f.Close()
		return "", domainErrors.ErrWriteReport.
			WithError(err).
			WithContext("path", path)
	}

	if err := f.Close(); err != nil {
		return "", domainErrors.ErrWriteReport.
			WithError(err).
			WithContext("path", path)
	}

	logger.Debug(ctx, "report exported",
		"path", path,
		"commits", len(report.Commits))

	return path, nil
}

func (e *Exporter) write(f *os.File, report models.EstimationReport) error {
	if _, err := f.WriteString(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = Delimiter

	l := e.labels
	stats := report.Statistics
	blank := []string{""}

	rows := [][]string{
		{l.Title},
		blank,
		{l.Repository, report.Repository},
		{l.Branch, report.Branch},
		{l.GeneratedAt, report.GeneratedAt.Format(e.dateTimeLayout)},
		blank,
		{l.Number, l.Hash, l.Message, l.Additions, l.Deletions, l.Files, l.Cost},
	}

	for i, c := range report.Commits {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Hash,
			CleanMessage(c.Summary),
			strconv.Itoa(c.Additions),
			strconv.Itoa(c.Deletions),
			strconv.Itoa(c.FilesChanged),
			e.format.Cost(c.Cost),
		})
	}

	rows = append(rows,
		blank,
		[]string{l.Totals},
		[]string{l.TotalCommits, e.format.Int(stats.TotalCommits)},
		[]string{l.TotalAdditions, e.format.Int(stats.TotalAdditions)},
		[]string{l.TotalDeletions, e.format.Int(stats.TotalDeletions)},
		[]string{l.TotalFiles, e.format.Int(stats.TotalFiles)},
		[]string{l.TotalCost, e.format.Cost(stats.TotalCost)},
		[]string{l.AverageCost, e.format.Cost(stats.AverageCost)},
	)

	return w.WriteAll(rows)
}
