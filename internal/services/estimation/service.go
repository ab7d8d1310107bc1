// Package estimation turns repository history into cost estimates.
package estimation

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"unicode/utf8"

	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/features"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/models"
	"github.com/thomas-vilte/commitcost/internal/predictor"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"golang.org/x/sync/errgroup"
)

const (
	shortHashLength  = 8
	summaryMaxLength = 50
	summaryEllipsis  = "..."
	centsPrecision   = 15
)

// CommitEstimate is the result of estimating a single commit.
type CommitEstimate struct {
	Record models.CommitRecord
	// Detail is passed through for presentation only.
	Detail models.CommitDetail
}

// Resolution describes which branch a branch estimate runs on.
type Resolution struct {
	Repository      string
	RequestedBranch string
	ResolvedBranch  string
	DefaultBranch   string
	Branches        []models.Branch
	// FellBack is set when RequestedBranch does not exist and DefaultBranch was used instead.
	FellBack bool
}

// BranchEstimate is the result of estimating a whole branch.
type BranchEstimate struct {
	Resolution
	Report models.EstimationReport
}

type Service struct {
	source    vcs.CommitSource
	predictor predictor.Predictor
	opts      options
}

func NewService(source vcs.CommitSource, p predictor.Predictor, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Service{
		source:    source,
		predictor: p,
		opts:      o,
	}
}

// EstimateCommit estimates the cost of one commit.
func (s *Service) EstimateCommit(ctx context.Context, hash string) (*CommitEstimate, error) {
	detail, err := s.source.GetCommitDetail(ctx, hash)
	if err != nil {
		return nil, retrievalError(err, "get commit detail").WithContext("hash", hash)
	}

	record := s.score(ctx, detail)

	return &CommitEstimate{
		Record: record,
		Detail: detail,
	}, nil
}

// EstimateBranch estimates every commit reachable from branch. An empty branch means the
// default branch. Any failed retrieval aborts the whole estimate.
func (s *Service) EstimateBranch(ctx context.Context, branch string) (*BranchEstimate, error) {
	info, err := s.source.GetRepository(ctx)
	if err != nil {
		return nil, retrievalError(err, "get repository")
	}

	branches, err := s.source.ListBranches(ctx)
	if err != nil {
		return nil, retrievalError(err, "list branches")
	}

	result := &BranchEstimate{
		Resolution: Resolution{
			Repository:      info.FullName,
			RequestedBranch: branch,
			DefaultBranch:   info.DefaultBranch,
			Branches:        branches,
		},
	}
	result.ResolvedBranch, result.FellBack = resolveBranch(branch, info.DefaultBranch, branches)

	if result.FellBack {
		logger.Warn(ctx, "requested branch not found, using default branch",
			"requested", branch,
			"default", info.DefaultBranch)
	}
	if s.opts.resolved != nil {
		s.opts.resolved(result.Resolution)
	}

	ctx = logger.With(ctx, "branch", result.ResolvedBranch)

	summaries, err := s.listAllCommits(ctx, result.ResolvedBranch)
	if err != nil {
		return nil, err
	}

	if len(summaries) == 0 {
		return nil, domainErrors.ErrEmptyHistory.
			WithContext("repository", info.FullName).
			WithContext("branch", result.ResolvedBranch)
	}

	records, err := s.scoreAll(ctx, summaries)
	if err != nil {
		return nil, err
	}

	var totals accumulator
	for _, r := range records {
		totals.add(r)
	}

	result.Report = models.EstimationReport{
		Repository:  info.FullName,
		Branch:      result.ResolvedBranch,
		GeneratedAt: s.opts.now(),
		Commits:     records,
		Statistics:  totals.statistics(),
	}

	logger.Info(ctx, "branch estimated",
		"commits", result.Report.Statistics.TotalCommits,
		"total_cost", result.Report.Statistics.TotalCost)

	return result, nil
}

func resolveBranch(requested, defaultBranch string, branches []models.Branch) (string, bool) {
	if requested == "" {
		return defaultBranch, false
	}
	for _, b := range branches {
		if b.Name == requested {
			return requested, false
		}
	}
	return defaultBranch, true
}

// listAllCommits pages through the branch until the source returns an empty page.
func (s *Service) listAllCommits(ctx context.Context, branch string) ([]models.CommitSummary, error) {
	var all []models.CommitSummary

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, retrievalError(err, "list commits")
		}

		commits, err := s.source.ListCommits(ctx, branch, page, PageSize)
		if err != nil {
			return nil, retrievalError(err, "list commits").WithContext("page", page)
		}

		logger.Debug(ctx, "commit page fetched",
			"page", page,
			"count", len(commits))

		if len(commits) == 0 {
			return all, nil
		}
		all = append(all, commits...)
	}
}

// scoreAll fetches and scores every commit. Records keep the order of summaries
// regardless of the order the fetches complete in.
func (s *Service) scoreAll(ctx context.Context, summaries []models.CommitSummary) ([]models.CommitRecord, error) {
	records := make([]models.CommitRecord, len(summaries))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)

	for i, summary := range summaries {
		if gctx.Err() != nil {
			break
		}

		i, summary := i, summary
		g.Go(func() error {
			detail, err := s.source.GetCommitDetail(gctx, summary.Hash)
			if err != nil {
				return retrievalError(err, "get commit detail").WithContext("hash", summary.Hash)
			}
			if detail.Hash == "" {
				detail.Hash = summary.Hash
			}

			record := s.score(gctx, detail)
			records[i] = record

			mu.Lock()
			defer mu.Unlock()
			done++
			if s.opts.progress != nil {
				s.opts.progress(models.EstimationProgress{
					Current: done,
					Total:   len(summaries),
					Record:  record,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancelled parent can stop the loop before any goroutine reports an error
	if err := ctx.Err(); err != nil {
		return nil, retrievalError(err, "get commit detail")
	}

	return records, nil
}

func (s *Service) score(ctx context.Context, detail models.CommitDetail) models.CommitRecord {
	prediction := s.predictor.Predict(features.FromDetail(detail))
	cents := toCents(prediction)

	record := models.CommitRecord{
		Hash:         shortHash(detail.Hash),
		Summary:      truncateSummary(detail.Message),
		Additions:    detail.Additions,
		Deletions:    detail.Deletions,
		FilesChanged: detail.FilesChanged(),
		Cost:         fromCents(cents),
	}

	logger.Debug(ctx, "commit scored",
		"hash", record.Hash,
		"prediction", prediction,
		"cost", record.Cost)

	return record
}

// accumulator keeps running totals. Cost is summed in cents so the total equals the
// sum of the rounded per-commit costs exactly.
type accumulator struct {
	count      int
	additions  int
	deletions  int
	files      int
	totalCents int64
}

func (a *accumulator) add(r models.CommitRecord) {
	a.count++
	a.additions += r.Additions
	a.deletions += r.Deletions
	a.files += r.FilesChanged
	a.totalCents += toCents(r.Cost)
}

func (a *accumulator) statistics() models.BranchStatistics {
	stats := models.BranchStatistics{
		TotalCommits:   a.count,
		TotalAdditions: a.additions,
		TotalDeletions: a.deletions,
		TotalFiles:     a.files,
		TotalCost:      fromCents(a.totalCents),
	}
	if a.count > 0 {
		stats.AverageCost = stats.TotalCost / float64(a.count)
	}
	return stats
}

// toCents rounds half away from zero to whole cents. Negative predictions are clamped to zero.
// The scaled value is snapped to 15 significant digits first, so 1.005 rounds like the decimal
// it prints as instead of the binary 100.49999999999999 it multiplies to.
func toCents(v float64) int64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scaled := v * 100
	if snapped, err := strconv.ParseFloat(strconv.FormatFloat(scaled, 'g', centsPrecision, 64), 64); err == nil {
		scaled = snapped
	}
	return int64(math.Round(scaled))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}

func shortHash(hash string) string {
	if len(hash) <= shortHashLength {
		return hash
	}
	return hash[:shortHashLength]
}

func truncateSummary(message string) string {
	if utf8.RuneCountInString(message) <= summaryMaxLength {
		return message
	}
	return string([]rune(message)[:summaryMaxLength]) + summaryEllipsis
}

// retrievalError keeps retrieval errors raised by the source and wraps anything else.
func retrievalError(err error, operation string) *domainErrors.AppError {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Type == domainErrors.TypeRetrieval {
		return appErr
	}
	return domainErrors.ErrRetrieval.
		WithError(err).
		WithContext("operation", operation)
}
