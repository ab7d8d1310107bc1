package vcs

import (
	"context"

	"github.com/thomas-vilte/commitcost/internal/models"
)

// CommitSource defines the read-only operations the estimation pipeline needs from a hosting provider.
// A CommitSource is bound to a single repository when it is created.
type CommitSource interface {
	// GetRepository gets the repository metadata, including its default branch.
	GetRepository(ctx context.Context) (models.RepoInfo, error)
	// ListBranches gets every branch of the repository.
	ListBranches(ctx context.Context) ([]models.Branch, error)
	// ListCommits gets one page of commits reachable from branch. Pages start at 1.
	// An empty slice means there are no more pages.
	ListCommits(ctx context.Context, branch string, page, perPage int) ([]models.CommitSummary, error)
	// GetCommitDetail gets a commit with its change statistics and touched files.
	GetCommitDetail(ctx context.Context, hash string) (models.CommitDetail, error)
	// AuthenticatedUser gets the login the token belongs to.
	AuthenticatedUser(ctx context.Context) (string, error)
}
