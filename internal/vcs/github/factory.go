package github

import (
	"context"

	"github.com/thomas-vilte/commitcost/internal/vcs"
)

// GitHubProviderFactory implements vcs.ProviderFactory for GitHub.
type GitHubProviderFactory struct{}

func NewGitHubProviderFactory() *GitHubProviderFactory {
	return &GitHubProviderFactory{}
}

func (f *GitHubProviderFactory) CreateSource(_ context.Context, repo vcs.Repository, token, baseURL string) (vcs.CommitSource, error) {
	return NewGitHubClient(repo.Owner, repo.Name, token, baseURL)
}

func (f *GitHubProviderFactory) Name() string {
	return "github"
}
