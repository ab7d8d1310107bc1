package gitlab

import (
	"context"

	"github.com/thomas-vilte/commitcost/internal/vcs"
)

// GitLabProviderFactory implements vcs.ProviderFactory for GitLab.
type GitLabProviderFactory struct{}

func NewGitLabProviderFactory() *GitLabProviderFactory {
	return &GitLabProviderFactory{}
}

func (f *GitLabProviderFactory) CreateSource(_ context.Context, repo vcs.Repository, token, baseURL string) (vcs.CommitSource, error) {
	return NewGitLabClient(repo.FullName(), token, baseURL)
}

func (f *GitLabProviderFactory) Name() string {
	return "gitlab"
}
