package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/models"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.CommitSource = (*GitHubClient)(nil)

// filesPerPage is the largest page GitHub serves for the files of a commit.
const filesPerPage = 100

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	ListBranches(ctx context.Context, owner, repo string, opts *github.BranchListOptions) ([]*github.Branch, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type GitHubClient struct {
	repoService  RepositoriesService
	usersService UsersService
	owner        string
	repo         string
}

// NewGitHubClient creates a client authenticated with token. A non-empty baseURL
// points the client at a GitHub Enterprise Server API.
func NewGitHubClient(owner, repo, token, baseURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.
				WithError(err).
				WithContext("base_url", baseURL)
		}
	}

	return NewGitHubClientWithServices(client.Repositories, client.Users, owner, repo), nil
}

func NewGitHubClientWithServices(
	repoService RepositoriesService,
	usersService UsersService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		repoService:  repoService,
		usersService: usersService,
		owner:        owner,
		repo:         repo,
	}
}

func (ghc *GitHubClient) GetRepository(ctx context.Context) (models.RepoInfo, error) {
	repository, resp, err := ghc.repoService.Get(ctx, ghc.owner, ghc.repo)
	if err != nil {
		return models.RepoInfo{}, ghc.wrapError(err, resp, "get repository", domainErrors.ErrRepositoryNotFound)
	}

	return models.RepoInfo{
		FullName:      repository.GetFullName(),
		DefaultBranch: repository.GetDefaultBranch(),
	}, nil
}

func (ghc *GitHubClient) ListBranches(ctx context.Context) ([]models.Branch, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var branches []models.Branch
	for {
		page, resp, err := ghc.repoService.ListBranches(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			return nil, ghc.wrapError(err, resp, "list branches", domainErrors.ErrRepositoryNotFound)
		}

		for _, b := range page {
			branches = append(branches, models.Branch{Name: b.GetName()})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug(ctx, "github branches listed",
		"repo", ghc.fullName(),
		"count", len(branches))

	return branches, nil
}

func (ghc *GitHubClient) ListCommits(ctx context.Context, branch string, page, perPage int) ([]models.CommitSummary, error) {
	opts := &github.CommitsListOptions{
		SHA: branch,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	commits, resp, err := ghc.repoService.ListCommits(ctx, ghc.owner, ghc.repo, opts)
	if err != nil {
		// GitHub answers 409 for a repository without any commit.
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, nil
		}
		return nil, ghc.wrapError(err, resp, "list commits", domainErrors.ErrRepositoryNotFound).
			WithContext("branch", branch).
			WithContext("page", page)
	}

	summaries := make([]models.CommitSummary, 0, len(commits))
	for _, c := range commits {
		author := c.GetCommit().GetAuthor()
		summaries = append(summaries, models.CommitSummary{
			Hash:    c.GetSHA(),
			Message: c.GetCommit().GetMessage(),
			Author:  author.GetName(),
			Date:    author.GetDate().Time,
		})
	}

	return summaries, nil
}

func (ghc *GitHubClient) GetCommitDetail(ctx context.Context, hash string) (models.CommitDetail, error) {
	opts := &github.ListOptions{PerPage: filesPerPage}

	var detail models.CommitDetail
	first := true
	for {
		commit, resp, err := ghc.repoService.GetCommit(ctx, ghc.owner, ghc.repo, hash, opts)
		if err != nil {
			return models.CommitDetail{}, ghc.wrapError(err, resp, "get commit", domainErrors.ErrCommitNotFound).
				WithContext("hash", hash)
		}

		// stats cover the whole commit, only files are paginated
		if first {
			first = false
			author := commit.GetCommit().GetAuthor()
			detail = models.CommitDetail{
				Hash:      commit.GetSHA(),
				Message:   commit.GetCommit().GetMessage(),
				Author:    author.GetName(),
				Date:      author.GetDate().Time,
				Additions: commit.GetStats().GetAdditions(),
				Deletions: commit.GetStats().GetDeletions(),
			}
		}
		for _, f := range commit.Files {
			detail.Files = append(detail.Files, f.GetFilename())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug(ctx, "github commit fetched",
		"repo", ghc.fullName(),
		"hash", hash,
		"additions", detail.Additions,
		"deletions", detail.Deletions,
		"files", len(detail.Files))

	return detail, nil
}

func (ghc *GitHubClient) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", ghc.wrapError(err, resp, "get authenticated user", domainErrors.ErrAccessDenied)
	}

	if user.Login == nil {
		return "", domainErrors.ErrAccessDenied.
			WithError(fmt.Errorf("authenticated user has no login")).
			WithContext("operation", "get authenticated user")
	}

	return *user.Login, nil
}

func (ghc *GitHubClient) fullName() string {
	return fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)
}

// wrapError maps a failed API call onto the retrieval error taxonomy. notFound is used for 404 answers.
func (ghc *GitHubClient) wrapError(err error, resp *github.Response, operation string, notFound *domainErrors.AppError) *domainErrors.AppError {
	var appErr *domainErrors.AppError

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &rateErr):
		appErr = domainErrors.ErrRateLimit.
			WithContext("reset", rateErr.Rate.Reset.Time)
	case errors.As(err, &abuseErr):
		appErr = domainErrors.ErrRateLimit
		if abuseErr.RetryAfter != nil {
			appErr = appErr.WithContext("retry_after", abuseErr.RetryAfter.String())
		}
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		appErr = notFound
	case resp != nil && resp.StatusCode == http.StatusTooManyRequests:
		appErr = domainErrors.ErrRateLimit.
			WithContext("retry_after", resp.Header.Get("Retry-After"))
	case resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		appErr = domainErrors.ErrAccessDenied
	default:
		appErr = domainErrors.ErrRetrieval
	}

	appErr = appErr.
		WithError(err).
		WithContext("operation", operation).
		WithContext("repo", ghc.fullName())

	if resp != nil {
		appErr = appErr.WithContext("status_code", resp.StatusCode)
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && strings.TrimSpace(errResp.Message) != "" {
		appErr = appErr.WithContext("upstream", errResp.Message)
	}

	return appErr
}
