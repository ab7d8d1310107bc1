package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/logger"
	"github.com/thomas-vilte/commitcost/internal/models"
	"github.com/thomas-vilte/commitcost/internal/vcs"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com"
	diffsPerPage   = 100
)

var _ vcs.CommitSource = (*GitLabClient)(nil)

type ProjectsService interface {
	GetProject(pid interface{}, opt *gitlab.GetProjectOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error)
}

type BranchesService interface {
	ListBranches(pid interface{}, opts *gitlab.ListBranchesOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Branch, *gitlab.Response, error)
}

type CommitsService interface {
	ListCommits(pid interface{}, opt *gitlab.ListCommitsOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Commit, *gitlab.Response, error)
	GetCommit(pid interface{}, sha string, opt *gitlab.GetCommitOptions, options ...gitlab.RequestOptionFunc) (*gitlab.Commit, *gitlab.Response, error)
	GetCommitDiff(pid interface{}, sha string, opt *gitlab.GetCommitDiffOptions, options ...gitlab.RequestOptionFunc) ([]*gitlab.Diff, *gitlab.Response, error)
}

type UsersService interface {
	CurrentUser(options ...gitlab.RequestOptionFunc) (*gitlab.User, *gitlab.Response, error)
}

// GitLabClient is a Commit Source for one GitLab project, addressed by its full path.
type GitLabClient struct {
	projects ProjectsService
	branches BranchesService
	commits  CommitsService
	users    UsersService
	project  string
}

// NewGitLabClient creates a client for project (group/subgroup/name). An empty baseURL means gitlab.com.
func NewGitLabClient(project, token, baseURL string) (*GitLabClient, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, domainErrors.ErrInvalidConfig.
			WithError(err).
			WithContext("base_url", baseURL)
	}

	return NewGitLabClientWithServices(client.Projects, client.Branches, client.Commits, client.Users, project), nil
}

func NewGitLabClientWithServices(
	projects ProjectsService,
	branches BranchesService,
	commits CommitsService,
	users UsersService,
	project string,
) *GitLabClient {
	return &GitLabClient{
		projects: projects,
		branches: branches,
		commits:  commits,
		users:    users,
		project:  project,
	}
}

func (c *GitLabClient) GetRepository(ctx context.Context) (models.RepoInfo, error) {
	project, resp, err := c.projects.GetProject(c.project, nil, gitlab.WithContext(ctx))
	if err != nil {
		return models.RepoInfo{}, c.wrapError(err, resp, "get project", domainErrors.ErrRepositoryNotFound)
	}

	return models.RepoInfo{
		FullName:      project.PathWithNamespace,
		DefaultBranch: project.DefaultBranch,
	}, nil
}

func (c *GitLabClient) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	page := 1

	for {
		opts := &gitlab.ListBranchesOptions{
			ListOptions: gitlab.ListOptions{
				Page:    page,
				PerPage: 100,
			},
		}

		result, resp, err := c.branches.ListBranches(c.project, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, c.wrapError(err, resp, "list branches", domainErrors.ErrRepositoryNotFound)
		}

		for _, b := range result {
			branches = append(branches, models.Branch{Name: b.Name})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	logger.Debug(ctx, "gitlab branches listed",
		"project", c.project,
		"count", len(branches))

	return branches, nil
}

func (c *GitLabClient) ListCommits(ctx context.Context, branch string, page, perPage int) ([]models.CommitSummary, error) {
	opts := &gitlab.ListCommitsOptions{
		ListOptions: gitlab.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
		RefName: gitlab.Ptr(branch),
	}

	commits, resp, err := c.commits.ListCommits(c.project, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, c.wrapError(err, resp, "list commits", domainErrors.ErrRepositoryNotFound).
			WithContext("branch", branch).
			WithContext("page", page)
	}

	summaries := make([]models.CommitSummary, 0, len(commits))
	for _, commit := range commits {
		s := models.CommitSummary{
			Hash:    commit.ID,
			Message: commit.Message,
			Author:  commit.AuthorName,
		}
		if commit.AuthoredDate != nil {
			s.Date = *commit.AuthoredDate
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// GetCommitDetail takes line counts from the commit stats and the touched files from its diff.
func (c *GitLabClient) GetCommitDetail(ctx context.Context, hash string) (models.CommitDetail, error) {
	commit, resp, err := c.commits.GetCommit(c.project, hash, &gitlab.GetCommitOptions{Stats: gitlab.Ptr(true)}, gitlab.WithContext(ctx))
	if err != nil {
		return models.CommitDetail{}, c.wrapError(err, resp, "get commit", domainErrors.ErrCommitNotFound).
			WithContext("hash", hash)
	}

	detail := models.CommitDetail{
		Hash:    commit.ID,
		Message: commit.Message,
		Author:  commit.AuthorName,
	}
	if commit.AuthoredDate != nil {
		detail.Date = *commit.AuthoredDate
	}
	if commit.Stats != nil {
		detail.Additions = commit.Stats.Additions
		detail.Deletions = commit.Stats.Deletions
	}

	page := 1
	for {
		opts := &gitlab.GetCommitDiffOptions{
			ListOptions: gitlab.ListOptions{
				Page:    page,
				PerPage: diffsPerPage,
			},
		}

		diffs, resp, err := c.commits.GetCommitDiff(c.project, hash, opts, gitlab.WithContext(ctx))
		if err != nil {
			return models.CommitDetail{}, c.wrapError(err, resp, "get commit diff", domainErrors.ErrCommitNotFound).
				WithContext("hash", hash)
		}

		for _, d := range diffs {
			path := d.NewPath
			if d.DeletedFile || path == "" {
				path = d.OldPath
			}
			detail.Files = append(detail.Files, path)
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	logger.Debug(ctx, "gitlab commit fetched",
		"project", c.project,
		"hash", hash,
		"additions", detail.Additions,
		"deletions", detail.Deletions,
		"files", len(detail.Files))

	return detail, nil
}

func (c *GitLabClient) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return "", c.wrapError(err, resp, "get current user", domainErrors.ErrAccessDenied)
	}

	if user.Username == "" {
		return "", fmt.Errorf("authenticated user has no username")
	}

	return user.Username, nil
}

func (c *GitLabClient) wrapError(err error, resp *gitlab.Response, operation string, notFound *domainErrors.AppError) *domainErrors.AppError {
	var appErr *domainErrors.AppError

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	switch status {
	case http.StatusNotFound:
		appErr = notFound
	case http.StatusTooManyRequests:
		appErr = domainErrors.ErrRateLimit.
			WithContext("retry_after", resp.Header.Get("Retry-After"))
	case http.StatusUnauthorized, http.StatusForbidden:
		appErr = domainErrors.ErrAccessDenied
	default:
		appErr = domainErrors.ErrRetrieval
	}

	appErr = appErr.
		WithError(err).
		WithContext("operation", operation).
		WithContext("project", c.project)

	if status != 0 {
		appErr = appErr.WithContext("status_code", status)
	}

	var errResp *gitlab.ErrorResponse
	if errors.As(err, &errResp) && strings.TrimSpace(errResp.Message) != "" {
		appErr = appErr.WithContext("upstream", errResp.Message)
	}

	return appErr
}
