package gitlab

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const testProject = "platform/backend/billing"

type testServices struct {
	projects *MockProjectsService
	branches *MockBranchesService
	commits  *MockCommitsService
	users    *MockUsersService
}

func newTestClient() (*GitLabClient, testServices) {
	s := testServices{
		projects: &MockProjectsService{},
		branches: &MockBranchesService{},
		commits:  &MockCommitsService{},
		users:    &MockUsersService{},
	}
	return NewGitLabClientWithServices(s.projects, s.branches, s.commits, s.users, testProject), s
}

func errorResponse(status int, message string) (*gitlab.Response, error) {
	resp := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Request: &http.Request{
			Method: http.MethodGet,
			URL:    &url.URL{Scheme: "https", Host: "gitlab.com", Path: "/api/v4/projects"},
		},
	}
	return &gitlab.Response{Response: resp}, &gitlab.ErrorResponse{Response: resp, Message: message}
}

func TestGitLabClient_GetRepository(t *testing.T) {
	t.Run("should return default branch", func(t *testing.T) {
		client, s := newTestClient()

		s.projects.On("GetProject", testProject, (*gitlab.GetProjectOptions)(nil)).
			Return(&gitlab.Project{PathWithNamespace: testProject, DefaultBranch: "master"}, &gitlab.Response{}, nil)

		info, err := client.GetRepository(context.Background())

		require.NoError(t, err)
		assert.Equal(t, testProject, info.FullName)
		assert.Equal(t, "master", info.DefaultBranch)
	})

	t.Run("should map 404 to repository not found", func(t *testing.T) {
		client, s := newTestClient()
		resp, apiErr := errorResponse(http.StatusNotFound, "404 Project Not Found")

		s.projects.On("GetProject", testProject, mock.Anything).
			Return((*gitlab.Project)(nil), resp, apiErr)

		_, err := client.GetRepository(context.Background())

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.ErrRepositoryNotFound.Message, appErr.Message)
		assert.Equal(t, "404 Project Not Found", appErr.Context["upstream"])
	})
}

func TestGitLabClient_ListBranches(t *testing.T) {
	client, s := newTestClient()

	s.branches.On("ListBranches", testProject, mock.MatchedBy(func(o *gitlab.ListBranchesOptions) bool {
		return o.Page == 1
	})).Return([]*gitlab.Branch{{Name: "master"}}, &gitlab.Response{NextPage: 2}, nil).Once()
	s.branches.On("ListBranches", testProject, mock.MatchedBy(func(o *gitlab.ListBranchesOptions) bool {
		return o.Page == 2
	})).Return([]*gitlab.Branch{{Name: "release/1.0"}}, &gitlab.Response{}, nil).Once()

	branches, err := client.ListBranches(context.Background())

	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, "release/1.0", branches[1].Name)
	s.branches.AssertExpectations(t)
}

func TestGitLabClient_ListCommits(t *testing.T) {
	client, s := newTestClient()
	date := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	s.commits.On("ListCommits", testProject, mock.MatchedBy(func(o *gitlab.ListCommitsOptions) bool {
		return o.RefName != nil && *o.RefName == "develop" && o.Page == 2 && o.PerPage == 100
	})).Return([]*gitlab.Commit{
		{ID: "0123456789abcdef", Message: "chore: bump deps\n", AuthorName: "Jane", AuthoredDate: &date},
	}, &gitlab.Response{}, nil)

	commits, err := client.ListCommits(context.Background(), "develop", 2, 100)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "0123456789abcdef", commits[0].Hash)
	assert.Equal(t, "Jane", commits[0].Author)
	assert.Equal(t, date, commits[0].Date)
}

func TestGitLabClient_GetCommitDetail(t *testing.T) {
	t.Run("should combine stats and diff files", func(t *testing.T) {
		client, s := newTestClient()

		s.commits.On("GetCommit", testProject, "abc", mock.MatchedBy(func(o *gitlab.GetCommitOptions) bool {
			return o.Stats != nil && *o.Stats
		})).Return(&gitlab.Commit{
			ID:         "abc",
			Message:    "fix: rounding",
			AuthorName: "Jane",
			Stats:      &gitlab.CommitStats{Additions: 120, Deletions: 30, Total: 150},
		}, &gitlab.Response{}, nil)

		s.commits.On("GetCommitDiff", testProject, "abc", mock.MatchedBy(func(o *gitlab.GetCommitDiffOptions) bool {
			return o.Page == 1
		})).Return([]*gitlab.Diff{
			{OldPath: "a.go", NewPath: "a.go"},
			{OldPath: "old.go", NewPath: "new.go", RenamedFile: true},
			{OldPath: "gone.go", NewPath: "gone.go", DeletedFile: true},
		}, &gitlab.Response{NextPage: 2}, nil).Once()
		s.commits.On("GetCommitDiff", testProject, "abc", mock.MatchedBy(func(o *gitlab.GetCommitDiffOptions) bool {
			return o.Page == 2
		})).Return([]*gitlab.Diff{
			{NewPath: "d.go", NewFile: true},
		}, &gitlab.Response{}, nil).Once()

		detail, err := client.GetCommitDetail(context.Background(), "abc")

		require.NoError(t, err)
		assert.Equal(t, 120, detail.Additions)
		assert.Equal(t, 30, detail.Deletions)
		assert.Equal(t, []string{"a.go", "new.go", "gone.go", "d.go"}, detail.Files)
		s.commits.AssertExpectations(t)
	})

	t.Run("should map forbidden to access denied", func(t *testing.T) {
		client, s := newTestClient()
		resp, apiErr := errorResponse(http.StatusForbidden, "403 Forbidden")

		s.commits.On("GetCommit", testProject, "abc", mock.Anything).
			Return((*gitlab.Commit)(nil), resp, apiErr)

		_, err := client.GetCommitDetail(context.Background(), "abc")

		require.Error(t, err)
		assert.ErrorIs(t, err, apiErr)
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.ErrAccessDenied.Message, appErr.Message)
		assert.Equal(t, http.StatusForbidden, appErr.Context["status_code"])
	})

	t.Run("should map 429 to rate limit", func(t *testing.T) {
		client, s := newTestClient()
		resp, apiErr := errorResponse(http.StatusTooManyRequests, "429 Too Many Requests")
		resp.Header.Set("Retry-After", "60")

		s.commits.On("GetCommit", testProject, "abc", mock.Anything).
			Return((*gitlab.Commit)(nil), resp, apiErr)

		_, err := client.GetCommitDetail(context.Background(), "abc")

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.ErrRateLimit.Message, appErr.Message)
		assert.Equal(t, "60", appErr.Context["retry_after"])
	})
}

func TestGitLabClient_AuthenticatedUser(t *testing.T) {
	client, s := newTestClient()

	s.users.On("CurrentUser").Return(&gitlab.User{Username: "jane"}, &gitlab.Response{}, nil)

	login, err := client.AuthenticatedUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "jane", login)
}

func TestGitLabProviderFactory(t *testing.T) {
	f := NewGitLabProviderFactory()

	assert.Equal(t, "gitlab", f.Name())
}
