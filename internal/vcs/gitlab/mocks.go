package gitlab

import (
	"github.com/stretchr/testify/mock"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

type MockProjectsService struct {
	mock.Mock
}

func (m *MockProjectsService) GetProject(pid interface{}, opt *gitlab.GetProjectOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Project, *gitlab.Response, error) {
	args := m.Called(pid, opt)
	return args.Get(0).(*gitlab.Project), response(args.Get(1)), args.Error(2)
}

type MockBranchesService struct {
	mock.Mock
}

func (m *MockBranchesService) ListBranches(pid interface{}, opts *gitlab.ListBranchesOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Branch, *gitlab.Response, error) {
	args := m.Called(pid, opts)
	return args.Get(0).([]*gitlab.Branch), response(args.Get(1)), args.Error(2)
}

type MockCommitsService struct {
	mock.Mock
}

func (m *MockCommitsService) ListCommits(pid interface{}, opt *gitlab.ListCommitsOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Commit, *gitlab.Response, error) {
	args := m.Called(pid, opt)
	return args.Get(0).([]*gitlab.Commit), response(args.Get(1)), args.Error(2)
}

func (m *MockCommitsService) GetCommit(pid interface{}, sha string, opt *gitlab.GetCommitOptions, _ ...gitlab.RequestOptionFunc) (*gitlab.Commit, *gitlab.Response, error) {
	args := m.Called(pid, sha, opt)
	return args.Get(0).(*gitlab.Commit), response(args.Get(1)), args.Error(2)
}

func (m *MockCommitsService) GetCommitDiff(pid interface{}, sha string, opt *gitlab.GetCommitDiffOptions, _ ...gitlab.RequestOptionFunc) ([]*gitlab.Diff, *gitlab.Response, error) {
	args := m.Called(pid, sha, opt)
	return args.Get(0).([]*gitlab.Diff), response(args.Get(1)), args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) CurrentUser(_ ...gitlab.RequestOptionFunc) (*gitlab.User, *gitlab.Response, error) {
	args := m.Called()
	return args.Get(0).(*gitlab.User), response(args.Get(1)), args.Error(2)
}

func response(v interface{}) *gitlab.Response {
	if v == nil {
		return nil
	}
	return v.(*gitlab.Response)
}
