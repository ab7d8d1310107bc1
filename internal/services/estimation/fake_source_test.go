package estimation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thomas-vilte/commitcost/internal/models"
)

type listCall struct {
	branch  string
	page    int
	perPage int
}

// fakeSource serves an in-memory history and records every call made to it.
type fakeSource struct {
	mu sync.Mutex

	info     models.RepoInfo
	branches []models.Branch
	history  map[string][]models.CommitSummary
	details  map[string]models.CommitDetail

	repoErr   error
	listErr   error
	detailErr map[string]error

	listCalls   []listCall
	detailCalls int
}

func newFakeSource(defaultBranch string, branches ...string) *fakeSource {
	f := &fakeSource{
		info:      models.RepoInfo{FullName: "octocat/hello-world", DefaultBranch: defaultBranch},
		history:   make(map[string][]models.CommitSummary),
		details:   make(map[string]models.CommitDetail),
		detailErr: make(map[string]error),
	}
	for _, b := range branches {
		f.branches = append(f.branches, models.Branch{Name: b})
	}
	return f
}

// addCommits appends n generated commits to branch. Commit i has i additions, 2i deletions and i%5+1 files.
func (f *fakeSource) addCommits(branch string, n int) {
	start := len(f.history[branch])
	for i := start; i < start+n; i++ {
		hash := fmt.Sprintf("%08x%032d", i, i)
		msg := fmt.Sprintf("commit %d", i)
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)

		f.history[branch] = append(f.history[branch], models.CommitSummary{Hash: hash, Message: msg, Author: "dev", Date: date})

		files := make([]string, i%5+1)
		for j := range files {
			files[j] = fmt.Sprintf("file%d.go", j)
		}
		f.details[hash] = models.CommitDetail{
			Hash:      hash,
			Message:   msg,
			Author:    "dev",
			Date:      date,
			Additions: i,
			Deletions: 2 * i,
			Files:     files,
		}
	}
}

func (f *fakeSource) GetRepository(context.Context) (models.RepoInfo, error) {
	if f.repoErr != nil {
		return models.RepoInfo{}, f.repoErr
	}
	return f.info, nil
}

func (f *fakeSource) ListBranches(context.Context) ([]models.Branch, error) {
	return f.branches, nil
}

func (f *fakeSource) ListCommits(_ context.Context, branch string, page, perPage int) ([]models.CommitSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, listCall{branch: branch, page: page, perPage: perPage})
	if f.listErr != nil {
		return nil, f.listErr
	}

	all := f.history[branch]
	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.CommitSummary{}, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeSource) GetCommitDetail(ctx context.Context, hash string) (models.CommitDetail, error) {
	f.mu.Lock()
	f.detailCalls++
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.CommitDetail{}, err
	}
	if err := f.detailErr[hash]; err != nil {
		return models.CommitDetail{}, err
	}
	d, ok := f.details[hash]
	if !ok {
		return models.CommitDetail{}, fmt.Errorf("no commit %s", hash)
	}
	return d, nil
}

func (f *fakeSource) AuthenticatedUser(context.Context) (string, error) {
	return "octocat", nil
}

func (f *fakeSource) hashAt(branch string, i int) string {
	return f.history[branch][i].Hash
}
