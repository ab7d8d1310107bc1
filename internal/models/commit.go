package models

import "time"

// RepoInfo is the repository metadata needed to resolve branches.
type RepoInfo struct {
	FullName      string
	DefaultBranch string
}

// Branch is a named branch of a repository.
type Branch struct {
	Name string
}

// CommitSummary is one entry of a paginated commit listing.
type CommitSummary struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
}

// CommitDetail is a single commit with its change statistics.
type CommitDetail struct {
	Hash      string
	Message   string
	Author    string
	Date      time.Time
	Additions int
	Deletions int
	Files     []string
}

// FilesChanged returns how many files the commit touched.
func (d CommitDetail) FilesChanged() int {
	return len(d.Files)
}
