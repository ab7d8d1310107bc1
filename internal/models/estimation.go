package models

import "time"

// FeatureVectorSize is the input width the cost model was trained on.
const FeatureVectorSize = 6

// FeatureVector is the model input: bias, additions, deletions, files changed and two reserved slots.
type FeatureVector [FeatureVectorSize]float64

// CommitRecord is the estimated cost of one commit.
type CommitRecord struct {
	Hash         string  `json:"hash"`
	Summary      string  `json:"summary"`
	Additions    int     `json:"additions"`
	Deletions    int     `json:"deletions"`
	FilesChanged int     `json:"files_changed"`
	Cost         float64 `json:"cost"`
}

// BranchStatistics aggregates every CommitRecord of a branch.
type BranchStatistics struct {
	TotalCommits   int     `json:"total_commits"`
	TotalAdditions int     `json:"total_additions"`
	TotalDeletions int     `json:"total_deletions"`
	TotalFiles     int     `json:"total_files"`
	TotalCost      float64 `json:"total_cost"`
	AverageCost    float64 `json:"average_cost"`
}

// EstimationReport is the complete output of a branch estimation.
type EstimationReport struct {
	Repository  string           `json:"repository"`
	Branch      string           `json:"branch"`
	GeneratedAt time.Time        `json:"generated_at"`
	Commits     []CommitRecord   `json:"commits"`
	Statistics  BranchStatistics `json:"statistics"`
}
