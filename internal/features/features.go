// Package features turns commit change statistics into the cost model input.
package features

import "github.com/thomas-vilte/commitcost/internal/models"

const (
	biasIndex = iota
	additionsIndex
	deletionsIndex
	filesIndex
	// reservedA and reservedB are part of the trained layout but are never populated; keep them at zero.
	reservedAIndex
	reservedBIndex
)

// Extract builds the feature vector [1, additions, deletions, filesChanged, 0, 0].
func Extract(additions, deletions, filesChanged int) models.FeatureVector {
	var v models.FeatureVector
	v[biasIndex] = 1
	v[additionsIndex] = float64(additions)
	v[deletionsIndex] = float64(deletions)
	v[filesIndex] = float64(filesChanged)
	v[reservedAIndex] = 0
	v[reservedBIndex] = 0
	return v
}

// FromDetail extracts features from a retrieved commit.
func FromDetail(d models.CommitDetail) models.FeatureVector {
	return Extract(d.Additions, d.Deletions, d.FilesChanged())
}
