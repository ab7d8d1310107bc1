package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/commitcost/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name                 string
		additions, deletions int
		files                int
		want                 models.FeatureVector
	}{
		{name: "zero change", want: models.FeatureVector{1, 0, 0, 0, 0, 0}},
		{name: "typical commit", additions: 120, deletions: 30, files: 4, want: models.FeatureVector{1, 120, 30, 4, 0, 0}},
		{name: "large refactor", additions: 48213, deletions: 51007, files: 912, want: models.FeatureVector{1, 48213, 51007, 912, 0, 0}},
		{name: "deletions only", deletions: 7, files: 1, want: models.FeatureVector{1, 0, 7, 1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.additions, tt.deletions, tt.files)

			assert.Equal(t, tt.want, got)
			assert.Len(t, got, models.FeatureVectorSize)
		})
	}
}

func TestExtract_ReservedFieldsStayZero(t *testing.T) {
	for a := 0; a < 50; a += 7 {
		for d := 0; d < 50; d += 11 {
			for f := 0; f < 10; f += 3 {
				v := Extract(a, d, f)
				assert.Equal(t, 1.0, v[0])
				assert.Zero(t, v[4])
				assert.Zero(t, v[5])
			}
		}
	}
}

func TestFromDetail(t *testing.T) {
	detail := models.CommitDetail{
		Hash:      "abc",
		Additions: 10,
		Deletions: 2,
		Files:     []string{"a.go", "b.go", "c.go"},
	}

	assert.Equal(t, models.FeatureVector{1, 10, 2, 3, 0, 0}, FromDetail(detail))
}
