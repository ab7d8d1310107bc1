// Package predictor loads the trained commit cost model and scores feature vectors.
package predictor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"github.com/thomas-vilte/commitcost/internal/models"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const kindLinear = "linear"

// Predictor scores a feature vector. Implementations must be pure and safe for concurrent use.
type Predictor interface {
	Predict(v models.FeatureVector) float64
}

// Func adapts a plain function to Predictor.
type Func func(v models.FeatureVector) float64

func (f Func) Predict(v models.FeatureVector) float64 {
	return f(v)
}

// LinearModel is a least-squares regression over the full feature vector.
type LinearModel struct {
	Coefficients models.FeatureVector
	Intercept    float64
}

var _ Predictor = (*LinearModel)(nil)

func (m *LinearModel) Predict(v models.FeatureVector) float64 {
	sum := m.Intercept
	for i, c := range m.Coefficients {
		sum += c * v[i]
	}
	return sum
}

type artifact struct {
	Kind         string    `json:"kind" yaml:"kind"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
}

// Load reads a model artifact from path. JSON is the default format, .yaml/.yml files are decoded as YAML.
func Load(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainErrors.ErrModelNotFound.
				WithError(err).
				WithContext("path", path)
		}
		return nil, domainErrors.ErrModelInvalid.
			WithError(err).
			WithContext("path", path)
	}

	var a artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, domainErrors.ErrModelInvalid.
			WithError(fmt.Errorf("error decoding model artifact: %w", err)).
			WithContext("path", path)
	}

	model, err := a.toModel()
	if err != nil {
		return nil, domainErrors.ErrModelInvalid.
			WithError(err).
			WithContext("path", path)
	}

	slog.Debug("cost model loaded",
		"path", path,
		"kind", kindLinear,
		"intercept", model.Intercept)

	return model, nil
}

func (a artifact) toModel() (*LinearModel, error) {
	if a.Kind != "" && a.Kind != kindLinear {
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
	if len(a.Coefficients) != models.FeatureVectorSize {
		return nil, fmt.Errorf("expected %d coefficients, got %d", models.FeatureVectorSize, len(a.Coefficients))
	}

	m := &LinearModel{Intercept: a.Intercept}
	copy(m.Coefficients[:], a.Coefficients)
	return m, nil
}
