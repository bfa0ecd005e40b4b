package ml

import (
	"context"
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type logisticExport struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// LogisticRegression evaluates p = sigmoid(w.x + b).
type LogisticRegression struct {
	coef      []float64
	intercept float64
}

// DecodeLogisticRegression decodes and checks a logistic regression export.
func DecodeLogisticRegression(data []byte) (*LogisticRegression, error) {
	h, err := decodeHeader(data, KindLogisticRegression)
	if err != nil {
		return nil, err
	}
	var export logisticExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode logistic regression model: %w", err)
	}
	if len(export.Coef) != h.NFeatures {
		return nil, fmt.Errorf("model has %d coefficients, n_features is %d", len(export.Coef), h.NFeatures)
	}
	if floats.HasNaN(export.Coef) {
		return nil, fmt.Errorf("model coefficients contain NaN")
	}
	return &LogisticRegression{coef: export.Coef, intercept: export.Intercept}, nil
}

// PredictProba implements port.Classifier.
func (m *LogisticRegression) PredictProba(_ context.Context, x []float64) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, fmt.Errorf("got %d features, want %d", len(x), len(m.coef))
	}
	return sigmoid(floats.Dot(m.coef, x) + m.intercept), nil
}

// InputWidth implements port.Classifier.
func (m *LogisticRegression) InputWidth() int { return len(m.coef) }

// Kind implements port.Classifier.
func (m *LogisticRegression) Kind() string { return KindLogisticRegression }
