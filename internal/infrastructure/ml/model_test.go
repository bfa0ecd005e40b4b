package ml_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/ml"
)

const stumpModel = `{
  "kind": "gradient_boosting",
  "n_features": 2,
  "init": -0.5,
  "learning_rate": 0.5,
  "trees": [
    {"nodes": [
      {"feature": 0, "threshold": 0.5, "left": 1, "right": 2},
      {"left": -1, "right": -1, "value": -1},
      {"left": -1, "right": -1, "value": 1}
    ]},
    {"nodes": [
      {"feature": 1, "threshold": 0, "left": 1, "right": 2},
      {"left": -1, "right": -1, "value": 0},
      {"left": -1, "right": -1, "value": 2}
    ]}
  ]
}`

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func TestGradientBoosting_PredictProba(t *testing.T) {
	m, err := ml.DecodeGradientBoosting([]byte(stumpModel))
	require.NoError(t, err)
	assert.Equal(t, 2, m.InputWidth())
	assert.Equal(t, 2, m.Trees())
	assert.Equal(t, ml.KindGradientBoosting, m.Kind())

	tests := []struct {
		name string
		x    []float64
		raw  float64
	}{
		{"both left", []float64{0.5, 0}, -0.5 + 0.5*(-1+0)},
		{"first right", []float64{0.6, -1}, -0.5 + 0.5*(1+0)},
		{"both right", []float64{3, 0.1}, -0.5 + 0.5*(1+2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.raw, m.RawScore(tt.x), 1e-12)

			p, err := m.PredictProba(context.Background(), tt.x)
			require.NoError(t, err)
			assert.InDelta(t, sigmoid(tt.raw), p, 1e-12)
		})
	}

	_, err = m.PredictProba(context.Background(), []float64{1})
	assert.ErrorContains(t, err, "got 1 features, want 2")
}

func TestGradientBoosting_StableForLargeScores(t *testing.T) {
	data := `{"kind":"gradient_boosting","n_features":1,"init":0,"learning_rate":1,
		"trees":[{"nodes":[{"feature":0,"threshold":0,"left":1,"right":2},{"left":-1,"value":-800},{"left":-1,"value":800}]}]}`
	m, err := ml.DecodeGradientBoosting([]byte(data))
	require.NoError(t, err)

	low, err := m.PredictProba(context.Background(), []float64{-1})
	require.NoError(t, err)
	high, err := m.PredictProba(context.Background(), []float64{1})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(low))
	assert.InDelta(t, 0, low, 1e-300)
	assert.Equal(t, 1.0, high)
}

func TestDecodeGradientBoosting_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"wrong kind", `{"kind":"logistic_regression","n_features":2}`, "want \"gradient_boosting\""},
		{"no features", `{"kind":"gradient_boosting","n_features":0}`, "n_features must be positive"},
		{"no trees", `{"kind":"gradient_boosting","n_features":2,"learning_rate":0.1,"trees":[]}`, "no trees"},
		{"zero learning rate", `{"kind":"gradient_boosting","n_features":2,"trees":[{"nodes":[{"left":-1}]}]}`, "learning_rate must be positive"},
		{"empty tree", `{"kind":"gradient_boosting","n_features":2,"learning_rate":0.1,"trees":[{"nodes":[]}]}`, "empty tree"},
		{
			"feature out of range",
			`{"kind":"gradient_boosting","n_features":2,"learning_rate":0.1,"trees":[{"nodes":[{"feature":2,"left":1,"right":2},{"left":-1},{"left":-1}]}]}`,
			"splits on feature 2 of 2",
		},
		{
			"backward child",
			`{"kind":"gradient_boosting","n_features":2,"learning_rate":0.1,"trees":[{"nodes":[{"feature":0,"left":0,"right":1},{"left":-1}]}]}`,
			"invalid children",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ml.DecodeGradientBoosting([]byte(tt.data))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLogisticRegression(t *testing.T) {
	m, err := ml.DecodeLogisticRegression([]byte(`{"kind":"logistic_regression","n_features":3,"coef":[0.5,-1,2],"intercept":0.25}`))
	require.NoError(t, err)
	assert.Equal(t, 3, m.InputWidth())
	assert.Equal(t, ml.KindLogisticRegression, m.Kind())

	p, err := m.PredictProba(context.Background(), []float64{2, 1, 0.5})

	require.NoError(t, err)
	assert.InDelta(t, sigmoid(0.5*2-1+2*0.5+0.25), p, 1e-12)

	_, err = ml.DecodeLogisticRegression([]byte(`{"kind":"logistic_regression","n_features":3,"coef":[1]}`))
	assert.ErrorContains(t, err, "1 coefficients")
}

func TestLoad(t *testing.T) {
	c, err := ml.Load([]byte(stumpModel), ml.Options{})
	require.NoError(t, err)
	assert.Equal(t, ml.KindGradientBoosting, c.Kind())

	c, err = ml.Load([]byte(`{"kind":"logistic_regression","n_features":1,"coef":[1],"intercept":0}`), ml.Options{})
	require.NoError(t, err)
	assert.Equal(t, ml.KindLogisticRegression, c.Kind())

	_, err = ml.Load([]byte(`{"kind":"xgboost","n_features":1}`), ml.Options{})
	assert.ErrorContains(t, err, "unsupported model kind \"xgboost\"")

	_, err = ml.Load([]byte("not json"), ml.Options{})
	assert.ErrorContains(t, err, "failed to decode model header")

	kind, err := ml.Kind([]byte(stumpModel))
	require.NoError(t, err)
	assert.Equal(t, ml.KindGradientBoosting, kind)
}
