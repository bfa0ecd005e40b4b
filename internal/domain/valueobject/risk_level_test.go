package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
)

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "Low", valueobject.RiskLevelLow.String())
	assert.Equal(t, "Medium", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "High", valueobject.RiskLevelHigh.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"Low", valueobject.RiskLevelLow, false},
		{"Medium", valueobject.RiskLevelMedium, false},
		{"High", valueobject.RiskLevelHigh, false},
		{"HIGH", valueobject.RiskLevel{}, true},
		{"Critical", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskLevel_FromProbability(t *testing.T) {
	tests := []struct {
		name        string
		expected    valueobject.RiskLevel
		probability float64
	}{
		{name: "0 is Low", expected: valueobject.RiskLevelLow, probability: 0},
		{name: "0.2 is Low", expected: valueobject.RiskLevelLow, probability: 0.2},
		{name: "just below 0.4 is Low", expected: valueobject.RiskLevelLow, probability: 0.3999999},
		{name: "0.4 is Medium", expected: valueobject.RiskLevelMedium, probability: 0.4},
		{name: "0.55 is Medium", expected: valueobject.RiskLevelMedium, probability: 0.55},
		{name: "0.7 is Medium", expected: valueobject.RiskLevelMedium, probability: 0.7},
		{name: "just above 0.7 is High", expected: valueobject.RiskLevelHigh, probability: 0.7000001},
		{name: "0.9 is High", expected: valueobject.RiskLevelHigh, probability: 0.9},
		{name: "1 is High", expected: valueobject.RiskLevelHigh, probability: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RiskLevelFromProbability(tt.probability)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for probability %v, got %s", tt.expected, tt.probability, result)
		})
	}
}

func TestRiskLevel_ProbabilityGridIsMonotonic(t *testing.T) {
	prev := 0
	rank := map[string]int{"Low": 0, "Medium": 1, "High": 2}
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		level := valueobject.RiskLevelFromProbability(p)
		require.GreaterOrEqual(t, rank[level.String()], prev, "tier decreased at p=%v", p)
		prev = rank[level.String()]

		switch {
		case p < 0.4:
			assert.Equal(t, "Low", level.String())
		case p <= 0.7:
			assert.Equal(t, "Medium", level.String())
		default:
			assert.Equal(t, "High", level.String())
		}
	}
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
	assert.True(t, valueobject.RiskLevelHigh.IsHigh())
	assert.False(t, valueobject.RiskLevelMedium.IsHigh())
}

func TestConfidence_FromProbability(t *testing.T) {
	tests := []struct {
		expected    valueobject.Confidence
		probability float64
	}{
		{valueobject.ConfidenceHigh, 0.05},
		{valueobject.ConfidenceHigh, 0.95},
		{valueobject.ConfidenceMedium, 0.2},
		{valueobject.ConfidenceMedium, 0.3},
		{valueobject.ConfidenceMedium, 0.65},
		{valueobject.ConfidenceMedium, 0.8},
		{valueobject.ConfidenceLow, 0.4},
		{valueobject.ConfidenceLow, 0.5},
		{valueobject.ConfidenceLow, 0.6},
	}

	for _, tt := range tests {
		result := valueobject.ConfidenceFromProbability(tt.probability)
		assert.True(t, tt.expected.Equal(result),
			"expected %s for probability %v, got %s", tt.expected, tt.probability, result)
	}
}

func TestImpact_Rank(t *testing.T) {
	assert.Less(t, valueobject.ImpactLow.Rank(), valueobject.ImpactMedium.Rank())
	assert.Less(t, valueobject.ImpactMedium.Rank(), valueobject.ImpactHigh.Rank())
	assert.Less(t, valueobject.ImpactHigh.Rank(), valueobject.ImpactCritical.Rank())

	parsed, err := valueobject.ImpactFromString("Critical")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(valueobject.ImpactCritical))

	_, err = valueobject.ImpactFromString("Severe")
	require.Error(t, err)
}
