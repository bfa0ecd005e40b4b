package service_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
)

func newTransformer(t *testing.T, encoders map[string]port.Encoder) *service.Transformer {
	t.Helper()
	tr, err := service.NewTransformer(defaultColumns, encoders, identityScaler{width: len(defaultColumns)})
	require.NoError(t, err)
	return tr
}

func validRaw(t *testing.T, answers map[string]interface{}) model.RawAssessment {
	t.Helper()
	raw, err := newValidator(t).Validate(answers)
	require.NoError(t, err)
	return raw
}

func TestDerivedFeatures(t *testing.T) {
	sleep := map[string]float64{
		"Less than 5 hours": 4, "5-6 hours": 5.5, "7-8 hours": 7.5, "More than 8 hours": 9, "Others": 6,
	}
	for answer, want := range sleep {
		assert.Equal(t, want, service.SleepHours(answer), answer)
	}

	diet := map[string]float64{"Unhealthy": 1, "Moderate": 2, "Healthy": 3, "Others": 2}
	for answer, want := range diet {
		assert.Equal(t, want, service.DietScore(answer), answer)
	}
}

func TestCompositeRiskScore(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawAssessment
		want float64
	}{
		{
			name: "worked example",
			raw: model.RawAssessment{
				AcademicPressure: 5, FinancialStress: 5,
				SleepDuration: "Less than 5 hours", DietaryHabits: "Unhealthy",
				SuicidalThoughts: "Yes", FamilyHistory: "Yes",
			},
			// 1.0 + 1.0 + 0.1 + 0.3 + 0.3 + 0.1
			want: 2.8,
		},
		{
			name: "rested and healthy",
			raw: model.RawAssessment{
				AcademicPressure: 1, FinancialStress: 1,
				SleepDuration: "More than 8 hours", DietaryHabits: "Healthy",
				SuicidalThoughts: "No", FamilyHistory: "No",
			},
			// 0.2 + 0.2 - 0.4 + 0.1
			want: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.CompositeRiskScore(tt.raw), 1e-9)
		})
	}
}

func TestTransformer_WorkedExampleVector(t *testing.T) {
	tr := newTransformer(t, defaultEncoders())

	vector, unseen, err := tr.Transform(validRaw(t, workedExample()))

	require.NoError(t, err)
	assert.Empty(t, unseen)
	require.Len(t, vector, len(defaultColumns))
	want := []float64{22, 5, 4, 6.2, 1, 1, 12, 5, 4, 1, 2.8, 0, 3, 1, 1}
	assert.InDeltaSlice(t, want, []float64(vector), 1e-9)
	assert.Equal(t, defaultColumns, tr.Columns())
	assert.Equal(t, 15, tr.Width())
}

func TestTransformer_FollowsColumnOrder(t *testing.T) {
	columns := []string{"Risk_Score", "CGPA", "Gender_encoded", "Age"}
	tr, err := service.NewTransformer(columns, defaultEncoders(), identityScaler{width: 4})
	require.NoError(t, err)

	vector, _ := tr.Unscaled(validRaw(t, workedExample()))

	assert.InDeltaSlice(t, []float64{2.8, 6.2, 0, 22}, []float64(vector), 1e-9)
}

func TestTransformer_UnseenCategories(t *testing.T) {
	t.Run("falls back to the most frequent class", func(t *testing.T) {
		tr := newTransformer(t, defaultEncoders())
		answers := workedExample()
		answers["profession"] = "Astronaut"

		vector, unseen, err := tr.Transform(validRaw(t, answers))

		require.NoError(t, err)
		assert.Equal(t, 3.0, vector[12])
		require.Len(t, unseen, 1)
		assert.Equal(t, model.UnseenCategory{
			Field: "profession", Encoder: "Profession", Value: "Astronaut", Substitute: "Student", Code: 3,
		}, unseen[0])
	})

	t.Run("prefers a reserved Unknown class", func(t *testing.T) {
		encoders := defaultEncoders()
		encoders["Profession"] = stubEncoder{classes: []string{"Employee", "Student", "Unknown"}, mostFrequent: "Student"}
		tr := newTransformer(t, encoders)
		answers := workedExample()
		answers["profession"] = "Astronaut"

		vector, unseen, err := tr.Transform(validRaw(t, answers))

		require.NoError(t, err)
		assert.Equal(t, 2.0, vector[12])
		require.Len(t, unseen, 1)
		assert.Equal(t, "Unknown", unseen[0].Substitute)
	})

	t.Run("falls back to code zero without a declared class", func(t *testing.T) {
		encoders := defaultEncoders()
		encoders["Profession"] = stubEncoder{classes: []string{"Employee", "Student"}}
		tr := newTransformer(t, encoders)
		answers := workedExample()
		answers["profession"] = "Astronaut"

		vector, unseen, err := tr.Transform(validRaw(t, answers))

		require.NoError(t, err)
		assert.Equal(t, 0.0, vector[12])
		require.Len(t, unseen, 1)
		assert.Equal(t, "Employee", unseen[0].Substitute)
	})

	t.Run("case-folded match is not unseen", func(t *testing.T) {
		tr := newTransformer(t, defaultEncoders())
		answers := workedExample()
		answers["profession"] = "STUDENT"

		vector, unseen, err := tr.Transform(validRaw(t, answers))

		require.NoError(t, err)
		assert.Equal(t, 3.0, vector[12])
		assert.Empty(t, unseen)
	})
}

func TestNewTransformer_ArtifactErrors(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		encoders map[string]port.Encoder
		width    int
		want     string
	}{
		{
			name:     "unknown column",
			columns:  []string{"Age", "Shoe Size"},
			encoders: defaultEncoders(),
			width:    2,
			want:     "has no producer",
		},
		{
			name:     "encoded column without encoder",
			columns:  []string{"Age", "City_encoded"},
			encoders: defaultEncoders(),
			width:    2,
			want:     "no encoder for column",
		},
		{
			name:     "encoded column without source field",
			columns:  []string{"Age", "Shoe Size_encoded"},
			encoders: defaultEncoders(),
			width:    2,
			want:     "has no source field",
		},
		{
			name:     "scaler width mismatch",
			columns:  []string{"Age", "CGPA"},
			encoders: defaultEncoders(),
			width:    3,
			want:     "scaler width 3",
		},
		{
			name:     "duplicate column",
			columns:  []string{"Age", "Age"},
			encoders: defaultEncoders(),
			width:    2,
			want:     "duplicate column",
		},
		{
			name:     "empty column list",
			columns:  nil,
			encoders: defaultEncoders(),
			width:    0,
			want:     "column list is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NewTransformer(tt.columns, tt.encoders, identityScaler{width: tt.width})

			var aerr *model.ArtifactError
			require.True(t, errors.As(err, &aerr))
			assert.Contains(t, aerr.Error(), tt.want)
		})
	}
}

func TestTransformer_ConcurrentUse(t *testing.T) {
	tr := newTransformer(t, defaultEncoders())
	answers := workedExample()
	answers["profession"] = "student"
	raw := validRaw(t, answers)
	want, _, err := tr.Transform(raw)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, err := tr.Transform(raw)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
