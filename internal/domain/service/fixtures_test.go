package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
)

var defaultColumns = []string{
	"Age", "Academic Pressure", "Work Pressure", "CGPA", "Study Satisfaction",
	"Job Satisfaction", "Work/Study Hours", "Financial Stress", "Sleep_Hours",
	"Diet_Score", "Risk_Score", "Gender_encoded", "Profession_encoded",
	"Have you ever had suicidal thoughts ?_encoded", "Family History of Mental Illness_encoded",
}

type stubEncoder struct {
	mostFrequent string
	classes      []string
}

func (e stubEncoder) Code(class string) (int, bool) {
	for i, c := range e.classes {
		if c == class {
			return i, true
		}
	}
	return 0, false
}

func (e stubEncoder) Classes() []string    { return e.classes }
func (e stubEncoder) MostFrequent() string { return e.mostFrequent }

func defaultEncoders() map[string]port.Encoder {
	return map[string]port.Encoder{
		"Gender":                                stubEncoder{classes: []string{"Female", "Male", "Other"}, mostFrequent: "Male"},
		"Profession":                            stubEncoder{classes: []string{"Employee", "Other", "Self-employed", "Student", "Unemployed"}, mostFrequent: "Student"},
		"Have you ever had suicidal thoughts ?": stubEncoder{classes: []string{"No", "Yes"}},
		"Family History of Mental Illness":      stubEncoder{classes: []string{"No", "Yes"}},
	}
}

// identityScaler returns the vector unchanged.
type identityScaler struct {
	width int
}

func (s identityScaler) Scale(x []float64) ([]float64, error) {
	if len(x) != s.width {
		return nil, errors.New("width mismatch")
	}
	return append([]float64(nil), x...), nil
}

func (s identityScaler) Width() int { return s.width }

type stubClassifier struct {
	err   error
	prob  float64
	width int
	calls int
}

func (c *stubClassifier) PredictProba(_ context.Context, _ []float64) (float64, error) {
	c.calls++
	return c.prob, c.err
}

func (c *stubClassifier) InputWidth() int { return c.width }
func (c *stubClassifier) Kind() string    { return "stub" }

// workedExample is the reference high-risk submission.
func workedExample() map[string]interface{} {
	return map[string]interface{}{
		"age":                22,
		"gender":             "Female",
		"academic_pressure":  5,
		"work_pressure":      4,
		"cgpa":               6.2,
		"study_satisfaction": 1,
		"job_satisfaction":   1,
		"work_study_hours":   12,
		"financial_stress":   5,
		"sleep_duration":     "Less than 5 hours",
		"dietary_habits":     "Unhealthy",
		"suicidal_thoughts":  "Yes",
		"family_history":     "Yes",
		"city":               "Delhi",
		"profession":         "Student",
		"degree":             "Bachelor",
	}
}

// lowRiskAnswers fires no risk rule.
func lowRiskAnswers() map[string]interface{} {
	return map[string]interface{}{
		"age":                24,
		"gender":             "Male",
		"academic_pressure":  2,
		"work_pressure":      1,
		"cgpa":               8.4,
		"study_satisfaction": 4,
		"job_satisfaction":   4,
		"work_study_hours":   6,
		"financial_stress":   2,
		"sleep_duration":     "7-8 hours",
		"dietary_habits":     "Healthy",
		"suicidal_thoughts":  "No",
		"family_history":     "No",
		"city":               "Lahore",
		"profession":         "Student",
		"degree":             "Master's",
	}
}

func newValidator(t *testing.T) *service.Validator {
	t.Helper()
	q, err := service.DefaultQuestionnaire()
	require.NoError(t, err)
	return service.NewValidator(q)
}

func newRecommender(t *testing.T) *service.Recommender {
	t.Helper()
	c, err := service.DefaultCatalog()
	require.NoError(t, err)
	return service.NewRecommender(c, "")
}
