// Package testutil holds fixtures shared by package tests and, behind the
// integration build tag, containerised PostgreSQL and Kafka.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
)

// ArtifactVersion is the version of the sample artifact set.
const ArtifactVersion = "20250926_165109"

// WorkedExampleProbability is the probability the sample model assigns to WorkedExample.
const WorkedExampleProbability = 0.9791636554813196

// LowRiskProbability is the probability the sample model assigns to LowRiskAnswers.
const LowRiskProbability = 0.060086650174007626

// ArtifactDir returns the absolute path of the sample artifact set.
func ArtifactDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "internal", "infrastructure", "artifact", "testdata")
}

// WorkedExample is a high-risk submission that fires most risk rules and
// reports suicidal thoughts.
func WorkedExample() map[string]interface{} {
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

// LowRiskAnswers is a submission that fires no risk rule.
func LowRiskAnswers() map[string]interface{} {
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

// CompletedAssessment returns a scored high-risk assessment with one unseen
// category. Its domain events are already drained.
func CompletedAssessment(t *testing.T) *model.Assessment {
	t.Helper()

	a := completed(t)
	a.DomainEvents()
	return a
}

// CompletedEvents returns the events recorded by completing a high-risk
// assessment with a crisis signal: completion, then high risk.
func CompletedEvents(t *testing.T) []events.DomainEvent {
	t.Helper()

	return completed(t).DomainEvents()
}

func completed(t *testing.T) *model.Assessment {
	t.Helper()

	a, err := model.NewAssessment(ArtifactVersion, true)
	require.NoError(t, err)
	require.NoError(t, a.Complete(
		model.PredictionResult{PredictedClass: true, Probability: 0.93},
		[]model.RiskFactor{
			{Name: "History of Suicidal Thoughts", RawValue: "Yes", Impact: valueobject.ImpactCritical, Description: "Has experienced suicidal thoughts"},
			{Name: "High Financial Stress", RawValue: 5.0, Impact: valueobject.ImpactHigh, Description: "Financial stress level: 5/5"},
		},
		[]string{"Seek immediate professional help", "Practice stress management techniques"},
		[]model.UnseenCategory{{Field: "profession", Encoder: "Profession", Value: "Astronaut", Substitute: "Student", Code: 3}},
	))
	return a
}
