package service_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

func TestValidator_ValidSubmission(t *testing.T) {
	v := newValidator(t)

	raw, err := v.Validate(workedExample())

	require.NoError(t, err)
	assert.Equal(t, model.RawAssessment{
		Age:               22,
		Gender:            "Female",
		AcademicPressure:  5,
		WorkPressure:      4,
		CGPA:              6.2,
		StudySatisfaction: 1,
		JobSatisfaction:   1,
		WorkStudyHours:    12,
		FinancialStress:   5,
		SleepDuration:     "Less than 5 hours",
		DietaryHabits:     "Unhealthy",
		SuicidalThoughts:  "Yes",
		FamilyHistory:     "Yes",
		City:              "Delhi",
		Profession:        "Student",
		Degree:            "Bachelor",
	}, raw)
}

func TestValidator_Coercion(t *testing.T) {
	v := newValidator(t)

	answers := workedExample()
	answers["age"] = " 22 "
	answers["cgpa"] = json.Number("6.2")
	answers["work_study_hours"] = float32(12)
	answers["gender"] = "  Ｆｅｍａｌｅ "
	answers["city"] = "  New Delhi\t"

	raw, err := v.Validate(answers)

	require.NoError(t, err)
	assert.Equal(t, 22.0, raw.Age)
	assert.Equal(t, 6.2, raw.CGPA)
	assert.Equal(t, 12.0, raw.WorkStudyHours)
	assert.Equal(t, "Female", raw.Gender)
	assert.Equal(t, "New Delhi", raw.City)
}

func TestValidator_FieldErrors(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(map[string]interface{})
		field          string
		constraint     string
		messageContent string
	}{
		{
			name:           "missing academic pressure",
			mutate:         func(a map[string]interface{}) { delete(a, "academic_pressure") },
			field:          model.FieldAcademicPressure,
			constraint:     "required",
			messageContent: "academic_pressure is required",
		},
		{
			name:           "null value",
			mutate:         func(a map[string]interface{}) { a["cgpa"] = nil },
			field:          model.FieldCGPA,
			constraint:     "required",
			messageContent: "cgpa is required",
		},
		{
			name:           "academic pressure above range",
			mutate:         func(a map[string]interface{}) { a["academic_pressure"] = 7 },
			field:          model.FieldAcademicPressure,
			constraint:     "range",
			messageContent: "between 1 and 5, got 7",
		},
		{
			name:           "academic pressure 9",
			mutate:         func(a map[string]interface{}) { a["academic_pressure"] = 9.0 },
			field:          model.FieldAcademicPressure,
			constraint:     "range",
			messageContent: "between 1 and 5",
		},
		{
			name:           "age below range",
			mutate:         func(a map[string]interface{}) { a["age"] = 15 },
			field:          model.FieldAge,
			constraint:     "range",
			messageContent: "between 16 and 100",
		},
		{
			name:           "non numeric age",
			mutate:         func(a map[string]interface{}) { a["age"] = "twenty" },
			field:          model.FieldAge,
			constraint:     "type",
			messageContent: "age must be a number",
		},
		{
			name:           "boolean is not a number",
			mutate:         func(a map[string]interface{}) { a["work_pressure"] = true },
			field:          model.FieldWorkPressure,
			constraint:     "type",
			messageContent: "must be a number",
		},
		{
			name:           "unknown gender",
			mutate:         func(a map[string]interface{}) { a["gender"] = "Robot" },
			field:          model.FieldGender,
			constraint:     "one_of",
			messageContent: "Male, Female, Other",
		},
		{
			name:           "unknown sleep duration",
			mutate:         func(a map[string]interface{}) { a["sleep_duration"] = "3 hours" },
			field:          model.FieldSleepDuration,
			constraint:     "one_of",
			messageContent: "Less than 5 hours",
		},
		{
			name:           "number for a string field",
			mutate:         func(a map[string]interface{}) { a["family_history"] = 1 },
			field:          model.FieldFamilyHistory,
			constraint:     "type",
			messageContent: "must be a string",
		},
		{
			name:           "blank city",
			mutate:         func(a map[string]interface{}) { a["city"] = "   " },
			field:          model.FieldCity,
			constraint:     "required",
			messageContent: "must not be empty",
		},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := workedExample()
			tt.mutate(answers)

			_, err := v.Validate(answers)

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			f, ok := verr.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.constraint, f.Constraint)
			assert.Contains(t, f.Message, tt.messageContent)
		})
	}
}

func TestValidator_OpenChoicesAcceptUnseenValues(t *testing.T) {
	v := newValidator(t)

	answers := workedExample()
	answers["profession"] = "Astronaut"
	answers["degree"] = "B.Tech"
	answers["city"] = "Atlantis"

	raw, err := v.Validate(answers)

	require.NoError(t, err)
	assert.Equal(t, "Astronaut", raw.Profession)
	assert.Equal(t, "B.Tech", raw.Degree)
}

func TestValidator_CollectsAllErrorsInQuestionnaireOrder(t *testing.T) {
	v := newValidator(t)

	answers := workedExample()
	delete(answers, "degree")
	answers["financial_stress"] = 0
	answers["age"] = 200

	_, err := v.Validate(answers)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, model.FieldAge, verr.Fields[0].Field)
	assert.Equal(t, model.FieldFinancialStress, verr.Fields[1].Field)
	assert.Equal(t, model.FieldDegree, verr.Fields[2].Field)
	assert.True(t, verr.CrisisSignal, "suicidal_thoughts=Yes flags crisis even when invalid")
}

func TestValidator_NoCrisisSignalWithoutDisclosure(t *testing.T) {
	v := newValidator(t)

	answers := lowRiskAnswers()
	delete(answers, "age")

	_, err := v.Validate(answers)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.CrisisSignal)
}
