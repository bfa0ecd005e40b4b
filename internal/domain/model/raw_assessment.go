package model

// Answer field names, as submitted by clients and listed by the questionnaire.
const (
	FieldAge               = "age"
	FieldGender            = "gender"
	FieldAcademicPressure  = "academic_pressure"
	FieldWorkPressure      = "work_pressure"
	FieldCGPA              = "cgpa"
	FieldStudySatisfaction = "study_satisfaction"
	FieldJobSatisfaction   = "job_satisfaction"
	FieldWorkStudyHours    = "work_study_hours"
	FieldFinancialStress   = "financial_stress"
	FieldSleepDuration     = "sleep_duration"
	FieldDietaryHabits     = "dietary_habits"
	FieldSuicidalThoughts  = "suicidal_thoughts"
	FieldFamilyHistory     = "family_history"
	FieldCity              = "city"
	FieldProfession        = "profession"
	FieldDegree            = "degree"
)

// Categorical answer values the derived features depend on.
const (
	SleepLessThan5 = "Less than 5 hours"
	Sleep5To6      = "5-6 hours"
	Sleep7To8      = "7-8 hours"
	SleepMoreThan8 = "More than 8 hours"
	SleepOthers    = "Others"
	DietUnhealthy  = "Unhealthy"
	DietModerate   = "Moderate"
	DietHealthy    = "Healthy"
	DietOthers     = "Others"
	AnswerYes      = "Yes"
	AnswerNo       = "No"
)

// RawAssessment is one validated questionnaire submission. It lives for a
// single request and is never persisted.
type RawAssessment struct {
	Age               float64
	Gender            string
	AcademicPressure  float64
	WorkPressure      float64
	CGPA              float64
	StudySatisfaction float64
	JobSatisfaction   float64
	WorkStudyHours    float64
	FinancialStress   float64
	SleepDuration     string
	DietaryHabits     string
	SuicidalThoughts  string
	FamilyHistory     string
	City              string
	Profession        string
	Degree            string
}

// CrisisSignal reports whether the respondent disclosed suicidal thoughts.
func (r RawAssessment) CrisisSignal() bool {
	return r.SuicidalThoughts == AnswerYes
}

// Numeric returns the named numeric answer.
func (r RawAssessment) Numeric(field string) (float64, bool) {
	switch field {
	case FieldAge:
		return r.Age, true
	case FieldAcademicPressure:
		return r.AcademicPressure, true
	case FieldWorkPressure:
		return r.WorkPressure, true
	case FieldCGPA:
		return r.CGPA, true
	case FieldStudySatisfaction:
		return r.StudySatisfaction, true
	case FieldJobSatisfaction:
		return r.JobSatisfaction, true
	case FieldWorkStudyHours:
		return r.WorkStudyHours, true
	case FieldFinancialStress:
		return r.FinancialStress, true
	default:
		return 0, false
	}
}

// Categorical returns the named string answer.
func (r RawAssessment) Categorical(field string) (string, bool) {
	switch field {
	case FieldGender:
		return r.Gender, true
	case FieldSleepDuration:
		return r.SleepDuration, true
	case FieldDietaryHabits:
		return r.DietaryHabits, true
	case FieldSuicidalThoughts:
		return r.SuicidalThoughts, true
	case FieldFamilyHistory:
		return r.FamilyHistory, true
	case FieldCity:
		return r.City, true
	case FieldProfession:
		return r.Profession, true
	case FieldDegree:
		return r.Degree, true
	default:
		return "", false
	}
}

// Set assigns a numeric or string answer by field name. It reports false for
// unknown fields or a value of the wrong kind.
func (r *RawAssessment) Set(field string, value interface{}) bool {
	if f, ok := value.(float64); ok {
		switch field {
		case FieldAge:
			r.Age = f
		case FieldAcademicPressure:
			r.AcademicPressure = f
		case FieldWorkPressure:
			r.WorkPressure = f
		case FieldCGPA:
			r.CGPA = f
		case FieldStudySatisfaction:
			r.StudySatisfaction = f
		case FieldJobSatisfaction:
			r.JobSatisfaction = f
		case FieldWorkStudyHours:
			r.WorkStudyHours = f
		case FieldFinancialStress:
			r.FinancialStress = f
		default:
			return false
		}
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch field {
	case FieldGender:
		r.Gender = s
	case FieldSleepDuration:
		r.SleepDuration = s
	case FieldDietaryHabits:
		r.DietaryHabits = s
	case FieldSuicidalThoughts:
		r.SuicidalThoughts = s
	case FieldFamilyHistory:
		r.FamilyHistory = s
	case FieldCity:
		r.City = s
	case FieldProfession:
		r.Profession = s
	case FieldDegree:
		r.Degree = s
	default:
		return false
	}
	return true
}
