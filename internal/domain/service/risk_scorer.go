package service

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
)

// Risk factor names.
const (
	FactorAcademicPressure    = "High Academic Pressure"
	FactorFinancialStress     = "High Financial Stress"
	FactorInsufficientSleep   = "Insufficient Sleep"
	FactorUnhealthyDiet       = "Unhealthy Diet"
	FactorSuicidalThoughts    = "History of Suicidal Thoughts"
	FactorFamilyHistory       = "Family History of Mental Illness"
	FactorWorkPressure        = "High Work Pressure"
	FactorStudySatisfaction   = "Low Study Satisfaction"
	FactorJobSatisfaction     = "Low Job Satisfaction"
	FactorAcademicPerformance = "Low Academic Performance"
)

// factorRule is one declarative risk rule. fire reports the observed value
// and impact when the rule applies.
type factorRule struct {
	fire     func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool)
	describe func(value interface{}) string
	name     string
}

// pressureRule fires at level 4 (Medium) and 5 (High).
func pressureRule(get func(model.RawAssessment) float64) func(model.RawAssessment) (interface{}, valueobject.Impact, bool) {
	return func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool) {
		v := get(raw)
		switch {
		case v >= 5:
			return v, valueobject.ImpactHigh, true
		case v >= 4:
			return v, valueobject.ImpactMedium, true
		default:
			return nil, valueobject.Impact{}, false
		}
	}
}

func lowScoreRule(get func(model.RawAssessment) float64) func(model.RawAssessment) (interface{}, valueobject.Impact, bool) {
	return func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool) {
		v := get(raw)
		if v <= 2 {
			return v, valueobject.ImpactMedium, true
		}
		return nil, valueobject.Impact{}, false
	}
}

func answerRule(get func(model.RawAssessment) string, want string, impact valueobject.Impact) func(model.RawAssessment) (interface{}, valueobject.Impact, bool) {
	return func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool) {
		v := get(raw)
		if v == want {
			return v, impact, true
		}
		return nil, valueobject.Impact{}, false
	}
}

func fixed(text string) func(interface{}) string {
	return func(interface{}) string { return text }
}

func templated(format string) func(interface{}) string {
	return func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return fmt.Sprintf(format, strconv.FormatFloat(f, 'g', -1, 64))
		}
		return fmt.Sprintf(format, v)
	}
}

// factorRules is evaluated in this declared order.
var factorRules = []factorRule{
	{
		name:     FactorAcademicPressure,
		fire:     pressureRule(func(r model.RawAssessment) float64 { return r.AcademicPressure }),
		describe: templated("Academic pressure level of %s/5 indicates significant stress"),
	},
	{
		name:     FactorFinancialStress,
		fire:     pressureRule(func(r model.RawAssessment) float64 { return r.FinancialStress }),
		describe: templated("Financial stress level of %s/5 indicates significant financial pressure"),
	},
	{
		name: FactorInsufficientSleep,
		fire: func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool) {
			switch raw.SleepDuration {
			case model.SleepLessThan5:
				return raw.SleepDuration, valueobject.ImpactHigh, true
			case model.Sleep5To6:
				return raw.SleepDuration, valueobject.ImpactMedium, true
			default:
				return nil, valueobject.Impact{}, false
			}
		},
		describe: templated("Sleep duration of %s may contribute to mental health issues"),
	},
	{
		name:     FactorUnhealthyDiet,
		fire:     answerRule(func(r model.RawAssessment) string { return r.DietaryHabits }, model.DietUnhealthy, valueobject.ImpactMedium),
		describe: fixed("Unhealthy dietary habits may negatively impact mental health"),
	},
	{
		name:     FactorSuicidalThoughts,
		fire:     answerRule(func(r model.RawAssessment) string { return r.SuicidalThoughts }, model.AnswerYes, valueobject.ImpactCritical),
		describe: fixed("Previous suicidal thoughts indicate high risk and require immediate attention"),
	},
	{
		name:     FactorFamilyHistory,
		fire:     answerRule(func(r model.RawAssessment) string { return r.FamilyHistory }, model.AnswerYes, valueobject.ImpactMedium),
		describe: fixed("Family history of mental illness increases risk of developing similar conditions"),
	},
	{
		name:     FactorWorkPressure,
		fire:     pressureRule(func(r model.RawAssessment) float64 { return r.WorkPressure }),
		describe: templated("Work pressure level of %s/5 indicates significant workplace stress"),
	},
	{
		name:     FactorStudySatisfaction,
		fire:     lowScoreRule(func(r model.RawAssessment) float64 { return r.StudySatisfaction }),
		describe: templated("Study satisfaction level of %s/5 indicates dissatisfaction with academic life"),
	},
	{
		name:     FactorJobSatisfaction,
		fire:     lowScoreRule(func(r model.RawAssessment) float64 { return r.JobSatisfaction }),
		describe: templated("Job satisfaction level of %s/5 indicates workplace dissatisfaction"),
	},
	{
		name: FactorAcademicPerformance,
		fire: func(raw model.RawAssessment) (interface{}, valueobject.Impact, bool) {
			if raw.CGPA < 6.0 {
				return raw.CGPA, valueobject.ImpactMedium, true
			}
			return nil, valueobject.Impact{}, false
		},
		describe: templated("CGPA of %s may indicate academic struggles affecting mental health"),
	},
}

// FactorNames lists every rule in declared order.
func FactorNames() []string {
	names := make([]string, 0, len(factorRules))
	for _, r := range factorRules {
		names = append(names, r.name)
	}
	return names
}

// RiskOutcome is the scored explanation of one prediction.
type RiskOutcome struct {
	Level           valueobject.RiskLevel
	Confidence      valueobject.Confidence
	Factors         []model.RiskFactor
	Recommendations []string
}

// RiskScorer maps a prediction to a risk tier, extracts the contributing
// factors from the answers and selects recommendations. It is total over
// validated input.
type RiskScorer struct {
	recommender *Recommender
}

// NewRiskScorer creates a new RiskScorer instance.
func NewRiskScorer(recommender *Recommender) *RiskScorer {
	return &RiskScorer{recommender: recommender}
}

// Factors evaluates every rule and returns the fired factors ranked by impact,
// highest first. Ties keep declared order.
func (s *RiskScorer) Factors(raw model.RawAssessment) []model.RiskFactor {
	factors := make([]model.RiskFactor, 0, len(factorRules))
	for _, rule := range factorRules {
		value, impact, ok := rule.fire(raw)
		if !ok {
			continue
		}
		factors = append(factors, model.RiskFactor{
			Name:        rule.name,
			RawValue:    value,
			Impact:      impact,
			Description: rule.describe(value),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Impact.Rank() > factors[j].Impact.Rank()
	})
	return factors
}

// Score produces the full outcome for a prediction on the given answers.
func (s *RiskScorer) Score(raw model.RawAssessment, result model.PredictionResult) RiskOutcome {
	level := valueobject.RiskLevelFromProbability(result.Probability)
	factors := s.Factors(raw)

	return RiskOutcome{
		Level:           level,
		Confidence:      valueobject.ConfidenceFromProbability(result.Probability),
		Factors:         factors,
		Recommendations: s.recommender.Recommend(level, raw.CrisisSignal(), factors),
	}
}
