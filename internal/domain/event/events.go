package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every finished assessment.
	EventTypeAssessmentCompleted = "mindcheck.assessment.completed"

	// EventTypeHighRiskDetected is emitted when the risk level is High or the
	// respondent disclosed suicidal thoughts.
	EventTypeHighRiskDetected = "mindcheck.high_risk.detected"
)

// AssessmentCompleted is published when an assessment has been scored.
// It carries outputs only, never the submitted answers.
type AssessmentCompleted struct {
	events.BaseEvent
	RiskLevel      string   `json:"risk_level"`
	Confidence     string   `json:"confidence"`
	RiskFactors    []string `json:"risk_factors"`
	ModelVersion   string   `json:"model_version"`
	Probability    float64  `json:"probability"`
	UnseenCount    int      `json:"unseen_categories"`
	PredictedClass bool     `json:"predicted_class"`
}

// NewAssessmentCompleted builds the completion event for an assessment.
func NewAssessmentCompleted(
	assessmentID uuid.UUID,
	riskLevel, confidence string,
	probability float64,
	predictedClass bool,
	riskFactors []string,
	unseenCount int,
	modelVersion string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:      events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, assessedAt),
		RiskLevel:      riskLevel,
		Confidence:     confidence,
		Probability:    probability,
		PredictedClass: predictedClass,
		RiskFactors:    riskFactors,
		UnseenCount:    unseenCount,
		ModelVersion:   modelVersion,
	}
}

// HighRiskDetected is published alongside AssessmentCompleted so that
// follow-up workflows can react to high-risk or crisis submissions.
type HighRiskDetected struct {
	events.BaseEvent
	RiskLevel    string   `json:"risk_level"`
	RiskFactors  []string `json:"risk_factors"`
	Probability  float64  `json:"probability"`
	CrisisSignal bool     `json:"crisis_signal"`
}

// NewHighRiskDetected builds the high-risk alert for an assessment.
func NewHighRiskDetected(
	assessmentID uuid.UUID,
	riskLevel string,
	probability float64,
	crisisSignal bool,
	riskFactors []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, detectedAt),
		RiskLevel:    riskLevel,
		Probability:  probability,
		CrisisSignal: crisisSignal,
		RiskFactors:  riskFactors,
	}
}
