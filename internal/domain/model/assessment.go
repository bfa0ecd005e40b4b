package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/event"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
)

// Assessment is the aggregate root for one scored questionnaire submission.
// It holds outputs only; the raw answers are discarded once scored.
type Assessment struct {
	assessedAt       time.Time
	createdAt        time.Time
	riskLevel        valueobject.RiskLevel
	confidence       valueobject.Confidence
	modelVersion     string
	riskFactors      []RiskFactor
	recommendations  []string
	unseenCategories []UnseenCategory
	pending          events.Buffer
	probability      float64
	version          int
	predictedClass   bool
	crisisSignal     bool
	id               uuid.UUID
}

// NewAssessment creates an unscored assessment for a submission made against
// the given model version. Call Complete to apply the prediction.
func NewAssessment(modelVersion string, crisisSignal bool) (*Assessment, error) {
	if modelVersion == "" {
		return nil, fmt.Errorf("model version is required")
	}

	return &Assessment{
		id:               uuid.New(),
		modelVersion:     modelVersion,
		crisisSignal:     crisisSignal,
		riskFactors:      make([]RiskFactor, 0),
		recommendations:  make([]string, 0),
		unseenCategories: make([]UnseenCategory, 0),
		version:          1,
		createdAt:        time.Now().UTC(),
	}, nil
}

// Complete applies the prediction, the ranked risk factors and the
// recommendations, derives the risk level and confidence, and records the
// domain events.
func (a *Assessment) Complete(
	result PredictionResult,
	factors []RiskFactor,
	recommendations []string,
	unseen []UnseenCategory,
) error {
	if !a.assessedAt.IsZero() {
		return fmt.Errorf("assessment %s already completed", a.id)
	}
	p := result.Probability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("probability must be within [0,1], got %v", p)
	}

	a.probability = p
	a.predictedClass = result.PredictedClass
	a.riskLevel = valueobject.RiskLevelFromProbability(p)
	a.confidence = valueobject.ConfidenceFromProbability(p)
	if factors != nil {
		a.riskFactors = factors
	}
	if recommendations != nil {
		a.recommendations = recommendations
	}
	if unseen != nil {
		a.unseenCategories = unseen
	}
	a.assessedAt = time.Now().UTC()
	a.version++

	names := a.FactorNames()
	a.pending.Add(event.NewAssessmentCompleted(
		a.id, a.riskLevel.String(), a.confidence.String(),
		a.probability, a.predictedClass, names,
		len(a.unseenCategories), a.modelVersion, a.assessedAt,
	))

	if a.RequiresFollowUp() {
		a.pending.Add(event.NewHighRiskDetected(
			a.id, a.riskLevel.String(), a.probability, a.crisisSignal, names, a.assessedAt,
		))
	}

	return nil
}

// RequiresFollowUp reports whether the assessment is High risk or carries a crisis signal.
func (a *Assessment) RequiresFollowUp() bool {
	return a.riskLevel.IsHigh() || a.crisisSignal
}

// FactorNames returns the names of the fired risk factors in ranked order.
func (a *Assessment) FactorNames() []string {
	names := make([]string, 0, len(a.riskFactors))
	for _, f := range a.riskFactors {
		names = append(names, f.Name)
	}
	return names
}

// Reconstruct rebuilds an Assessment from persisted data (no validation, no events).
func Reconstruct(
	id uuid.UUID,
	riskLevel valueobject.RiskLevel,
	confidence valueobject.Confidence,
	probability float64,
	predictedClass bool,
	crisisSignal bool,
	riskFactors []RiskFactor,
	recommendations []string,
	unseenCategories []UnseenCategory,
	modelVersion string,
	assessedAt time.Time,
	version int,
	createdAt time.Time,
) *Assessment {
	return &Assessment{
		id:               id,
		riskLevel:        riskLevel,
		confidence:       confidence,
		probability:      probability,
		predictedClass:   predictedClass,
		crisisSignal:     crisisSignal,
		riskFactors:      riskFactors,
		recommendations:  recommendations,
		unseenCategories: unseenCategories,
		modelVersion:     modelVersion,
		assessedAt:       assessedAt,
		version:          version,
		createdAt:        createdAt,
	}
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                      { return a.id }
func (a *Assessment) RiskLevel() valueobject.RiskLevel   { return a.riskLevel }
func (a *Assessment) Confidence() valueobject.Confidence { return a.confidence }
func (a *Assessment) Probability() float64               { return a.probability }
func (a *Assessment) PredictedClass() bool               { return a.predictedClass }
func (a *Assessment) CrisisSignal() bool                 { return a.crisisSignal }
func (a *Assessment) RiskFactors() []RiskFactor          { return a.riskFactors }
func (a *Assessment) Recommendations() []string          { return a.recommendations }
func (a *Assessment) UnseenCategories() []UnseenCategory { return a.unseenCategories }
func (a *Assessment) ModelVersion() string               { return a.modelVersion }
func (a *Assessment) AssessedAt() time.Time              { return a.assessedAt }
func (a *Assessment) Version() int                       { return a.version }
func (a *Assessment) CreatedAt() time.Time               { return a.createdAt }

// DomainEvents drains the events raised since the last call.
func (a *Assessment) DomainEvents() []events.DomainEvent {
	return a.pending.Drain()
}
