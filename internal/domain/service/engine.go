package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
)

// EngineArtifacts are the frozen inputs an Engine is built from.
type EngineArtifacts struct {
	Classifier   port.Classifier
	Scaler       port.Scaler
	Encoders     map[string]port.Encoder
	Columns      []string
	ModelVersion string
	Threshold    float64
}

// Evaluation is the outcome of scoring one validated submission.
type Evaluation struct {
	Unseen  []model.UnseenCategory
	Outcome RiskOutcome
	Result  model.PredictionResult
}

// Engine is the immutable scoring pipeline derived from one artifact set:
// validator, transformer, predictor and risk scorer. It is shared across
// requests without locking; a reload replaces the whole Engine.
type Engine struct {
	questionnaire *Questionnaire
	validator     *Validator
	transformer   *Transformer
	predictor     *Predictor
	recommender   *Recommender
	scorer        *RiskScorer
	modelVersion  string
}

// NewEngine builds and cross-checks the pipeline. Any inconsistency between
// the artifacts is a *model.ArtifactError.
func NewEngine(a EngineArtifacts, crisisContact string) (*Engine, error) {
	if a.ModelVersion == "" {
		return nil, model.NewArtifactError("model", "", "model version is required")
	}

	questionnaire, err := DefaultQuestionnaire()
	if err != nil {
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendation catalog: %w", err)
	}

	transformer, err := NewTransformer(a.Columns, a.Encoders, a.Scaler)
	if err != nil {
		return nil, err
	}
	predictor, err := NewPredictor(a.Classifier, transformer.Width(), a.Threshold)
	if err != nil {
		return nil, err
	}
	recommender := NewRecommender(catalog, crisisContact)

	return &Engine{
		questionnaire: questionnaire,
		validator:     NewValidator(questionnaire),
		transformer:   transformer,
		predictor:     predictor,
		recommender:   recommender,
		scorer:        NewRiskScorer(recommender),
		modelVersion:  a.ModelVersion,
	}, nil
}

// Validate checks raw answers against the questionnaire.
func (e *Engine) Validate(answers map[string]interface{}) (model.RawAssessment, error) {
	return e.validator.Validate(answers)
}

// Evaluate transforms, predicts and scores a validated submission.
func (e *Engine) Evaluate(ctx context.Context, raw model.RawAssessment) (Evaluation, error) {
	vector, unseen, err := e.transformer.Transform(raw)
	if err != nil {
		return Evaluation{}, &model.PredictionError{Err: err, CrisisSignal: raw.CrisisSignal()}
	}

	result, err := e.predictor.Predict(ctx, vector)
	if err != nil {
		var perr *model.PredictionError
		if errors.As(err, &perr) {
			perr.CrisisSignal = raw.CrisisSignal()
			return Evaluation{}, perr
		}
		return Evaluation{}, &model.PredictionError{Err: err, CrisisSignal: raw.CrisisSignal()}
	}

	return Evaluation{
		Result:  result,
		Outcome: e.scorer.Score(raw, result),
		Unseen:  unseen,
	}, nil
}

// Questionnaire returns the questionnaire the engine validates against.
func (e *Engine) Questionnaire() *Questionnaire { return e.questionnaire }

// CrisisResources returns the crisis information attached to error responses.
func (e *Engine) CrisisResources() []string { return e.recommender.CrisisResources() }

// ModelVersion returns the version of the loaded artifact set.
func (e *Engine) ModelVersion() string { return e.modelVersion }

// Columns returns the ordered feature columns.
func (e *Engine) Columns() []string { return e.transformer.Columns() }

// Threshold returns the decision threshold.
func (e *Engine) Threshold() float64 { return e.predictor.Threshold() }
