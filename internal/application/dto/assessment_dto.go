package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

// AssessRequest is the input DTO for the AssessStudent use case: the raw
// questionnaire answers keyed by field name, exactly as decoded from JSON.
type AssessRequest struct {
	Answers map[string]interface{}
}

// RiskFactorResponse is one fired risk rule.
type RiskFactorResponse struct {
	Value       interface{} `json:"value"`
	Factor      string      `json:"factor"`
	Impact      string      `json:"impact"`
	Description string      `json:"description"`
}

// UnseenCategoryResponse reports a categorical answer the model never saw
// and the class substituted for it.
type UnseenCategoryResponse struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Substitute string `json:"substitute"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt       time.Time                `json:"assessed_at"`
	RiskFactors      []RiskFactorResponse     `json:"risk_factors"`
	Recommendations  []string                 `json:"recommendations"`
	UnseenCategories []UnseenCategoryResponse `json:"unseen_categories"`
	ID               uuid.UUID                `json:"id"`
	RiskLevel        string                   `json:"risk_level"`
	Confidence       string                   `json:"confidence"`
	ModelVersion     string                   `json:"model_version"`
	Probability      float64                  `json:"probability"`
	Prediction       int                      `json:"prediction"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.Assessment) AssessmentResponse {
	factors := make([]RiskFactorResponse, 0, len(a.RiskFactors()))
	for _, f := range a.RiskFactors() {
		factors = append(factors, RiskFactorResponse{
			Factor:      f.Name,
			Value:       f.RawValue,
			Impact:      f.Impact.String(),
			Description: f.Description,
		})
	}

	unseen := make([]UnseenCategoryResponse, 0, len(a.UnseenCategories()))
	for _, u := range a.UnseenCategories() {
		unseen = append(unseen, UnseenCategoryResponse{
			Field:      u.Field,
			Value:      u.Value,
			Substitute: u.Substitute,
		})
	}

	recommendations := a.Recommendations()
	if recommendations == nil {
		recommendations = []string{}
	}

	prediction := 0
	if a.PredictedClass() {
		prediction = 1
	}

	return AssessmentResponse{
		ID:               a.ID(),
		Prediction:       prediction,
		Probability:      a.Probability(),
		Confidence:       a.Confidence().String(),
		RiskLevel:        a.RiskLevel().String(),
		RiskFactors:      factors,
		Recommendations:  recommendations,
		UnseenCategories: unseen,
		ModelVersion:     a.ModelVersion(),
		AssessedAt:       a.AssessedAt(),
	}
}

// FieldErrorResponse is one rejected field.
type FieldErrorResponse struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// ErrorResponse is the body of every failed request. CrisisResources is set
// whenever the submission reported suicidal thoughts, whatever the failure.
type ErrorResponse struct {
	Error           string               `json:"error"`
	Fields          []FieldErrorResponse `json:"fields,omitempty"`
	CrisisResources []string             `json:"crisis_resources,omitempty"`
}

// FromValidationError maps a validation failure to the error DTO.
func FromValidationError(verr *model.ValidationError, crisisResources []string) ErrorResponse {
	fields := make([]FieldErrorResponse, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, FieldErrorResponse{Field: f.Field, Constraint: f.Constraint, Message: f.Message})
	}
	resp := ErrorResponse{Error: "validation failed", Fields: fields}
	if verr.CrisisSignal {
		resp.CrisisResources = crisisResources
	}
	return resp
}

// ModelInfoResponse describes the loaded model.
type ModelInfoResponse struct {
	Accuracy        *float64 `json:"accuracy,omitempty"`
	AUC             *float64 `json:"auc,omitempty"`
	Precision       *float64 `json:"precision,omitempty"`
	Recall          *float64 `json:"recall,omitempty"`
	F1Score         *float64 `json:"f1_score,omitempty"`
	TrainingSamples *int     `json:"training_samples,omitempty"`
	TestSamples     *int     `json:"test_samples,omitempty"`
	FeatureColumns  []string `json:"feature_columns"`
	Encoders        []string `json:"encoders"`
	Kind            string   `json:"kind"`
	Version         string   `json:"version"`
	ModelName       string   `json:"model_name,omitempty"`
	TrainedAt       string   `json:"trained_at,omitempty"`
	NumFeatures     int      `json:"num_features"`
	Threshold       float64  `json:"threshold"`
	ModelLoaded     bool     `json:"model_loaded"`
}

// FromModelInfo maps the artifact description to the response DTO.
func FromModelInfo(info model.ModelInfo) ModelInfoResponse {
	resp := ModelInfoResponse{
		ModelLoaded:    info.Kind != "",
		Kind:           info.Kind,
		Version:        info.Version,
		FeatureColumns: info.FeatureColumns,
		NumFeatures:    len(info.FeatureColumns),
		Encoders:       info.Encoders,
		Threshold:      info.Threshold,
	}
	if m := info.Metadata; m != nil {
		resp.ModelName = m.ModelName
		resp.TrainedAt = m.TrainedAt
		resp.Accuracy = m.Accuracy
		resp.AUC = m.AUC
		resp.Precision = m.Precision
		resp.Recall = m.Recall
		resp.F1Score = m.F1Score
		resp.TrainingSamples = m.TrainingSamples
		resp.TestSamples = m.TestSamples
	}
	return resp
}
