package model

import "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"

// FeatureVector is the ordered numeric input of the classifier. Its length and
// order match the artifact's feature-column list exactly.
type FeatureVector []float64

// PredictionResult is the classifier output for one FeatureVector.
type PredictionResult struct {
	PredictedClass bool
	Probability    float64
}

// UnseenCategory records a categorical answer outside the encoder vocabulary
// and the fallback class substituted for it.
type UnseenCategory struct {
	Field      string
	Encoder    string
	Value      string
	Substitute string
	Code       int
}

// RiskFactor is one fired risk rule.
type RiskFactor struct {
	Name        string
	RawValue    interface{}
	Impact      valueobject.Impact
	Description string
}
