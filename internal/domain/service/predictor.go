package service

import (
	"context"
	"fmt"
	"math"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
)

// DefaultThreshold is the probability above which the positive class is predicted.
const DefaultThreshold = 0.5

// Predictor invokes the frozen classifier on a feature vector.
type Predictor struct {
	classifier port.Classifier
	threshold  float64
}

// NewPredictor checks that the classifier accepts vectors of the given width
// and returns a Predictor. A threshold of zero selects DefaultThreshold.
func NewPredictor(classifier port.Classifier, width int, threshold float64) (*Predictor, error) {
	if classifier == nil {
		return nil, model.NewArtifactError("model", "", "classifier is required")
	}
	if classifier.InputWidth() != width {
		return nil, model.NewArtifactError("model", "", "model expects %d features, feature columns define %d", classifier.InputWidth(), width)
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold <= 0 || threshold >= 1 || math.IsNaN(threshold) {
		return nil, model.NewArtifactError("model_metadata", "", "decision threshold must be within (0,1), got %v", threshold)
	}
	return &Predictor{classifier: classifier, threshold: threshold}, nil
}

// Predict returns the class label and probability for one feature vector.
// Failures are *model.PredictionError and are never retried.
func (p *Predictor) Predict(ctx context.Context, vector model.FeatureVector) (model.PredictionResult, error) {
	if len(vector) != p.classifier.InputWidth() {
		return model.PredictionResult{}, &model.PredictionError{
			Err: fmt.Errorf("feature vector has %d values, model expects %d", len(vector), p.classifier.InputWidth()),
		}
	}

	prob, err := p.classifier.PredictProba(ctx, vector)
	if err != nil {
		return model.PredictionResult{}, &model.PredictionError{Err: fmt.Errorf("%s model: %w", p.classifier.Kind(), err)}
	}
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return model.PredictionResult{}, &model.PredictionError{Err: fmt.Errorf("%s model returned probability %v", p.classifier.Kind(), prob)}
	}

	return model.PredictionResult{
		PredictedClass: prob > p.threshold,
		Probability:    prob,
	}, nil
}

// Threshold returns the decision threshold in use.
func (p *Predictor) Threshold() float64 {
	return p.threshold
}

// Kind returns the classifier backend name.
func (p *Predictor) Kind() string {
	return p.classifier.Kind()
}
