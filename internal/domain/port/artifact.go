package port

import "context"

// Classifier is a frozen binary classifier.
type Classifier interface {
	// PredictProba returns the probability of the positive class for one
	// already scaled feature vector of length InputWidth.
	PredictProba(ctx context.Context, features []float64) (float64, error)

	// InputWidth is the number of features the model was trained on.
	InputWidth() int

	// Kind names the model backend, e.g. "gradient_boosting".
	Kind() string
}

// Scaler applies the fitted numeric scaling to a full feature vector.
type Scaler interface {
	Scale(features []float64) ([]float64, error)
	Width() int
}

// Encoder is a frozen label encoder for one categorical column.
type Encoder interface {
	// Code returns the integer code of an exact class match.
	Code(class string) (int, bool)

	// Classes lists the training vocabulary in code order.
	Classes() []string

	// MostFrequent is the most frequent training class, or "" if unknown.
	MostFrequent() string
}
