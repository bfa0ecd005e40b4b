package model

// ModelMetadata is the optional training summary shipped with a model.
type ModelMetadata struct {
	Accuracy        *float64 `json:"accuracy,omitempty"`
	AUC             *float64 `json:"auc,omitempty"`
	Precision       *float64 `json:"precision,omitempty"`
	Recall          *float64 `json:"recall,omitempty"`
	F1Score         *float64 `json:"f1_score,omitempty"`
	TrainingSamples *int     `json:"training_samples,omitempty"`
	TestSamples     *int     `json:"test_samples,omitempty"`
	ModelName       string   `json:"model_name,omitempty"`
	TrainedAt       string   `json:"trained_at,omitempty"`
	Threshold       float64  `json:"threshold,omitempty"`
}

// ModelInfo describes the loaded artifact set.
type ModelInfo struct {
	Metadata       *ModelMetadata
	Encoders       []string
	FeatureColumns []string
	Kind           string
	Version        string
	Dir            string
	Threshold      float64
}
