// Package ml holds the frozen classifier backends. Each backend decodes a
// JSON model export and implements port.Classifier.
package ml

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
)

// Model kinds.
const (
	KindGradientBoosting   = "gradient_boosting"
	KindLogisticRegression = "logistic_regression"
	KindONNX               = "onnx"
)

// header is the part of every model export shared by all kinds.
type header struct {
	Kind      string `json:"kind"`
	NFeatures int    `json:"n_features"`
}

// Options carries runtime settings some backends need.
type Options struct {
	// Dir is the artifact directory; relative model paths resolve against it.
	Dir string
	// ONNXRuntimeLib is the path of the onnxruntime shared library.
	ONNXRuntimeLib string
}

// Kind reads the kind of a model export without decoding the rest.
func Kind(data []byte) (string, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return "", fmt.Errorf("failed to decode model header: %w", err)
	}
	return h.Kind, nil
}

// Load decodes a model export of any supported kind.
func Load(data []byte, opts Options) (port.Classifier, error) {
	kind, err := Kind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindGradientBoosting:
		m, err := DecodeGradientBoosting(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindLogisticRegression:
		m, err := DecodeLogisticRegression(data)
		if err != nil {
			return nil, err
		}
		return m, nil
	case KindONNX:
		m, err := LoadONNX(data, opts)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", kind)
	}
}

func decodeHeader(data []byte, kind string) (header, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to decode model: %w", err)
	}
	if h.Kind != kind {
		return h, fmt.Errorf("model kind %q, want %q", h.Kind, kind)
	}
	if h.NFeatures <= 0 {
		return h, fmt.Errorf("n_features must be positive, got %d", h.NFeatures)
	}
	return h, nil
}

// sigmoid is the logistic function, stable for large |x|.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
