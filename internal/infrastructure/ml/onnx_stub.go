//go:build !onnx

package ml

import (
	"context"
	"errors"
)

// Stub implementation when onnxruntime is not compiled in.
// Build with -tags onnx to enable the real implementation.

// ErrONNXUnavailable is returned when an onnx model is loaded without the onnx build tag.
var ErrONNXUnavailable = errors.New("onnx models need a build with -tags onnx")

// ONNX is a stub when built without the onnx tag.
type ONNX struct{}

// LoadONNX always fails without the onnx tag.
func LoadONNX(data []byte, _ Options) (*ONNX, error) {
	if _, err := decodeHeader(data, KindONNX); err != nil {
		return nil, err
	}
	return nil, ErrONNXUnavailable
}

// PredictProba is unavailable without onnxruntime.
func (m *ONNX) PredictProba(_ context.Context, _ []float64) (float64, error) {
	return 0, ErrONNXUnavailable
}

// InputWidth always returns zero without onnxruntime.
func (m *ONNX) InputWidth() int { return 0 }

// Kind implements port.Classifier.
func (m *ONNX) Kind() string { return KindONNX }

// Close is a no-op.
func (m *ONNX) Close() error { return nil }
