//go:build onnx

package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

type onnxExport struct {
	Path        string `json:"path"`
	InputName   string `json:"input_name"`
	OutputName  string `json:"output_name"`
	PositiveIdx int    `json:"positive_index"`
}

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(lib string) error {
	ortInitOnce.Do(func() {
		if lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNX runs a classifier exported to ONNX (e.g. by skl2onnx with zipmap
// disabled). The output tensor holds class probabilities of shape [1, 2].
type ONNX struct {
	session     *ort.DynamicAdvancedSession
	nFeatures   int
	positiveIdx int
}

// LoadONNX decodes an onnx model descriptor and opens an inference session.
func LoadONNX(data []byte, opts Options) (*ONNX, error) {
	h, err := decodeHeader(data, KindONNX)
	if err != nil {
		return nil, err
	}
	var export onnxExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode onnx descriptor: %w", err)
	}
	if export.Path == "" || export.InputName == "" || export.OutputName == "" {
		return nil, fmt.Errorf("onnx descriptor needs path, input_name and output_name")
	}
	if export.PositiveIdx == 0 {
		export.PositiveIdx = 1
	}

	if err := initRuntime(opts.ONNXRuntimeLib); err != nil {
		return nil, fmt.Errorf("failed to initialise onnxruntime: %w", err)
	}

	path := export.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.Dir, path)
	}
	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{export.InputName}, []string{export.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open onnx session %s: %w", path, err)
	}

	return &ONNX{session: session, nFeatures: h.NFeatures, positiveIdx: export.PositiveIdx}, nil
}

// PredictProba implements port.Classifier.
func (m *ONNX) PredictProba(_ context.Context, x []float64) (float64, error) {
	if len(x) != m.nFeatures {
		return 0, fmt.Errorf("got %d features, want %d", len(x), m.nFeatures)
	}

	in := make([]float32, len(x))
	for i, v := range x {
		in[i] = float32(v)
	}
	input, err := ort.NewTensor(ort.NewShape(1, int64(len(in))), in)
	if err != nil {
		return 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(m.positiveIdx+1)))
	if err != nil {
		return 0, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := m.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return 0, fmt.Errorf("onnx inference failed: %w", err)
	}
	return float64(output.GetData()[m.positiveIdx]), nil
}

// InputWidth implements port.Classifier.
func (m *ONNX) InputWidth() int { return m.nFeatures }

// Kind implements port.Classifier.
func (m *ONNX) Kind() string { return KindONNX }

// Close releases the inference session.
func (m *ONNX) Close() error {
	return m.session.Destroy()
}
