package artifact

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scaler types.
const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

type scalerExport struct {
	Type  string    `json:"type"`
	Mean  []float64 `json:"mean"`
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

// StandardScaler applies (x - mean) / scale. A zero scale is treated as 1.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler builds a standard scaler.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("standard scaler needs equal non-empty mean and scale, got %d and %d", len(mean), len(scale))
	}
	if floats.HasNaN(mean) || floats.HasNaN(scale) {
		return nil, fmt.Errorf("standard scaler parameters contain NaN")
	}
	safe := make([]float64, len(scale))
	for i, s := range scale {
		if s == 0 {
			s = 1
		}
		safe[i] = s
	}
	return &StandardScaler{mean: append([]float64(nil), mean...), scale: safe}, nil
}

// Scale implements port.Scaler.
func (s *StandardScaler) Scale(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, fmt.Errorf("got %d features, scaler expects %d", len(x), len(s.mean))
	}
	out := make([]float64, len(x))
	floats.SubTo(out, x, s.mean)
	floats.Div(out, s.scale)
	return out, nil
}

// Width implements port.Scaler.
func (s *StandardScaler) Width() int { return len(s.mean) }

// MinMaxScaler applies x * scale + min.
type MinMaxScaler struct {
	min   []float64
	scale []float64
}

// NewMinMaxScaler builds a min-max scaler.
func NewMinMaxScaler(mins, scale []float64) (*MinMaxScaler, error) {
	if len(mins) == 0 || len(mins) != len(scale) {
		return nil, fmt.Errorf("minmax scaler needs equal non-empty min and scale, got %d and %d", len(mins), len(scale))
	}
	if floats.HasNaN(mins) || floats.HasNaN(scale) {
		return nil, fmt.Errorf("minmax scaler parameters contain NaN")
	}
	return &MinMaxScaler{min: append([]float64(nil), mins...), scale: append([]float64(nil), scale...)}, nil
}

// Scale implements port.Scaler.
func (s *MinMaxScaler) Scale(x []float64) ([]float64, error) {
	if len(x) != len(s.min) {
		return nil, fmt.Errorf("got %d features, scaler expects %d", len(x), len(s.min))
	}
	out := make([]float64, len(x))
	floats.MulTo(out, x, s.scale)
	floats.Add(out, s.min)
	return out, nil
}

// Width implements port.Scaler.
func (s *MinMaxScaler) Width() int { return len(s.min) }
