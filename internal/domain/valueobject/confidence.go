package valueobject

import "fmt"

// Confidence describes how far the predicted probability sits from the
// decision boundary.
type Confidence struct {
	value string
}

var (
	ConfidenceLow    = Confidence{value: "Low"}
	ConfidenceMedium = Confidence{value: "Medium"}
	ConfidenceHigh   = Confidence{value: "High"}
)

// ConfidenceFromString reconstructs a Confidence from its string representation.
func ConfidenceFromString(s string) (Confidence, error) {
	switch s {
	case "Low":
		return ConfidenceLow, nil
	case "Medium":
		return ConfidenceMedium, nil
	case "High":
		return ConfidenceHigh, nil
	default:
		return Confidence{}, fmt.Errorf("invalid confidence: %s", s)
	}
}

// ConfidenceFromProbability is High outside [0.2, 0.8], Medium outside
// [0.4, 0.6] and Low otherwise.
func ConfidenceFromProbability(p float64) Confidence {
	switch {
	case p > 0.8 || p < 0.2:
		return ConfidenceHigh
	case p > 0.6 || p < 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// String returns the string representation.
func (c Confidence) String() string {
	return c.value
}

// IsZero returns true if the confidence has not been set.
func (c Confidence) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Confidence.
func (c Confidence) Equal(other Confidence) bool {
	return c.value == other.value
}
