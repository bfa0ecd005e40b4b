package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the depression-risk tier.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "Low"}
	RiskLevelMedium = RiskLevel{value: "Medium"}
	RiskLevelHigh   = RiskLevel{value: "High"}
)

// Tier boundaries on the predicted probability. LowerMedium is inclusive,
// UpperMedium is inclusive, so 0.4 and 0.7 are both Medium.
const (
	LowerMedium = 0.4
	UpperMedium = 0.7
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLevelLow, nil
	case "Medium":
		return RiskLevelMedium, nil
	case "High":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromProbability derives the RiskLevel from a probability in [0,1]:
// p < 0.4 is Low, 0.4 <= p <= 0.7 is Medium and p > 0.7 is High.
func RiskLevelFromProbability(p float64) RiskLevel {
	switch {
	case p > UpperMedium:
		return RiskLevelHigh
	case p >= LowerMedium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// IsHigh returns true if the level is High.
func (r RiskLevel) IsHigh() bool {
	return r.value == "High"
}
