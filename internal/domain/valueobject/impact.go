package valueobject

import "fmt"

// Impact is the severity a single risk factor contributes.
type Impact struct {
	value string
	rank  int
}

var (
	ImpactLow      = Impact{value: "Low", rank: 1}
	ImpactMedium   = Impact{value: "Medium", rank: 2}
	ImpactHigh     = Impact{value: "High", rank: 3}
	ImpactCritical = Impact{value: "Critical", rank: 4}
)

// ImpactFromString reconstructs an Impact from its string representation.
func ImpactFromString(s string) (Impact, error) {
	switch s {
	case "Low":
		return ImpactLow, nil
	case "Medium":
		return ImpactMedium, nil
	case "High":
		return ImpactHigh, nil
	case "Critical":
		return ImpactCritical, nil
	default:
		return Impact{}, fmt.Errorf("invalid impact: %s", s)
	}
}

// String returns the string representation.
func (i Impact) String() string {
	return i.value
}

// Rank orders impacts; higher is more severe. The zero Impact ranks 0.
func (i Impact) Rank() int {
	return i.rank
}

// Equal checks equality with another Impact.
func (i Impact) Equal(other Impact) bool {
	return i.value == other.value
}
