package artifact

import "fmt"

// LabelEncoder is a frozen label encoder: codes are positions in Classes.
type LabelEncoder struct {
	index        map[string]int
	classes      []string
	mostFrequent string
}

type labelEncoderExport struct {
	Classes      []string `json:"classes"`
	MostFrequent string   `json:"most_frequent"`
}

// NewLabelEncoder builds an encoder from its class list.
func NewLabelEncoder(classes []string, mostFrequent string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder has no classes")
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		index[c] = i
	}
	if mostFrequent != "" {
		if _, ok := index[mostFrequent]; !ok {
			return nil, fmt.Errorf("most_frequent %q is not a class", mostFrequent)
		}
	}
	return &LabelEncoder{
		index:        index,
		classes:      append([]string(nil), classes...),
		mostFrequent: mostFrequent,
	}, nil
}

// Code implements port.Encoder.
func (e *LabelEncoder) Code(class string) (int, bool) {
	code, ok := e.index[class]
	return code, ok
}

// Classes implements port.Encoder.
func (e *LabelEncoder) Classes() []string { return e.classes }

// MostFrequent implements port.Encoder.
func (e *LabelEncoder) MostFrequent() string { return e.mostFrequent }
