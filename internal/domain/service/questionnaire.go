package service

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

//go:embed questionnaire.yaml
var questionnaireYAML []byte

// Question types.
const (
	QuestionNumber = "number"
	QuestionScale  = "scale"
	QuestionChoice = "choice"
	QuestionText   = "text"
)

// Question is one entry of the questionnaire a front-end renders. Its ID is
// the RawAssessment field it answers.
type Question struct {
	Min       *float64       `yaml:"min" json:"min,omitempty"`
	Max       *float64       `yaml:"max" json:"max,omitempty"`
	Labels    map[int]string `yaml:"labels" json:"labels,omitempty"`
	ID        string         `yaml:"id" json:"id"`
	Prompt    string         `yaml:"prompt" json:"prompt"`
	Type      string         `yaml:"type" json:"type"`
	Help      string         `yaml:"help" json:"help,omitempty"`
	Options   []string       `yaml:"options" json:"options,omitempty"`
	Step      float64        `yaml:"step" json:"step,omitempty"`
	MaxLength int            `yaml:"max_length" json:"max_length,omitempty"`
	Open      bool           `yaml:"open" json:"open,omitempty"`
}

// IsNumeric reports whether the answer is a number.
func (q Question) IsNumeric() bool {
	return q.Type == QuestionNumber || q.Type == QuestionScale
}

// Questionnaire is the ordered list of questions.
type Questionnaire struct {
	Title     string     `yaml:"title" json:"title"`
	Version   string     `yaml:"version" json:"version"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// fieldIsNumeric lists every RawAssessment field and whether its answer is numeric.
var fieldIsNumeric = map[string]bool{
	model.FieldAge:               true,
	model.FieldGender:            false,
	model.FieldAcademicPressure:  true,
	model.FieldWorkPressure:      true,
	model.FieldCGPA:              true,
	model.FieldStudySatisfaction: true,
	model.FieldJobSatisfaction:   true,
	model.FieldWorkStudyHours:    true,
	model.FieldFinancialStress:   true,
	model.FieldSleepDuration:     false,
	model.FieldDietaryHabits:     false,
	model.FieldSuicidalThoughts:  false,
	model.FieldFamilyHistory:     false,
	model.FieldCity:              false,
	model.FieldProfession:        false,
	model.FieldDegree:            false,
}

// DefaultQuestionnaire parses the embedded questionnaire definition.
func DefaultQuestionnaire() (*Questionnaire, error) {
	return ParseQuestionnaire(questionnaireYAML)
}

// ParseQuestionnaire decodes a YAML questionnaire and checks that it asks
// exactly the RawAssessment fields, each with a usable domain.
func ParseQuestionnaire(data []byte) (*Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}

	seen := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		numeric, known := fieldIsNumeric[question.ID]
		if !known {
			return nil, fmt.Errorf("questionnaire: unknown question %q", question.ID)
		}
		if seen[question.ID] {
			return nil, fmt.Errorf("questionnaire: duplicate question %q", question.ID)
		}
		seen[question.ID] = true

		switch question.Type {
		case QuestionNumber, QuestionScale:
			if !numeric {
				return nil, fmt.Errorf("questionnaire: %s must be a text or choice question", question.ID)
			}
			if question.Min == nil || question.Max == nil || *question.Min > *question.Max {
				return nil, fmt.Errorf("questionnaire: %s needs min <= max", question.ID)
			}
		case QuestionChoice:
			if numeric {
				return nil, fmt.Errorf("questionnaire: %s must be a number question", question.ID)
			}
			if len(question.Options) == 0 {
				return nil, fmt.Errorf("questionnaire: %s has no options", question.ID)
			}
		case QuestionText:
			if numeric {
				return nil, fmt.Errorf("questionnaire: %s must be a number question", question.ID)
			}
		default:
			return nil, fmt.Errorf("questionnaire: %s has unknown type %q", question.ID, question.Type)
		}
	}

	for field := range fieldIsNumeric {
		if !seen[field] {
			return nil, fmt.Errorf("questionnaire: missing question %q", field)
		}
	}

	return &q, nil
}

// Question returns the question with the given ID.
func (q *Questionnaire) Question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}
