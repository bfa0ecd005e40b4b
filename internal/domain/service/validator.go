package service

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

// Constraint names reported in field errors.
const (
	ConstraintRequired  = "required"
	ConstraintType      = "type"
	ConstraintRange     = "range"
	ConstraintOneOf     = "one_of"
	ConstraintMaxLength = "max_length"
)

// Validator turns untyped answers into a RawAssessment, checking each field
// against its questionnaire domain. Every field error is collected before
// returning.
type Validator struct {
	questionnaire *Questionnaire
}

// NewValidator creates a Validator bound to the given questionnaire.
func NewValidator(q *Questionnaire) *Validator {
	return &Validator{questionnaire: q}
}

// Validate checks answers in questionnaire order. Numeric answers may be JSON
// numbers or numeric strings; string answers are trimmed and NFKC-normalised.
// It returns a *model.ValidationError listing every rejected field.
func (v *Validator) Validate(answers map[string]interface{}) (model.RawAssessment, error) {
	var raw model.RawAssessment
	verr := &model.ValidationError{}

	for _, q := range v.questionnaire.Questions {
		value, present := answers[q.ID]
		if !present || value == nil {
			verr.Add(q.ID, ConstraintRequired, fmt.Sprintf("%s is required", q.ID))
			continue
		}

		if q.IsNumeric() {
			n, ok := coerceNumber(value)
			if !ok {
				verr.Add(q.ID, ConstraintType, fmt.Sprintf("%s must be a number", q.ID))
				continue
			}
			if n < *q.Min || n > *q.Max {
				verr.Add(q.ID, ConstraintRange, fmt.Sprintf("%s must be between %s and %s, got %s",
					q.ID, formatNumber(*q.Min), formatNumber(*q.Max), formatNumber(n)))
				continue
			}
			raw.Set(q.ID, n)
			continue
		}

		s, ok := value.(string)
		if !ok {
			verr.Add(q.ID, ConstraintType, fmt.Sprintf("%s must be a string", q.ID))
			continue
		}
		s = NormalizeText(s)
		if s == "" {
			verr.Add(q.ID, ConstraintRequired, fmt.Sprintf("%s must not be empty", q.ID))
			continue
		}
		if q.MaxLength > 0 && utf8.RuneCountInString(s) > q.MaxLength {
			verr.Add(q.ID, ConstraintMaxLength, fmt.Sprintf("%s must be at most %d characters", q.ID, q.MaxLength))
			continue
		}
		if q.Type == QuestionChoice && !q.Open && !slices.Contains(q.Options, s) {
			verr.Add(q.ID, ConstraintOneOf, fmt.Sprintf("%s must be one of: %s", q.ID, strings.Join(q.Options, ", ")))
			continue
		}
		raw.Set(q.ID, s)
	}

	if verr.HasErrors() {
		if st, ok := answers[model.FieldSuicidalThoughts].(string); ok {
			verr.CrisisSignal = NormalizeText(st) == model.AnswerYes
		}
		return model.RawAssessment{}, verr
	}
	return raw, nil
}

// NormalizeText trims surrounding space and applies NFKC normalisation.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func coerceNumber(value interface{}) (float64, bool) {
	var n float64
	switch x := value.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
