package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
)

// EncodedSuffix marks a label-encoded feature column.
const EncodedSuffix = "_encoded"

// UnknownClass is the reserved encoder class used for unseen values.
const UnknownClass = "Unknown"

// numericColumns maps direct numeric feature columns to their answer field.
var numericColumns = map[string]string{
	"Age":                model.FieldAge,
	"Academic Pressure":  model.FieldAcademicPressure,
	"Work Pressure":      model.FieldWorkPressure,
	"CGPA":               model.FieldCGPA,
	"Study Satisfaction": model.FieldStudySatisfaction,
	"Job Satisfaction":   model.FieldJobSatisfaction,
	"Work/Study Hours":   model.FieldWorkStudyHours,
	"Financial Stress":   model.FieldFinancialStress,
}

// encoderFields maps label encoder names to the answer field they encode.
var encoderFields = map[string]string{
	"Gender":                               model.FieldGender,
	"City":                                 model.FieldCity,
	"Profession":                           model.FieldProfession,
	"Degree":                               model.FieldDegree,
	"Sleep Duration":                       model.FieldSleepDuration,
	"Dietary Habits":                       model.FieldDietaryHabits,
	"Have you ever had suicidal thoughts ?": model.FieldSuicidalThoughts,
	"Family History of Mental Illness":     model.FieldFamilyHistory,
}

var sleepHours = map[string]float64{
	model.SleepLessThan5: 4,
	model.Sleep5To6:      5.5,
	model.Sleep7To8:      7.5,
	model.SleepMoreThan8: 9,
	model.SleepOthers:    6,
}

var dietScores = map[string]float64{
	model.DietUnhealthy: 1,
	model.DietModerate:  2,
	model.DietHealthy:   3,
	model.DietOthers:    2,
}

// SleepHours maps a sleep_duration answer to its Sleep_Hours feature value.
func SleepHours(duration string) float64 {
	if h, ok := sleepHours[duration]; ok {
		return h
	}
	return sleepHours[model.SleepOthers]
}

// DietScore maps a dietary_habits answer to its Diet_Score feature value.
func DietScore(habits string) float64 {
	if s, ok := dietScores[habits]; ok {
		return s
	}
	return dietScores[model.DietOthers]
}

// CompositeRiskScore computes the engineered Risk_Score feature exactly as it
// was defined at training time.
func CompositeRiskScore(raw model.RawAssessment) float64 {
	return raw.AcademicPressure*0.2 +
		raw.FinancialStress*0.2 +
		(5-SleepHours(raw.SleepDuration))*0.1 +
		(4-DietScore(raw.DietaryHabits))*0.1 +
		indicator(raw.SuicidalThoughts == model.AnswerYes)*0.3 +
		indicator(raw.FamilyHistory == model.AnswerYes)*0.1
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

type producer func(raw model.RawAssessment) (float64, *model.UnseenCategory)

// Transformer converts a validated RawAssessment into the scaled, ordered
// feature vector the classifier expects. Every column is bound to a producer
// at construction, so a Transformer is immutable and safe for concurrent use.
type Transformer struct {
	scaler    port.Scaler
	columns   []string
	producers []producer
}

// NewTransformer binds each feature column to its producer. An unknown
// column, a missing encoder or a scaler of the wrong width is an
// *model.ArtifactError.
func NewTransformer(columns []string, encoders map[string]port.Encoder, scaler port.Scaler) (*Transformer, error) {
	if len(columns) == 0 {
		return nil, model.NewArtifactError("feature_columns", "", "column list is empty")
	}
	if scaler == nil {
		return nil, model.NewArtifactError("scaler", "", "scaler is required")
	}
	if scaler.Width() != len(columns) {
		return nil, model.NewArtifactError("scaler", "", "scaler width %d does not match %d feature columns", scaler.Width(), len(columns))
	}

	t := &Transformer{
		scaler:    scaler,
		columns:   append([]string(nil), columns...),
		producers: make([]producer, 0, len(columns)),
	}

	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if seen[column] {
			return nil, model.NewArtifactError("feature_columns", "", "duplicate column %q", column)
		}
		seen[column] = true

		p, err := bindColumn(column, encoders)
		if err != nil {
			return nil, err
		}
		t.producers = append(t.producers, p)
	}

	return t, nil
}

func bindColumn(column string, encoders map[string]port.Encoder) (producer, error) {
	if field, ok := numericColumns[column]; ok {
		return func(raw model.RawAssessment) (float64, *model.UnseenCategory) {
			v, _ := raw.Numeric(field)
			return v, nil
		}, nil
	}

	switch column {
	case "Sleep_Hours":
		return func(raw model.RawAssessment) (float64, *model.UnseenCategory) {
			return SleepHours(raw.SleepDuration), nil
		}, nil
	case "Diet_Score":
		return func(raw model.RawAssessment) (float64, *model.UnseenCategory) {
			return DietScore(raw.DietaryHabits), nil
		}, nil
	case "Risk_Score":
		return func(raw model.RawAssessment) (float64, *model.UnseenCategory) {
			return CompositeRiskScore(raw), nil
		}, nil
	}

	name, ok := strings.CutSuffix(column, EncodedSuffix)
	if !ok {
		return nil, model.NewArtifactError("feature_columns", "", "column %q has no producer", column)
	}
	field, ok := encoderFields[name]
	if !ok {
		return nil, model.NewArtifactError("feature_columns", "", "encoded column %q has no source field", column)
	}
	enc, ok := encoders[name]
	if !ok || enc == nil {
		return nil, model.NewArtifactError("label_encoders", "", "no encoder for column %q", column)
	}

	lookup := newFoldedLookup(name, field, enc)
	return lookup.produce, nil
}

// foldedLookup resolves categorical answers with exact, then case-folded
// matching and falls back to a fixed class on a miss.
type foldedLookup struct {
	encoder       port.Encoder
	folded        map[string]int
	name          string
	field         string
	fallbackClass string
	fallbackCode  int
}

func newFoldedLookup(name, field string, enc port.Encoder) *foldedLookup {
	l := &foldedLookup{
		encoder: enc,
		folded:  make(map[string]int, len(enc.Classes())),
		name:    name,
		field:   field,
	}
	for _, class := range enc.Classes() {
		key := foldKey(class)
		if _, dup := l.folded[key]; dup {
			continue
		}
		code, _ := enc.Code(class)
		l.folded[key] = code
	}

	switch {
	case hasClass(enc, UnknownClass):
		l.fallbackClass = UnknownClass
	case enc.MostFrequent() != "" && hasClass(enc, enc.MostFrequent()):
		l.fallbackClass = enc.MostFrequent()
	case len(enc.Classes()) > 0:
		l.fallbackClass = enc.Classes()[0]
	}
	if l.fallbackClass != "" {
		l.fallbackCode, _ = enc.Code(l.fallbackClass)
	}
	return l
}

func (l *foldedLookup) produce(raw model.RawAssessment) (float64, *model.UnseenCategory) {
	value, _ := raw.Categorical(l.field)
	if code, ok := l.encoder.Code(value); ok {
		return float64(code), nil
	}
	if code, ok := l.folded[foldKey(value)]; ok {
		return float64(code), nil
	}
	return float64(l.fallbackCode), &model.UnseenCategory{
		Field:      l.field,
		Encoder:    l.name,
		Value:      value,
		Substitute: l.fallbackClass,
		Code:       l.fallbackCode,
	}
}

func hasClass(enc port.Encoder, class string) bool {
	_, ok := enc.Code(class)
	return ok
}

// foldKey builds a fresh Caser per call; cases.Caser is not safe for concurrent use.
func foldKey(s string) string {
	return cases.Fold().String(NormalizeText(s))
}

// Columns returns the ordered feature column names.
func (t *Transformer) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Width returns the feature vector length.
func (t *Transformer) Width() int {
	return len(t.columns)
}

// Unscaled produces the ordered feature values before scaling, with any
// unseen-category substitutions made along the way.
func (t *Transformer) Unscaled(raw model.RawAssessment) (model.FeatureVector, []model.UnseenCategory) {
	vector := make(model.FeatureVector, len(t.producers))
	var unseen []model.UnseenCategory
	for i, produce := range t.producers {
		v, u := produce(raw)
		vector[i] = v
		if u != nil {
			unseen = append(unseen, *u)
		}
	}
	return vector, unseen
}

// Transform produces the scaled feature vector for a validated assessment.
func (t *Transformer) Transform(raw model.RawAssessment) (model.FeatureVector, []model.UnseenCategory, error) {
	vector, unseen := t.Unscaled(raw)
	scaled, err := t.scaler.Scale(vector)
	if err != nil {
		return nil, unseen, fmt.Errorf("failed to scale features: %w", err)
	}
	return scaled, unseen, nil
}
