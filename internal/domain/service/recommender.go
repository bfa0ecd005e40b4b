package service

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
)

//go:embed catalog.yaml
var catalogYAML []byte

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 10

// DefaultCrisisContact is used when no crisis contact is configured.
const DefaultCrisisContact = "call or text 988 (Suicide & Crisis Lifeline) or your local emergency number"

const contactPlaceholder = "{contact}"

// Catalog is the static recommendation text, keyed by risk tier and by factor name.
type Catalog struct {
	Tiers           map[string][]string `yaml:"tiers"`
	Factors         map[string][]string `yaml:"factors"`
	CrisisDirective string              `yaml:"crisis_directive"`
}

// DefaultCatalog parses the embedded recommendation catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalog and checks that it covers every tier
// and every risk factor.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation catalog: %w", err)
	}
	if !strings.Contains(c.CrisisDirective, contactPlaceholder) {
		return nil, fmt.Errorf("recommendation catalog: crisis_directive must contain %s", contactPlaceholder)
	}
	for _, tier := range []valueobject.RiskLevel{valueobject.RiskLevelLow, valueobject.RiskLevelMedium, valueobject.RiskLevelHigh} {
		if len(c.Tiers[tier.String()]) == 0 {
			return nil, fmt.Errorf("recommendation catalog: no entries for tier %s", tier)
		}
	}
	for _, name := range FactorNames() {
		if len(c.Factors[name]) == 0 {
			return nil, fmt.Errorf("recommendation catalog: no entries for factor %q", name)
		}
	}
	return &c, nil
}

// Recommender assembles recommendation lists from a Catalog.
type Recommender struct {
	catalog   *Catalog
	directive string
}

// NewRecommender creates a Recommender whose crisis directive names the given
// contact. An empty contact selects DefaultCrisisContact.
func NewRecommender(catalog *Catalog, crisisContact string) *Recommender {
	if strings.TrimSpace(crisisContact) == "" {
		crisisContact = DefaultCrisisContact
	}
	return &Recommender{
		catalog:   catalog,
		directive: strings.ReplaceAll(catalog.CrisisDirective, contactPlaceholder, crisisContact),
	}
}

// CrisisDirective returns the immediate-help directive with the crisis contact.
func (r *Recommender) CrisisDirective() string {
	return r.directive
}

// CrisisResources returns the crisis information attached to error responses.
func (r *Recommender) CrisisResources() []string {
	return []string{r.directive}
}

// Recommend returns tier entries followed by factor entries in ranked factor
// order, de-duplicated and capped at MaxRecommendations. When crisis is set or
// the level is High the crisis directive is always the first entry.
func (r *Recommender) Recommend(level valueobject.RiskLevel, crisis bool, factors []model.RiskFactor) []string {
	out := make([]string, 0, MaxRecommendations)
	seen := make(map[string]bool)
	add := func(text string) {
		if len(out) >= MaxRecommendations || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, text)
	}

	if crisis || level.IsHigh() {
		add(r.directive)
	}
	for _, text := range r.catalog.Tiers[level.String()] {
		add(text)
	}
	for _, f := range factors {
		for _, text := range r.catalog.Factors[f.Name] {
			add(text)
		}
	}
	return out
}
