package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/valueobject"
	pgpkg "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
// Only the outputs of an assessment are stored, never the raw answers.
type AssessmentRepository struct {
	db   pgpkg.Querier
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{db: pool, pool: pool}
}

// riskFactorRow is the JSONB form of a model.RiskFactor.
type riskFactorRow struct {
	Value       interface{} `json:"value"`
	Name        string      `json:"name"`
	Impact      string      `json:"impact"`
	Description string      `json:"description"`
}

// unseenRow is the JSONB form of a model.UnseenCategory.
type unseenRow struct {
	Field      string `json:"field"`
	Encoder    string `json:"encoder"`
	Value      string `json:"value"`
	Substitute string `json:"substitute"`
	Code       int    `json:"code"`
}

const selectAssessment = `
	SELECT id, risk_level, confidence, probability, predicted_class, crisis_signal,
		risk_factors, recommendations, unseen_categories,
		model_version, assessed_at, version, created_at
	FROM assessments
`

// Save persists a completed assessment. Saving the same assessment twice
// overwrites the stored row.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	factors, recommendations, unseen, err := encodeDetails(assessment)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assessments (
			id, risk_level, confidence, probability, predicted_class, crisis_signal,
			risk_factors, recommendations, unseen_categories,
			model_version, assessed_at, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			risk_level = EXCLUDED.risk_level,
			confidence = EXCLUDED.confidence,
			probability = EXCLUDED.probability,
			predicted_class = EXCLUDED.predicted_class,
			risk_factors = EXCLUDED.risk_factors,
			recommendations = EXCLUDED.recommendations,
			unseen_categories = EXCLUDED.unseen_categories,
			assessed_at = EXCLUDED.assessed_at,
			version = EXCLUDED.version
	`

	_, err = r.db.Exec(ctx, query,
		assessment.ID(),
		assessment.RiskLevel().String(),
		assessment.Confidence().String(),
		assessment.Probability(),
		assessment.PredictedClass(),
		assessment.CrisisSignal(),
		factors,
		recommendations,
		unseen,
		assessment.ModelVersion(),
		assessment.AssessedAt(),
		assessment.Version(),
		assessment.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	return scanAssessment(r.db.QueryRow(ctx, selectAssessment+" WHERE id = $1", id))
}

// Ping checks the database connection.
func (r *AssessmentRepository) Ping(ctx context.Context) error {
	return pgpkg.HealthCheck(ctx, r.pool)
}

func encodeDetails(a *model.Assessment) (factors, recommendations, unseen []byte, err error) {
	factorRows := make([]riskFactorRow, 0, len(a.RiskFactors()))
	for _, f := range a.RiskFactors() {
		factorRows = append(factorRows, riskFactorRow{
			Name:        f.Name,
			Value:       f.RawValue,
			Impact:      f.Impact.String(),
			Description: f.Description,
		})
	}
	unseenRows := make([]unseenRow, 0, len(a.UnseenCategories()))
	for _, u := range a.UnseenCategories() {
		unseenRows = append(unseenRows, unseenRow(u))
	}
	recs := a.Recommendations()
	if recs == nil {
		recs = []string{}
	}

	if factors, err = json.Marshal(factorRows); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode risk factors: %w", err)
	}
	if recommendations, err = json.Marshal(recs); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	if unseen, err = json.Marshal(unseenRows); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode unseen categories: %w", err)
	}
	return factors, recommendations, unseen, nil
}

func scanAssessment(row pgx.Row) (*model.Assessment, error) {
	var (
		id             uuid.UUID
		riskLevelStr   string
		confidenceStr  string
		probability    float64
		predictedClass bool
		crisisSignal   bool
		factorsJSON    []byte
		recsJSON       []byte
		unseenJSON     []byte
		modelVersion   string
		assessedAt     time.Time
		version        int
		createdAt      time.Time
	)

	err := row.Scan(
		&id, &riskLevelStr, &confidenceStr, &probability, &predictedClass, &crisisSignal,
		&factorsJSON, &recsJSON, &unseenJSON,
		&modelVersion, &assessedAt, &version, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}
	confidence, err := valueobject.ConfidenceFromString(confidenceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confidence: %w", err)
	}

	factors, recommendations, unseen, err := decodeDetails(factorsJSON, recsJSON, unseenJSON)
	if err != nil {
		return nil, err
	}

	return model.Reconstruct(
		id, riskLevel, confidence, probability, predictedClass, crisisSignal,
		factors, recommendations, unseen,
		modelVersion, assessedAt.UTC(), version, createdAt.UTC(),
	), nil
}

func decodeDetails(factorsJSON, recsJSON, unseenJSON []byte) ([]model.RiskFactor, []string, []model.UnseenCategory, error) {
	var factorRows []riskFactorRow
	if err := json.Unmarshal(factorsJSON, &factorRows); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode risk factors: %w", err)
	}
	factors := make([]model.RiskFactor, 0, len(factorRows))
	for _, f := range factorRows {
		impact, err := valueobject.ImpactFromString(f.Impact)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to parse impact of %q: %w", f.Name, err)
		}
		factors = append(factors, model.RiskFactor{
			Name:        f.Name,
			RawValue:    f.Value,
			Impact:      impact,
			Description: f.Description,
		})
	}

	recommendations := make([]string, 0)
	if err := json.Unmarshal(recsJSON, &recommendations); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	var unseenRows []unseenRow
	if err := json.Unmarshal(unseenJSON, &unseenRows); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode unseen categories: %w", err)
	}
	unseen := make([]model.UnseenCategory, 0, len(unseenRows))
	for _, u := range unseenRows {
		unseen = append(unseen, model.UnseenCategory(u))
	}

	return factors, recommendations, unseen, nil
}
