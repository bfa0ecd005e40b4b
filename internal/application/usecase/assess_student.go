package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
)

// AssessStudent is the use case for scoring one questionnaire submission.
type AssessStudent struct {
	engine    *service.Engine
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	metrics   *Metrics
	logger    *slog.Logger
}

// NewAssessStudent creates a new AssessStudent use case.
func NewAssessStudent(
	engine *service.Engine,
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	metrics *Metrics,
	logger *slog.Logger,
) *AssessStudent {
	return &AssessStudent{
		engine:    engine,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute validates, transforms, predicts and scores a submission, then
// stores the outputs and publishes the domain events. Storage and publishing
// failures are logged; the caller still gets the assessment.
func (uc *AssessStudent) Execute(ctx context.Context, req dto.AssessRequest) (dto.AssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "AssessStudent.Execute")
	defer span.End()

	// 1. Validate every field.
	raw, err := uc.engine.Validate(req.Answers)
	if err != nil {
		uc.metrics.rejected(ctx)
		span.SetStatus(codes.Error, "validation failed")
		uc.logger.InfoContext(ctx, "submission rejected", "error", err)
		return dto.AssessmentResponse{}, fmt.Errorf("invalid submission: %w", err)
	}

	// 2. Transform, predict and score.
	start := time.Now()
	evaluation, err := uc.engine.Evaluate(ctx, raw)
	if err != nil {
		uc.metrics.predicted(ctx, time.Since(start), "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "prediction failed")
		uc.logger.ErrorContext(ctx, "prediction failed", "error", err, "model_version", uc.engine.ModelVersion())
		return dto.AssessmentResponse{}, fmt.Errorf("failed to evaluate submission: %w", err)
	}
	uc.metrics.predicted(ctx, time.Since(start), "ok")

	for _, u := range evaluation.Unseen {
		uc.metrics.unseen(ctx, u.Field)
		uc.logger.WarnContext(ctx, "unseen category",
			"field", u.Field, "value", u.Value, "substitute", u.Substitute, "encoder", u.Encoder)
	}

	// 3. Build the aggregate.
	assessment, err := model.NewAssessment(uc.engine.ModelVersion(), raw.CrisisSignal())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}
	outcome := evaluation.Outcome
	if err := assessment.Complete(evaluation.Result, outcome.Factors, outcome.Recommendations, evaluation.Unseen); err != nil {
		return dto.AssessmentResponse{}, &model.PredictionError{Err: err, CrisisSignal: raw.CrisisSignal()}
	}
	uc.metrics.assessed(ctx, assessment.RiskLevel().String())
	span.SetAttributes(
		attribute.String("assessment.id", assessment.ID().String()),
		attribute.String("assessment.risk_level", assessment.RiskLevel().String()),
	)

	// 4. Persist the outputs.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		uc.logger.ErrorContext(ctx, "failed to save assessment", "assessment_id", assessment.ID(), "error", err)
	}

	// 5. Publish domain events.
	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.ErrorContext(ctx, "failed to publish events", "assessment_id", assessment.ID(), "error", err)
		}
	}

	uc.logger.InfoContext(ctx, "assessment completed",
		"assessment_id", assessment.ID(),
		"risk_level", assessment.RiskLevel().String(),
		"probability", assessment.Probability(),
		"factors", len(assessment.RiskFactors()),
	)

	return dto.FromModel(assessment), nil
}

// CrisisResources returns the crisis resources attached to failed
// submissions that reported suicidal thoughts.
func (uc *AssessStudent) CrisisResources() []string {
	return uc.engine.CrisisResources()
}
