package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"

var tracer = otel.Tracer(instrumentationName)

// Metrics are the assessment instruments.
type Metrics struct {
	assessments        metric.Int64Counter
	unseenCategories   metric.Int64Counter
	validationFailures metric.Int64Counter
	predictionLatency  metric.Float64Histogram
}

// NewMetrics registers the assessment instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	assessments, err := meter.Int64Counter("mindcheck.assessments",
		metric.WithDescription("Completed assessments by risk level."))
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}
	unseen, err := meter.Int64Counter("mindcheck.unseen_categories",
		metric.WithDescription("Categorical answers outside the encoder vocabulary, by field."))
	if err != nil {
		return nil, fmt.Errorf("failed to create unseen categories counter: %w", err)
	}
	failures, err := meter.Int64Counter("mindcheck.validation_failures",
		metric.WithDescription("Rejected submissions."))
	if err != nil {
		return nil, fmt.Errorf("failed to create validation failures counter: %w", err)
	}
	latency, err := meter.Float64Histogram("mindcheck.prediction.duration",
		metric.WithDescription("Time spent transforming, predicting and scoring one submission."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction latency histogram: %w", err)
	}

	return &Metrics{
		assessments:        assessments,
		unseenCategories:   unseen,
		validationFailures: failures,
		predictionLatency:  latency,
	}, nil
}

func (m *Metrics) assessed(ctx context.Context, riskLevel string) {
	m.assessments.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", riskLevel)))
}

func (m *Metrics) unseen(ctx context.Context, field string) {
	m.unseenCategories.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

func (m *Metrics) rejected(ctx context.Context) {
	m.validationFailures.Add(ctx, 1)
}

func (m *Metrics) predicted(ctx context.Context, took time.Duration, outcome string) {
	m.predictionLatency.Record(ctx, took.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}
