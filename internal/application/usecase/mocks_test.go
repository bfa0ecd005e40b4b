package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/artifact"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/testutil"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	saved        []*model.Assessment
	saveFunc     func(ctx context.Context, assessment *model.Assessment) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.saved = append(m.saved, assessment)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, model.ErrNotFound
}

func (m *mockAssessmentRepository) Ping(context.Context) error { return nil }

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type failingClassifier struct {
	width int
}

func (c failingClassifier) PredictProba(context.Context, []float64) (float64, error) {
	return 0, errors.New("runtime exploded")
}

func (c failingClassifier) InputWidth() int { return c.width }

func (c failingClassifier) Kind() string { return "failing" }

// --- Fixtures ---

func loadStore(t *testing.T) *artifact.Store {
	t.Helper()
	store, err := artifact.Load(testutil.ArtifactDir(), artifact.Options{})
	require.NoError(t, err)
	return store
}

func newEngine(t *testing.T, failing bool) *service.Engine {
	t.Helper()
	a := loadStore(t).EngineArtifacts()
	if failing {
		a.Classifier = failingClassifier{width: a.Classifier.InputWidth()}
	}
	engine, err := service.NewEngine(a, "")
	require.NoError(t, err)
	return engine
}

func newMetrics(t *testing.T) *usecase.Metrics {
	t.Helper()
	m, err := usecase.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
