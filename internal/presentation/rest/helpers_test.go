package rest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/artifact"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/memory"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/messaging"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/presentation/rest"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/testutil"
)

type brokenClassifier struct{ width int }

func (c brokenClassifier) PredictProba(context.Context, []float64) (float64, error) {
	return 0, errors.New("session closed")
}

func (c brokenClassifier) InputWidth() int { return c.width }

func (c brokenClassifier) Kind() string { return "broken" }

type downRepository struct{ port.AssessmentRepository }

func (downRepository) Ping(context.Context) error { return errors.New("connection refused") }

type harness struct {
	handler http.Handler
	repo    *memory.AssessmentRepository
}

type harnessOptions struct {
	brokenModel bool
	limiter     *rest.RateLimiter
	pinger      rest.Pinger
}

func newHarness(t *testing.T, opts harnessOptions) harness {
	t.Helper()

	store, err := artifact.Load(testutil.ArtifactDir(), artifact.Options{})
	require.NoError(t, err)
	a := store.EngineArtifacts()
	if opts.brokenModel {
		a.Classifier = brokenClassifier{width: a.Classifier.InputWidth()}
	}
	engine, err := service.NewEngine(a, "")
	require.NoError(t, err)

	metrics, err := usecase.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewAssessmentRepository(time.Hour)

	assessments := rest.NewAssessmentHandler(
		usecase.NewAssessStudent(engine, repo, messaging.NewLogPublisher(logger), metrics, logger),
		usecase.NewGetAssessment(repo),
		usecase.NewDescribeModel(store.Info(engine.Threshold()), engine.Questionnaire()),
		opts.limiter,
		logger,
	)

	var pinger rest.Pinger = repo
	if opts.pinger != nil {
		pinger = opts.pinger
	}

	return harness{
		handler: rest.NewRouter(rest.RouterConfig{
			Assessments: assessments,
			Health:      rest.NewHealthHandler(pinger, engine.ModelVersion(), logger),
			Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, "# metrics\n")
			}),
			Logger: logger,
		}),
		repo: repo,
	}
}
