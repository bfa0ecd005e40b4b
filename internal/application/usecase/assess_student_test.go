package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/event"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/testutil"
)

func TestAssessStudent_Execute(t *testing.T) {
	t.Run("scores the worked example as high risk", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newEngine(t, false)
		uc := usecase.NewAssessStudent(engine, repo, publisher, newMetrics(t), discardLogger())

		resp, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.WorkedExample()})

		require.NoError(t, err)
		assert.Equal(t, "High", resp.RiskLevel)
		assert.Equal(t, "High", resp.Confidence)
		assert.Equal(t, 1, resp.Prediction)
		assert.InDelta(t, testutil.WorkedExampleProbability, resp.Probability, 1e-9)
		assert.Equal(t, testutil.ArtifactVersion, resp.ModelVersion)
		require.NotEmpty(t, resp.RiskFactors)
		assert.Equal(t, service.FactorSuicidalThoughts, resp.RiskFactors[0].Factor)
		assert.Equal(t, "Critical", resp.RiskFactors[0].Impact)
		require.NotEmpty(t, resp.Recommendations)
		assert.Equal(t, engine.CrisisResources()[0], resp.Recommendations[0])
		assert.Empty(t, resp.UnseenCategories)

		require.Len(t, repo.saved, 1)
		assert.Equal(t, resp.ID, repo.saved[0].ID())

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.published[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.published[1].EventType())
		assert.Equal(t, resp.ID, publisher.published[0].AggregateID())
	})

	t.Run("scores a low risk submission without follow-up event", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewAssessStudent(newEngine(t, false), repo, publisher, newMetrics(t), discardLogger())

		resp, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.LowRiskAnswers()})

		require.NoError(t, err)
		assert.Equal(t, "Low", resp.RiskLevel)
		assert.Equal(t, 0, resp.Prediction)
		assert.InDelta(t, testutil.LowRiskProbability, resp.Probability, 1e-9)
		assert.Empty(t, resp.RiskFactors)
		assert.NotEmpty(t, resp.Recommendations)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.published[0].EventType())
	})

	t.Run("rejects invalid answers without storing anything", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewAssessStudent(newEngine(t, false), repo, publisher, newMetrics(t), discardLogger())

		answers := testutil.WorkedExample()
		delete(answers, "age")
		answers["academic_pressure"] = 9

		_, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: answers})

		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 2)
		assert.Equal(t, "age", verr.Fields[0].Field)
		assert.Equal(t, "academic_pressure", verr.Fields[1].Field)
		assert.True(t, verr.CrisisSignal)
		assert.Empty(t, repo.saved)
		assert.Empty(t, publisher.published)
	})

	t.Run("returns prediction errors with the crisis signal", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := usecase.NewAssessStudent(newEngine(t, true), repo, &mockEventPublisher{}, newMetrics(t), discardLogger())

		_, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.WorkedExample()})

		var perr *model.PredictionError
		require.True(t, errors.As(err, &perr))
		assert.True(t, perr.CrisisSignal)
		assert.ErrorContains(t, err, "runtime exploded")
		assert.Empty(t, repo.saved)
	})

	t.Run("still answers when storage and publishing fail", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			saveFunc: func(context.Context, *model.Assessment) error { return errors.New("db down") },
		}
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...events.DomainEvent) error { return errors.New("broker down") },
		}
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		uc := usecase.NewAssessStudent(newEngine(t, false), repo, publisher, newMetrics(t), logger)

		resp, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.WorkedExample()})

		require.NoError(t, err)
		assert.Equal(t, "High", resp.RiskLevel)
		assert.Contains(t, logs.String(), "failed to save assessment")
		assert.Contains(t, logs.String(), "failed to publish events")
	})

	t.Run("reports and logs unseen categories", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		uc := usecase.NewAssessStudent(newEngine(t, false), &mockAssessmentRepository{}, &mockEventPublisher{}, newMetrics(t), logger)

		answers := testutil.LowRiskAnswers()
		answers["profession"] = "Astronaut"

		resp, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: answers})

		require.NoError(t, err)
		require.Len(t, resp.UnseenCategories, 1)
		assert.Equal(t, "profession", resp.UnseenCategories[0].Field)
		assert.Equal(t, "Astronaut", resp.UnseenCategories[0].Value)
		assert.Equal(t, "Student", resp.UnseenCategories[0].Substitute)
		assert.InDelta(t, testutil.LowRiskProbability, resp.Probability, 1e-9, "substitute matches the seen class")
		assert.Contains(t, logs.String(), "unseen category")
	})

	t.Run("is deterministic", func(t *testing.T) {
		uc := usecase.NewAssessStudent(newEngine(t, false), &mockAssessmentRepository{}, &mockEventPublisher{}, newMetrics(t), discardLogger())

		first, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.WorkedExample()})
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: testutil.WorkedExample()})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Probability, second.Probability)
		assert.Equal(t, first.RiskFactors, second.RiskFactors)
		assert.Equal(t, first.Recommendations, second.Recommendations)
	})
}
