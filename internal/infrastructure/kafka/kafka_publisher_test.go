package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/event"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/kafka"
	pkgkafka "github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/kafka"
)

type recordingWriter struct {
	topic    string
	messages []pkgkafka.Message
	err      error
}

func (w *recordingWriter) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.topic = topic
	w.messages = append(w.messages, messages...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Publish(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 9, 26, 16, 51, 9, 0, time.UTC)
	completed := event.NewAssessmentCompleted(id, "High", "High", 0.97, true, []string{"History of Suicidal Thoughts"}, 0, "v1", at)
	highRisk := event.NewHighRiskDetected(id, "High", 0.97, true, []string{"History of Suicidal Thoughts"}, at)

	w := &recordingWriter{}
	p := kafka.NewPublisher(w, "mindcheck.events", discardLogger())

	require.NoError(t, p.Publish(context.Background(), completed, highRisk))

	assert.Equal(t, "mindcheck.events", w.topic)
	require.Len(t, w.messages, 2)
	for _, m := range w.messages {
		assert.Equal(t, id.String(), string(m.Key))
		assert.Equal(t, "application/json", m.Headers["content_type"])
	}
	assert.Equal(t, event.EventTypeAssessmentCompleted, w.messages[0].Headers["event_type"])
	assert.Equal(t, event.EventTypeHighRiskDetected, w.messages[1].Headers["event_type"])

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &payload))
	assert.Equal(t, event.EventTypeAssessmentCompleted, payload["event_type"])
	assert.Equal(t, id.String(), payload["aggregate_id"])
	assert.Equal(t, "High", payload["risk_level"])
}

func TestPublisher_NoEvents(t *testing.T) {
	w := &recordingWriter{err: errors.New("must not be called")}
	p := kafka.NewPublisher(w, "mindcheck.events", discardLogger())

	assert.NoError(t, p.Publish(context.Background()))
}

func TestPublisher_WrapsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	p := kafka.NewPublisher(w, "mindcheck.events", discardLogger())
	evt := event.NewAssessmentCompleted(uuid.New(), "Low", "High", 0.05, false, nil, 0, "v1", time.Now())

	err := p.Publish(context.Background(), evt)

	assert.ErrorContains(t, err, "failed to publish events to topic mindcheck.events")
	assert.ErrorContains(t, err, "leader not available")
}
