package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2025, 9, 26, 16, 51, 9, 0, time.FixedZone("PKT", 5*3600))

	event := NewBaseEvent("mindcheck.assessment.completed", aggregateID, at)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "mindcheck.assessment.completed", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
	assert.True(t, event.OccurredAt().Equal(at))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBuffer(t *testing.T) {
	var buf Buffer
	aggregateID := uuid.New()

	assert.Nil(t, buf.Drain(), "zero value drains to nil")

	buf.Add(NewBaseEvent("first", aggregateID, time.Now()))
	buf.Add(nil)
	buf.Add(NewBaseEvent("second", aggregateID, time.Now()))
	assert.Equal(t, 2, buf.Len())

	drained := buf.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "first", drained[0].EventType())
	assert.Equal(t, "second", drained[1].EventType())

	assert.Zero(t, buf.Len())
	assert.Nil(t, buf.Drain())
}
