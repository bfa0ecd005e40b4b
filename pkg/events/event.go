// Package events holds the domain event contract shared by aggregates and
// publishers.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// BaseEvent carries the envelope fields every event shares. Concrete events
// embed it and add their payload fields.
type BaseEvent struct {
	ID          uuid.UUID `json:"event_id"`
	Type        string    `json:"event_type"`
	Aggregate   uuid.UUID `json:"aggregate_id"`
	CreatedTime time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated ID stamped at the given time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, at time.Time) BaseEvent {
	return BaseEvent{
		ID:          uuid.New(),
		Type:        eventType,
		Aggregate:   aggregateID,
		CreatedTime: at.UTC(),
	}
}

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string {
	return e.Type
}

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.Aggregate
}

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.CreatedTime
}
