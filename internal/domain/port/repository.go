package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/pkg/events"
)

// AssessmentRepository defines the persistence port for scored assessments.
type AssessmentRepository interface {
	// Save persists a completed assessment.
	Save(ctx context.Context, assessment *model.Assessment) error

	// FindByID retrieves an assessment by its unique identifier. It returns
	// model.ErrNotFound when no assessment matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
