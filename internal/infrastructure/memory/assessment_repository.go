// Package memory holds an in-process assessment store used when no database
// is configured.
package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

// AssessmentRepository implements port.AssessmentRepository with an expiring
// in-memory cache. Entries live for the configured TTL.
type AssessmentRepository struct {
	cache *gocache.Cache
}

// NewAssessmentRepository creates a store whose entries expire after ttl.
// Expired entries are purged every ttl/2.
func NewAssessmentRepository(ttl time.Duration) *AssessmentRepository {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	return &AssessmentRepository{cache: gocache.New(ttl, cleanup)}
}

// Save stores the assessment, replacing any earlier copy.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.cache.SetDefault(assessment.ID().String(), assessment)
	return nil
}

// FindByID returns the stored assessment or model.ErrNotFound.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := r.cache.Get(id.String())
	if !ok {
		return nil, model.ErrNotFound
	}
	return v.(*model.Assessment), nil
}

// Ping always succeeds.
func (r *AssessmentRepository) Ping(context.Context) error { return nil }

// Len returns the number of unexpired assessments.
func (r *AssessmentRepository) Len() int { return r.cache.ItemCount() }
