package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

const collectionActivity = "job_activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

// Insert appends an activity to the job_activity audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"kind":       string(a.Kind),
		"jobId":      a.JobID,
		"actorId":    a.ActorID,
		"actorRole":  string(a.ActorRole),
		"occurredAt": a.OccurredAt.UTC(),
		"recordedAt": time.Now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}
