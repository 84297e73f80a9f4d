package ports

import (
	"context"
	"time"
)

// ActivityInput is the DTO passed from the job service to the activity
// pipeline.
type ActivityInput struct {
	Kind       string
	JobID      string
	ActorID    string
	ActorRole  string
	OccurredAt time.Time
}

// ActivityService records a single activity.
type ActivityService interface {
	Process(ctx context.Context, in ActivityInput) error
}

// ActivityRecorder accepts activities for asynchronous processing.
type ActivityRecorder interface {
	Enqueue(in ActivityInput)
}
