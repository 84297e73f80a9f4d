package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/pkg/metrics"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that appends to the audit trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process validates and persists a single activity record.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	kind := domain.ActivityKind(in.Kind)
	if !kind.IsValid() {
		return fmt.Errorf("process activity: unknown kind %q", in.Kind)
	}
	if in.JobID == "" || in.ActorID == "" {
		return fmt.Errorf("process activity: job and actor are required")
	}

	activity := &domain.Activity{
		Kind:       kind,
		JobID:      in.JobID,
		ActorID:    in.ActorID,
		ActorRole:  domain.Role(in.ActorRole),
		OccurredAt: in.OccurredAt,
	}
	if err := s.repo.Insert(ctx, activity); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityRecordedTotal.WithLabelValues(in.Kind).Inc()
	s.log.Debug().
		Str("kind", in.Kind).
		Str("job_id", in.JobID).
		Str("actor_id", in.ActorID).
		Msg("activity recorded")
	return nil
}
