package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// ActivityRepository persists audit records to the job_activity collection.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
}
