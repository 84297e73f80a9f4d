package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// JobRepository is the job store. Unknown or malformed ids yield
// domain.ErrJobNotFound.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns jobs matching filter, newest first.
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	ListByPoster(ctx context.Context, posterID string) ([]*domain.Job, error)
	ListByApplicant(ctx context.Context, userID string) ([]*domain.Job, error)

	// AddApplicant atomically adds userID to the job's applicant set unless it
	// is already present, returning the updated job. It fails with
	// domain.ErrJobNotFound or domain.ErrAlreadyApplied; it never performs a
	// separate read-then-write.
	AddApplicant(ctx context.Context, jobID, userID string) (*domain.Job, error)

	// DeleteOwned removes the job only if it was posted by ownerID.
	DeleteOwned(ctx context.Context, jobID, ownerID string) error
}
