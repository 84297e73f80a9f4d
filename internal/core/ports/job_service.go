package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// CreateJobInput carries the fields of a new posting.
type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	Description string
}

// JobDetail is a job with its user references resolved. Poster is nil and
// Applicants empty when the service did not populate them.
type JobDetail struct {
	Job        *domain.Job
	Poster     *domain.UserSummary
	Applicants []domain.UserSummary
}

// JobService defines the job use cases. Every method takes the caller's
// principal and enforces the authorization policy itself.
type JobService interface {
	CreateJob(ctx context.Context, p domain.Principal, in CreateJobInput) (*JobDetail, error)
	ListJobs(ctx context.Context, p domain.Principal, filter domain.JobFilter) ([]JobDetail, error)
	Apply(ctx context.Context, p domain.Principal, jobID string) (*domain.Job, error)
	ListApplicants(ctx context.Context, p domain.Principal, jobID string) ([]domain.UserSummary, error)
	ListOwnJobs(ctx context.Context, p domain.Principal) ([]JobDetail, error)
	ListOwnApplications(ctx context.Context, p domain.Principal) ([]JobDetail, error)
	DeleteJob(ctx context.Context, p domain.Principal, jobID string) error
}
