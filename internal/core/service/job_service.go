package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/pkg/metrics"
)

// ApplyGuard abstracts the short-lived in-flight lock (Redis) taken around an
// apply so that a double submission is rejected before it reaches the store.
type ApplyGuard interface {
	Acquire(ctx context.Context, jobID, userID string) (bool, error)
	Release(ctx context.Context, jobID, userID string) error
}

type JobService struct {
	jobs     ports.JobRepository
	users    ports.UserRepository
	guard    ApplyGuard
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewJobService wires the job use cases. guard and activity may be nil.
func NewJobService(
	jobs ports.JobRepository,
	users ports.UserRepository,
	guard ApplyGuard,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *JobService {
	return &JobService{jobs: jobs, users: users, guard: guard, activity: activity, logger: logger}
}

// CreateJob posts a new job owned by the caller, who must be an existing
// employer.
func (s *JobService) CreateJob(ctx context.Context, p domain.Principal, in ports.CreateJobInput) (*ports.JobDetail, error) {
	if err := domain.Authorize(p, domain.OpCreateJob); err != nil {
		return nil, err
	}
	if !domain.FieldsFilled(in.Title, in.Company, in.Location, in.Description) {
		return nil, domain.NewValidationError("All job fields are required")
	}

	poster, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Unauthorized(domain.ReasonInvalidOrExpired)
		}
		return nil, fmt.Errorf("create job: %w", err)
	}
	if poster.Role != domain.RoleEmployer {
		return nil, domain.Forbidden("Only employers can post jobs")
	}

	job, err := s.jobs.Create(ctx, &domain.Job{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		PostedBy:    p.UserID,
		Applicants:  []string{},
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("failed to create job")
		return nil, fmt.Errorf("create job: %w", err)
	}

	metrics.JobsCreatedTotal.Inc()
	s.record(domain.ActivityJobPosted, job.ID, p)
	s.logger.Info().Str("job_id", job.ID).Str("user_id", p.UserID).Msg("job posted")

	summary := poster.Summary()
	return &ports.JobDetail{Job: job, Poster: &summary}, nil
}

// ListJobs returns every job matching filter with its poster attached.
func (s *JobService) ListJobs(ctx context.Context, p domain.Principal, filter domain.JobFilter) ([]ports.JobDetail, error) {
	if err := domain.Authorize(p, domain.OpListJobs); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return s.withPosters(ctx, jobs)
}

// Apply moves the caller from not_applied to applied on jobID.
func (s *JobService) Apply(ctx context.Context, p domain.Principal, jobID string) (*domain.Job, error) {
	if err := domain.Authorize(p, domain.OpApply); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			metrics.ApplicationsTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("apply: %w", err)
	}
	if err := domain.AuthorizeOnJob(p, domain.OpApply, job); err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			metrics.ApplicationsTotal.WithLabelValues("already_applied").Inc()
		}
		return nil, err
	}

	if s.guard != nil {
		acquired, gerr := s.guard.Acquire(ctx, jobID, p.UserID)
		switch {
		case gerr != nil:
			s.logger.Warn().Err(gerr).Str("job_id", jobID).Msg("apply guard unavailable, relying on store")
		case !acquired:
			metrics.ApplicationsTotal.WithLabelValues("in_progress").Inc()
			return nil, domain.ErrApplyInProgress
		default:
			defer func() {
				if rerr := s.guard.Release(context.WithoutCancel(ctx), jobID, p.UserID); rerr != nil {
					s.logger.Warn().Err(rerr).Str("job_id", jobID).Msg("failed to release apply guard")
				}
			}()
		}
	}

	// The conditional update is the authority; the checks above only fail fast.
	updated, err := s.jobs.AddApplicant(ctx, jobID, p.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyApplied):
			metrics.ApplicationsTotal.WithLabelValues("already_applied").Inc()
			return nil, err
		case errors.Is(err, domain.ErrJobNotFound):
			metrics.ApplicationsTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		metrics.ApplicationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("apply: %w", err)
	}

	metrics.ApplicationsTotal.WithLabelValues("submitted").Inc()
	s.record(domain.ActivityApplicationSubmitted, jobID, p)
	s.logger.Info().Str("job_id", jobID).Str("user_id", p.UserID).Msg("application submitted")
	return updated, nil
}

// ListApplicants returns the applicants of a job the caller posted, in
// application order.
func (s *JobService) ListApplicants(ctx context.Context, p domain.Principal, jobID string) ([]domain.UserSummary, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	if err := domain.AuthorizeOnJob(p, domain.OpViewApplicants, job); err != nil {
		return nil, err
	}

	byID, err := s.usersByID(ctx, job.Applicants)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return summariesInOrder(job.Applicants, byID), nil
}

// ListOwnJobs returns the caller's postings with applicants resolved.
func (s *JobService) ListOwnJobs(ctx context.Context, p domain.Principal) ([]ports.JobDetail, error) {
	if err := domain.Authorize(p, domain.OpListOwnJobs); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByPoster(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own jobs: %w", err)
	}

	var ids []string
	for _, j := range jobs {
		ids = append(ids, j.Applicants...)
	}
	byID, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list own jobs: %w", err)
	}

	out := make([]ports.JobDetail, len(jobs))
	for i, j := range jobs {
		out[i] = ports.JobDetail{Job: j, Applicants: summariesInOrder(j.Applicants, byID)}
	}
	return out, nil
}

// ListOwnApplications returns the jobs the caller applied to.
func (s *JobService) ListOwnApplications(ctx context.Context, p domain.Principal) ([]ports.JobDetail, error) {
	if err := domain.Authorize(p, domain.OpListOwnApplications); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByApplicant(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list own applications: %w", err)
	}
	return s.withPosters(ctx, jobs)
}

// DeleteJob removes a job the caller posted.
func (s *JobService) DeleteJob(ctx context.Context, p domain.Principal, jobID string) error {
	if err := domain.Authorize(p, domain.OpDeleteJob); err != nil {
		return err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("delete job: %w", err)
	}
	if err := domain.AuthorizeOnJob(p, domain.OpDeleteJob, job); err != nil {
		return err
	}

	// The owner is part of the delete filter, so the check above cannot race.
	if err := s.jobs.DeleteOwned(ctx, jobID, p.UserID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("delete job: %w", err)
	}

	metrics.JobsDeletedTotal.Inc()
	s.record(domain.ActivityJobDeleted, jobID, p)
	s.logger.Info().Str("job_id", jobID).Str("user_id", p.UserID).Msg("job deleted")
	return nil
}

func (s *JobService) withPosters(ctx context.Context, jobs []*domain.Job) ([]ports.JobDetail, error) {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.PostedBy)
	}
	byID, err := s.usersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.JobDetail, len(jobs))
	for i, j := range jobs {
		out[i] = ports.JobDetail{Job: j}
		if u, ok := byID[j.PostedBy]; ok {
			summary := u.Summary()
			out[i].Poster = &summary
		}
	}
	return out, nil
}

func (s *JobService) usersByID(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return map[string]*domain.User{}, nil
	}
	users, err := s.users.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *JobService) record(kind domain.ActivityKind, jobID string, p domain.Principal) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(ports.ActivityInput{
		Kind:       string(kind),
		JobID:      jobID,
		ActorID:    p.UserID,
		ActorRole:  string(p.Role),
		OccurredAt: time.Now().UTC(),
	})
}

// summariesInOrder resolves ids against byID, skipping users that no longer exist.
func summariesInOrder(ids []string, byID map[string]*domain.User) []domain.UserSummary {
	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
