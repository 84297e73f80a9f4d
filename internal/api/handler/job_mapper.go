package handler

import (
	"strings"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateJobInput(req createJobRequest) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
	}
}

func toJobFilter(q listJobsQuery) domain.JobFilter {
	return domain.JobFilter{
		Title:    strings.TrimSpace(q.Title),
		Location: strings.TrimSpace(q.Location),
		Company:  strings.TrimSpace(q.Company),
	}
}

// --- Service result → HTTP response ---

func toUserSummary(u domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserSummaries(us []domain.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, len(us))
	for i, u := range us {
		out[i] = toUserSummary(u)
	}
	return out
}

// applicantIDs never returns nil so the field always renders as an array.
func applicantIDs(j *domain.Job) []string {
	if j.Applicants == nil {
		return []string{}
	}
	return j.Applicants
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		PostedBy:    j.PostedBy,
		Applicants:  applicantIDs(j),
		CreatedAt:   j.CreatedAt.UTC(),
	}
}

// posterOf falls back to a bare id when the poster account no longer exists.
func posterOf(d ports.JobDetail) *userSummaryResponse {
	if d.Poster != nil {
		s := toUserSummary(*d.Poster)
		return &s
	}
	return &userSummaryResponse{ID: d.Job.PostedBy}
}

func toListedJobs(details []ports.JobDetail) []listedJobResponse {
	out := make([]listedJobResponse, len(details))
	for i, d := range details {
		j := d.Job
		out[i] = listedJobResponse{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Description: j.Description,
			PostedBy:    posterOf(d),
			Applicants:  applicantIDs(j),
			CreatedAt:   j.CreatedAt.UTC(),
		}
	}
	return out
}

func toOwnedJobs(details []ports.JobDetail) []ownedJobResponse {
	out := make([]ownedJobResponse, len(details))
	for i, d := range details {
		j := d.Job
		out[i] = ownedJobResponse{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Description: j.Description,
			PostedBy:    j.PostedBy,
			Applicants:  toUserSummaries(d.Applicants),
			CreatedAt:   j.CreatedAt.UTC(),
		}
	}
	return out
}

func toApplications(details []ports.JobDetail) []applicationResponse {
	out := make([]applicationResponse, len(details))
	for i, d := range details {
		out[i] = applicationResponse{
			ID:        d.Job.ID,
			Title:     d.Job.Title,
			Company:   d.Job.Company,
			Location:  d.Job.Location,
			PostedBy:  posterOf(d),
			CreatedAt: d.Job.CreatedAt.UTC(),
		}
	}
	return out
}
