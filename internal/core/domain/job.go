package domain

import (
	"slices"
	"strings"
	"time"
)

// ApplicationState is the lifecycle of a (job, user) pair.
type ApplicationState string

const (
	StateNotApplied ApplicationState = "not_applied"
	StateApplied    ApplicationState = "applied"
)

// validTransitions defines the allowed state machine transitions. Applied is
// terminal: there is no withdrawal or rejection.
var validTransitions = map[ApplicationState][]ApplicationState{
	StateNotApplied: {StateApplied},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ApplicationState) CanTransitionTo(next ApplicationState) bool {
	return slices.Contains(validTransitions[s], next)
}

// Job is a posting owned by the employer that created it.
type Job struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PostedBy    string    `json:"postedBy"`
	Applicants  []string  `json:"applicants"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsOwnedBy reports whether userID posted the job.
func (j *Job) IsOwnedBy(userID string) bool {
	return userID != "" && j.PostedBy == userID
}

// HasApplicant reports whether userID is already in the applicant set.
func (j *Job) HasApplicant(userID string) bool {
	return slices.Contains(j.Applicants, userID)
}

// ApplicationStateOf returns where userID stands with respect to this job.
func (j *Job) ApplicationStateOf(userID string) ApplicationState {
	if j.HasApplicant(userID) {
		return StateApplied
	}
	return StateNotApplied
}

// JobFilter narrows job listings. Each non-empty field must equal the job's
// field ignoring case; empty fields match everything.
type JobFilter struct {
	Title    string
	Location string
	Company  string
}

// IsZero reports whether the filter imposes no constraint.
func (f JobFilter) IsZero() bool {
	return f.Title == "" && f.Location == "" && f.Company == ""
}

// Matches applies the filter to a single job.
func (f JobFilter) Matches(j *Job) bool {
	return fieldMatches(f.Title, j.Title) &&
		fieldMatches(f.Location, j.Location) &&
		fieldMatches(f.Company, j.Company)
}

func fieldMatches(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}
