package domain

import "time"

// ActivityKind names an auditable change to a job.
type ActivityKind string

const (
	ActivityJobPosted            ActivityKind = "job_posted"
	ActivityApplicationSubmitted ActivityKind = "application_submitted"
	ActivityJobDeleted           ActivityKind = "job_deleted"
)

// Activity is one append-only audit record.
type Activity struct {
	Kind       ActivityKind
	JobID      string
	ActorID    string
	ActorRole  Role
	OccurredAt time.Time
}

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityJobPosted, ActivityApplicationSubmitted, ActivityJobDeleted:
		return true
	}
	return false
}
