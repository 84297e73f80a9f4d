package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationState_Transitions(t *testing.T) {
	assert.True(t, StateNotApplied.CanTransitionTo(StateApplied))
	assert.False(t, StateApplied.CanTransitionTo(StateApplied))
	assert.False(t, StateApplied.CanTransitionTo(StateNotApplied))
}

func TestJob_ApplicationStateOf(t *testing.T) {
	job := &Job{Applicants: []string{"a", "b"}}

	assert.Equal(t, StateApplied, job.ApplicationStateOf("a"))
	assert.Equal(t, StateNotApplied, job.ApplicationStateOf("c"))
}

func TestJob_IsOwnedBy(t *testing.T) {
	job := &Job{PostedBy: "emp"}

	assert.True(t, job.IsOwnedBy("emp"))
	assert.False(t, job.IsOwnedBy("other"))
	assert.False(t, (&Job{}).IsOwnedBy(""))
}

func TestJobFilter_ExactCaseInsensitive(t *testing.T) {
	acme := &Job{Title: "Backend Engineer", Company: "acme", Location: "Remote"}
	acmeCorp := &Job{Title: "Backend Engineer", Company: "Acme Corp", Location: "Remote"}

	f := JobFilter{Company: "Acme"}
	assert.True(t, f.Matches(acme))
	assert.False(t, f.Matches(acmeCorp))
}

func TestJobFilter_ComposesWithAnd(t *testing.T) {
	job := &Job{Title: "Designer", Company: "Acme", Location: "Berlin"}

	assert.True(t, JobFilter{}.Matches(job))
	assert.True(t, JobFilter{Title: "designer", Location: "BERLIN"}.Matches(job))
	assert.False(t, JobFilter{Title: "designer", Location: "Paris"}.Matches(job))
	assert.True(t, JobFilter{}.IsZero())
	assert.False(t, JobFilter{Title: "x"}.IsZero())
}
