package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	student  = Principal{UserID: "stu-1", Role: RoleStudent}
	employer = Principal{UserID: "emp-1", Role: RoleEmployer}
	rival    = Principal{UserID: "emp-2", Role: RoleEmployer}
)

func TestAuthorize_RoleRules(t *testing.T) {
	cases := []struct {
		op      Operation
		p       Principal
		allowed bool
	}{
		{OpCreateJob, employer, true},
		{OpCreateJob, student, false},
		{OpListJobs, student, true},
		{OpListJobs, employer, true},
		{OpApply, student, true},
		{OpApply, employer, false},
		{OpListOwnJobs, employer, true},
		{OpListOwnJobs, student, false},
		{OpListOwnApplications, student, true},
		{OpListOwnApplications, employer, false},
		{OpDeleteJob, employer, true},
		{OpDeleteJob, student, false},
		{OpViewApplicants, student, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.op)+"/"+string(tc.p.Role), func(t *testing.T) {
			err := Authorize(tc.p, tc.op)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestAuthorize_UnauthenticatedIsNotForbidden(t *testing.T) {
	err := Authorize(Principal{}, OpListJobs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_ForbiddenCarriesReason(t *testing.T) {
	err := Authorize(student, OpCreateJob)

	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Only employers can post jobs", fe.Reason)
}

func TestAuthorizeOnJob_Ownership(t *testing.T) {
	job := &Job{ID: "job-1", PostedBy: employer.UserID}

	assert.NoError(t, AuthorizeOnJob(employer, OpViewApplicants, job))
	assert.NoError(t, AuthorizeOnJob(employer, OpDeleteJob, job))

	assert.ErrorIs(t, AuthorizeOnJob(rival, OpViewApplicants, job), ErrForbidden)

	err := AuthorizeOnJob(rival, OpDeleteJob, job)
	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "You can only delete your own jobs", fe.Reason)
}

func TestAuthorizeOnJob_ApplyOnce(t *testing.T) {
	job := &Job{ID: "job-1", PostedBy: employer.UserID}
	require.NoError(t, AuthorizeOnJob(student, OpApply, job))

	job.Applicants = append(job.Applicants, student.UserID)
	assert.ErrorIs(t, AuthorizeOnJob(student, OpApply, job), ErrAlreadyApplied)
	assert.ErrorIs(t, AuthorizeOnJob(employer, OpApply, job), ErrForbidden)
}
