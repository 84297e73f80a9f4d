package domain

// Operation identifies a protected endpoint for the authorization policy.
type Operation string

const (
	OpCreateJob           Operation = "create_job"
	OpListJobs            Operation = "list_jobs"
	OpApply               Operation = "apply"
	OpViewApplicants      Operation = "view_applicants"
	OpListOwnJobs         Operation = "list_own_jobs"
	OpListOwnApplications Operation = "list_own_applications"
	OpDeleteJob           Operation = "delete_job"
)

const reasonNotOwner = "You can only delete your own jobs"

type rule struct {
	role   Role // empty means any authenticated role
	reason string
}

var rules = map[Operation]rule{
	OpCreateJob:           {role: RoleEmployer, reason: "Only employers can post jobs"},
	OpListJobs:            {},
	OpApply:               {role: RoleStudent, reason: "Only students can apply for jobs"},
	OpViewApplicants:      {role: RoleEmployer, reason: "Only the posting employer can see applicants"},
	OpListOwnJobs:         {role: RoleEmployer, reason: "Only employers can view their jobs"},
	OpListOwnApplications: {role: RoleStudent, reason: "Only students can view their applications"},
	OpDeleteJob:           {role: RoleEmployer, reason: "Only employers can delete jobs"},
}

// Authorize applies the role part of the policy for op.
func Authorize(p Principal, op Operation) error {
	if !p.IsAuthenticated() {
		return Unauthorized(ReasonInvalidOrExpired)
	}
	r, ok := rules[op]
	if !ok {
		return Forbidden("unknown operation")
	}
	if r.role != "" && p.Role != r.role {
		return Forbidden(r.reason)
	}
	return nil
}

// AuthorizeOnJob applies the full policy for an operation that targets job:
// the role check plus ownership or applicant-set checks.
func AuthorizeOnJob(p Principal, op Operation, job *Job) error {
	if err := Authorize(p, op); err != nil {
		return err
	}

	switch op {
	case OpApply:
		if !job.ApplicationStateOf(p.UserID).CanTransitionTo(StateApplied) {
			return ErrAlreadyApplied
		}
	case OpViewApplicants:
		if !job.IsOwnedBy(p.UserID) {
			return Forbidden(rules[op].reason)
		}
	case OpDeleteJob:
		if !job.IsOwnedBy(p.UserID) {
			return Forbidden(reasonNotOwner)
		}
	}
	return nil
}
