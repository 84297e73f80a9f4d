package handler

import "time"

// --- Request types ---

type createJobRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Company     string `json:"company"     validate:"required,max=200"`
	Location    string `json:"location"    validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=10000"`
}

func (createJobRequest) requiredMessage() string { return "All job fields are required" }

type listJobsQuery struct {
	Title    string `query:"title"`
	Location string `query:"location"`
	Company  string `query:"company"`
}

// --- Response types ---

type userSummaryResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// jobResponse is a job with user references left as ids.
type jobResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PostedBy    string    `json:"postedBy"`
	Applicants  []string  `json:"applicants"`
	CreatedAt   time.Time `json:"createdAt"`
}

// listedJobResponse is a job in the public listing, with its poster resolved.
type listedJobResponse struct {
	ID          string               `json:"_id"`
	Title       string               `json:"title"`
	Company     string               `json:"company"`
	Location    string               `json:"location"`
	Description string               `json:"description"`
	PostedBy    *userSummaryResponse `json:"postedBy"`
	Applicants  []string             `json:"applicants"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ownedJobResponse is a job as its employer sees it, with applicants resolved.
type ownedJobResponse struct {
	ID          string                `json:"_id"`
	Title       string                `json:"title"`
	Company     string                `json:"company"`
	Location    string                `json:"location"`
	Description string                `json:"description"`
	PostedBy    string                `json:"postedBy"`
	Applicants  []userSummaryResponse `json:"applicants"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// applicationResponse is the trimmed job view a student gets for their
// own applications.
type applicationResponse struct {
	ID        string               `json:"_id"`
	Title     string               `json:"title"`
	Company   string               `json:"company"`
	Location  string               `json:"location"`
	PostedBy  *userSummaryResponse `json:"postedBy"`
	CreatedAt time.Time            `json:"createdAt"`
}

type jobMessageResponse struct {
	Message string      `json:"message"`
	Job     jobResponse `json:"job"`
}

type applicantsResponse struct {
	Applicants []userSummaryResponse `json:"applicants"`
}

type ownedJobsResponse struct {
	Jobs []ownedJobResponse `json:"jobs"`
}

type applicationsResponse struct {
	Applications []applicationResponse `json:"applications"`
}
