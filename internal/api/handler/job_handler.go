package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings and applications.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// CreateJob godoc
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/jobs [post]
func (h *JobHandler) CreateJob(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.service.CreateJob(c.Request().Context(), p, toCreateJobInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, jobMessageResponse{
		Message: "Job posted successfully",
		Job:     toJobResponse(detail.Job),
	})
}

// ListJobs godoc
//
// @Summary      List jobs
// @Description  Each filter must equal the field ignoring case.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        title     query     string  false  "Exact title"
// @Param        location  query     string  false  "Exact location"
// @Param        company   query     string  false  "Exact company"
// @Success      200       {array}   listedJobResponse
// @Failure      401       {object}  messageResponse
// @Router       /api/jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q listJobsQuery
	if err := c.Bind(&q); err != nil {
		return domain.NewValidationError("Invalid query parameters")
	}

	details, err := h.service.ListJobs(c.Request().Context(), p, toJobFilter(q))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListedJobs(details))
}

// Apply godoc
//
// @Summary      Apply to a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  jobMessageResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	job, err := h.service.Apply(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jobMessageResponse{
		Message: "Job application submitted successfully",
		Job:     toJobResponse(job),
	})
}

// ListApplicants godoc
//
// @Summary      List applicants of a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  applicantsResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/jobs/{id}/applicants [get]
func (h *JobHandler) ListApplicants(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	applicants, err := h.service.ListApplicants(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, applicantsResponse{Applicants: toUserSummaries(applicants)})
}

// ListOwnApplications godoc
//
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  applicationsResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/my-applications [get]
func (h *JobHandler) ListOwnApplications(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListOwnApplications(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, applicationsResponse{Applications: toApplications(details)})
}

// ListOwnJobs godoc
//
// @Summary      List the caller's postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ownedJobsResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/my-jobs [get]
func (h *JobHandler) ListOwnJobs(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListOwnJobs(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ownedJobsResponse{Jobs: toOwnedJobs(details)})
}

// DeleteJob godoc
//
// @Summary      Delete a posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}
