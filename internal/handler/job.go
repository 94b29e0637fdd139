package handler

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListJobs")
	a, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.jobService.List(ctx, listingRequest(c), a)
	if err != nil {
		respondError(ctx, c, err, "List jobs")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

// Search reads name as free text and location as an exact value.
func (h *JobHandler) Search(c *gin.Context) {
	ctx := handlerContext(c, "SearchJobs")

	req, name := searchRequest(c, constants.QueryParamName)
	location, rest := listing.Extract(req.RawQuery, constants.QueryParamLocation)
	req.RawQuery = rest

	result, err := h.jobService.Search(ctx, req, name, location)
	if err != nil {
		respondError(ctx, c, err, "Search jobs")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *JobHandler) ByCompany(c *gin.Context) {
	ctx := handlerContext(c, "JobsByCompany")

	result, err := h.jobService.ByCompany(ctx, listingRequest(c), c.Param("companyId"))
	if err != nil {
		respondError(ctx, c, err, "List jobs by company")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *JobHandler) ByCategory(c *gin.Context) {
	ctx := handlerContext(c, "JobsByCategory")

	result, err := h.jobService.ByCategory(ctx, listingRequest(c), c.Param("categoryId"))
	if err != nil {
		respondError(ctx, c, err, "List jobs by category")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

// BySkills takes the skill ids in the body and the listing keys in the
// query string.
func (h *JobHandler) BySkills(c *gin.Context) {
	ctx := handlerContext(c, "JobsBySkills")
	req := middleware.Body[dto.JobsBySkillsRequest](c)

	result, err := h.jobService.BySkills(ctx, listingRequest(c), req.Skills)
	if err != nil {
		respondError(ctx, c, err, "List jobs by skills")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *JobHandler) Similar(c *gin.Context) {
	ctx := handlerContext(c, "SimilarJobs")

	jobs, err := h.jobService.Similar(ctx, c.Param("id"), c.Query(constants.QueryParamLimit))
	if err != nil {
		respondError(ctx, c, err, "List similar jobs")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, jobs)
}

func (h *JobHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetJob")

	job, err := h.jobService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get job")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateJob")
	a, ok := actor(c)
	if !ok {
		return
	}

	job, err := h.jobService.Create(ctx, middleware.Body[dto.CreateJobRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create job")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateJob")
	a, ok := actor(c)
	if !ok {
		return
	}

	job, err := h.jobService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateJobRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update job")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteJob")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete job")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}
