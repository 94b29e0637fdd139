package handler

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateApplication")
	a, ok := actor(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Create(ctx, middleware.Body[dto.CreateApplicationRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create application")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, application)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListApplications")
	a, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.applicationService.List(ctx, listingRequest(c), a)
	if err != nil {
		respondError(ctx, c, err, "List applications")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *ApplicationHandler) ByJob(c *gin.Context) {
	ctx := handlerContext(c, "ApplicationsByJob")
	a, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.applicationService.ByJob(ctx, listingRequest(c), c.Param("jobId"), a)
	if err != nil {
		respondError(ctx, c, err, "List applications by job")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *ApplicationHandler) ByUser(c *gin.Context) {
	ctx := handlerContext(c, "ApplicationsByUser")
	a, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.applicationService.ByUser(ctx, listingRequest(c), a)
	if err != nil {
		respondError(ctx, c, err, "List own applications")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	ctx := handlerContext(c, "UpdateApplicationStatus")
	a, ok := actor(c)
	if !ok {
		return
	}

	req := middleware.Body[dto.UpdateApplicationStatusRequest](c)
	application, err := h.applicationService.UpdateStatus(ctx, c.Param("id"), req.Status, a)
	if err != nil {
		respondError(ctx, c, err, "Update application status")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, application)
}
