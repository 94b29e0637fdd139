package handler

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListCompanies")
	a, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.companyService.List(ctx, listingRequest(c), a)
	if err != nil {
		respondError(ctx, c, err, "List companies")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetCompany")

	company, err := h.companyService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get company")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateCompany")
	a, ok := actor(c)
	if !ok {
		return
	}

	company, err := h.companyService.Create(ctx, middleware.Body[dto.CreateCompanyRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create company")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateCompany")
	a, ok := actor(c)
	if !ok {
		return
	}

	company, err := h.companyService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateCompanyRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update company")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteCompany")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete company")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}
