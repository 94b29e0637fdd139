package handler

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves skills and categories, which share one shape.
type TaxonomyHandler[T any] struct {
	taxonomyService *service.TaxonomyService[T]
	entity          string
}

func NewSkillHandler(s *service.TaxonomyService[model.Skill]) *TaxonomyHandler[model.Skill] {
	return &TaxonomyHandler[model.Skill]{taxonomyService: s, entity: "skill"}
}

func NewCategoryHandler(s *service.TaxonomyService[model.Category]) *TaxonomyHandler[model.Category] {
	return &TaxonomyHandler[model.Category]{taxonomyService: s, entity: "category"}
}

// List treats name as free text; the other keys follow the listing query
// language.
func (h *TaxonomyHandler[T]) List(c *gin.Context) {
	ctx := handlerContext(c, "List")
	req, name := searchRequest(c, constants.QueryParamName)

	result, err := h.taxonomyService.List(ctx, req, name)
	if err != nil {
		respondError(ctx, c, err, "List "+h.entity)
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *TaxonomyHandler[T]) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetByID")

	item, err := h.taxonomyService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get "+h.entity)
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, item)
}

func (h *TaxonomyHandler[T]) Create(c *gin.Context) {
	ctx := handlerContext(c, "Create")
	a, ok := actor(c)
	if !ok {
		return
	}

	item, err := h.taxonomyService.Create(ctx, middleware.Body[dto.TaxonomyRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create "+h.entity)
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, item)
}

func (h *TaxonomyHandler[T]) Update(c *gin.Context) {
	ctx := handlerContext(c, "Update")
	a, ok := actor(c)
	if !ok {
		return
	}

	item, err := h.taxonomyService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateTaxonomyRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update "+h.entity)
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, item)
}

func (h *TaxonomyHandler[T]) Delete(c *gin.Context) {
	ctx := handlerContext(c, "Delete")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete "+h.entity)
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}
