package handler

import (
	"net/http"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService *service.RoleService
}

func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListRoles")

	result, err := h.roleService.List(ctx, listingRequest(c))
	if err != nil {
		respondError(ctx, c, err, "List roles")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *RoleHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetRole")

	role, err := h.roleService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get role")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, role)
}

func (h *RoleHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateRole")
	a, ok := actor(c)
	if !ok {
		return
	}

	role, err := h.roleService.Create(ctx, middleware.Body[dto.CreateRoleRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create role")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateRole")
	a, ok := actor(c)
	if !ok {
		return
	}

	role, err := h.roleService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateRoleRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update role")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteRole")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.roleService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete role")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}
