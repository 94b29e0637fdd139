package handler

import (
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListUsers")

	result, err := h.userService.List(ctx, listingRequest(c))
	if err != nil {
		respondError(ctx, c, err, "List users")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetUser")

	user, err := h.userService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get user")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateUser")
	a, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.userService.Create(ctx, middleware.Body[dto.CreateUserRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create user")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateUser")
	a, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.userService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateUserRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update user")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteUser")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete user")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}

func (h *UserHandler) ListCVs(c *gin.Context) {
	ctx := handlerContext(c, "ListCVs")
	a, ok := actor(c)
	if !ok {
		return
	}

	cvs, err := h.userService.ListCVs(ctx, a.ActorID)
	if err != nil {
		respondError(ctx, c, err, "List CVs")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, cvs)
}

func (h *UserHandler) AttachCV(c *gin.Context) {
	ctx := handlerContext(c, "AttachCV")
	a, ok := actor(c)
	if !ok {
		return
	}

	cvs, err := h.userService.AttachCV(ctx, a.ActorID, middleware.Body[dto.AttachCVRequest](c))
	if err != nil {
		respondError(ctx, c, err, "Attach CV")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, cvs)
}

func (h *UserHandler) RemoveCV(c *gin.Context) {
	ctx := handlerContext(c, "RemoveCV")
	a, ok := actor(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(ctx, c, apperrors.InvalidArgument("index must be a number"), "Remove CV")
		return
	}

	cvs, err := h.userService.RemoveCV(ctx, a.ActorID, index)
	if err != nil {
		respondError(ctx, c, err, "Remove CV")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, cvs)
}
