package handler

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) List(c *gin.Context) {
	ctx := handlerContext(c, "ListBlogs")

	result, err := h.blogService.List(ctx, listingRequest(c))
	if err != nil {
		respondError(ctx, c, err, "List blogs")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, result)
}

// ByTags reads a comma separated tag list from the path.
func (h *BlogHandler) ByTags(c *gin.Context) {
	ctx := handlerContext(c, "BlogsByTags")

	blogs, err := h.blogService.ByTags(ctx, strings.Split(c.Param("tags"), ","))
	if err != nil {
		respondError(ctx, c, err, "List blogs by tags")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, blogs)
}

func (h *BlogHandler) ByTag(c *gin.Context) {
	ctx := handlerContext(c, "BlogsByTag")

	blogs, err := h.blogService.ByTags(ctx, []string{c.Param("tag")})
	if err != nil {
		respondError(ctx, c, err, "List blogs by tag")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, blogs)
}

func (h *BlogHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetBlog")

	blog, err := h.blogService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "Get blog")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, blog)
}

func (h *BlogHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateBlog")
	a, ok := actor(c)
	if !ok {
		return
	}

	blog, err := h.blogService.Create(ctx, middleware.Body[dto.CreateBlogRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Create blog")
		return
	}
	respond(c, http.StatusCreated, constants.MsgCreated, blog)
}

func (h *BlogHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateBlog")
	a, ok := actor(c)
	if !ok {
		return
	}

	blog, err := h.blogService.Update(ctx, c.Param("id"), middleware.Body[dto.UpdateBlogRequest](c), a)
	if err != nil {
		respondError(ctx, c, err, "Update blog")
		return
	}
	respond(c, http.StatusOK, constants.MsgUpdated, blog)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteBlog")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.blogService.Delete(ctx, c.Param("id"), a); err != nil {
		respondError(ctx, c, err, "Delete blog")
		return
	}
	respond(c, http.StatusOK, constants.MsgDeleted, nil)
}
