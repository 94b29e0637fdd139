package router

import (
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/handler"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) companyRoutes(version *gin.RouterGroup) {
	companies := version.Group("/companies")
	{
		companies.GET("/:id", r.handlers.Company.GetByID)

		protected := companies.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("", r.handlers.Company.List)
			protected.POST("", r.staff(), middleware.ValidateRequestBody[dto.CreateCompanyRequest](), r.handlers.Company.Create)
			protected.PATCH("/:id", r.staff(), middleware.ValidateRequestBody[dto.UpdateCompanyRequest](), r.handlers.Company.Update)
			protected.DELETE("/:id", r.staff(), r.handlers.Company.Delete)
		}
	}
}

func (r *Router) taxonomyRoutes(version *gin.RouterGroup) {
	mountTaxonomy(r, version.Group("/skills"), r.handlers.Skill)
	mountTaxonomy(r, version.Group("/categories"), r.handlers.Category)
}

func mountTaxonomy[T any](r *Router, group *gin.RouterGroup, h *handler.TaxonomyHandler[T]) {
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)

	admin := group.Group("")
	admin.Use(r.jwtMw.RequireAuth(), r.admin())
	{
		admin.POST("", middleware.ValidateRequestBody[dto.TaxonomyRequest](), h.Create)
		admin.PATCH("/:id", middleware.ValidateRequestBody[dto.UpdateTaxonomyRequest](), h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

func (r *Router) blogRoutes(version *gin.RouterGroup) {
	blogs := version.Group("/blogs")
	{
		blogs.GET("", r.handlers.Blog.List)
		blogs.GET("/tags/:tags", r.handlers.Blog.ByTags)
		blogs.GET("/tag/:tag", r.handlers.Blog.ByTag)
		blogs.GET("/:id", r.handlers.Blog.GetByID)

		protected := blogs.Group("")
		protected.Use(r.jwtMw.RequireAuth(), r.staff())
		{
			protected.POST("", middleware.ValidateRequestBody[dto.CreateBlogRequest](), r.handlers.Blog.Create)
			protected.PATCH("/:id", middleware.ValidateRequestBody[dto.UpdateBlogRequest](), r.handlers.Blog.Update)
			protected.DELETE("/:id", r.handlers.Blog.Delete)
		}
	}
}
