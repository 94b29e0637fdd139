package router

import (
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) jobRoutes(version *gin.RouterGroup) {
	jobs := version.Group("/jobs")
	{
		// Public
		jobs.GET("/search", r.handlers.Job.Search)
		jobs.GET("/by-company/:companyId", r.handlers.Job.ByCompany)
		jobs.GET("/by-category/:categoryId", r.handlers.Job.ByCategory)
		jobs.POST("/by-skills", middleware.ValidateRequestBody[dto.JobsBySkillsRequest](), r.handlers.Job.BySkills)
		jobs.GET("/:id/similar", r.handlers.Job.Similar)
		jobs.GET("/:id", r.handlers.Job.GetByID)

		protected := jobs.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("", r.handlers.Job.List)
			protected.POST("", r.staff(), middleware.ValidateRequestBody[dto.CreateJobRequest](), r.handlers.Job.Create)
			protected.PATCH("/:id", r.staff(), middleware.ValidateRequestBody[dto.UpdateJobRequest](), r.handlers.Job.Update)
			protected.DELETE("/:id", r.staff(), r.handlers.Job.Delete)
		}
	}
}

func (r *Router) applicationRoutes(version *gin.RouterGroup) {
	applications := version.Group("/applications")
	applications.Use(r.jwtMw.RequireAuth())
	{
		applications.POST("", middleware.ValidateRequestBody[dto.CreateApplicationRequest](), r.handlers.Application.Create)
		applications.GET("/by-user", r.handlers.Application.ByUser)

		staff := applications.Group("")
		staff.Use(r.staff())
		{
			staff.GET("", r.handlers.Application.List)
			staff.GET("/by-job/:jobId", r.handlers.Application.ByJob)
			staff.PATCH("/:id/status", middleware.ValidateRequestBody[dto.UpdateApplicationStatusRequest](), r.handlers.Application.UpdateStatus)
		}
	}
}
