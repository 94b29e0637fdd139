package router

import (
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		// Any signed-in user manages their own CVs.
		users.GET("/me/cvs", r.handlers.User.ListCVs)
		users.POST("/me/cvs", middleware.ValidateRequestBody[dto.AttachCVRequest](), r.handlers.User.AttachCV)
		users.DELETE("/me/cvs/:index", r.handlers.User.RemoveCV)

		admin := users.Group("")
		admin.Use(r.admin())
		{
			admin.GET("", r.handlers.User.List)
			admin.GET("/:id", r.handlers.User.GetByID)
			admin.POST("", middleware.ValidateRequestBody[dto.CreateUserRequest](), r.handlers.User.Create)
			admin.PATCH("/:id", middleware.ValidateRequestBody[dto.UpdateUserRequest](), r.handlers.User.Update)
			admin.DELETE("/:id", r.handlers.User.Delete)
		}
	}
}

func (r *Router) roleRoutes(version *gin.RouterGroup) {
	roles := version.Group("/roles")
	roles.Use(r.jwtMw.RequireAuth(), r.admin())
	{
		roles.GET("", r.handlers.Role.List)
		roles.GET("/:id", r.handlers.Role.GetByID)
		roles.POST("", middleware.ValidateRequestBody[dto.CreateRoleRequest](), r.handlers.Role.Create)
		roles.PATCH("/:id", middleware.ValidateRequestBody[dto.UpdateRoleRequest](), r.handlers.Role.Update)
		roles.DELETE("/:id", r.handlers.Role.Delete)
	}
}
