package router

import (
	"github.com/Payphone-Digital/jobboard/internal/dto"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		auth.POST("/register", middleware.ValidateRequestBody[dto.RegisterRequest](), r.handlers.Auth.Register)
		auth.POST("/login", middleware.ValidateRequestBody[dto.LoginRequest](), r.handlers.Auth.Login)
		// The refresh token travels in the httpOnly cookie.
		auth.GET("/refresh", r.handlers.Auth.Refresh)

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.handlers.Auth.Logout)
			protected.GET("/account", r.handlers.Auth.Account)
		}
	}
}
