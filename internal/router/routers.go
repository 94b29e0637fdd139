package router

import (
	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/handler"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/model"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Role        *handler.RoleHandler
	Company     *handler.CompanyHandler
	Skill       *handler.TaxonomyHandler[model.Skill]
	Category    *handler.TaxonomyHandler[model.Category]
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
	Blog        *handler.BlogHandler
	Health      *handler.HealthHandler
}

type Router struct {
	handlers    Handlers
	jwtMw       *middleware.JWTMiddleware
	rateLimiter *middleware.RateLimiter
	config      *config.Config
}

// NewRouter wires the handlers. rateLimiter may be nil when rate limiting is
// disabled.
func NewRouter(handlers Handlers, jwtMw *middleware.JWTMiddleware, rateLimiter *middleware.RateLimiter, cfg *config.Config) *Router {
	return &Router{
		handlers:    handlers,
		jwtMw:       jwtMw,
		rateLimiter: rateLimiter,
		config:      cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestContext())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(r.config.CORS))
	router.Use(middleware.RequestTimeout(r.config.App.RequestTimeout))

	router.GET("/health", r.handlers.Health.HealthCheck)

	v1 := router.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Handler())
	}

	r.authRoutes(v1)
	r.userRoutes(v1)
	r.roleRoutes(v1)
	r.companyRoutes(v1)
	r.taxonomyRoutes(v1)
	r.jobRoutes(v1)
	r.applicationRoutes(v1)
	r.blogRoutes(v1)

	return router
}

// staff is the set of roles that manage companies, jobs and applications.
func (r *Router) staff() gin.HandlerFunc {
	return r.jwtMw.RequireRoles(constants.RoleAdmin, constants.RoleHR)
}

func (r *Router) admin() gin.HandlerFunc {
	return r.jwtMw.RequireRoles(constants.RoleAdmin)
}
