package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/handler"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/repository"
	"github.com/Payphone-Digital/jobboard/internal/router"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/Payphone-Digital/jobboard/pkg/database"
	"github.com/Payphone-Digital/jobboard/pkg/health"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/Payphone-Digital/jobboard/pkg/redis"
	"github.com/Payphone-Digital/jobboard/pkg/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthInterval = 30 * time.Second

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.EnsureIndexes(db); err != nil {
		logger.GetLogger().Fatal("Failed to create database indexes", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if config.Seed.Enabled {
		if err := database.Seed(db, config.Seed); err != nil {
			logger.GetLogger().Error("Failed to seed database", zap.Error(err))
		} else {
			logger.GetLogger().Info("Database seeded successfully")
		}
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(config)
		if err != nil {
			// Caching and rate limiting fall back to in-process state.
			logger.GetLogger().Warn("Redis unavailable, using in-process cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	if err := validation.RegisterWithGin(); err != nil {
		logger.GetLogger().Fatal("Failed to register validators", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	// Services
	cacheService := service.NewCacheService(redisClient, config.Redis.CacheTTL)
	defer cacheService.Close()

	jwtService := service.NewJWTService(config.JWT)
	authService := service.NewAuthService(userRepo, roleRepo, jwtService)
	userService := service.NewUserService(userRepo, roleRepo, config.Seed.AdminEmail)
	roleService := service.NewRoleService(roleRepo)
	skillService := service.NewSkillService(skillRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	companyService := service.NewCompanyService(companyRepo, skillRepo, cacheService)
	jobService := service.NewJobService(jobRepo, skillRepo, categoryRepo, companyRepo, cacheService)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, jobService)
	blogService := service.NewBlogService(blogRepo)

	monitor := newMonitor(db, redisClient)
	monitor.Start()
	defer monitor.Stop()

	var rateLimiter *middleware.RateLimiter
	if config.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(redisClient, config.RateLimit.Request, config.RateLimit.Duration)
		defer rateLimiter.Close()
	}

	engine := router.NewRouter(
		router.Handlers{
			Auth:        handler.NewAuthHandler(authService, config.Cookie, config.JWT.RefreshDuration),
			User:        handler.NewUserHandler(userService),
			Role:        handler.NewRoleHandler(roleService),
			Company:     handler.NewCompanyHandler(companyService),
			Skill:       handler.NewSkillHandler(skillService),
			Category:    handler.NewCategoryHandler(categoryService),
			Job:         handler.NewJobHandler(jobService),
			Application: handler.NewApplicationHandler(applicationService),
			Blog:        handler.NewBlogHandler(blogService),
			Health:      handler.NewHealthHandler(monitor),
		},
		middleware.NewJWTMiddleware(authService),
		rateLimiter,
		config,
	).SetupRoutes()

	server := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      engine,
		ReadTimeout:  config.App.ReadTimeout,
		WriteTimeout: config.App.WriteTimeout,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}

func newMonitor(db *gorm.DB, redisClient *redis.Client) *health.Monitor {
	monitor := health.NewMonitor(healthInterval, logger.GetLogger())
	monitor.Register("database", health.PingChecker{
		Name: "database",
		Ping: func(ctx context.Context) error { return database.Ping(ctx, db) },
	})

	redisCheck := health.PingChecker{Name: "redis"}
	if redisClient != nil {
		redisCheck.Ping = redisClient.Ping
	}
	monitor.Register("redis", redisCheck)
	return monitor
}
