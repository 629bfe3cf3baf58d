package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/grievance-desk/api/swagger"
	"github.com/noah-isme/grievance-desk/internal/handler"
	"github.com/noah-isme/grievance-desk/internal/middleware"
	"github.com/noah-isme/grievance-desk/internal/models"
	"github.com/noah-isme/grievance-desk/internal/repository"
	"github.com/noah-isme/grievance-desk/internal/service"
	"github.com/noah-isme/grievance-desk/pkg/cache"
	"github.com/noah-isme/grievance-desk/pkg/config"
	"github.com/noah-isme/grievance-desk/pkg/database"
	"github.com/noah-isme/grievance-desk/pkg/logger"
	corsmiddleware "github.com/noah-isme/grievance-desk/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/grievance-desk/pkg/middleware/requestid"
)

// @title Grievance Desk API
// @version 0.1.0
// @description Employee grievance filing, triage and analytics service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, stats caching disabled", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled)
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	grievanceRepo := repository.NewGrievanceRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authSvc := service.NewAuthService(employeeRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		SingleSession:      cfg.JWT.SingleSession,
	})
	grievanceSvc := service.NewGrievanceService(grievanceRepo, cacheSvc, nil, logr)
	commentSvc := service.NewCommentService(commentRepo, grievanceRepo, logr)
	statsSvc := service.NewStatsService(grievanceRepo, cacheSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	grievanceHandler := handler.NewGrievanceHandler(grievanceSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	grievances := api.Group("/grievances", middleware.JWT(authSvc))
	{
		grievances.POST("",
			middleware.Audit(employeeRepo, models.AuditActionGrievanceCreate, "grievance"),
			grievanceHandler.Create)
		grievances.GET("", grievanceHandler.List)
		grievances.GET("/export", grievanceHandler.Export)
		grievances.GET("/:id", grievanceHandler.Get)
		grievances.PATCH("/:id/status",
			middleware.RequirePrivileged(),
			middleware.Audit(employeeRepo, models.AuditActionGrievanceTransition, "grievance"),
			grievanceHandler.Transition)
		grievances.POST("/:id/comments",
			middleware.Audit(employeeRepo, models.AuditActionCommentCreate, "comment"),
			commentHandler.Add)
		grievances.GET("/:id/comments", commentHandler.List)
	}

	stats := api.Group("/stats", middleware.JWT(authSvc))
	{
		stats.GET("/overview", statsHandler.Overview)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
