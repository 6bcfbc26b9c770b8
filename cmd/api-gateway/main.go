package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/junyours/occ-admission-sub001/api/swagger"
	"github.com/junyours/occ-admission-sub001/internal/classify"
	"github.com/junyours/occ-admission-sub001/internal/handler"
	"github.com/junyours/occ-admission-sub001/internal/middleware"
	"github.com/junyours/occ-admission-sub001/internal/models"
	"github.com/junyours/occ-admission-sub001/internal/repository"
	"github.com/junyours/occ-admission-sub001/internal/service"
	"github.com/junyours/occ-admission-sub001/internal/upstream"
	"github.com/junyours/occ-admission-sub001/pkg/cache"
	"github.com/junyours/occ-admission-sub001/pkg/config"
	"github.com/junyours/occ-admission-sub001/pkg/database"
	"github.com/junyours/occ-admission-sub001/pkg/logger"
	corsmiddleware "github.com/junyours/occ-admission-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/junyours/occ-admission-sub001/pkg/middleware/requestid"
	"github.com/junyours/occ-admission-sub001/pkg/storage"
)

// @title OCC Admission Gateway
// @version 1.0.0
// @description Guidance-office gateway for browsing admission exam results
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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var cacheSvc *service.CacheService
	metrics := service.NewMetricsService()
	if cfg.Browse.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, browsing without working-set cache", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Browse.CacheTTL, logr, true)
		}
	}

	platform := upstream.NewClient(cfg.Upstream, logr)
	thresholds := classify.FromConfig(cfg.Thresholds)

	prefRepo := repository.NewPreferenceRepository(db)
	prefSvc := service.NewPreferenceService(prefRepo, cfg.Browse.DefaultPageSize, cfg.Browse.MaxPageSize, logr)
	authSvc := service.NewAuthService(cfg.JWT.Secret)
	examSvc := service.NewExamService(platform, cacheSvc, prefSvc, metrics, cfg.Browse.CacheTTL, logr)
	resultSvc := service.NewResultService(platform, cacheSvc, prefSvc, metrics, thresholds, cfg.Browse.CacheTTL, logr)
	questionSvc := service.NewQuestionService(platform, cacheSvc, prefSvc, metrics, thresholds, cfg.Thresholds.DefaultTimeThresh, cfg.Browse.CacheTTL, logr)

	var reportSvc *service.ReportService
	if cfg.Reports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		reportSvc = service.NewReportService(resultSvc, questionSvc, store, signer, logr)
	}

	examHandler := handler.NewExamHandler(examSvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	questionHandler := handler.NewQuestionHandler(questionSvc)
	prefHandler := handler.NewPreferenceHandler(prefSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

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
	api.Use(middleware.JWT(authSvc))

	api.GET("/exams", examHandler.List)
	api.GET("/results", resultHandler.List)
	api.GET("/questions", questionHandler.List)

	api.GET("/preferences/:feature", prefHandler.Get)
	api.PUT("/preferences/:feature", prefHandler.Save)
	api.DELETE("/preferences/:feature", prefHandler.Reset)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	api.POST("/exams", adminOnly, examHandler.Create)
	api.PATCH("/exams/:id/status", adminOnly, examHandler.SetStatus)
	api.POST("/exams/:id/archive", adminOnly, examHandler.Archive)
	api.DELETE("/results/:id", adminOnly, resultHandler.Delete)

	if reportSvc != nil {
		reportHandler := handler.NewReportHandler(reportSvc)
		api.POST("/reports", reportHandler.Render)
		api.POST("/reports/questions", reportHandler.RenderQuestions)
		api.GET("/reports/download", reportHandler.Download)
	}

	if cfg.Cleanup.Enabled {
		cleanupSvc := service.NewCleanupService(platform, cacheSvc, cfg.Cleanup.CutoffDays, logr)
		cleanupHandler := handler.NewCleanupHandler(cleanupSvc)
		api.GET("/cleanup/preview", adminOnly, cleanupHandler.Preview)
		api.POST("/cleanup/purge", adminOnly, cleanupHandler.Purge)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
