package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/med-a-api/api/swagger"
	"github.com/noah-isme/med-a-api/internal/gateway"
	"github.com/noah-isme/med-a-api/internal/handler"
	innermiddleware "github.com/noah-isme/med-a-api/internal/middleware"
	"github.com/noah-isme/med-a-api/internal/repository"
	"github.com/noah-isme/med-a-api/internal/service"
	"github.com/noah-isme/med-a-api/migrations"
	"github.com/noah-isme/med-a-api/pkg/cache"
	"github.com/noah-isme/med-a-api/pkg/config"
	"github.com/noah-isme/med-a-api/pkg/database"
	"github.com/noah-isme/med-a-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/med-a-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/med-a-api/pkg/middleware/requestid"
)

// @title MED-A API
// @version 1.0.0
// @description Content gating API for the MED-A educational portal
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The catalog keeps working without Redis; caching and the
		// attempt limiter just switch off.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled && redisClient != nil)

	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	classRepo := repository.NewClassRepository(db)
	contentRepo := repository.NewContentRepository(db)
	attemptRepo := repository.NewAttemptRepository(redisClient)

	gatewayClient := gateway.NewClient(cfg.Gateway, logr)

	authSvc := service.NewAuthService(cfg.JWT)
	departmentSvc := service.NewDepartmentService(departmentRepo, nil, logr)
	courseSvc := service.NewCourseService(courseRepo, departmentRepo, nil, logr)
	classSvc := service.NewClassService(classRepo, courseRepo, nil, logr)
	contentSvc := service.NewContentService(contentRepo, classRepo, cacheSvc, nil, logr)
	accessSvc := service.NewAccessService(contentRepo, gatewayClient, attemptRepo, metrics, logr, cfg.Verify.MaxAttempts, cfg.Verify.AttemptWindow)
	subscriptionSvc := service.NewSubscriptionService(gatewayClient, cacheSvc, metrics, nil, logr, cfg.Gateway.PlansCacheTTL)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(innermiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Departments:  handler.NewDepartmentHandler(departmentSvc),
		Courses:      handler.NewCourseHandler(courseSvc),
		Classes:      handler.NewClassHandler(classSvc),
		Content:      handler.NewContentHandler(contentSvc, accessSvc),
		Subscription: handler.NewSubscriptionHandler(subscriptionSvc),
		Metrics:      handler.NewMetricsHandler(metrics),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
