package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/wizariya/store-api/api/swagger"
	"github.com/wizariya/store-api/internal/handler"
	"github.com/wizariya/store-api/internal/middleware"
	"github.com/wizariya/store-api/internal/notify"
	"github.com/wizariya/store-api/internal/repository"
	"github.com/wizariya/store-api/internal/service"
	"github.com/wizariya/store-api/pkg/cache"
	"github.com/wizariya/store-api/pkg/config"
	"github.com/wizariya/store-api/pkg/database"
	"github.com/wizariya/store-api/pkg/logger"
	corsmiddleware "github.com/wizariya/store-api/pkg/middleware/cors"
	reqidmiddleware "github.com/wizariya/store-api/pkg/middleware/requestid"
)

// @title Wizariya Store API
// @version 1.0.0
// @description Order intake for the ministerial exam-prep subject store
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
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			sugar.Warnw("redis unavailable, running without cache", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	var notifier notify.Notifier
	if cfg.Notify.Enabled && cfg.Notify.BotToken != "" && cfg.Notify.ChatID != "" {
		notifier = notify.NewTelegram(cfg.Notify)
	}

	subjectRepo := repository.NewSubjectRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	catalogSvc := service.NewCatalogService(subjectRepo, cacheSvc, nil, logr)
	orderSvc := service.NewOrderService(orderRepo, notifier, metricsSvc, nil, logr)

	if cfg.Catalog.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := catalogSvc.SeedDefaults(ctx); err != nil {
			cancel()
			sugar.Fatalw("failed to seed catalog", "error", err)
		}
		cancel()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
	{
		api.GET("/grades", catalogHandler.Grades)
		api.GET("/pricing", catalogHandler.Pricing)
		api.GET("/subjects/:grade", catalogHandler.Subjects)
		api.POST("/subjects", catalogHandler.CreateSubject)
		api.PUT("/subjects/:id", catalogHandler.UpdateSubject)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/export", orderHandler.Export)
		api.GET("/orders/:id", orderHandler.Get)
		api.PUT("/orders/:id", orderHandler.Update)
		api.DELETE("/orders/:id", orderHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		sugar.Fatalw("server failed", "error", err)
	}
}
