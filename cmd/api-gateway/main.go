package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/amanah-edu/kelaskal-api/api/swagger"
	"github.com/amanah-edu/kelaskal-api/internal/handler"
	"github.com/amanah-edu/kelaskal-api/internal/middleware"
	"github.com/amanah-edu/kelaskal-api/internal/repository"
	"github.com/amanah-edu/kelaskal-api/internal/service"
	"github.com/amanah-edu/kelaskal-api/pkg/config"
	"github.com/amanah-edu/kelaskal-api/pkg/database"
	"github.com/amanah-edu/kelaskal-api/pkg/logger"
	corsmiddleware "github.com/amanah-edu/kelaskal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/amanah-edu/kelaskal-api/pkg/middleware/requestid"
)

// @title KelasKal API
// @version 2.0
// @description Class schedule and calendar expansion service
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	scheduleRepo := repository.NewClassScheduleRepository(db)
	calendarSvc := service.NewCalendarService(scheduleRepo, nil, logr, metricsSvc, service.CalendarConfig{
		MaxRangeYears:     cfg.Calendar.MaxRangeYears,
		FallbackMaxEvents: cfg.Calendar.FallbackMaxEvents,
	})
	exportSvc := service.NewExportService(logr)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, exportSvc, cfg.Export.Enabled)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/classes/:id/calendar", calendarHandler.Events)
		api.GET("/classes/:id/calendar/export", calendarHandler.Export)
		api.POST("/classes/:id/schedule", calendarHandler.SaveSchedule)
		api.DELETE("/classes/:id/schedule", calendarHandler.DeleteSchedule)
		api.POST("/calendar/preview", calendarHandler.Preview)
		api.GET("/schedules", calendarHandler.ListSchedules)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
