package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/medtrain/progress-tracker-api/api/swagger"
	"github.com/medtrain/progress-tracker-api/internal/handler"
	"github.com/medtrain/progress-tracker-api/internal/middleware"
	"github.com/medtrain/progress-tracker-api/internal/models"
	"github.com/medtrain/progress-tracker-api/internal/notify"
	"github.com/medtrain/progress-tracker-api/internal/repository"
	"github.com/medtrain/progress-tracker-api/internal/roster"
	"github.com/medtrain/progress-tracker-api/internal/service"
	"github.com/medtrain/progress-tracker-api/internal/sheet"
	"github.com/medtrain/progress-tracker-api/pkg/config"
	"github.com/medtrain/progress-tracker-api/pkg/logger"
	"github.com/medtrain/progress-tracker-api/pkg/mail"
	corsmiddleware "github.com/medtrain/progress-tracker-api/pkg/middleware/cors"
	reqidmiddleware "github.com/medtrain/progress-tracker-api/pkg/middleware/requestid"
)

// @title Student Progress Tracker API
// @version 0.1.0
// @description Roster ingestion, progress classification and bulk report notifications
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

	defaults := models.Thresholds{
		NoProgress: cfg.Roster.NoProgressBelow,
		InProgress: cfg.Roster.InProgressBelow,
	}
	store := repository.NewRosterRepository(defaults)

	metricsSvc := service.NewMetricsService()
	rosterSvc := service.NewRosterService(store, sheet.NewParser(), roster.NewNormalizer(), nil, metricsSvc, logr)

	var mailer mail.Sender
	switch cfg.Mail.Backend {
	case config.MailBackendSendgrid:
		mailer = mail.NewSendgridSender(cfg.Mail)
	default:
		mailer = mail.NewConsoleSender(logr)
	}
	composer := notify.NewEmailComposer(cfg.Mail)
	whatsapp := notify.NewWhatsAppClient(cfg.WhatsApp, cfg.Mail.ReportPeriod)
	notifySvc := service.NewNotificationService(store, composer, mailer, whatsapp, nil, metricsSvc, logr)

	exportSvc := service.NewExportService(store)

	rosterHandler := handler.NewRosterHandler(rosterSvc, cfg.Roster.MaxUploadBytes)
	notificationHandler := handler.NewNotificationHandler(notifySvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/roster/upload", rosterHandler.Upload)
		api.GET("/roster", rosterHandler.List)
		api.DELETE("/roster", rosterHandler.Reset)
		api.POST("/roster/students", rosterHandler.Add)
		api.PUT("/roster/students/:id", rosterHandler.Edit)
		api.GET("/roster/thresholds", rosterHandler.Thresholds)
		api.PUT("/roster/thresholds", rosterHandler.UpdateThresholds)
		if cfg.Export.Enabled {
			api.GET("/roster/export", exportHandler.Download)
		}
		api.POST("/notifications/send", notificationHandler.Send)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "mail_backend", cfg.Mail.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
