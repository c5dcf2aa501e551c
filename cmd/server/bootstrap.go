package main

import (
	"github.com/labelforge/labelforge/backend/internal/config"
	"github.com/labelforge/labelforge/backend/internal/handlers"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/services"
	"github.com/labelforge/labelforge/backend/internal/utils"
	"github.com/labelforge/labelforge/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg           *config.Config
	digestService *services.DigestService
	taskQueue     services.TaskQueue
	worker        *services.Worker
	authHandler   *handlers.AuthHandler
	ocrHandler    *handlers.OCRHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Initialize and start daily digest scheduler
	digestService := services.NewDigestService(models.GetDB(), &cfg.Digest)
	digestService.StartScheduler()

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	ocrHandler := handlers.NewOCRHandler(models.GetDB(), cfg.Snap)
	taskQueue := services.InitTaskQueue(cfg)
	ocrHandler.Service().SetQueue(taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(ocrHandler.Service().ProcessIngestTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(ocrHandler.Service().ProcessIngestTask)
			worker.Start()
		}
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:           cfg,
		digestService: digestService,
		taskQueue:     taskQueue,
		worker:        worker,
		authHandler:   authHandler,
		ocrHandler:    ocrHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.digestService.StopScheduler()
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
