package main

import (
	"github.com/gin-gonic/gin"

	"github.com/labelforge/labelforge/backend/internal/handlers"
	"github.com/labelforge/labelforge/backend/internal/middleware"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiters for login attempts and OCR ingest uploads
	authLimiter := middleware.NewRateLimiter(5, 10)
	ingestLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/refresh", authLimiter.Middleware(), svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Projects (read for all users)
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)

			// Labeling items
			itemHandler := handlers.NewItemHandler(models.GetDB())
			protected.GET("/items", itemHandler.List)
			protected.GET("/items/:id", itemHandler.GetByID)
			protected.POST("/items", itemHandler.Create)
			protected.PUT("/items/:id/fields", itemHandler.UpdateFields)
			protected.POST("/items/:id/submit", itemHandler.Submit)

			// OCR word index: ingest, snap and text extraction
			protected.GET("/items/:id/ocr", svc.ocrHandler.Status)
			protected.POST("/items/:id/ocr", ingestLimiter.Middleware(), svc.ocrHandler.Ingest)
			protected.POST("/items/:id/ocr/snap", svc.ocrHandler.Snap)
			protected.POST("/items/:id/ocr/text", svc.ocrHandler.Text)

			// Model-assisted label suggestions
			preannotationHandler := handlers.NewPreannotationHandler(models.GetDB(), &svc.cfg.Preannotation)
			protected.POST("/items/:id/preannotate", preannotationHandler.Suggest)
		}

		// Review routes. The panel flag hides the whole surface: routes
		// are not registered when disabled, so they 404.
		if svc.cfg.Review.PanelEnabled {
			reviewer := api.Group("")
			reviewer.Use(middleware.AuthRequired(), middleware.ReviewerRequired())
			{
				reviewHandler := handlers.NewReviewHandler(models.GetDB())
				reviewer.POST("/items/:id/review", reviewHandler.SubmitDecision)
				reviewer.GET("/items/:id/review/decisions", reviewHandler.Decisions)
				reviewer.GET("/items/:id/review/fields", reviewHandler.FieldStates)
				reviewer.POST("/items/:id/review/fields/:field/resolve", reviewHandler.ResolveField)
				reviewer.POST("/items/:id/review/fields/:field/clear", reviewHandler.ClearField)
			}
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Projects (write operations)
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			admin.POST("/projects", projectHandler.Create)
			admin.PUT("/projects/:id", projectHandler.Update)
			admin.DELETE("/projects/:id", projectHandler.Delete)

			// Labeling items (assignment and removal)
			itemHandler := handlers.NewItemHandler(models.GetDB())
			admin.POST("/items/:id/assign", itemHandler.Assign)
			admin.DELETE("/items/:id", itemHandler.Delete)

			// Users
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// System config
			systemHandler := handlers.NewSystemHandler(models.GetDB())
			admin.GET("/system-config/ldap", systemHandler.GetLDAPConfig)
			admin.PUT("/system-config/ldap", systemHandler.UpdateLDAPConfig)
			admin.GET("/system-config/review", systemHandler.GetReviewConfig)
			admin.PUT("/system-config/review", systemHandler.UpdateReviewConfig)
			admin.GET("/system-config/holiday-countries", systemHandler.GetHolidayCountries)

			// System logs
			admin.GET("/system-logs", systemHandler.ListLogs)
			admin.GET("/system-logs/modules", systemHandler.GetLogModules)
			admin.GET("/system-logs/retention", systemHandler.GetLogRetention)
			admin.PUT("/system-logs/retention", systemHandler.UpdateLogRetention)

			// Daily digests
			digestHandler := handlers.NewDigestHandler(svc.digestService)
			admin.GET("/digests", digestHandler.List)
			admin.GET("/digests/:id", digestHandler.Get)
			admin.POST("/digests/generate", digestHandler.Generate)
		}
	}
}
