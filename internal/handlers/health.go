package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/services"
)

// HealthHandler provides enhanced health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Items waiting for review
	var awaitingReview int64
	models.GetDB().Model(&models.LabelingItem{}).
		Where("status = ?", models.ItemStatusSubmitted).
		Count(&awaitingReview)

	// OCR documents still parsing
	var pendingOCR int64
	models.GetDB().Model(&models.OCRDocument{}).
		Where("status = ?", models.OCRStatusPending).
		Count(&pendingOCR)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "labelforge",
		"components": gin.H{
			"database":        dbStatus,
			"queue_mode":      queueMode,
			"awaiting_review": awaitingReview,
			"pending_ocr":     pendingOCR,
		},
	})
}
