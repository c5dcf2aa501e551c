package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/config"
	"github.com/labelforge/labelforge/backend/internal/services"
)

type PreannotationHandler struct {
	preannotationService *services.PreannotationService
}

func NewPreannotationHandler(db *gorm.DB, cfg *config.PreannotationConfig) *PreannotationHandler {
	return &PreannotationHandler{
		preannotationService: services.NewPreannotationService(db, cfg),
	}
}

// Suggest asks the LLM for field value suggestions on an item
// POST /api/items/:id/preannotate
func (h *PreannotationHandler) Suggest(c *gin.Context) {
	if !h.preannotationService.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preannotation is not enabled"})
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	suggestion, err := h.preannotationService.Suggest(c.Request.Context(), uint(itemID))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
