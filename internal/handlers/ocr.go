package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/canvas/ocr"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/services"
)

// maxOCRPayloadBytes caps raw OCR payload uploads.
const maxOCRPayloadBytes = 32 << 20

type OCRHandler struct {
	ocrService *services.OCRService
}

func NewOCRHandler(db *gorm.DB, snapCfg ocr.SnapConfig) *OCRHandler {
	return &OCRHandler{
		ocrService: services.NewOCRService(db, snapCfg),
	}
}

func (h *OCRHandler) Service() *services.OCRService {
	return h.ocrService
}

// Ingest uploads a raw OCR payload for an item
// POST /api/items/:id/ocr
func (h *OCRHandler) Ingest(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxOCRPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}
	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty OCR payload"})
		return
	}

	doc, err := h.ocrService.Ingest(uint(itemID), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"document_id": doc.ID,
		"status":      doc.Status,
		"word_count":  doc.WordCount,
	})
}

// Status returns the item's OCR document status
// GET /api/items/:id/ocr
func (h *OCRHandler) Status(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var doc models.OCRDocument
	if err := h.ocrService.Document(uint(itemID), &doc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no OCR document for item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id":   doc.ID,
		"status":        doc.Status,
		"word_count":    doc.WordCount,
		"error_message": doc.ErrorMessage,
		"ingested_at":   doc.IngestedAt,
	})
}

// Snap resolves a drawn rectangle against the item's OCR words
// POST /api/items/:id/ocr/snap
func (h *OCRHandler) Snap(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req services.SnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ocrService.Snap(uint(itemID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		// No words close enough; the client keeps the drawn rectangle.
		c.JSON(http.StatusOK, gin.H{"snapped": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapped": true, "result": result})
}

// Text extracts reading-order text inside a rectangle
// POST /api/items/:id/ocr/text
func (h *OCRHandler) Text(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req services.SnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.ocrService.Text(uint(itemID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
