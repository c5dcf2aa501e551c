package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/labelforge/labelforge/backend/internal/services"
)

type DigestHandler struct {
	digestService *services.DigestService
}

func NewDigestHandler(digestService *services.DigestService) *DigestHandler {
	return &DigestHandler{digestService: digestService}
}

// List returns stored digest reports, newest first
// GET /api/digests
func (h *DigestHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reports, total, err := h.digestService.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"items":     reports,
	})
}

// Get returns a digest report by ID
// GET /api/digests/:id
func (h *DigestHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid digest id"})
		return
	}

	report, err := h.digestService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "digest not found"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type GenerateDigestRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

// Generate builds (or rebuilds) the digest for a day on demand
// POST /api/digests/generate
func (h *DigestHandler) Generate(c *gin.Context) {
	var req GenerateDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	report, err := h.digestService.GenerateReport(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
