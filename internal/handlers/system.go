package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/middleware"
	"github.com/labelforge/labelforge/backend/internal/services"
)

type SystemHandler struct {
	configService  *services.SystemConfigService
	logService     *services.SystemLogService
	holidayService *services.HolidayService
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		configService:  services.NewSystemConfigService(db),
		logService:     services.NewSystemLogService(db),
		holidayService: services.NewHolidayService(),
	}
}

// GetHolidayCountries returns the countries the digest scheduler knows
// business-day calendars for
// GET /api/system-config/holiday-countries
func (h *SystemHandler) GetHolidayCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": h.holidayService.GetSupportedCountries()})
}

// GetLDAPConfig returns LDAP settings with the bind password masked
// GET /api/system/ldap
func (h *SystemHandler) GetLDAPConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.GetLDAPConfig())
}

// UpdateLDAPConfig updates LDAP settings
// PUT /api/system/ldap
func (h *SystemHandler) UpdateLDAPConfig(c *gin.Context) {
	var req services.UpdateLDAPConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configService.UpdateLDAPConfig(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("system", "update_ldap_config", "LDAP configuration updated",
		&userID, c.ClientIP(), c.Request.UserAgent(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "LDAP configuration updated"})
}

// GetReviewConfig returns whether the review panel is enabled
// GET /api/system/review
func (h *SystemHandler) GetReviewConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"panel_enabled": h.configService.GetBool("review_panel_enabled", true),
	})
}

type UpdateReviewConfigRequest struct {
	PanelEnabled *bool `json:"panel_enabled"`
}

// UpdateReviewConfig toggles the review panel
// PUT /api/system/review
func (h *SystemHandler) UpdateReviewConfig(c *gin.Context) {
	var req UpdateReviewConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PanelEnabled != nil {
		if err := h.configService.Set("review_panel_enabled", strconv.FormatBool(*req.PanelEnabled)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "review configuration updated"})
}

// ListLogs returns paginated system logs
// GET /api/system/logs
func (h *SystemHandler) ListLogs(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetLogModules returns the distinct module names present in the logs
// GET /api/system/logs/modules
func (h *SystemHandler) GetLogModules(c *gin.Context) {
	modules, err := h.logService.GetModules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

// GetLogRetention returns the log retention window in days
// GET /api/system/logs/retention
func (h *SystemHandler) GetLogRetention(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"retention_days": h.logService.GetRetentionDays()})
}

type UpdateLogRetentionRequest struct {
	RetentionDays int `json:"retention_days" binding:"required,min=1,max=365"`
}

// UpdateLogRetention sets the log retention window in days
// PUT /api/system/logs/retention
func (h *SystemHandler) UpdateLogRetention(c *gin.Context) {
	var req UpdateLogRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.logService.SetRetentionDays(req.RetentionDays); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"retention_days": req.RetentionDays})
}
