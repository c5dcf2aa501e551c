package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/middleware"
	"github.com/labelforge/labelforge/backend/internal/services"
	"github.com/labelforge/labelforge/backend/pkg/response"
)

type ReviewHandler struct {
	reviewService  *services.ReviewService
	itemService    *services.ItemService
	projectService *services.ProjectService
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  services.NewReviewService(db),
		itemService:    services.NewItemService(db),
		projectService: services.NewProjectService(db),
	}
}

// SubmitDecision records a reviewer verdict on a submitted item
// POST /api/items/:id/review
func (h *ReviewHandler) SubmitDecision(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req services.SubmitDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	decision, err := h.reviewService.SubmitDecision(
		uint(itemID), middleware.GetUserID(c), middleware.GetRole(c), &req)
	if err != nil {
		var vErr *services.FeedbackValidationError
		if errors.As(err, &vErr) {
			fieldErrors := make(map[string]string, len(vErr.Errors)+1)
			fieldErrors["field_name"] = vErr.Field
			for key, msg := range vErr.Errors {
				fieldErrors[key] = msg
			}
			response.ValidationFailed(c, fieldErrors)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "item not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, decision)
}

// Decisions returns the item's review decision history, newest first
// GET /api/items/:id/review/decisions
func (h *ReviewHandler) Decisions(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	decisions, err := h.reviewService.Decisions(uint(itemID))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, decisions)
}

// FieldStates derives the review state of the item's fields. The field
// set defaults to the project's reviewable fields and can be narrowed
// with ?fields=a,b,c.
// GET /api/items/:id/review/fields
func (h *ReviewHandler) FieldStates(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	item, err := h.itemService.GetByID(uint(itemID))
	if err != nil {
		response.NotFound(c, "item not found")
		return
	}

	var fields []string
	if raw := c.Query("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	} else {
		project, err := h.projectService.GetByID(item.ProjectID)
		if err != nil {
			response.ServerError(c, err.Error())
			return
		}
		fields = h.projectService.ReviewableFields(project)
	}

	states, err := h.reviewService.FieldStates(uint(itemID), middleware.GetRole(c), fields)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, states)
}

// ResolveField marks the field's open feedback as resolved
// POST /api/items/:id/review/fields/:field/resolve
func (h *ReviewHandler) ResolveField(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	if err := h.reviewService.ResolveField(uint(itemID), c.Param("field")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "field resolved"})
}

// ClearField reopens resolved feedback on the field
// POST /api/items/:id/review/fields/:field/clear
func (h *ReviewHandler) ClearField(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	if err := h.reviewService.ClearField(uint(itemID), c.Param("field")); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "field cleared"})
}
