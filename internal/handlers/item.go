package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/middleware"
	"github.com/labelforge/labelforge/backend/internal/services"
	"github.com/labelforge/labelforge/backend/pkg/response"
)

type ItemHandler struct {
	itemService *services.ItemService
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{
		itemService: services.NewItemService(db),
	}
}

// List returns paginated labeling items
// GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	var req services.ItemListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.itemService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetByID returns a labeling item by ID
// GET /api/items/:id
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	item, err := h.itemService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "item not found")
		return
	}

	response.Success(c, item)
}

// Create creates a new labeling item
// POST /api/items
func (h *ItemHandler) Create(c *gin.Context) {
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Create(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, item)
}

// UpdateFields replaces the item's labeled field values
// PUT /api/items/:id/fields
func (h *ItemHandler) UpdateFields(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req services.UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.UpdateFields(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, item)
}

// Submit moves the item to submitted status
// POST /api/items/:id/submit
func (h *ItemHandler) Submit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	item, err := h.itemService.Submit(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, item)
}

type AssignRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// Assign sets the item's assignee
// POST /api/items/:id/assign
func (h *ItemHandler) Assign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Assign(uint(id), req.AssigneeID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, item)
}

// Delete removes a labeling item
// DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	if err := h.itemService.Delete(uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "item deleted"})
}
