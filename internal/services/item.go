package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/models"
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

type ItemListRequest struct {
	Page       int    `form:"page" binding:"min=1"`
	PageSize   int    `form:"page_size" binding:"min=1,max=100"`
	ProjectID  uint   `form:"project_id"`
	Status     string `form:"status"`
	AssigneeID uint   `form:"assignee_id"`
}

type ItemListResponse struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []models.LabelingItem `json:"items"`
}

type CreateItemRequest struct {
	ProjectID  uint   `json:"project_id" binding:"required"`
	Payload    string `json:"payload" binding:"required"`
	AssigneeID *uint  `json:"assignee_id"`
}

type UpdateFieldsRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// List returns paginated labeling items
func (s *ItemService) List(req *ItemListRequest) (*ItemListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var items []models.LabelingItem
	var total int64

	query := s.db.Model(&models.LabelingItem{})

	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.AssigneeID != 0 {
		query = query.Where("assignee_id = ?", req.AssigneeID)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &ItemListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// GetByID returns a labeling item by ID
func (s *ItemService) GetByID(id uint) (*models.LabelingItem, error) {
	var item models.LabelingItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new labeling item in draft status
func (s *ItemService) Create(req *CreateItemRequest) (*models.LabelingItem, error) {
	item := models.LabelingItem{
		PublicID:   uuid.NewString(),
		ProjectID:  req.ProjectID,
		Payload:    req.Payload,
		Status:     models.ItemStatusDraft,
		AssigneeID: req.AssigneeID,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateFields replaces the labeled field values. Only draft and
// revision items accept edits.
func (s *ItemService) UpdateFields(id uint, userID uint, req *UpdateFieldsRequest) (*models.LabelingItem, error) {
	var item models.LabelingItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}

	if item.Status != models.ItemStatusDraft && item.Status != models.ItemStatusRevision && item.Status != models.ItemStatusRejected {
		return nil, errors.New("item is not editable in its current status")
	}
	if item.AssigneeID != nil && *item.AssigneeID != userID {
		return nil, errors.New("item is assigned to another annotator")
	}

	data, err := json.Marshal(req.Fields)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&item).Update("fields", string(data)).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Submit moves an item to submitted status, making it visible to
// reviewers. Draft, rejected and revision items may be resubmitted.
func (s *ItemService) Submit(id uint, userID uint) (*models.LabelingItem, error) {
	var item models.LabelingItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}

	switch item.Status {
	case models.ItemStatusDraft, models.ItemStatusRejected, models.ItemStatusRevision:
	case models.ItemStatusSubmitted:
		return nil, errors.New("item already submitted")
	default:
		return nil, errors.New("approved items cannot be resubmitted")
	}

	if item.AssigneeID != nil && *item.AssigneeID != userID {
		return nil, errors.New("item is assigned to another annotator")
	}

	now := time.Now()
	if err := s.db.Model(&item).Updates(map[string]interface{}{
		"status":       models.ItemStatusSubmitted,
		"submitted_at": now,
	}).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Assign sets the item's assignee
func (s *ItemService) Assign(id uint, assigneeID uint) (*models.LabelingItem, error) {
	var item models.LabelingItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, assigneeID).Error; err != nil {
		return nil, errors.New("assignee not found")
	}

	if err := s.db.Model(&item).Update("assignee_id", assigneeID).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Delete soft-deletes a labeling item
func (s *ItemService) Delete(id uint) error {
	result := s.db.Delete(&models.LabelingItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("item not found")
	}
	return nil
}

// FieldValues decodes the item's labeled field values.
func (s *ItemService) FieldValues(item *models.LabelingItem) (map[string]interface{}, error) {
	if item.Fields == "" {
		return map[string]interface{}{}, nil
	}
	var values map[string]interface{}
	if err := json.Unmarshal([]byte(item.Fields), &values); err != nil {
		return nil, err
	}
	return values, nil
}
