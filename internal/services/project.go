package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/models"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Name     string `form:"name"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	ReviewableFields string `json:"reviewable_fields"`
	Guidelines       string `json:"guidelines"`
}

type UpdateProjectRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	ReviewableFields *string `json:"reviewable_fields"`
	Guidelines       *string `json:"guidelines"`
}

// List returns paginated projects
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	var projects []models.Project
	var total int64

	query := s.db.Model(&models.Project{})

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// GetByID returns a project by ID
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByPublicID returns a project by its public UUID
func (s *ProjectService) GetByPublicID(publicID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("public_id = ?", publicID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Create creates a new project
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	project := models.Project{
		PublicID:         uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		ReviewableFields: normalizeFieldList(req.ReviewableFields),
		Guidelines:       req.Guidelines,
		CreatedBy:        userID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Update updates a project
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ReviewableFields != nil {
		updates["reviewable_fields"] = normalizeFieldList(*req.ReviewableFields)
	}
	if req.Guidelines != nil {
		updates["guidelines"] = *req.Guidelines
	}

	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(id uint) error {
	result := s.db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("project not found")
	}
	return nil
}

// ReviewableFields returns the project's reviewable field names.
func (s *ProjectService) ReviewableFields(project *models.Project) []string {
	return splitAndTrim(project.ReviewableFields, ",")
}

// IsFieldReviewable reports whether feedback may target the field. An
// empty reviewable list means every field accepts feedback.
func (s *ProjectService) IsFieldReviewable(project *models.Project, field string) bool {
	fields := s.ReviewableFields(project)
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

func normalizeFieldList(raw string) string {
	return strings.Join(splitAndTrim(raw, ","), ",")
}
