package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/review"
)

// ReviewService persists review decisions and field feedback, and
// derives per-field review state through the review package.
type ReviewService struct {
	db         *gorm.DB
	projectSvc *ProjectService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, projectSvc: NewProjectService(db)}
}

type SubmitDecisionRequest struct {
	Status          string                 `json:"status" binding:"required"`
	ReviewerComment string                 `json:"reviewer_comment"`
	FieldFeedbacks  []review.FeedbackInput `json:"field_feedbacks"`
}

// decisionStatuses maps a decision status to the item status it moves
// the item to.
var decisionStatuses = map[string]string{
	models.DecisionApproved:          models.ItemStatusApproved,
	models.DecisionRejectedPartial:   models.ItemStatusRejected,
	models.DecisionRejectedFull:      models.ItemStatusRejected,
	models.DecisionRevisionRequested: models.ItemStatusRevision,
}

// SubmitDecision records a reviewer verdict on a submitted item. The
// decision, its field feedbacks and the item status change are written
// in one transaction. Approved decisions may not carry field feedbacks.
func (s *ReviewService) SubmitDecision(itemID, reviewerID uint, role string, req *SubmitDecisionRequest) (*models.ReviewDecision, error) {
	if !review.CanReview(review.Role(role)) {
		return nil, errors.New("role is not allowed to review")
	}

	itemStatus, ok := decisionStatuses[req.Status]
	if !ok {
		return nil, errors.New("invalid decision status")
	}

	if req.Status == models.DecisionApproved && len(req.FieldFeedbacks) > 0 {
		return nil, errors.New("approved decisions cannot carry field feedback")
	}
	if req.Status != models.DecisionApproved && len(req.FieldFeedbacks) == 0 {
		return nil, errors.New("non-approved decisions require field feedback")
	}

	var item models.LabelingItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}
	if item.Status != models.ItemStatusSubmitted {
		return nil, errors.New("only submitted items can be reviewed")
	}

	var project models.Project
	if err := s.db.First(&project, item.ProjectID).Error; err != nil {
		return nil, err
	}

	// Validate every feedback entry before writing anything.
	feedbacks := make([]models.FieldFeedback, 0, len(req.FieldFeedbacks))
	now := time.Now()
	for _, in := range req.FieldFeedbacks {
		if !s.projectSvc.IsFieldReviewable(&project, in.Field) {
			return nil, errors.New("field is not reviewable: " + in.Field)
		}
		if errs := review.ValidateFeedbackInput(in); errs != nil {
			return nil, &FeedbackValidationError{Field: in.Field, Errors: errs}
		}
		fb := in.Feedback()
		feedbacks = append(feedbacks, models.FieldFeedback{
			LabelingItemID: item.ID,
			FieldName:      fb.Field,
			FeedbackType:   string(fb.Type),
			Comment:        fb.Comment,
			ReviewedBy:     reviewerID,
			ReviewedAt:     now,
		})
	}

	decision := models.ReviewDecision{
		LabelingItemID:  item.ID,
		Status:          req.Status,
		ReviewerID:      reviewerID,
		ReviewerComment: req.ReviewerComment,
		FieldFeedbacks:  feedbacks,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&decision).Error; err != nil {
			return err
		}
		return tx.Model(&item).Update("status", itemStatus).Error
	}); err != nil {
		return nil, err
	}

	return &decision, nil
}

// FeedbackValidationError carries per-field validation messages for one
// rejected feedback entry.
type FeedbackValidationError struct {
	Field  string
	Errors review.ValidationErrors
}

func (e *FeedbackValidationError) Error() string {
	return "invalid feedback for field " + e.Field
}

// Decisions returns the full decision history of an item, newest first.
func (s *ReviewService) Decisions(itemID uint) ([]models.ReviewDecision, error) {
	var decisions []models.ReviewDecision
	if err := s.db.Preload("FieldFeedbacks").
		Where("labeling_item_id = ?", itemID).
		Order("created_at DESC").
		Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// Session builds a review session for an item, seeded with the item's
// unresolved feedback from the latest decision as ambient context.
func (s *ReviewService) Session(itemID uint, role string, reviewMode bool) (*review.Session, error) {
	pending, err := s.pendingFeedbacks(itemID)
	if err != nil {
		return nil, err
	}

	ambient := review.Context{
		Role:             review.Role(role),
		ReviewMode:       reviewMode,
		PendingFeedbacks: pending,
	}
	return review.NewSession(ambient), nil
}

// FieldStates derives the review state of each requested field.
func (s *ReviewService) FieldStates(itemID uint, role string, fields []string) (map[string]*review.FieldState, error) {
	sess, err := s.Session(itemID, role, true)
	if err != nil {
		return nil, err
	}

	states := make(map[string]*review.FieldState, len(fields))
	for _, field := range fields {
		states[field] = sess.FieldReviewState(field)
	}
	return states, nil
}

// ResolveField marks every unresolved feedback on the field as resolved.
// The field then derives to approved.
func (s *ReviewService) ResolveField(itemID uint, field string) error {
	now := time.Now()
	result := s.db.Model(&models.FieldFeedback{}).
		Where("labeling_item_id = ? AND field_name = ? AND resolved = ?", itemID, field, false).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("no unresolved feedback for field")
	}
	return nil
}

// ClearField reopens resolved feedback on the field, returning it to the
// feedback-derived status.
func (s *ReviewService) ClearField(itemID uint, field string) error {
	return s.db.Model(&models.FieldFeedback{}).
		Where("labeling_item_id = ? AND field_name = ? AND resolved = ?", itemID, field, true).
		Updates(map[string]interface{}{"resolved": false, "resolved_at": nil}).Error
}

// pendingFeedbacks loads the item's unresolved feedback from its most
// recent decision, converted to review entries.
func (s *ReviewService) pendingFeedbacks(itemID uint) ([]review.Feedback, error) {
	var latest models.ReviewDecision
	err := s.db.Where("labeling_item_id = ?", itemID).
		Order("created_at DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []models.FieldFeedback
	if err := s.db.Where("review_decision_id = ? AND resolved = ?", latest.ID, false).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var reviewers []models.User
	reviewerNames := make(map[uint]string)
	var reviewerIDs []uint
	for _, row := range rows {
		reviewerIDs = append(reviewerIDs, row.ReviewedBy)
	}
	if len(reviewerIDs) > 0 {
		if err := s.db.Where("id IN ?", reviewerIDs).Find(&reviewers).Error; err == nil {
			for _, u := range reviewers {
				reviewerNames[u.ID] = u.Username
			}
		}
	}

	pending := make([]review.Feedback, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, review.Feedback{
			Field:      row.FieldName,
			Type:       review.FeedbackType(row.FeedbackType),
			Comment:    row.Comment,
			ReviewedBy: reviewerNames[row.ReviewedBy],
			ReviewedAt: row.ReviewedAt,
		})
	}
	return pending, nil
}
