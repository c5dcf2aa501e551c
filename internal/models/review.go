package models

import "time"

// Review decision statuses.
const (
	DecisionApproved          = "approved"
	DecisionRejectedPartial   = "rejected_partial"
	DecisionRejectedFull      = "rejected_full"
	DecisionRevisionRequested = "revision_requested"
)

// ReviewDecision is one reviewer verdict on an entire labeling item,
// bundling zero or more field feedbacks. Decisions are history records:
// immutable once created. An approved decision carries no field
// feedbacks.
type ReviewDecision struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	LabelingItemID  uint            `gorm:"index;not null" json:"labeling_item_id"`
	LabelingItem    *LabelingItem   `gorm:"foreignKey:LabelingItemID" json:"labeling_item,omitempty"`
	Status          string          `gorm:"size:50;not null" json:"status"`
	ReviewerID      uint            `gorm:"index;not null" json:"reviewer_id"`
	Reviewer        *User           `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	ReviewerComment string          `gorm:"type:text" json:"reviewer_comment"`
	FieldFeedbacks  []FieldFeedback `gorm:"foreignKey:ReviewDecisionID" json:"field_feedbacks"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
}

// FieldFeedback is one reviewer comment attached to one named field of
// one labeling item. The Resolved flag tracks whether the annotator has
// addressed it; resolution overrides the feedback-derived status.
type FieldFeedback struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ReviewDecisionID uint       `gorm:"index;not null" json:"review_decision_id"`
	LabelingItemID   uint       `gorm:"index;not null" json:"labeling_item_id"`
	FieldName        string     `gorm:"size:100;not null;index" json:"field_name"`
	FeedbackType     string     `gorm:"size:50;not null" json:"feedback_type"` // partial, full, revision
	Comment          string     `gorm:"type:text" json:"feedback_comment"`
	ReviewedBy       uint       `gorm:"index" json:"reviewed_by"`
	ReviewedAt       time.Time  `json:"reviewed_at"`
	Resolved         bool       `gorm:"default:false;index" json:"resolved"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

func (ReviewDecision) TableName() string { return "review_decisions" }
func (FieldFeedback) TableName() string  { return "field_feedbacks" }
