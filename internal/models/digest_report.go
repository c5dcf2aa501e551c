package models

import "time"

// DigestReport is a daily (business-day) summary of labeling and review
// activity across all projects, generated by the digest scheduler.
type DigestReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportDate time.Time `gorm:"uniqueIndex;not null" json:"report_date"`
	ReportType string    `gorm:"size:20;default:daily" json:"report_type"` // daily, weekly

	TotalProjects    int `json:"total_projects"`
	TotalItems       int `json:"total_items"`
	SubmittedCount   int `json:"submitted_count"`
	ApprovedCount    int `json:"approved_count"`
	RejectedCount    int `json:"rejected_count"`
	RevisionCount    int `json:"revision_count"`
	ActiveAnnotators int `json:"active_annotators"`
	ActiveReviewers  int `json:"active_reviewers"`
	FeedbackCount    int `json:"feedback_count"`
	ResolvedCount    int `json:"resolved_count"`

	TopProjects   string `gorm:"type:text" json:"top_projects"`   // JSON
	TopAnnotators string `gorm:"type:text" json:"top_annotators"` // JSON

	CreatedAt time.Time `json:"created_at"`
}

func (DigestReport) TableName() string { return "digest_reports" }
