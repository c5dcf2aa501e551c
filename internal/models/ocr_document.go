package models

import "time"

// OCR document statuses.
const (
	OCRStatusPending = "pending"
	OCRStatusReady   = "ready"
	OCRStatusFailed  = "failed"
)

// OCRDocument stores the raw OCR payload for a labeling item's source
// image plus a flattened word cache built at ingest time. The cache is
// what snap queries read; RawPayload is kept for re-parsing.
type OCRDocument struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	LabelingItemID uint       `gorm:"uniqueIndex;not null" json:"labeling_item_id"`
	Status         string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	RawPayload     string     `gorm:"type:text" json:"-"`
	Words          string     `gorm:"type:text" json:"-"` // cached flattened words, JSON
	WordCount      int        `json:"word_count"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message,omitempty"`
	IngestedAt     *time.Time `json:"ingested_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (OCRDocument) TableName() string { return "ocr_documents" }
