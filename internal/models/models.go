package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleResearcher = "researcher"
	RoleAnnotator  = "annotator"
)

// User represents a platform user. Roles follow the review permission
// model: admin, manager and researcher may review, annotator may not.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // Hashed password, empty for LDAP users
	Email     string         `gorm:"size:255" json:"email"`
	Nickname  string         `gorm:"size:100" json:"nickname"`
	Role      string         `gorm:"size:50;default:annotator" json:"role"`  // admin, manager, researcher, annotator
	AuthType  string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Project groups labeling items under one annotation setup.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PublicID    string         `gorm:"uniqueIndex;size:36;not null" json:"public_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	// ReviewableFields lists the field names reviewers may attach
	// feedback to, comma separated.
	ReviewableFields string         `gorm:"size:1000" json:"reviewable_fields"`
	Guidelines       string         `gorm:"type:text" json:"guidelines"`
	CreatedBy        uint           `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// Labeling item statuses.
const (
	ItemStatusDraft     = "draft"
	ItemStatusSubmitted = "submitted"
	ItemStatusApproved  = "approved"
	ItemStatusRejected  = "rejected"
	ItemStatusRevision  = "revision"
)

// LabelingItem is one unit of work: a payload to annotate plus the
// labeled field values as submitted by the annotator.
type LabelingItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	PublicID  string   `gorm:"uniqueIndex;size:36;not null" json:"public_id"`
	ProjectID uint     `gorm:"index;not null" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Payload   string   `gorm:"type:text" json:"payload"`
	// Fields holds the labeled field values as a JSON object keyed by
	// field name.
	Fields      string         `gorm:"type:text" json:"fields"`
	Status      string         `gorm:"size:50;default:draft;index" json:"status"`
	AssigneeID  *uint          `gorm:"index" json:"assignee_id"`
	Assignee    *User          `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	SubmittedAt *time.Time     `json:"submitted_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (User) TableName() string         { return "users" }
func (Project) TableName() string      { return "projects" }
func (LabelingItem) TableName() string { return "labeling_items" }
