// Package review implements the field-level review workflow: per-field
// feedback, status derivation, reviewer permissions and the merge rules
// between explicit per-call options and the ambient review context.
//
// The package is a pure in-process library. It never touches the database
// or the network; persistence and delivery are the caller's problem and
// flow through the callbacks on Context.
package review

import "time"

// Role is the role of the current user, supplied by the session layer.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleResearcher Role = "researcher"
	RoleAnnotator  Role = "annotator"
)

// FeedbackType classifies one reviewer comment on a field.
type FeedbackType string

const (
	FeedbackPartial  FeedbackType = "partial"
	FeedbackFull     FeedbackType = "full"
	FeedbackRevision FeedbackType = "revision"
)

// FieldStatus is the derived UI-facing status of one reviewed field.
type FieldStatus string

const (
	StatusPending  FieldStatus = "pending"
	StatusApproved FieldStatus = "approved"
	StatusRejected FieldStatus = "rejected"
	StatusRevision FieldStatus = "revision"
)

// feedbackStatus maps a feedback type to the field status it produces.
// Both partial and full rejections surface as "rejected"; only the
// revision type keeps its own status.
var feedbackStatus = map[FeedbackType]FieldStatus{
	FeedbackPartial:  StatusRejected,
	FeedbackFull:     StatusRejected,
	FeedbackRevision: StatusRevision,
}

// FieldStatus returns the field status a feedback of this type derives to.
// Unknown types derive to pending.
func (t FeedbackType) FieldStatus() FieldStatus {
	if s, ok := feedbackStatus[t]; ok {
		return s
	}
	return StatusPending
}

// Valid reports whether t is one of the closed set of feedback types.
func (t FeedbackType) Valid() bool {
	_, ok := feedbackStatus[t]
	return ok
}

// Feedback is one reviewer comment attached to one named field.
type Feedback struct {
	Field      string       `json:"field_name"`
	Type       FeedbackType `json:"feedback_type"`
	Comment    string       `json:"feedback_comment,omitempty"`
	ReviewedBy string       `json:"reviewed_by,omitempty"`
	ReviewedAt time.Time    `json:"reviewed_at,omitempty"`
}

// FieldState is the derived status of one field, recomputed on every read.
type FieldState struct {
	Status  FieldStatus `json:"status"`
	Comment string      `json:"comment,omitempty"`
}

// Callbacks are the caller-supplied actions behind the review controls.
// A nil callback makes the corresponding operation a silent no-op; the
// presentation layer is expected to disable the control in that case.
type Callbacks struct {
	OnApprove         func(field string)
	OnReject          func(field, comment string)
	OnRequestRevision func(field, comment string)
	OnClearStatus     func(field string)
}

// CanApprove reports whether the approve action is wired.
func (c Callbacks) CanApprove() bool { return c.OnApprove != nil }

// CanReject reports whether the reject action is wired.
func (c Callbacks) CanReject() bool { return c.OnReject != nil }

// CanRequestRevision reports whether the revision action is wired.
func (c Callbacks) CanRequestRevision() bool { return c.OnRequestRevision != nil }

// CanClearStatus reports whether the clear action is wired.
func (c Callbacks) CanClearStatus() bool { return c.OnClearStatus != nil }
