package review

import "strings"

// MinCommentLength is the minimum trimmed comment length for inline
// feedback entry.
const MinCommentLength = 10

// FeedbackInput is an unvalidated inline feedback entry.
type FeedbackInput struct {
	Field   string `json:"field_name"`
	Type    string `json:"feedback_type"`
	Comment string `json:"feedback_comment"`
}

// ValidationErrors maps an input field key to its error message. An empty
// map means the input is valid.
type ValidationErrors map[string]string

// ValidateFeedbackInput checks an inline feedback entry: the type must come
// from the closed feedback-type set and the comment must be at least
// MinCommentLength characters after trimming. Validation failure is
// recoverable; the caller surfaces the messages and lets the user resubmit.
func ValidateFeedbackInput(in FeedbackInput) ValidationErrors {
	errs := make(ValidationErrors)
	if !FeedbackType(in.Type).Valid() {
		errs["feedback_type"] = "select a feedback type"
	}
	if len(strings.TrimSpace(in.Comment)) < MinCommentLength {
		errs["feedback_comment"] = "comment must be at least 10 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Feedback converts a validated input into a Feedback entry. Call only
// after ValidateFeedbackInput returned no errors.
func (in FeedbackInput) Feedback() Feedback {
	return Feedback{
		Field:   in.Field,
		Type:    FeedbackType(in.Type),
		Comment: strings.TrimSpace(in.Comment),
	}
}
