package services

import (
	"testing"

	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/internal/review"
)

func TestDecisionStatuses_Mapping(t *testing.T) {
	tests := []struct {
		decision string
		item     string
	}{
		{models.DecisionApproved, models.ItemStatusApproved},
		{models.DecisionRejectedPartial, models.ItemStatusRejected},
		{models.DecisionRejectedFull, models.ItemStatusRejected},
		{models.DecisionRevisionRequested, models.ItemStatusRevision},
	}

	for _, tt := range tests {
		got, ok := decisionStatuses[tt.decision]
		if !ok {
			t.Errorf("decision %q has no item status mapping", tt.decision)
			continue
		}
		if got != tt.item {
			t.Errorf("decision %q maps to item status %q, expected %q", tt.decision, got, tt.item)
		}
	}
}

func TestDecisionStatuses_RejectsUnknown(t *testing.T) {
	if _, ok := decisionStatuses["looks_fine"]; ok {
		t.Error("unknown decision status should not map to an item status")
	}
}

func TestFeedbackValidationError(t *testing.T) {
	err := &FeedbackValidationError{
		Field:  "threat_type_l1",
		Errors: review.ValidationErrors{"feedback_comment": "comment must be at least 10 characters"},
	}

	if err.Error() != "invalid feedback for field threat_type_l1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if _, ok := err.Errors["feedback_comment"]; !ok {
		t.Error("expected feedback_comment error to be carried")
	}
}
