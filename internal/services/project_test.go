package services

import (
	"testing"

	"github.com/labelforge/labelforge/backend/internal/models"
)

func TestNormalizeFieldList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"threat_type_l1", "threat_type_l1"},
		{" threat_type_l1 , threat_type_l2 ", "threat_type_l1,threat_type_l2"},
		{"a,,b,  ,c", "a,b,c"},
	}

	for _, tt := range tests {
		if got := normalizeFieldList(tt.input); got != tt.expected {
			t.Errorf("normalizeFieldList(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsFieldReviewable(t *testing.T) {
	svc := &ProjectService{}

	restricted := &models.Project{ReviewableFields: "threat_type_l1,threat_type_l2"}
	if !svc.IsFieldReviewable(restricted, "threat_type_l1") {
		t.Error("listed field should be reviewable")
	}
	if svc.IsFieldReviewable(restricted, "notes") {
		t.Error("unlisted field should not be reviewable")
	}

	open := &models.Project{ReviewableFields: ""}
	if !svc.IsFieldReviewable(open, "anything") {
		t.Error("empty reviewable list should accept every field")
	}
}

func TestUpdateProjectRequest_PartialUpdate(t *testing.T) {
	desc := "updated description"
	fields := "threat_type_l1,threat_type_l2"

	req := &UpdateProjectRequest{
		Description:      &desc,
		ReviewableFields: &fields,
	}

	if req.Name != "" {
		t.Error("Name should be empty (not set)")
	}
	if req.Description == nil || *req.Description != "updated description" {
		t.Error("Description should be set")
	}
	if req.ReviewableFields == nil || *req.ReviewableFields != "threat_type_l1,threat_type_l2" {
		t.Error("ReviewableFields should be set")
	}
	if req.Guidelines != nil {
		t.Error("Guidelines should be nil (not set)")
	}
}

func TestReviewableFields(t *testing.T) {
	svc := &ProjectService{}
	project := &models.Project{ReviewableFields: "a,b,c"}

	fields := svc.ReviewableFields(project)
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0] != "a" || fields[1] != "b" || fields[2] != "c" {
		t.Errorf("unexpected fields: %v", fields)
	}
}
