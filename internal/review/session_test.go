package review

import "testing"

func TestCanReview(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleAdmin, true},
		{RoleManager, true},
		{RoleResearcher, true},
		{RoleAnnotator, false},
		{Role("guest"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		if got := CanReview(tt.role); got != tt.expected {
			t.Errorf("CanReview(%q) = %v, expected %v", tt.role, got, tt.expected)
		}
	}
}

func TestCanReview_IndependentOfReviewMode(t *testing.T) {
	// CanReview is a function of role alone; the mode flag only gates
	// control visibility.
	if !CanReview(RoleManager) {
		t.Error("manager should be able to review regardless of mode")
	}
	if ShowReviewControls(RoleManager, false) {
		t.Error("controls should not render outside review mode")
	}
	if !ShowReviewControls(RoleManager, true) {
		t.Error("controls should render for manager in review mode")
	}
	if ShowReviewControls(RoleAnnotator, true) {
		t.Error("annotator must never see review controls")
	}
}

func TestMerge_PropWinsOverContext(t *testing.T) {
	ambient := Context{
		Role:       RoleAnnotator,
		ReviewMode: false,
		PendingFeedbacks: []Feedback{
			{Field: "severity", Type: FeedbackPartial, Comment: "too low"},
		},
	}

	role := RoleManager
	mode := true
	merged := Merge(ambient, Options{Role: &role, ReviewMode: &mode})

	if merged.Role != RoleManager {
		t.Errorf("Role = %q, expected %q (prop must win)", merged.Role, RoleManager)
	}
	if !merged.ReviewMode {
		t.Error("ReviewMode should be overridden to true")
	}
	// Feedbacks were not overridden — inherited from context.
	if len(merged.PendingFeedbacks) != 1 || merged.PendingFeedbacks[0].Field != "severity" {
		t.Errorf("PendingFeedbacks should be inherited, got %v", merged.PendingFeedbacks)
	}
}

func TestMerge_FeedbacksReplaceNotMerge(t *testing.T) {
	ambient := Context{
		PendingFeedbacks: []Feedback{
			{Field: "severity", Type: FeedbackFull},
			{Field: "justification", Type: FeedbackRevision},
		},
	}

	merged := Merge(ambient, Options{
		PendingFeedbacks: []Feedback{{Field: "threat_type_l1", Type: FeedbackPartial}},
	})

	if len(merged.PendingFeedbacks) != 1 {
		t.Fatalf("expected prop feedbacks to replace context ones, got %d entries", len(merged.PendingFeedbacks))
	}
	if merged.PendingFeedbacks[0].Field != "threat_type_l1" {
		t.Errorf("unexpected feedback %v", merged.PendingFeedbacks[0])
	}
}

func TestMerge_CallbackOverride(t *testing.T) {
	var got string
	ambient := Context{
		Callbacks: Callbacks{OnApprove: func(f string) { got = "context:" + f }},
	}
	merged := Merge(ambient, Options{OnApprove: func(f string) { got = "prop:" + f }})

	merged.Callbacks.OnApprove("severity")
	if got != "prop:severity" {
		t.Errorf("prop callback should win, got %q", got)
	}
}

func TestFieldReviewState_Derivation(t *testing.T) {
	tests := []struct {
		feedbackType FeedbackType
		expected     FieldStatus
	}{
		{FeedbackFull, StatusRejected},
		{FeedbackPartial, StatusRejected},
		{FeedbackRevision, StatusRevision},
	}

	for _, tt := range tests {
		s := NewSession(Context{
			PendingFeedbacks: []Feedback{{Field: "severity", Type: tt.feedbackType, Comment: "see notes"}},
		})
		st := s.FieldReviewState("severity")
		if st == nil {
			t.Fatalf("feedback type %q: expected a state, got nil", tt.feedbackType)
		}
		if st.Status != tt.expected {
			t.Errorf("feedback type %q: status = %q, expected %q", tt.feedbackType, st.Status, tt.expected)
		}
		if st.Comment != "see notes" {
			t.Errorf("feedback type %q: comment = %q", tt.feedbackType, st.Comment)
		}
	}
}

func TestFieldReviewState_AbsentFeedback(t *testing.T) {
	s := NewSession(Context{})
	if st := s.FieldReviewState("severity"); st != nil {
		t.Errorf("expected nil state for field with no feedback, got %+v", st)
	}
}

func TestFieldReviewState_ResolvedOverridesFeedback(t *testing.T) {
	s := NewSession(Context{
		PendingFeedbacks: []Feedback{{Field: "severity", Type: FeedbackFull, Comment: "wrong"}},
	})
	s.Approve("severity")

	st := s.FieldReviewState("severity")
	if st == nil || st.Status != StatusApproved {
		t.Fatalf("resolved field should read approved, got %+v", st)
	}
}

func TestSession_RejectThenClear(t *testing.T) {
	s := NewSession(Context{})
	s.Reject("justification", "rewrite this")

	st := s.FieldReviewState("justification")
	if st == nil || st.Status != StatusRejected {
		t.Fatalf("expected rejected, got %+v", st)
	}

	// No ambient feedback for the field, so clearing returns to pending.
	s.ClearStatus("justification")
	if st := s.FieldReviewState("justification"); st != nil {
		t.Errorf("expected pending (nil) after clear, got %+v", st)
	}
}

func TestSession_IsFieldPendingRevision(t *testing.T) {
	s := NewSession(Context{
		PendingFeedbacks: []Feedback{{Field: "severity", Type: FeedbackRevision}},
	})
	if !s.IsFieldPendingRevision("severity") {
		t.Error("field with revision feedback should be pending revision")
	}

	s.Approve("severity")
	if s.IsFieldPendingRevision("severity") {
		t.Error("resolved field should no longer be pending revision")
	}

	if s.IsFieldPendingRevision("justification") {
		t.Error("field without feedback should not be pending revision")
	}
}

func TestSession_MissingCallbacksAreNoOps(t *testing.T) {
	s := NewSession(Context{})
	// Must not panic with no callbacks wired.
	s.Approve("a")
	s.Reject("b", "")
	s.RequestRevision("c", "")
	s.ClearStatus("d")
}

func TestSession_CallbacksInvoked(t *testing.T) {
	var calls []string
	s := NewSession(Context{Callbacks: Callbacks{
		OnApprove:         func(f string) { calls = append(calls, "approve:"+f) },
		OnReject:          func(f, c string) { calls = append(calls, "reject:"+f+":"+c) },
		OnRequestRevision: func(f, c string) { calls = append(calls, "revision:"+f+":"+c) },
		OnClearStatus:     func(f string) { calls = append(calls, "clear:"+f) },
	}})

	s.Approve("a")
	s.Reject("b", "bad")
	s.RequestRevision("c", "redo")
	s.ClearStatus("b")

	expected := []string{"approve:a", "reject:b:bad", "revision:c:redo", "clear:b"}
	if len(calls) != len(expected) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("call %d = %q, expected %q", i, calls[i], expected[i])
		}
	}
}

func TestValidateFeedbackInput_CommentBoundary(t *testing.T) {
	// Exactly 9 trimmed characters fails, exactly 10 passes.
	nine := FeedbackInput{Type: "partial", Comment: "123456789"}
	if errs := ValidateFeedbackInput(nine); errs == nil {
		t.Error("9-character comment should fail validation")
	}

	ten := FeedbackInput{Type: "partial", Comment: "1234567890"}
	if errs := ValidateFeedbackInput(ten); errs != nil {
		t.Errorf("10-character comment should pass, got %v", errs)
	}

	// Trimming applies before the length check.
	padded := FeedbackInput{Type: "full", Comment: "  123456789  "}
	if errs := ValidateFeedbackInput(padded); errs == nil {
		t.Error("padded 9-character comment should fail validation")
	}
}

func TestValidateFeedbackInput_TypeRequired(t *testing.T) {
	errs := ValidateFeedbackInput(FeedbackInput{Type: "", Comment: "long enough comment"})
	if errs == nil || errs["feedback_type"] == "" {
		t.Errorf("missing type should produce a feedback_type error, got %v", errs)
	}

	errs = ValidateFeedbackInput(FeedbackInput{Type: "disagree", Comment: "long enough comment"})
	if errs == nil {
		t.Error("unknown type should fail validation")
	}
}

func TestReviewFlow_EndToEnd(t *testing.T) {
	// Manager reviewing a submitted item: ambient context carries one
	// pending partial rejection on threat_type_l1.
	ctx := Context{
		Role:       RoleManager,
		ReviewMode: true,
		PendingFeedbacks: []Feedback{
			{Field: "threat_type_l1", Type: FeedbackPartial, Comment: "needs refinement..."},
		},
	}
	if !ctx.CanReview() {
		t.Fatal("manager context should be able to review")
	}

	s := NewSession(ctx)
	st := s.FieldReviewState("threat_type_l1")
	if st == nil || st.Status != StatusRejected || st.Comment != "needs refinement..." {
		t.Fatalf("expected rejected with comment, got %+v", st)
	}

	// The annotator addresses the feedback; the resolved set wins over the
	// ambient entry, which the session cannot remove.
	s.ClearStatus("threat_type_l1")
	st = s.FieldReviewState("threat_type_l1")
	if st == nil || st.Status != StatusApproved {
		t.Fatalf("expected approved after clearing, got %+v", st)
	}
}
