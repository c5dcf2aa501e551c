package review

// Session tracks the review state of one labeling item within one view.
// Ambient feedback (from the context's pending list) is read-only input;
// the session's own mutations are the locally recorded feedbacks and the
// resolved set. Derived field states are recomputed on every read, never
// stored.
type Session struct {
	ctx      Context
	local    map[string]Feedback
	resolved map[string]struct{}
}

// NewSession creates a session over an already merged context.
func NewSession(ctx Context) *Session {
	return &Session{
		ctx:      ctx,
		local:    make(map[string]Feedback),
		resolved: make(map[string]struct{}),
	}
}

// Context returns the merged context the session was built over.
func (s *Session) Context() Context {
	return s.ctx
}

// Approve marks the field as resolved (effective status: approved) and
// invokes the approve callback. No-op on the callback if it is not wired.
func (s *Session) Approve(field string) {
	delete(s.local, field)
	s.resolved[field] = struct{}{}
	if cb := s.ctx.Callbacks.OnApprove; cb != nil {
		cb(field)
	}
}

// Reject records a full rejection for the field and invokes the reject
// callback. A previous resolution of the field is discarded.
func (s *Session) Reject(field, comment string) {
	s.recordFeedback(field, FeedbackFull, comment)
	if cb := s.ctx.Callbacks.OnReject; cb != nil {
		cb(field, comment)
	}
}

// RequestRevision records a revision request for the field and invokes the
// revision callback.
func (s *Session) RequestRevision(field, comment string) {
	s.recordFeedback(field, FeedbackRevision, comment)
	if cb := s.ctx.Callbacks.OnRequestRevision; cb != nil {
		cb(field, comment)
	}
}

// ClearStatus clears the field's current status. A field whose status
// derives from ambient feedback cannot have that feedback removed (the
// context owns it), so clearing marks the field resolved instead; the
// derived status then reads approved. A field whose status was set locally
// simply returns to pending.
func (s *Session) ClearStatus(field string) {
	delete(s.local, field)
	if s.ambientFeedback(field) != nil {
		s.resolved[field] = struct{}{}
	} else {
		delete(s.resolved, field)
	}
	if cb := s.ctx.Callbacks.OnClearStatus; cb != nil {
		cb(field)
	}
}

// AddFeedback records a validated feedback entry locally, superseding any
// earlier entry for the same field.
func (s *Session) AddFeedback(fb Feedback) {
	s.recordFeedback(fb.Field, fb.Type, fb.Comment)
}

func (s *Session) recordFeedback(field string, t FeedbackType, comment string) {
	delete(s.resolved, field)
	s.local[field] = Feedback{Field: field, Type: t, Comment: comment}
}

// FieldReviewState returns the derived state of the field, or nil when no
// feedback is recorded (pending with nothing to show). Resolution takes
// priority over feedback; local feedback takes priority over ambient.
func (s *Session) FieldReviewState(field string) *FieldState {
	if _, ok := s.resolved[field]; ok {
		return &FieldState{Status: StatusApproved}
	}
	if fb, ok := s.local[field]; ok {
		return &FieldState{Status: fb.Type.FieldStatus(), Comment: fb.Comment}
	}
	if fb := s.ambientFeedback(field); fb != nil {
		return &FieldState{Status: fb.Type.FieldStatus(), Comment: fb.Comment}
	}
	return nil
}

// IsFieldPendingRevision reports whether the field carries an unresolved
// revision request.
func (s *Session) IsFieldPendingRevision(field string) bool {
	st := s.FieldReviewState(field)
	return st != nil && st.Status == StatusRevision
}

// ambientFeedback returns the first pending context feedback for the field.
// Only one active feedback per field is meaningful per review cycle.
func (s *Session) ambientFeedback(field string) *Feedback {
	for i := range s.ctx.PendingFeedbacks {
		if s.ctx.PendingFeedbacks[i].Field == field {
			return &s.ctx.PendingFeedbacks[i]
		}
	}
	return nil
}
