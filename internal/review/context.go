package review

// Context is the ambient shared review state, provided once per annotation
// view and consumed by any nested field wrapper. Consumers read it but do
// not mutate it; all mutation flows through the Callbacks.
type Context struct {
	Role             Role
	ReviewMode       bool
	PendingFeedbacks []Feedback
	Callbacks        Callbacks
}

// CanReview is the derived capability of the context's role.
func (c Context) CanReview() bool {
	return CanReview(c.Role)
}

// Options are explicit per-wrapper overrides. A nil (or nil-pointer) field
// inherits the ambient value; a set field wins unconditionally. The
// feedback list replaces the ambient one wholesale, it is never merged
// entry-by-entry.
type Options struct {
	Role              *Role
	ReviewMode        *bool
	PendingFeedbacks  []Feedback
	OnApprove         func(field string)
	OnReject          func(field, comment string)
	OnRequestRevision func(field, comment string)
	OnClearStatus     func(field string)
}

// Merge resolves precedence between explicit options and the ambient
// context, field by field. Explicit values always win; unset values fall
// through to the context.
func Merge(ambient Context, opts Options) Context {
	out := ambient
	if opts.Role != nil {
		out.Role = *opts.Role
	}
	if opts.ReviewMode != nil {
		out.ReviewMode = *opts.ReviewMode
	}
	if opts.PendingFeedbacks != nil {
		out.PendingFeedbacks = opts.PendingFeedbacks
	}
	if opts.OnApprove != nil {
		out.Callbacks.OnApprove = opts.OnApprove
	}
	if opts.OnReject != nil {
		out.Callbacks.OnReject = opts.OnReject
	}
	if opts.OnRequestRevision != nil {
		out.Callbacks.OnRequestRevision = opts.OnRequestRevision
	}
	if opts.OnClearStatus != nil {
		out.Callbacks.OnClearStatus = opts.OnClearStatus
	}
	return out
}
