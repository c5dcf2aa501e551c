package review

// reviewerRoles are the roles allowed to review. Annotators can never
// review, regardless of any UI mode flag.
var reviewerRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleManager:    true,
	RoleResearcher: true,
}

// CanReview reports whether the given role may perform review actions.
// It is a function of role alone and does not depend on review mode.
func CanReview(role Role) bool {
	return reviewerRoles[role]
}

// ShowReviewControls reports whether review controls should render: the
// role must be allowed to review AND the view must be in review mode.
func ShowReviewControls(role Role, reviewMode bool) bool {
	return CanReview(role) && reviewMode
}
