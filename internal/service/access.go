package service

import "educonnect_backend/internal/model"

// Authorization predicates. Caller identity is threaded explicitly as
// (id, role) into every mutating operation; nothing below the controller
// layer reads ambient request state. The predicates are stateless and
// re-evaluated on every call.

// CanAuthorContent reports whether the role may create tests, assignments,
// polls, posts, or resources.
func CanAuthorContent(role model.UserRole) bool {
	switch role {
	case model.Teacher, model.Institution, model.Admin:
		return true
	}
	return false
}

// CanSubmit reports whether the role may submit attempts or ballots. Every
// authenticated role is allowed; restricting the audience to students is a
// display concern, not a server gate.
func CanSubmit(role model.UserRole) bool {
	switch role {
	case model.Student, model.Teacher, model.Institution, model.Admin:
		return true
	}
	return false
}

// IsOwner reports whether the caller authored the resource.
func IsOwner(callerID, authorID uint) bool {
	return callerID == authorID
}
