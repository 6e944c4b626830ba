package services

import "courseforge/backend/models"

// Actor is the authenticated caller of an engine operation, as established by
// the transport layer from the token claims.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManageCourse is the single capability check for course mutations: the
// owning instructor or an admin.
func CanManageCourse(actor Actor, course *models.Course) bool {
	return course.InstructorID == actor.UserID || actor.IsAdmin()
}
