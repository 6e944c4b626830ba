package services

import (
	"errors"
	"fmt"
)

// Engine error taxonomy. Every failure here is detected before any write and
// scoped to the single requested operation; storage failures propagate as-is.
var (
	ErrInvalidRequest   = errors.New("missing required course fields")
	ErrForbidden        = errors.New("not allowed to manage this resource")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrNotEnrolled      = errors.New("not enrolled in this course")
	ErrAlreadySubmitted = errors.New("quiz already submitted for this module")
)

// DeletionBlockedError rejects deletion of a course with active enrollments.
// CanForce is true for admins, signaling that retrying with force=true will
// succeed.
type DeletionBlockedError struct {
	EnrolledStudents int
	CanForce         bool
}

func (e *DeletionBlockedError) Error() string {
	if e.CanForce {
		return fmt.Sprintf("course has %d enrolled students, deletion requires force", e.EnrolledStudents)
	}
	return fmt.Sprintf("course has %d enrolled students and cannot be deleted", e.EnrolledStudents)
}
