package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment is one row per (learner, course) pair. The composite unique index
// backs the single-enrollment invariant at the store level.
type Enrollment struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID         uint      `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	EnrolledAt       time.Time `json:"enrolled_at"`
	Progress         int       `json:"progress" gorm:"default:0"` // 0-100
	CompletedLessons int       `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int       `json:"total_lessons" gorm:"default:0"`
	LastAccessed     time.Time `json:"last_accessed"`

	DetailedProgress datatypes.JSONType[DetailedProgress] `json:"detailed_progress"`

	Course Course `json:"course,omitempty"`
}
