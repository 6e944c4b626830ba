package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Course is the persisted authoring entity. Title, description, duration and
// module count are denormalized from the embedded outline snapshot.
type Course struct {
	gorm.Model
	Title            string  `json:"title" gorm:"index;not null"`
	Description      string  `json:"description" gorm:"type:text"`
	Duration         int     `json:"duration"` // estimated hours
	Difficulty       string  `json:"difficulty"`
	Category         string  `json:"category"`
	InstructorID     uint    `json:"instructor_id" gorm:"index;not null"`
	Status           string  `json:"status" gorm:"index;default:draft"` // draft, published
	ModuleCount      int     `json:"module_count"`
	EnrolledStudents int     `json:"enrolled_students" gorm:"default:0"`
	Rating           float64 `json:"rating" gorm:"default:0"`

	Outline datatypes.JSONType[CourseOutline] `json:"outline"`
}

// CourseAuditLog records a destructive authoring action. A row is written in
// the same transaction that removes the course.
type CourseAuditLog struct {
	gorm.Model
	EventID          string    `json:"event_id" gorm:"uniqueIndex"`
	Action           string    `json:"action"`
	CourseID         uint      `json:"course_id" gorm:"index"`
	CourseTitle      string    `json:"course_title"`
	ActorID          uint      `json:"actor_id"`
	ActorRole        string    `json:"actor_role"`
	Forced           bool      `json:"forced"`
	EnrolledStudents int       `json:"enrolled_students"`
	OccurredAt       time.Time `json:"occurred_at"`
}
