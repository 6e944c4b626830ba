package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidOutline is returned when a course outline fails structural validation.
var ErrInvalidOutline = errors.New("invalid course outline")

var validate = validator.New()

// CourseOutline is the authoring-time shape of a course. It is stored as an
// opaque JSON column on Course, so field names here are the persisted schema
// and must stay stable.
type CourseOutline struct {
	CourseTitle      string   `json:"course_title" validate:"required"`
	Description      string   `json:"description"`
	TotalDuration    int      `json:"total_duration"` // estimated hours
	Modules          []Module `json:"modules" validate:"dive"`
	Prerequisites    []string `json:"prerequisites"`
	LearningOutcomes []string `json:"learning_outcomes"`
}

type Module struct {
	Title              string      `json:"title"`
	KeyPoints          []string    `json:"key_points"`
	LearningObjectives []string    `json:"learning_objectives"`
	EstimatedDuration  int         `json:"estimated_duration" validate:"gte=0"` // minutes
	Resources          ResourceSet `json:"resources"`
	Assessment         Assessment  `json:"assessment"`
}

// ResourceSet holds three independent ordered lists. Each list preserves
// insertion order; there is no ordering across types.
type ResourceSet struct {
	Videos        []VideoResource    `json:"videos"`
	Documents     []DocumentResource `json:"documents"`
	ExternalLinks []ExternalLink     `json:"external_links"`
}

type VideoResource struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	URL             string `json:"url,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type DocumentResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"` // pdf, ppt, doc
}

type ExternalLink struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type Assessment struct {
	Questions []QuizQuestion `json:"questions" validate:"dive"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options" validate:"min=2"`
	CorrectAnswer int      `json:"correct_answer"` // zero-based index into Options
	Explanation   string   `json:"explanation"`
}

// Validate checks the outline invariants: non-empty title, non-negative module
// durations, at least two options per question and an in-range correct-answer
// index. Missing resource lists are fine; drafts are often partially curated.
func (o *CourseOutline) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutline, err)
	}
	for mi, m := range o.Modules {
		for qi, q := range m.Assessment.Questions {
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				return fmt.Errorf("%w: module %d question %d: correct answer index %d out of range",
					ErrInvalidOutline, mi, qi, q.CorrectAnswer)
			}
		}
	}
	return nil
}
