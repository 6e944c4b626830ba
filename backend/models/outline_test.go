package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOutline() CourseOutline {
	return CourseOutline{
		CourseTitle:   "Introduction to Philosophy",
		Description:   "A first course in philosophical thinking",
		TotalDuration: 12,
		Modules: []Module{
			{
				Title:             "The Socratic Method",
				KeyPoints:         []string{"Elenchus", "Aporia"},
				EstimatedDuration: 90,
				Assessment: Assessment{
					Questions: []QuizQuestion{
						{
							Question:      "Who taught Plato?",
							Options:       []string{"Aristotle", "Socrates", "Zeno"},
							CorrectAnswer: 1,
							Explanation:   "Plato was a student of Socrates.",
						},
					},
				},
			},
		},
		Prerequisites:    []string{"None"},
		LearningOutcomes: []string{"Question everything"},
	}
}

func TestOutlineValidate(t *testing.T) {
	t.Run("valid outline passes", func(t *testing.T) {
		o := validOutline()
		assert.NoError(t, o.Validate())
	})

	t.Run("empty title fails", func(t *testing.T) {
		o := validOutline()
		o.CourseTitle = ""
		assert.ErrorIs(t, o.Validate(), ErrInvalidOutline)
	})

	t.Run("negative module duration fails", func(t *testing.T) {
		o := validOutline()
		o.Modules[0].EstimatedDuration = -10
		assert.ErrorIs(t, o.Validate(), ErrInvalidOutline)
	})

	t.Run("correct answer index out of range fails", func(t *testing.T) {
		o := validOutline()
		o.Modules[0].Assessment.Questions[0].CorrectAnswer = 3
		assert.ErrorIs(t, o.Validate(), ErrInvalidOutline)

		o.Modules[0].Assessment.Questions[0].CorrectAnswer = -1
		assert.ErrorIs(t, o.Validate(), ErrInvalidOutline)
	})

	t.Run("fewer than two options fails", func(t *testing.T) {
		o := validOutline()
		o.Modules[0].Assessment.Questions[0].Options = []string{"only one"}
		o.Modules[0].Assessment.Questions[0].CorrectAnswer = 0
		assert.ErrorIs(t, o.Validate(), ErrInvalidOutline)
	})

	t.Run("missing resource lists are tolerated", func(t *testing.T) {
		o := validOutline()
		o.Modules[0].Resources = ResourceSet{}
		assert.NoError(t, o.Validate())
	})

	t.Run("no modules is a valid draft", func(t *testing.T) {
		o := validOutline()
		o.Modules = nil
		assert.NoError(t, o.Validate())
	})
}
