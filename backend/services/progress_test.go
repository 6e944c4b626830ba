package services

import (
	"testing"

	"courseforge/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkModuleComplete(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	course := publishCourse(t, db, 1, "Progressive", 3)
	enrollment := enrollLearner(t, db, 10, course.ID)

	updated, err := svc.MarkModuleComplete(enrollment.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 33, updated.Progress) // round(1/3*100)
	assert.Equal(t, 1, updated.CompletedLessons)
	assert.Equal(t, []int{0}, updated.DetailedProgress.Data().CompletedModules)

	t.Run("is idempotent", func(t *testing.T) {
		again, err := svc.MarkModuleComplete(enrollment.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 33, again.Progress)
		assert.Equal(t, 1, again.CompletedLessons)
		assert.Equal(t, []int{0}, again.DetailedProgress.Data().CompletedModules)
	})

	t.Run("scalars and snapshot advance together", func(t *testing.T) {
		second, err := svc.MarkModuleComplete(enrollment.ID, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, 67, second.Progress) // round(2/3*100)
		assert.Equal(t, 2, second.CompletedLessons)
		assert.Equal(t, []int{0, 2}, second.DetailedProgress.Data().CompletedModules)

		// The stored row agrees with the returned value.
		var stored models.Enrollment
		require.NoError(t, db.First(&stored, enrollment.ID).Error)
		assert.Equal(t, 67, stored.Progress)
		assert.Equal(t, []int{0, 2}, stored.DetailedProgress.Data().CompletedModules)
	})

	t.Run("out of range module index is rejected", func(t *testing.T) {
		_, err := svc.MarkModuleComplete(enrollment.ID, 10, 3)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		_, err = svc.MarkModuleComplete(enrollment.ID, 10, -1)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown enrollment is not found", func(t *testing.T) {
		_, err := svc.MarkModuleComplete(9999, 10, 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSubmitQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	// testOutline quizzes have correct answers [1, 0].
	course := publishCourse(t, db, 1, "Quizzed", 2)
	enrollment := enrollLearner(t, db, 10, course.ID)

	t.Run("all correct", func(t *testing.T) {
		result, err := svc.SubmitQuiz(enrollment.ID, 10, 0, []int{1, 0})
		require.NoError(t, err)
		assert.Equal(t, models.QuizResult{Correct: 2, Total: 2}, *result)
	})

	t.Run("resubmission is rejected", func(t *testing.T) {
		_, err := svc.SubmitQuiz(enrollment.ID, 10, 0, []int{1, 0})
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("partially correct", func(t *testing.T) {
		result, err := svc.SubmitQuiz(enrollment.ID, 10, 1, []int{0, 0})
		require.NoError(t, err)
		assert.Equal(t, models.QuizResult{Correct: 1, Total: 2}, *result)
	})

	t.Run("submission records answers and flags without advancing progress", func(t *testing.T) {
		var stored models.Enrollment
		require.NoError(t, db.First(&stored, enrollment.ID).Error)

		dp := stored.DetailedProgress.Data()
		assert.Equal(t, models.QuizResult{Correct: 2, Total: 2}, dp.QuizResults["0"])
		assert.Equal(t, models.QuizResult{Correct: 1, Total: 2}, dp.QuizResults["1"])
		assert.Equal(t, 1, dp.Answers["0_0"])
		assert.Equal(t, 0, dp.Answers["0_1"])
		assert.True(t, dp.Submitted["0"])
		assert.True(t, dp.Submitted["1"])

		// Quizzes alone never touch completion or the scalar progress.
		assert.Empty(t, dp.CompletedModules)
		assert.Equal(t, 0, stored.Progress)
		assert.Equal(t, 0, stored.CompletedLessons)
	})

	t.Run("module state reflects the submission", func(t *testing.T) {
		dp, modules, err := svc.GetDetailedProgress(enrollment.ID, 10)
		require.NoError(t, err)
		require.Len(t, modules, 2)
		assert.Equal(t, models.ModuleQuizSubmitted, modules[0].State)
		require.NotNil(t, modules[0].QuizResult)
		assert.Equal(t, 2, modules[0].QuizResult.Correct)
		assert.True(t, dp.HasSubmitted(1))
	})

	t.Run("out of range module index is rejected", func(t *testing.T) {
		_, err := svc.SubmitQuiz(enrollment.ID, 10, 5, []int{0})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestMergeDetailedProgressService(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	course := publishCourse(t, db, 1, "Merging", 3)
	enrollment := enrollLearner(t, db, 10, course.ID)

	_, err := svc.MergeDetailedProgress(enrollment.ID, 10, models.DetailedProgress{
		CompletedModules: []int{0},
	})
	require.NoError(t, err)

	merged, err := svc.MergeDetailedProgress(enrollment.ID, 10, models.DetailedProgress{
		QuizResults: map[string]models.QuizResult{"1": {Correct: 2, Total: 3}},
	})
	require.NoError(t, err)

	// The second write must not erase the first.
	assert.Equal(t, []int{0}, merged.CompletedModules)
	assert.Equal(t, models.QuizResult{Correct: 2, Total: 3}, merged.QuizResults["1"])

	var stored models.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, *merged, stored.DetailedProgress.Data())
}

func TestCompletionAfterQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	course := publishCourse(t, db, 1, "Full Flow", 2)
	enrollment := enrollLearner(t, db, 10, course.ID)

	_, err := svc.SubmitQuiz(enrollment.ID, 10, 0, []int{1, 0})
	require.NoError(t, err)

	updated, err := svc.MarkModuleComplete(enrollment.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Progress)

	dp := updated.DetailedProgress.Data()
	assert.Equal(t, models.ModuleCompleted, dp.ModuleState(0))
	// The quiz record survives completion.
	assert.Equal(t, models.QuizResult{Correct: 2, Total: 2}, dp.QuizResults["0"])
}
