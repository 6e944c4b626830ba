package services

import (
	"fmt"
	"testing"

	"courseforge/backend/models"
	"courseforge/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// writes, standing in for the per-row locks used on Postgres.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, utils.Migrate(db))
	return db
}

// testOutline builds an outline with the given number of modules, each with a
// two-question quiz whose correct answers are [1, 0].
func testOutline(title string, moduleCount int) models.CourseOutline {
	outline := models.CourseOutline{
		CourseTitle:   title,
		Description:   "generated outline for " + title,
		TotalDuration: moduleCount * 2,
	}
	for i := 0; i < moduleCount; i++ {
		outline.Modules = append(outline.Modules, models.Module{
			Title:             fmt.Sprintf("Module %d", i+1),
			KeyPoints:         []string{"point one", "point two"},
			EstimatedDuration: 60,
			Assessment: models.Assessment{
				Questions: []models.QuizQuestion{
					{
						Question:      "First question",
						Options:       []string{"wrong", "right"},
						CorrectAnswer: 1,
					},
					{
						Question:      "Second question",
						Options:       []string{"right", "wrong"},
						CorrectAnswer: 0,
					},
				},
			},
		})
	}
	return outline
}

func publishCourse(t *testing.T, db *gorm.DB, instructorID uint, title string, moduleCount int) *models.Course {
	t.Helper()
	course, err := NewAuthoringService(db).Publish(instructorID, testOutline(title, moduleCount), "beginner", "philosophy")
	require.NoError(t, err)
	return course
}

func enrollLearner(t *testing.T, db *gorm.DB, userID, courseID uint) *models.Enrollment {
	t.Helper()
	enrollment, err := NewEnrollmentService(db).Enroll(userID, courseID)
	require.NoError(t, err)
	return enrollment
}
