package services

import (
	"errors"
	"fmt"
	"time"

	"courseforge/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonsPerModule is the fixed heuristic used to derive an enrollment's
// total lesson count from the course's module count.
const LessonsPerModule = 4

// EnrollmentService guarantees the single-enrollment invariant and keeps the
// course enrollment counter consistent with the enrollment rows.
type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// Enroll creates the (learner, course) ledger entry and increments the
// course counter in one transaction. The counter update is a SQL expression,
// so concurrent enrollments in the same course never lose an increment.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	var course models.Course
	if err := s.DB.Where("id = ? AND status = ?", courseID, models.StatusPublished).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.Enrollment
	if err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	enrollment := models.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		EnrolledAt:       now,
		LastAccessed:     now,
		Progress:         0,
		CompletedLessons: 0,
		TotalLessons:     course.ModuleCount * LessonsPerModule,
		DetailedProgress: datatypes.NewJSONType(models.NewDetailedProgress()),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", courseID).
			UpdateColumn("enrolled_students", gorm.Expr("enrolled_students + ?", 1)).Error
	})
	if err != nil {
		// The unique (user_id, course_id) index catches the race the
		// read-then-write check above cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return &enrollment, nil
}

// Unenroll removes the ledger entry and decrements the course counter,
// floored at zero.
func (s *EnrollmentService) Unenroll(userID, courseID uint) error {
	var enrollment models.Enrollment
	if err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", courseID).
			UpdateColumn("enrolled_students",
				gorm.Expr("CASE WHEN enrolled_students > 0 THEN enrolled_students - 1 ELSE 0 END")).Error
	})
}

// UpdateProgress overwrites the scalar progress fields and refreshes the
// last-accessed timestamp. DetailedProgress is not touched here.
func (s *EnrollmentService) UpdateProgress(enrollmentID, userID uint, progress, completedLessons int) (*models.Enrollment, error) {
	if progress < 0 || progress > 100 || completedLessons < 0 {
		return nil, fmt.Errorf("%w: progress must be 0-100", ErrInvalidRequest)
	}

	var enrollment models.Enrollment
	if err := s.DB.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrollment.Progress = progress
	enrollment.CompletedLessons = completedLessons
	enrollment.LastAccessed = time.Now().UTC()

	if err := s.DB.Save(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListEnrollments returns the learner's enrollments with their courses.
func (s *EnrollmentService) ListEnrollments(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.DB.Where("user_id = ?", userID).Preload("Course").Order("enrolled_at desc").Find(&enrollments).Error
	return enrollments, err
}

// GetEnrollment returns one of the learner's enrollments by id.
func (s *EnrollmentService) GetEnrollment(enrollmentID, userID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.DB.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}
