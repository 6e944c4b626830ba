package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"courseforge/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

// ProgressService derives and persists fine-grained learning state against a
// single enrollment. All writes are read-modify-write merges against the
// stored DetailedProgress, serialized per enrollment row.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// lockEnrollment loads the enrollment under a row lock so concurrent merges
// for the same enrollment cannot clobber each other. SQLite (used in tests)
// has no FOR UPDATE; writes there are serialized by its single writer.
func lockEnrollment(tx *gorm.DB, enrollmentID, userID uint) (*models.Enrollment, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(forUpdate)
	}
	var enrollment models.Enrollment
	if err := q.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// MarkModuleComplete adds the module to the completed set and recomputes the
// aggregate progress percentage. Calling it again for the same module is a
// no-op. The scalar fields and the DetailedProgress snapshot are written in
// the same transaction so the two views never diverge.
func (s *ProgressService) MarkModuleComplete(enrollmentID, userID uint, moduleIndex int) (*models.Enrollment, error) {
	var result *models.Enrollment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID, userID)
		if err != nil {
			return err
		}

		var course models.Course
		if err := tx.First(&course, enrollment.CourseID).Error; err != nil {
			return err
		}
		moduleCount := len(course.Outline.Data().Modules)
		if moduleIndex < 0 || moduleIndex >= moduleCount {
			return fmt.Errorf("%w: module index %d out of range", ErrInvalidRequest, moduleIndex)
		}

		dp := enrollment.DetailedProgress.Data()
		if dp.HasCompleted(moduleIndex) {
			result = enrollment
			return nil
		}

		merged := dp.Merge(models.DetailedProgress{CompletedModules: []int{moduleIndex}})
		completed := len(merged.CompletedModules)

		enrollment.Progress = int(math.Round(float64(completed) / float64(moduleCount) * 100))
		enrollment.CompletedLessons = completed
		enrollment.LastAccessed = time.Now().UTC()
		enrollment.DetailedProgress = datatypes.NewJSONType(merged)

		if err := tx.Save(enrollment).Error; err != nil {
			return err
		}
		result = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitQuiz grades a single-attempt quiz for one module. Answers are the
// learner's chosen option indices in question order. Submitting records the
// result, the answers and the submitted flag, but never advances the
// completion set or the scalar progress; that takes an explicit
// MarkModuleComplete.
func (s *ProgressService) SubmitQuiz(enrollmentID, userID uint, moduleIndex int, answers []int) (*models.QuizResult, error) {
	var result models.QuizResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID, userID)
		if err != nil {
			return err
		}

		var course models.Course
		if err := tx.First(&course, enrollment.CourseID).Error; err != nil {
			return err
		}
		outline := course.Outline.Data()
		if moduleIndex < 0 || moduleIndex >= len(outline.Modules) {
			return fmt.Errorf("%w: module index %d out of range", ErrInvalidRequest, moduleIndex)
		}

		dp := enrollment.DetailedProgress.Data()
		if dp.HasSubmitted(moduleIndex) {
			return ErrAlreadySubmitted
		}

		questions := outline.Modules[moduleIndex].Assessment.Questions
		update := models.DetailedProgress{
			QuizResults: map[string]models.QuizResult{},
			Answers:     map[string]int{},
			Submitted:   map[string]bool{models.ModuleKey(moduleIndex): true},
		}

		correct := 0
		for qi, q := range questions {
			if qi >= len(answers) {
				break
			}
			update.Answers[models.AnswerKey(moduleIndex, qi)] = answers[qi]
			if answers[qi] == q.CorrectAnswer {
				correct++
			}
		}

		result = models.QuizResult{Correct: correct, Total: len(questions)}
		update.QuizResults[models.ModuleKey(moduleIndex)] = result

		enrollment.DetailedProgress = datatypes.NewJSONType(dp.Merge(update))
		enrollment.LastAccessed = time.Now().UTC()
		return tx.Save(enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MergeDetailedProgress merges a partial snapshot into the stored one. A
// write touching only one module leaves every other module's state intact.
func (s *ProgressService) MergeDetailedProgress(enrollmentID, userID uint, partial models.DetailedProgress) (*models.DetailedProgress, error) {
	var merged models.DetailedProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID, userID)
		if err != nil {
			return err
		}

		merged = enrollment.DetailedProgress.Data().Merge(partial)
		enrollment.DetailedProgress = datatypes.NewJSONType(merged)
		enrollment.LastAccessed = time.Now().UTC()
		return tx.Save(enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// ModuleProgress is the per-module view derived from DetailedProgress for
// the detailed-progress read endpoint.
type ModuleProgress struct {
	ModuleIndex int                `json:"module_index"`
	Title       string             `json:"title"`
	State       string             `json:"state"`
	QuizResult  *models.QuizResult `json:"quiz_result,omitempty"`
}

// GetDetailedProgress returns the stored snapshot together with the derived
// per-module states.
func (s *ProgressService) GetDetailedProgress(enrollmentID, userID uint) (*models.DetailedProgress, []ModuleProgress, error) {
	var enrollment models.Enrollment
	if err := s.DB.Where("id = ? AND user_id = ?", enrollmentID, userID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var course models.Course
	if err := s.DB.First(&course, enrollment.CourseID).Error; err != nil {
		return nil, nil, err
	}

	dp := enrollment.DetailedProgress.Data()
	outline := course.Outline.Data()

	modules := make([]ModuleProgress, len(outline.Modules))
	for i, m := range outline.Modules {
		mp := ModuleProgress{
			ModuleIndex: i,
			Title:       m.Title,
			State:       dp.ModuleState(i),
		}
		if r, ok := dp.QuizResults[models.ModuleKey(i)]; ok {
			mp.QuizResult = &r
		}
		modules[i] = mp
	}

	return &dp, modules, nil
}
