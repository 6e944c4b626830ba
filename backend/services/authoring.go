package services

import (
	"errors"
	"fmt"
	"time"

	"courseforge/backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthoringService moves course outlines through the draft and published
// states without accumulating duplicate rows per (instructor, title).
type AuthoringService struct {
	DB *gorm.DB
}

func NewAuthoringService(db *gorm.DB) *AuthoringService {
	return &AuthoringService{DB: db}
}

// CourseUpdate is the patch accepted by Update. All fields listed here are
// required; Difficulty and Category are optional.
type CourseUpdate struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Modules     []models.Module `json:"modules"`
	Status      string          `json:"status"`
	Difficulty  string          `json:"difficulty"`
	Category    string          `json:"category"`
}

// CreateOrUpdateDraft saves an outline as a draft. When the instructor
// already has a draft whose title exactly matches the outline's title, that
// row is updated in place instead of inserting a duplicate; matching is
// case-sensitive and the oldest match wins.
//
// The lookup-then-write pair is not atomic: two concurrent saves of the same
// title can still produce two drafts. See DESIGN.md.
func (s *AuthoringService) CreateOrUpdateDraft(instructorID uint, outline models.CourseOutline, difficulty, category string) (*models.Course, error) {
	return s.saveOutline(instructorID, outline, difficulty, category, models.StatusDraft)
}

// Publish saves an outline as published. It reuses any of the instructor's
// existing courses with the same title, draft or already published, so
// re-publishing is idempotent and only replaces the outline.
func (s *AuthoringService) Publish(instructorID uint, outline models.CourseOutline, difficulty, category string) (*models.Course, error) {
	if len(outline.Modules) == 0 {
		return nil, fmt.Errorf("%w: a published course requires at least one module", models.ErrInvalidOutline)
	}
	return s.saveOutline(instructorID, outline, difficulty, category, models.StatusPublished)
}

func (s *AuthoringService) saveOutline(instructorID uint, outline models.CourseOutline, difficulty, category, status string) (*models.Course, error) {
	if err := outline.Validate(); err != nil {
		return nil, err
	}

	query := s.DB.Where("instructor_id = ? AND title = ?", instructorID, outline.CourseTitle)
	if status == models.StatusDraft {
		// Draft saves only ever reuse draft rows; publish reuses either.
		query = query.Where("status = ?", models.StatusDraft)
	}

	var course models.Course
	err := query.Order("id asc").First(&course).Error
	switch {
	case err == nil:
		// Reuse the existing row: replace the outline and recompute the
		// denormalized fields.
	case errors.Is(err, gorm.ErrRecordNotFound):
		course = models.Course{InstructorID: instructorID}
	default:
		return nil, err
	}

	course.Title = outline.CourseTitle
	course.Description = outline.Description
	course.Duration = outline.TotalDuration
	course.ModuleCount = len(outline.Modules)
	course.Status = status
	course.Outline = datatypes.NewJSONType(outline)
	if difficulty != "" {
		course.Difficulty = difficulty
	}
	if category != "" {
		course.Category = category
	}

	if err := s.DB.Save(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// Update applies a full patch to an existing course. The patch must carry a
// title, description, module list and explicit status.
func (s *AuthoringService) Update(courseID uint, actor Actor, patch CourseUpdate) (*models.Course, error) {
	if patch.Title == "" || patch.Description == "" || patch.Modules == nil {
		return nil, ErrInvalidRequest
	}
	if patch.Status != models.StatusDraft && patch.Status != models.StatusPublished {
		return nil, fmt.Errorf("%w: status must be draft or published", ErrInvalidRequest)
	}
	if patch.Status == models.StatusPublished && len(patch.Modules) == 0 {
		return nil, fmt.Errorf("%w: a published course requires at least one module", models.ErrInvalidOutline)
	}

	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanManageCourse(actor, &course) {
		return nil, ErrForbidden
	}

	outline := course.Outline.Data()
	outline.CourseTitle = patch.Title
	outline.Description = patch.Description
	outline.Modules = patch.Modules
	if err := outline.Validate(); err != nil {
		return nil, err
	}

	course.Title = patch.Title
	course.Description = patch.Description
	course.Status = patch.Status
	course.ModuleCount = len(patch.Modules)
	course.Duration = outline.TotalDuration
	course.Outline = datatypes.NewJSONType(outline)
	if patch.Difficulty != "" {
		course.Difficulty = patch.Difficulty
	}
	if patch.Category != "" {
		course.Category = patch.Category
	}

	if err := s.DB.Save(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// Delete removes a course, guarded by its enrollment count. A course with
// enrolled students is only deletable by an admin passing force=true; the
// returned DeletionBlockedError carries the count and whether force would
// succeed. On success the audit row, the course's enrollments and the course
// itself are written/removed in one transaction.
func (s *AuthoringService) Delete(courseID uint, actor Actor, force bool) (*models.CourseAuditLog, error) {
	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanManageCourse(actor, &course) {
		return nil, ErrForbidden
	}

	if course.EnrolledStudents > 0 {
		if !actor.IsAdmin() {
			return nil, &DeletionBlockedError{EnrolledStudents: course.EnrolledStudents}
		}
		if !force {
			return nil, &DeletionBlockedError{EnrolledStudents: course.EnrolledStudents, CanForce: true}
		}
	}

	audit := models.CourseAuditLog{
		EventID:          uuid.NewString(),
		Action:           "course_deleted",
		CourseID:         course.ID,
		CourseTitle:      course.Title,
		ActorID:          actor.UserID,
		ActorRole:        actor.Role,
		Forced:           force,
		EnrolledStudents: course.EnrolledStudents,
		OccurredAt:       time.Now().UTC(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return &audit, nil
}

// GetCourse returns one course by id.
func (s *AuthoringService) GetCourse(courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// ListInstructorCourses returns every course owned by the instructor, drafts
// included.
func (s *AuthoringService) ListInstructorCourses(instructorID uint) ([]models.Course, error) {
	var courses []models.Course
	err := s.DB.Where("instructor_id = ?", instructorID).Order("updated_at desc").Find(&courses).Error
	return courses, err
}

// ListPublishedCourses returns the learner-facing catalog.
func (s *AuthoringService) ListPublishedCourses() ([]models.Course, error) {
	var courses []models.Course
	err := s.DB.Where("status = ?", models.StatusPublished).Order("created_at desc").Find(&courses).Error
	return courses, err
}
