package routes

import (
	"courseforge/backend/config"
	"courseforge/backend/controllers"
	"courseforge/backend/generator"
	"courseforge/backend/middleware"
	"courseforge/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, gen generator.OutlineGenerator, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorOnly := middleware.RequireRole(models.RoleInstructor, models.RoleAdmin)

	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)

	// Course catalog and authoring
	coursesController := controllers.NewCoursesController(db, gen, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.ListPublishedCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Put("/:id", instructorOnly, coursesController.UpdateCourse)
	courses.Delete("/:id", instructorOnly, coursesController.DeleteCourse)

	instructor := app.Group("/api/instructor", authMiddleware, instructorOnly)
	instructor.Post("/outline", coursesController.GenerateOutline)
	instructor.Get("/courses", coursesController.ListMyCourses)
	instructor.Post("/courses/draft", coursesController.SaveDraft)
	instructor.Post("/courses/publish", coursesController.PublishCourse)

	// Enrollment ledger
	enrollmentController := controllers.NewEnrollmentController(db, cfg)
	courses.Post("/:id/enroll", enrollmentController.Enroll)
	courses.Delete("/:id/enroll", enrollmentController.Unenroll)

	enrollments := app.Group("/api/enrollments", authMiddleware)
	enrollments.Get("/", enrollmentController.ListEnrollments)
	enrollments.Get("/:id", enrollmentController.GetEnrollment)
	enrollments.Put("/:id/progress", enrollmentController.UpdateProgress)

	// Progress tracker
	progressController := controllers.NewProgressController(db, cfg)
	enrollments.Get("/:id/progress/detailed", progressController.GetDetailedProgress)
	enrollments.Patch("/:id/progress/detailed", progressController.MergeDetailedProgress)
	enrollments.Post("/:id/modules/:moduleIndex/complete", progressController.MarkModuleComplete)
	enrollments.Post("/:id/modules/:moduleIndex/quiz", progressController.SubmitQuiz)
}
