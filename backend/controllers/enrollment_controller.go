package controllers

import (
	"strconv"

	"courseforge/backend/config"
	"courseforge/backend/services"
	"courseforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentController struct {
	Enrollments *services.EnrollmentService
	Cfg         *config.Config
}

func NewEnrollmentController(db *gorm.DB, cfg *config.Config) *EnrollmentController {
	return &EnrollmentController{
		Enrollments: services.NewEnrollmentService(db),
		Cfg:         cfg,
	}
}

func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	enrollment, err := ec.Enrollments.Enroll(userID, uint(courseID))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Created(c, fiber.Map{"enrollment": enrollment})
}

func (ec *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := ec.Enrollments.Unenroll(userID, uint(courseID)); err != nil {
		return serviceError(c, err)
	}

	return utils.NoContent(c)
}

func (ec *EnrollmentController) ListEnrollments(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollments, err := ec.Enrollments.ListEnrollments(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"enrollments": enrollments})
}

func (ec *EnrollmentController) GetEnrollment(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	enrollment, err := ec.Enrollments.GetEnrollment(uint(enrollmentID), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"enrollment": enrollment})
}

func (ec *EnrollmentController) UpdateProgress(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	var input struct {
		Progress         int `json:"progress"`
		CompletedLessons int `json:"completed_lessons"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	enrollment, err := ec.Enrollments.UpdateProgress(uint(enrollmentID), userID, input.Progress, input.CompletedLessons)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"enrollment": enrollment})
}
