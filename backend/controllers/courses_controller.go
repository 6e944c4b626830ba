package controllers

import (
	"strconv"

	"courseforge/backend/config"
	"courseforge/backend/generator"
	"courseforge/backend/models"
	"courseforge/backend/services"
	"courseforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	Authoring *services.AuthoringService
	Generator generator.OutlineGenerator
	Cfg       *config.Config
}

func NewCoursesController(db *gorm.DB, gen generator.OutlineGenerator, cfg *config.Config) *CoursesController {
	return &CoursesController{
		Authoring: services.NewAuthoringService(db),
		Generator: gen,
		Cfg:       cfg,
	}
}

// outlineInput is the body for draft and publish saves.
type outlineInput struct {
	Outline    models.CourseOutline `json:"outline"`
	Difficulty string               `json:"difficulty"`
	Category   string               `json:"category"`
}

func (cc *CoursesController) GenerateOutline(c *fiber.Ctx) error {
	var params generator.Params
	if err := c.BodyParser(&params); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if params.Topic == "" {
		return utils.BadRequest(c, "Topic is required")
	}

	outline, err := cc.Generator.GenerateOutline(c.Context(), params)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate outline")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"outline": outline})
}

func (cc *CoursesController) SaveDraft(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	var input outlineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.Authoring.CreateOrUpdateDraft(userID, input.Outline, input.Difficulty, input.Category)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (cc *CoursesController) PublishCourse(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	var input outlineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.Authoring.Publish(userID, input.Outline, input.Difficulty, input.Category)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var patch services.CourseUpdate
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.Authoring.Update(uint(courseID), actorFromLocals(c), patch)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	force := c.Query("force") == "true"

	audit, err := cc.Authoring.Delete(uint(courseID), actorFromLocals(c), force)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"deleted": true,
		"audit":   audit,
	})
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	course, err := cc.Authoring.GetCourse(uint(courseID))
	if err != nil {
		return serviceError(c, err)
	}

	// Drafts are only visible to whoever can manage them.
	if course.Status != models.StatusPublished && !services.CanManageCourse(actorFromLocals(c), course) {
		return serviceError(c, services.ErrNotFound)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (cc *CoursesController) ListMyCourses(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	courses, err := cc.Authoring.ListInstructorCourses(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (cc *CoursesController) ListPublishedCourses(c *fiber.Ctx) error {
	courses, err := cc.Authoring.ListPublishedCourses()
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"courses": courses})
}
