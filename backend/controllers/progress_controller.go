package controllers

import (
	"strconv"

	"courseforge/backend/config"
	"courseforge/backend/models"
	"courseforge/backend/services"
	"courseforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	Progress *services.ProgressService
	Cfg      *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{
		Progress: services.NewProgressService(db),
		Cfg:      cfg,
	}
}

func parseEnrollmentAndModule(c *fiber.Ctx) (uint, int, error) {
	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid enrollment ID")
	}
	moduleIndex, err := strconv.Atoi(c.Params("moduleIndex"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid module index")
	}
	return uint(enrollmentID), moduleIndex, nil
}

func (pc *ProgressController) MarkModuleComplete(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, moduleIndex, err := parseEnrollmentAndModule(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	enrollment, err := pc.Progress.MarkModuleComplete(enrollmentID, userID, moduleIndex)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress":          enrollment.Progress,
		"completed_lessons": enrollment.CompletedLessons,
		"detailed_progress": enrollment.DetailedProgress.Data(),
	})
}

func (pc *ProgressController) SubmitQuiz(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, moduleIndex, err := parseEnrollmentAndModule(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Answers []int `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	result, err := pc.Progress.SubmitQuiz(enrollmentID, userID, moduleIndex, input.Answers)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"result": result})
}

func (pc *ProgressController) GetDetailedProgress(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	dp, modules, err := pc.Progress.GetDetailedProgress(uint(enrollmentID), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"detailed_progress": dp,
		"modules":           modules,
	})
}

func (pc *ProgressController) MergeDetailedProgress(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	var partial models.DetailedProgress
	if err := c.BodyParser(&partial); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	merged, err := pc.Progress.MergeDetailedProgress(uint(enrollmentID), userID, partial)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"detailed_progress": merged})
}
