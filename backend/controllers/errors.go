package controllers

import (
	"errors"

	"courseforge/backend/models"
	"courseforge/backend/services"
	"courseforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps the engine's error taxonomy onto HTTP responses. The
// deletion guard carries enough payload for the caller to act on.
func serviceError(c *fiber.Ctx, err error) error {
	var blocked *services.DeletionBlockedError
	switch {
	case errors.As(err, &blocked):
		return utils.Error(c, fiber.StatusConflict, blocked, fiber.Map{
			"enrolled_students": blocked.EnrolledStudents,
			"requires_force":    blocked.CanForce,
		})
	case errors.Is(err, models.ErrInvalidOutline),
		errors.Is(err, services.ErrInvalidRequest):
		return utils.Error(c, fiber.StatusBadRequest, err)
	case errors.Is(err, services.ErrForbidden):
		return utils.Error(c, fiber.StatusForbidden, err)
	case errors.Is(err, services.ErrNotFound):
		return utils.Error(c, fiber.StatusNotFound, err)
	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrAlreadySubmitted):
		return utils.Error(c, fiber.StatusConflict, err)
	default:
		return utils.InternalServerError(c, "Could not complete the request")
	}
}

func actorFromLocals(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)
	return services.Actor{UserID: userID, Role: role}
}
