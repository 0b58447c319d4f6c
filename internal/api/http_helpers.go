package api

import (
	"errors"
	"strconv"

	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

// serviceError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrIngredientNotFound),
		errors.Is(err, services.ErrPlanNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrPlanStatusTransition):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidFitnessGoal),
		errors.Is(err, services.ErrInvalidGender),
		errors.Is(err, services.ErrInvalidFitnessLevel),
		errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrInvalidIngredientName),
		errors.Is(err, services.ErrInvalidIngredientQuantity),
		errors.Is(err, services.ErrInvalidPlanName),
		errors.Is(err, services.ErrInvalidPlanDuration),
		errors.Is(err, services.ErrInvalidMealsPerDay),
		errors.Is(err, services.ErrInvalidPlanStatus),
		errors.Is(err, services.ErrEmptyPlanTree),
		errors.Is(err, services.ErrEmptyReceipt):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrGenerationFailed):
		return apiError(c, fiber.StatusBadGateway, "plan generation failed")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
