package api

import (
	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/gofiber/fiber/v2"
)

type profileUpdateInput struct {
	Weight           *float64  `json:"weight"`
	FitnessGoal      *string   `json:"fitnessGoal"`
	Gender           *string   `json:"gender"`
	FitnessLevel     *string   `json:"fitnessLevel"`
	FavoriteCuisines *[]string `json:"favoriteCuisines"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	fresh, err := handler.authService.FindUser(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fresh)
}

// DeleteAccount removes the authenticated user and everything it owns,
// then invalidates the session cookie.
func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	if err := handler.authService.DeleteAccount(user.ID); err != nil {
		return serviceError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := profileUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.authService.UpdateProfile(user.ID, services.ProfileUpdateInput{
		Weight:           input.Weight,
		FitnessGoal:      input.FitnessGoal,
		Gender:           input.Gender,
		FitnessLevel:     input.FitnessLevel,
		FavoriteCuisines: input.FavoriteCuisines,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}
