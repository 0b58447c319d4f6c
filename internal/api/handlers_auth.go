package api

import (
	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type registerInput struct {
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Weight           float64  `json:"weight"`
	FitnessGoal      string   `json:"fitnessGoal"`
	Gender           string   `json:"gender"`
	FitnessLevel     string   `json:"fitnessLevel"`
	FavoriteCuisines []string `json:"favoriteCuisines"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(services.RegistrationInput{
		Username:         input.Username,
		Email:            input.Email,
		Password:         input.Password,
		Weight:           input.Weight,
		FitnessGoal:      input.FitnessGoal,
		Gender:           input.Gender,
		FitnessLevel:     input.FitnessLevel,
		FavoriteCuisines: input.FavoriteCuisines,
	})
	if err != nil {
		return serviceError(c, err)
	}

	handler.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}
