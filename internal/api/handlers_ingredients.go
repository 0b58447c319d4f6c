package api

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ingredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type ingredientPatchInput struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

const lowStockPageSize = 8

func (handler *Handler) ListIngredients(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	pantry, err := handler.pantryService.ListPantry(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(pantry)
}

func (handler *Handler) CreateIngredient(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := ingredientInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.pantryService.AddIngredient(user.ID, input.Name, input.Quantity, input.Unit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) BulkAddIngredients(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := struct {
		Items []ingredientInput `json:"items"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	drafts := make([]models.Ingredient, 0, len(input.Items))
	for _, item := range input.Items {
		drafts = append(drafts, models.Ingredient{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit})
	}

	saved, err := handler.pantryService.BulkAdd(user.ID, drafts)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) UpdateIngredient(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	ingredientID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	input := ingredientPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.pantryService.UpdateIngredient(user.ID, ingredientID, input.Name, input.Quantity, input.Unit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteIngredient(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	ingredientID, err := parseUintParam(c, "ingredientId")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid ingredient id")
	}
	if err := handler.pantryService.DeleteIngredient(user.ID, ingredientID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) LowStockIngredients(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	flagged, err := handler.pantryService.LowStock(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(lowStockPage(flagged))
}

type lowStockResponse struct {
	Items     []services.LowStockItem `json:"items"`
	Remaining int                     `json:"remaining"`
}

// lowStockPage truncates the flagged list to the first page and reports how
// many more items did not fit.
func lowStockPage(flagged []services.LowStockItem) lowStockResponse {
	if len(flagged) <= lowStockPageSize {
		return lowStockResponse{Items: flagged, Remaining: 0}
	}
	return lowStockResponse{
		Items:     flagged[:lowStockPageSize],
		Remaining: len(flagged) - lowStockPageSize,
	}
}
