package api

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/planner"
	"github.com/gofiber/fiber/v2"
)

type favoriteListEntry struct {
	Favorite models.Favorite `json:"favorite"`
	Plan     models.MealPlan `json:"plan"`
	Summary  planner.Summary `json:"summary"`
}

func (handler *Handler) ListFavorites(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	favorites, err := handler.favoriteService.ListFavorites(user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	entries := make([]favoriteListEntry, 0, len(favorites))
	for _, favorite := range favorites {
		entry := favoriteListEntry{Favorite: favorite}
		plan, findErr := handler.planService.FindPlan(user.ID, favorite.PlanID)
		if findErr == nil {
			entry.Plan = plan
			if tree, decodeErr := planner.Decode(plan.PlanJSON); decodeErr == nil {
				entry.Summary = planner.Summarize(tree)
			}
		}
		entries = append(entries, entry)
	}
	return c.JSON(entries)
}

func (handler *Handler) FavoritePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	planID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	favorite, err := handler.favoriteService.Favorite(user.ID, planID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func (handler *Handler) UnfavoritePlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	planID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	if err := handler.favoriteService.Unfavorite(user.ID, planID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
