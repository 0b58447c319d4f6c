package api

import (
	"github.com/crumbworks/pantryplan/internal/db"
	"github.com/crumbworks/pantryplan/internal/services"
)

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.pantryService == nil {
		handler.pantryService = services.NewPantryService(handler.repositories.Ingredients)
	}
	if handler.planService == nil {
		handler.planService = services.NewPlanService(handler.generator, handler.repositories.MealPlans, handler.repositories.Users, handler.logger)
	}
	if handler.favoriteService == nil {
		handler.favoriteService = services.NewFavoriteService(handler.repositories.Favorites, handler.repositories.MealPlans)
	}
	if handler.receiptService == nil {
		handler.receiptService = services.NewReceiptService(handler.logger)
	}
}
