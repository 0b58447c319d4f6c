package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Ingredients *IngredientRepository
	MealPlans   *MealPlanRepository
	Favorites   *FavoriteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Ingredients: NewIngredientRepository(database),
		MealPlans:   NewMealPlanRepository(database),
		Favorites:   NewFavoriteRepository(database),
	}
}
