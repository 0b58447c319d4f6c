package services

import (
	"errors"
	"fmt"

	"github.com/crumbworks/pantryplan/internal/models"
)

var ErrFavoriteFailed = errors.New("favorite update failed")

type FavoriteRepository interface {
	ListByUser(userID uint) ([]models.Favorite, error)
	FindByUserAndPlan(userID uint, planID uint) (models.Favorite, bool, error)
	Create(favorite *models.Favorite) error
	DeleteByUserAndPlan(userID uint, planID uint) error
}

type FavoritePlanRepository interface {
	FindByIDForUser(planID uint, userID uint) (models.MealPlan, error)
}

type FavoriteService struct {
	favorites FavoriteRepository
	plans     FavoritePlanRepository
}

func NewFavoriteService(favorites FavoriteRepository, plans FavoritePlanRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, plans: plans}
}

func (service *FavoriteService) ListFavorites(userID uint) ([]models.Favorite, error) {
	return service.favorites.ListByUser(userID)
}

// Favorite is idempotent-intent: favoriting an already favorited plan
// returns the existing row without creating a duplicate.
func (service *FavoriteService) Favorite(userID uint, planID uint) (models.Favorite, error) {
	if _, err := service.plans.FindByIDForUser(planID, userID); err != nil {
		return models.Favorite{}, fmt.Errorf("%w: %v", ErrPlanNotFound, err)
	}

	existing, found, err := service.favorites.FindByUserAndPlan(userID, planID)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("%w: %v", ErrFavoriteFailed, err)
	}
	if found {
		return existing, nil
	}

	favorite := models.Favorite{UserID: userID, PlanID: planID}
	if err := service.favorites.Create(&favorite); err != nil {
		// Lost the race to a concurrent toggle; the row exists now.
		existing, found, lookupErr := service.favorites.FindByUserAndPlan(userID, planID)
		if lookupErr == nil && found {
			return existing, nil
		}
		return models.Favorite{}, fmt.Errorf("%w: %v", ErrFavoriteFailed, err)
	}
	return favorite, nil
}

// Unfavorite of a plan that is not favorited is a no-op success.
func (service *FavoriteService) Unfavorite(userID uint, planID uint) error {
	if err := service.favorites.DeleteByUserAndPlan(userID, planID); err != nil {
		return fmt.Errorf("%w: %v", ErrFavoriteFailed, err)
	}
	return nil
}
