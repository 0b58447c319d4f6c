package db

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	database *gorm.DB
}

func NewFavoriteRepository(database *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{database: database}
}

func (repo *FavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	favorites := make([]models.Favorite, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (repo *FavoriteRepository) FindByUserAndPlan(userID uint, planID uint) (models.Favorite, bool, error) {
	var favorite models.Favorite
	result := repo.database.
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Limit(1).
		Find(&favorite)
	if result.Error != nil {
		return models.Favorite{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Favorite{}, false, nil
	}
	return favorite, true, nil
}

func (repo *FavoriteRepository) Create(favorite *models.Favorite) error {
	return repo.database.Create(favorite).Error
}

func (repo *FavoriteRepository) DeleteByUserAndPlan(userID uint, planID uint) error {
	return repo.database.
		Where("user_id = ? AND plan_id = ?", userID, planID).
		Delete(&models.Favorite{}).Error
}
