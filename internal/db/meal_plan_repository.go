package db

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"gorm.io/gorm"
)

type MealPlanRepository struct {
	database *gorm.DB
}

func NewMealPlanRepository(database *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{database: database}
}

func (repo *MealPlanRepository) ListByUserAndStatus(userID uint, status string) ([]models.MealPlan, error) {
	plans := make([]models.MealPlan, 0)
	query := repo.database.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC, id DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (repo *MealPlanRepository) FindByIDForUser(planID uint, userID uint) (models.MealPlan, error) {
	var plan models.MealPlan
	if err := repo.database.
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error; err != nil {
		return models.MealPlan{}, err
	}
	return plan, nil
}

func (repo *MealPlanRepository) UpdateByID(planID uint, updates map[string]any) error {
	return repo.database.Model(&models.MealPlan{}).Where("id = ?", planID).Updates(updates).Error
}

func (repo *MealPlanRepository) Delete(plan *models.MealPlan) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(plan).Error
	})
}

// CreateWithReconciliation persists the accepted plan and applies pantry
// adjustments in one transaction. The pantry is read inside the transaction
// and handed to compute, so concurrent accepts for the same user cannot lose
// updates on the same rows.
func (repo *MealPlanRepository) CreateWithReconciliation(
	plan *models.MealPlan,
	compute func(pantry []models.Ingredient) []models.PantryAdjustment,
) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		if compute == nil {
			return nil
		}

		pantry := make([]models.Ingredient, 0)
		if err := tx.
			Where("user_id = ?", plan.UserID).
			Order("name ASC, id ASC").
			Find(&pantry).Error; err != nil {
			return err
		}

		for _, adjustment := range compute(pantry) {
			if err := tx.Model(&models.Ingredient{}).
				Where("id = ?", adjustment.IngredientID).
				Update("quantity", adjustment.Quantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
