package db

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"gorm.io/gorm"
)

type IngredientRepository struct {
	database *gorm.DB
}

func NewIngredientRepository(database *gorm.DB) *IngredientRepository {
	return &IngredientRepository{database: database}
}

func (repo *IngredientRepository) ListByUser(userID uint) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (repo *IngredientRepository) FindByID(ingredientID uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := repo.database.First(&ingredient, ingredientID).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (repo *IngredientRepository) FindByIDForUser(ingredientID uint, userID uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := repo.database.
		Where("id = ? AND user_id = ?", ingredientID, userID).
		First(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (repo *IngredientRepository) Create(ingredient *models.Ingredient) error {
	return repo.database.Create(ingredient).Error
}

func (repo *IngredientRepository) UpdateByID(ingredientID uint, updates map[string]any) error {
	return repo.database.Model(&models.Ingredient{}).Where("id = ?", ingredientID).Updates(updates).Error
}

func (repo *IngredientRepository) Delete(ingredient *models.Ingredient) error {
	return repo.database.Delete(ingredient).Error
}

// UpsertBatch inserts drafts that have no matching (name, unit) row for the
// user and adds quantities onto rows that do, all in one transaction.
// Matching is case-insensitive on the trimmed name and unit.
func (repo *IngredientRepository) UpsertBatch(userID uint, drafts []models.Ingredient) ([]models.Ingredient, error) {
	result := make([]models.Ingredient, 0, len(drafts))
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		for _, draft := range drafts {
			var existing models.Ingredient
			lookup := tx.
				Where("user_id = ? AND lower(trim(name)) = lower(trim(?)) AND lower(trim(unit)) = lower(trim(?))",
					userID, draft.Name, draft.Unit).
				Limit(1).
				Find(&existing)
			if lookup.Error != nil {
				return lookup.Error
			}

			if lookup.RowsAffected == 0 {
				draft.UserID = userID
				if err := tx.Create(&draft).Error; err != nil {
					return err
				}
				result = append(result, draft)
				continue
			}

			existing.Quantity += draft.Quantity
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = append(result, existing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
