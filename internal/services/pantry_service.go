package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/crumbworks/pantryplan/internal/models"
)

var (
	ErrInvalidIngredientName     = errors.New("invalid ingredient name")
	ErrInvalidIngredientQuantity = errors.New("invalid ingredient quantity")
	ErrIngredientNotFound        = errors.New("ingredient not found")
)

const maxIngredientNameLength = 120

type IngredientRepository interface {
	ListByUser(userID uint) ([]models.Ingredient, error)
	FindByID(ingredientID uint) (models.Ingredient, error)
	FindByIDForUser(ingredientID uint, userID uint) (models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	UpdateByID(ingredientID uint, updates map[string]any) error
	Delete(ingredient *models.Ingredient) error
	UpsertBatch(userID uint, drafts []models.Ingredient) ([]models.Ingredient, error)
}

type PantryService struct {
	ingredients IngredientRepository
}

func NewPantryService(ingredients IngredientRepository) *PantryService {
	return &PantryService{ingredients: ingredients}
}

func (service *PantryService) ListPantry(userID uint) ([]models.Ingredient, error) {
	return service.ingredients.ListByUser(userID)
}

func (service *PantryService) AddIngredient(userID uint, name string, quantity float64, unit string) (models.Ingredient, error) {
	name, quantity, unit, err := normalizeIngredientInput(name, quantity, unit)
	if err != nil {
		return models.Ingredient{}, err
	}

	ingredient := models.Ingredient{
		UserID:   userID,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	}
	if err := service.ingredients.Create(&ingredient); err != nil {
		return models.Ingredient{}, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

// UpdateIngredient patches the given fields. Nil pointers mean "leave as is".
// The route is not user-scoped, so ownership is checked against the token
// user here.
func (service *PantryService) UpdateIngredient(userID uint, ingredientID uint, name *string, quantity *float64, unit *string) (models.Ingredient, error) {
	existing, err := service.ingredients.FindByID(ingredientID)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("%w: %v", ErrIngredientNotFound, err)
	}
	if existing.UserID != userID {
		return models.Ingredient{}, ErrIngredientNotFound
	}

	updates := make(map[string]any)
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" || len(trimmed) > maxIngredientNameLength {
			return models.Ingredient{}, ErrInvalidIngredientName
		}
		updates["name"] = trimmed
	}
	if quantity != nil {
		if !isValidQuantity(*quantity) {
			return models.Ingredient{}, ErrInvalidIngredientQuantity
		}
		updates["quantity"] = *quantity
	}
	if unit != nil {
		updates["unit"] = strings.TrimSpace(*unit)
	}

	if len(updates) > 0 {
		if err := service.ingredients.UpdateByID(ingredientID, updates); err != nil {
			return models.Ingredient{}, fmt.Errorf("update ingredient: %w", err)
		}
	}
	return service.ingredients.FindByID(ingredientID)
}

func (service *PantryService) DeleteIngredient(userID uint, ingredientID uint) error {
	ingredient, err := service.ingredients.FindByIDForUser(ingredientID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIngredientNotFound, err)
	}
	return service.ingredients.Delete(&ingredient)
}

// BulkAdd validates every draft up front and applies all of them in one
// batch; drafts matching an existing (name, unit) row add onto its quantity.
func (service *PantryService) BulkAdd(userID uint, drafts []models.Ingredient) ([]models.Ingredient, error) {
	validated := make([]models.Ingredient, 0, len(drafts))
	for _, draft := range drafts {
		name, quantity, unit, err := normalizeIngredientInput(draft.Name, draft.Quantity, draft.Unit)
		if err != nil {
			return nil, err
		}
		validated = append(validated, models.Ingredient{Name: name, Quantity: quantity, Unit: unit})
	}
	if len(validated) == 0 {
		return []models.Ingredient{}, nil
	}
	return service.ingredients.UpsertBatch(userID, validated)
}

func (service *PantryService) LowStock(userID uint) ([]LowStockItem, error) {
	pantry, err := service.ingredients.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return EvaluateLowStock(pantry), nil
}

func normalizeIngredientInput(name string, quantity float64, unit string) (string, float64, string, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" || len(trimmedName) > maxIngredientNameLength {
		return "", 0, "", ErrInvalidIngredientName
	}
	if !isValidQuantity(quantity) {
		return "", 0, "", ErrInvalidIngredientQuantity
	}
	return trimmedName, quantity, strings.TrimSpace(unit), nil
}

func isValidQuantity(quantity float64) bool {
	return quantity >= 0 && !math.IsNaN(quantity) && !math.IsInf(quantity, 0)
}
