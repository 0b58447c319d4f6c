package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/crumbworks/pantryplan/internal/models"
)

type stubIngredientRepo struct {
	rows    map[uint]models.Ingredient
	nextID  uint
	updates map[string]any
	deleted []uint
	batch   []models.Ingredient
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{rows: make(map[uint]models.Ingredient), nextID: 1}
}

func (stub *stubIngredientRepo) ListByUser(userID uint) ([]models.Ingredient, error) {
	listed := make([]models.Ingredient, 0)
	for _, row := range stub.rows {
		if row.UserID == userID {
			listed = append(listed, row)
		}
	}
	return listed, nil
}

func (stub *stubIngredientRepo) FindByID(ingredientID uint) (models.Ingredient, error) {
	row, ok := stub.rows[ingredientID]
	if !ok {
		return models.Ingredient{}, errors.New("record not found")
	}
	return row, nil
}

func (stub *stubIngredientRepo) FindByIDForUser(ingredientID uint, userID uint) (models.Ingredient, error) {
	row, ok := stub.rows[ingredientID]
	if !ok || row.UserID != userID {
		return models.Ingredient{}, errors.New("record not found")
	}
	return row, nil
}

func (stub *stubIngredientRepo) Create(ingredient *models.Ingredient) error {
	ingredient.ID = stub.nextID
	stub.nextID++
	stub.rows[ingredient.ID] = *ingredient
	return nil
}

func (stub *stubIngredientRepo) UpdateByID(ingredientID uint, updates map[string]any) error {
	stub.updates = updates
	row := stub.rows[ingredientID]
	if name, ok := updates["name"].(string); ok {
		row.Name = name
	}
	if quantity, ok := updates["quantity"].(float64); ok {
		row.Quantity = quantity
	}
	if unit, ok := updates["unit"].(string); ok {
		row.Unit = unit
	}
	stub.rows[ingredientID] = row
	return nil
}

func (stub *stubIngredientRepo) Delete(ingredient *models.Ingredient) error {
	stub.deleted = append(stub.deleted, ingredient.ID)
	delete(stub.rows, ingredient.ID)
	return nil
}

func (stub *stubIngredientRepo) UpsertBatch(userID uint, drafts []models.Ingredient) ([]models.Ingredient, error) {
	stub.batch = drafts
	saved := make([]models.Ingredient, 0, len(drafts))
	for _, draft := range drafts {
		draft.UserID = userID
		draft.ID = stub.nextID
		stub.nextID++
		stub.rows[draft.ID] = draft
		saved = append(saved, draft)
	}
	return saved, nil
}

func TestAddIngredientTrimsAndPersists(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	service := NewPantryService(repo)

	saved, err := service.AddIngredient(1, "  Rolled Oats  ", 500, " g ")
	if err != nil {
		t.Fatalf("AddIngredient returned error: %v", err)
	}
	if saved.Name != "Rolled Oats" || saved.Unit != "g" {
		t.Fatalf("saved = %#v, want trimmed name and unit", saved)
	}
	if saved.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestAddIngredientRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewPantryService(newStubIngredientRepo())

	if _, err := service.AddIngredient(1, "   ", 1, "g"); !errors.Is(err, ErrInvalidIngredientName) {
		t.Fatalf("blank name: got %v", err)
	}
	if _, err := service.AddIngredient(1, strings.Repeat("x", 200), 1, "g"); !errors.Is(err, ErrInvalidIngredientName) {
		t.Fatalf("overlong name: got %v", err)
	}
	if _, err := service.AddIngredient(1, "Oats", -1, "g"); !errors.Is(err, ErrInvalidIngredientQuantity) {
		t.Fatalf("negative quantity: got %v", err)
	}
}

func TestUpdateIngredientChecksOwnership(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	repo.rows[7] = models.Ingredient{ID: 7, UserID: 2, Name: "Rice", Quantity: 80, Unit: "g"}
	service := NewPantryService(repo)

	if _, err := service.UpdateIngredient(1, 7, nil, nil, nil); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound for foreign row, got %v", err)
	}
}

func TestUpdateIngredientPatchesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	repo.rows[7] = models.Ingredient{ID: 7, UserID: 1, Name: "Rice", Quantity: 80, Unit: "g"}
	service := NewPantryService(repo)

	quantity := 250.0
	updated, err := service.UpdateIngredient(1, 7, nil, &quantity, nil)
	if err != nil {
		t.Fatalf("UpdateIngredient returned error: %v", err)
	}
	if updated.Quantity != 250 || updated.Name != "Rice" || updated.Unit != "g" {
		t.Fatalf("updated = %#v, want only quantity changed", updated)
	}
	if _, ok := repo.updates["name"]; ok {
		t.Fatal("nil name must not be written")
	}
}

func TestDeleteIngredientRequiresOwnership(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	repo.rows[7] = models.Ingredient{ID: 7, UserID: 2, Name: "Rice", Quantity: 80, Unit: "g"}
	service := NewPantryService(repo)

	if err := service.DeleteIngredient(1, 7); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("foreign row must not be deleted")
	}
}

func TestBulkAddValidatesAllBeforeWriting(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	service := NewPantryService(repo)

	drafts := []models.Ingredient{
		{Name: "Flour", Quantity: 1, Unit: "kg"},
		{Name: "", Quantity: 2, Unit: "L"},
	}
	if _, err := service.BulkAdd(1, drafts); !errors.Is(err, ErrInvalidIngredientName) {
		t.Fatalf("expected ErrInvalidIngredientName, got %v", err)
	}
	if repo.batch != nil {
		t.Fatal("no batch write may happen when a draft is invalid")
	}
}

func TestBulkAddPersistsValidatedDrafts(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	service := NewPantryService(repo)

	saved, err := service.BulkAdd(1, []models.Ingredient{
		{Name: " Flour ", Quantity: 1, Unit: "kg"},
		{Name: "Milk", Quantity: 500, Unit: "mL"},
	})
	if err != nil {
		t.Fatalf("BulkAdd returned error: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved %d rows, want 2", len(saved))
	}
	if saved[0].Name != "Flour" {
		t.Fatalf("name = %q, want trimmed", saved[0].Name)
	}
}

func TestLowStockUsesPantryRows(t *testing.T) {
	t.Parallel()

	repo := newStubIngredientRepo()
	repo.rows[1] = models.Ingredient{ID: 1, UserID: 1, Name: "Rice", Quantity: 80, Unit: "g"}
	repo.rows[2] = models.Ingredient{ID: 2, UserID: 1, Name: "Oil", Quantity: 2, Unit: "L"}
	repo.rows[3] = models.Ingredient{ID: 3, UserID: 2, Name: "Milk", Quantity: 10, Unit: "mL"}
	service := NewPantryService(repo)

	items, err := service.LowStock(1)
	if err != nil {
		t.Fatalf("LowStock returned error: %v", err)
	}
	if len(items) != 1 || items[0].Ingredient.Name != "Rice" {
		t.Fatalf("items = %#v, want only the user's low Rice row", items)
	}
}
