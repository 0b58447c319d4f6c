package services

import (
	"math"
	"reflect"
	"testing"

	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/units"
)

func TestEvaluateLowStockFiltersAndSorts(t *testing.T) {
	t.Parallel()

	pantry := []models.Ingredient{
		{Name: "Rice", Quantity: 80, Unit: "g"},
		{Name: "Flour", Quantity: 150, Unit: "g"},
		{Name: "Milk", Quantity: 50, Unit: "mL"},
		{Name: "Potatoes", Quantity: 1, Unit: "kg"},
	}

	flagged := EvaluateLowStock(pantry)
	if len(flagged) != 2 {
		t.Fatalf("expected 2 flagged items, got %d", len(flagged))
	}
	if flagged[0].Ingredient.Name != "Milk" || flagged[0].Base != 50 {
		t.Fatalf("first flagged = %s/%v, want Milk/50", flagged[0].Ingredient.Name, flagged[0].Base)
	}
	if flagged[1].Ingredient.Name != "Rice" || flagged[1].Base != 80 {
		t.Fatalf("second flagged = %s/%v, want Rice/80", flagged[1].Ingredient.Name, flagged[1].Base)
	}
	if flagged[0].Kind != units.KindVol || flagged[1].Kind != units.KindMass {
		t.Fatalf("unexpected kinds: %v %v", flagged[0].Kind, flagged[1].Kind)
	}
}

func TestEvaluateLowStockNeverFlagsOtherUnits(t *testing.T) {
	t.Parallel()

	pantry := []models.Ingredient{
		{Name: "Eggs", Quantity: 2, Unit: "unit"},
		{Name: "Bread", Quantity: 1, Unit: "loaf"},
		{Name: "Salt", Quantity: 0, Unit: ""},
	}

	if flagged := EvaluateLowStock(pantry); len(flagged) != 0 {
		t.Fatalf("expected nothing flagged, got %#v", flagged)
	}
}

func TestEvaluateLowStockSkipsNonFiniteQuantities(t *testing.T) {
	t.Parallel()

	pantry := []models.Ingredient{
		{Name: "Broken", Quantity: math.NaN(), Unit: "g"},
		{Name: "Infinite", Quantity: math.Inf(-1), Unit: "mL"},
		{Name: "Oats", Quantity: 10, Unit: "g"},
	}

	flagged := EvaluateLowStock(pantry)
	if len(flagged) != 1 || flagged[0].Ingredient.Name != "Oats" {
		t.Fatalf("expected only Oats flagged, got %#v", flagged)
	}
}

func TestEvaluateLowStockThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	pantry := []models.Ingredient{
		{Name: "AtThreshold", Quantity: 100, Unit: "g"},
		{Name: "JustBelow", Quantity: 99.999, Unit: "g"},
	}

	flagged := EvaluateLowStock(pantry)
	if len(flagged) != 1 || flagged[0].Ingredient.Name != "JustBelow" {
		t.Fatalf("expected only JustBelow flagged, got %#v", flagged)
	}
}

func TestEvaluateLowStockIsStableAndIdempotent(t *testing.T) {
	t.Parallel()

	pantry := []models.Ingredient{
		{ID: 1, Name: "A", Quantity: 50, Unit: "g"},
		{ID: 2, Name: "B", Quantity: 50, Unit: "mL"},
		{ID: 3, Name: "C", Quantity: 50, Unit: "g"},
	}

	first := EvaluateLowStock(pantry)
	second := EvaluateLowStock(pantry)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for identical input")
	}
	if first[0].Ingredient.ID != 1 || first[1].Ingredient.ID != 2 || first[2].Ingredient.ID != 3 {
		t.Fatalf("expected stable order for ties, got %v %v %v",
			first[0].Ingredient.ID, first[1].Ingredient.ID, first[2].Ingredient.ID)
	}
}
