package services

import (
	"math"
	"strings"

	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/planner"
	"github.com/crumbworks/pantryplan/internal/units"
)

// ReconcileResult is the outcome of matching a plan's ingredient uses
// against a pantry. Adjustments carry the new clamped quantities; Unmatched
// lists uses no pantry row could absorb, aggregated by name and unit.
type ReconcileResult struct {
	Adjustments []models.PantryAdjustment
	Unmatched   []planner.Use
}

// ComputeReconciliation decrements pantry rows by the plan's uses.
// Matching is by case-insensitive trimmed name plus compatible unit
// (mass with mass, volume with volume, other units only on an exact
// case-insensitive unit match). Decrements happen in base units and are
// clamped at zero: a quantity never goes negative and never increases.
// Uses with no matching row are skipped, not created, and reported back.
// Pure function; the caller runs it inside the accept transaction.
func ComputeReconciliation(pantry []models.Ingredient, uses []planner.Use) ReconcileResult {
	type pendingDeduction struct {
		row      models.Ingredient
		usedBase float64
	}

	deductions := make(map[uint]*pendingDeduction)
	unmatchedTotals := make(map[string]*planner.Use)
	unmatchedOrder := make([]string, 0)

	for _, use := range uses {
		name := strings.TrimSpace(use.Name)
		if name == "" {
			continue
		}
		if use.Quantity <= 0 || math.IsNaN(use.Quantity) || math.IsInf(use.Quantity, 0) {
			continue
		}

		row, found := matchPantryRow(pantry, name, use.Unit)
		if !found {
			key := strings.ToLower(name) + "\x00" + strings.ToLower(strings.TrimSpace(use.Unit))
			if total, seen := unmatchedTotals[key]; seen {
				total.Quantity += use.Quantity
			} else {
				unmatchedTotals[key] = &planner.Use{Name: name, Quantity: use.Quantity, Unit: strings.TrimSpace(use.Unit)}
				unmatchedOrder = append(unmatchedOrder, key)
			}
			continue
		}

		pending, tracked := deductions[row.ID]
		if !tracked {
			pending = &pendingDeduction{row: row}
			deductions[row.ID] = pending
		}
		pending.usedBase += units.Normalize(use.Quantity, use.Unit).Base
	}

	adjustments := make([]models.PantryAdjustment, 0, len(deductions))
	for _, row := range pantry {
		pending, tracked := deductions[row.ID]
		if !tracked || pending.usedBase <= 0 {
			continue
		}

		rowBase := units.Normalize(row.Quantity, row.Unit).Base
		newBase := rowBase - pending.usedBase
		if newBase < 0 {
			newBase = 0
		}
		adjustments = append(adjustments, models.PantryAdjustment{
			IngredientID: row.ID,
			Quantity:     units.ConvertBase(newBase, row.Unit),
		})
	}

	unmatched := make([]planner.Use, 0, len(unmatchedOrder))
	for _, key := range unmatchedOrder {
		unmatched = append(unmatched, *unmatchedTotals[key])
	}

	return ReconcileResult{Adjustments: adjustments, Unmatched: unmatched}
}

func matchPantryRow(pantry []models.Ingredient, name string, unit string) (models.Ingredient, bool) {
	for _, row := range pantry {
		if !strings.EqualFold(strings.TrimSpace(row.Name), name) {
			continue
		}
		if !units.Compatible(row.Unit, unit) {
			continue
		}
		return row, true
	}
	return models.Ingredient{}, false
}
