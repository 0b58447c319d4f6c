package services

import (
	"math"
	"sort"

	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/crumbworks/pantryplan/internal/units"
)

// LowStockThreshold is in base units: grams for mass, milliliters for volume.
const LowStockThreshold = 100.0

type LowStockItem struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Kind       units.Kind        `json:"kind"`
	Base       float64           `json:"base"`
	Display    string            `json:"display"`
}

// EvaluateLowStock returns the pantry items whose normalized magnitude is
// finite and strictly below the threshold, lowest stock first. Items whose
// unit is outside the canonical set are never flagged. The sort is stable:
// ties keep their original relative order. Pure function of the input.
func EvaluateLowStock(pantry []models.Ingredient) []LowStockItem {
	flagged := make([]LowStockItem, 0)
	for _, ingredient := range pantry {
		measurement := units.Normalize(ingredient.Quantity, ingredient.Unit)
		if measurement.Kind == units.KindOther {
			continue
		}
		if math.IsNaN(measurement.Base) || math.IsInf(measurement.Base, 0) {
			continue
		}
		if measurement.Base >= LowStockThreshold {
			continue
		}
		flagged = append(flagged, LowStockItem{
			Ingredient: ingredient,
			Kind:       measurement.Kind,
			Base:       measurement.Base,
			Display:    measurement.Display(),
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Base < flagged[j].Base
	})
	return flagged
}
