package models

import "time"

// Ingredient is one pantry row. Unit is free text; the canonical units
// understood by stock comparisons are g, kg, mL and L.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	Unit      string    `gorm:"not null;default:''" json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PantryAdjustment is a computed new quantity for one pantry row, applied
// inside the plan-accept transaction.
type PantryAdjustment struct {
	IngredientID uint
	Quantity     float64
}
