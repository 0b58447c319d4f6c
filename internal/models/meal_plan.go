package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PlanStatusActive = "ACTIVE"
	PlanStatusDone   = "DONE"
)

// MealPlan is a persisted, accepted plan. PlanJSON holds the full plan tree
// as returned by the generator; the row is created only on accept.
type MealPlan struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"userId"`
	Name      string         `gorm:"not null" json:"name"`
	Status    string         `gorm:"not null;default:ACTIVE;index" json:"status"`
	PlanJSON  datatypes.JSON `gorm:"column:plan_json" json:"planJson"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
