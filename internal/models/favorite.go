package models

import "time"

// Favorite is the (user, plan) join row. The pair is unique; favoriting an
// already favorited plan must not create a second row.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_user_plan" json:"userId"`
	PlanID    uint      `gorm:"not null;uniqueIndex:uidx_user_plan" json:"planId"`
	CreatedAt time.Time `json:"createdAt"`
}
