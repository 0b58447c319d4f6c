package models

import "time"

const (
	GoalBulking     = "BULKING"
	GoalCutting     = "CUTTING"
	GoalMaintaining = "MAINTAINING"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

const (
	LevelSedentary  = "SEDENTARY"
	LevelLight      = "LIGHT"
	LevelModerate   = "MODERATE"
	LevelActive     = "ACTIVE"
	LevelVeryActive = "VERY_ACTIVE"
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"uniqueIndex;not null" json:"username"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	Weight             float64   `json:"weight"`
	FitnessGoal        string    `gorm:"not null" json:"fitnessGoal"`
	Gender             string    `gorm:"not null" json:"gender"`
	FitnessLevel       string    `gorm:"not null" json:"fitnessLevel"`
	FavoriteCuisines   []string  `gorm:"serializer:json" json:"favoriteCuisines"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func ValidFitnessGoals() []string {
	return []string{GoalBulking, GoalCutting, GoalMaintaining}
}

func ValidGenders() []string {
	return []string{GenderMale, GenderFemale}
}

func ValidFitnessLevels() []string {
	return []string{LevelSedentary, LevelLight, LevelModerate, LevelActive, LevelVeryActive}
}
