package services

import (
	"math"

	"github.com/crumbworks/pantryplan/internal/models"
)

const defaultDailyCalories = 2000

// DailyCalorieTarget derives a per-day calorie target from the user's
// profile for the generator. Weight in kilograms; users without a recorded
// weight get the default. The result is rounded to the nearest 50.
func DailyCalorieTarget(user models.User) int {
	if user.Weight <= 0 || math.IsNaN(user.Weight) || math.IsInf(user.Weight, 0) {
		return defaultDailyCalories
	}

	basePerKg := 22.0
	if user.Gender == models.GenderMale {
		basePerKg = 24.0
	}

	activity := 1.2
	switch user.FitnessLevel {
	case models.LevelLight:
		activity = 1.375
	case models.LevelModerate:
		activity = 1.55
	case models.LevelActive:
		activity = 1.725
	case models.LevelVeryActive:
		activity = 1.9
	}

	target := user.Weight * basePerKg * activity
	switch user.FitnessGoal {
	case models.GoalBulking:
		target *= 1.15
	case models.GoalCutting:
		target *= 0.85
	}

	return int(math.Round(target/50) * 50)
}
