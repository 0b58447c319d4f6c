package planner

// GenerationRequest is what the plan generator needs to produce a tree.
// PantryNames is a hint: generators should prefer ingredients the user
// already stocks.
type GenerationRequest struct {
	DurationDays         int      `json:"durationDays"`
	MealsPerDay          int      `json:"mealsPerDay"`
	TargetCaloriesPerDay int      `json:"targetCaloriesPerDay"`
	CuisineStyle         string   `json:"cuisineStyle"`
	PantryNames          []string `json:"pantryNames,omitempty"`
}
