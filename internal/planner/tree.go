// Package planner defines the plan tree produced by generation and accepted
// into storage: meta plus ordered days, each with ordered meals, each with
// calories, ingredient uses and instructions.
package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Meta struct {
	DurationDays         int    `json:"durationDays"`
	MealsPerDay          int    `json:"mealsPerDay"`
	TargetCaloriesPerDay int    `json:"targetCaloriesPerDay"`
	CuisineStyle         string `json:"cuisineStyle"`
}

type Use struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type Meal struct {
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	Uses         []Use    `json:"uses"`
	Instructions []string `json:"instructions"`
}

type Day struct {
	Meals []Meal `json:"meals"`
}

type Tree struct {
	Meta Meta  `json:"meta"`
	Days []Day `json:"days"`
}

// Decode parses a plan tree from JSON, tolerating missing arrays: a tree
// with no days decodes to empty slices rather than nil panics downstream.
func Decode(raw []byte) (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Tree{}, fmt.Errorf("decode plan tree: %w", err)
	}
	tree.fillEmpty()
	return tree, nil
}

// Encode serializes the tree for storage.
func (tree Tree) Encode() ([]byte, error) {
	return json.Marshal(tree)
}

// IsEmpty reports whether the tree carries no meals at all.
func (tree Tree) IsEmpty() bool {
	for _, day := range tree.Days {
		if len(day.Meals) > 0 {
			return false
		}
	}
	return true
}

// Uses returns every ingredient use across the whole tree in document order.
func (tree Tree) Uses() []Use {
	uses := make([]Use, 0)
	for _, day := range tree.Days {
		for _, meal := range day.Meals {
			uses = append(uses, meal.Uses...)
		}
	}
	return uses
}

func (tree *Tree) fillEmpty() {
	if tree.Days == nil {
		tree.Days = []Day{}
	}
	for dayIndex := range tree.Days {
		if tree.Days[dayIndex].Meals == nil {
			tree.Days[dayIndex].Meals = []Meal{}
		}
		for mealIndex := range tree.Days[dayIndex].Meals {
			meal := &tree.Days[dayIndex].Meals[mealIndex]
			if meal.Uses == nil {
				meal.Uses = []Use{}
			}
			if meal.Instructions == nil {
				meal.Instructions = []string{}
			}
		}
	}
}

// CheckShape reports advisory mismatches between meta and the actual tree:
// days length vs durationDays and each day's meal count vs mealsPerDay.
// Mismatches are warnings, never a rejection.
func (tree Tree) CheckShape() []string {
	warnings := make([]string, 0)
	if tree.Meta.DurationDays > 0 && len(tree.Days) != tree.Meta.DurationDays {
		warnings = append(warnings, fmt.Sprintf("plan has %d days, meta declares %d", len(tree.Days), tree.Meta.DurationDays))
	}
	if tree.Meta.MealsPerDay > 0 {
		for index, day := range tree.Days {
			if len(day.Meals) != tree.Meta.MealsPerDay {
				warnings = append(warnings, fmt.Sprintf("day %d has %d meals, meta declares %d", index+1, len(day.Meals), tree.Meta.MealsPerDay))
			}
		}
	}
	return warnings
}

// Summary is the display form of a tree used by plan list responses.
type Summary struct {
	DurationDays  int      `json:"durationDays"`
	MealsPerDay   int      `json:"mealsPerDay"`
	TotalMeals    int      `json:"totalMeals"`
	TotalCalories int      `json:"totalCalories"`
	CuisineStyle  string   `json:"cuisineStyle"`
	Ingredients   []string `json:"ingredients"`
}

// Summarize flattens a tree into its Summary. Ingredient names are distinct,
// case-insensitively, preserving first-seen order and original spelling.
func Summarize(tree Tree) Summary {
	summary := Summary{
		DurationDays: tree.Meta.DurationDays,
		MealsPerDay:  tree.Meta.MealsPerDay,
		CuisineStyle: tree.Meta.CuisineStyle,
		Ingredients:  []string{},
	}

	seen := make(map[string]struct{})
	for _, day := range tree.Days {
		for _, meal := range day.Meals {
			summary.TotalMeals++
			summary.TotalCalories += meal.Calories
			for _, use := range meal.Uses {
				key := strings.ToLower(strings.TrimSpace(use.Name))
				if key == "" {
					continue
				}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				summary.Ingredients = append(summary.Ingredients, strings.TrimSpace(use.Name))
			}
		}
	}
	return summary
}
