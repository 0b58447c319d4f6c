package generator

import (
	"context"
	"fmt"

	"github.com/crumbworks/pantryplan/internal/planner"
)

// Local builds plans from a fixed rotation of meal templates. It keeps the
// preview flow working without a model provider key and gives tests a
// deterministic generator.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

type mealTemplate struct {
	name         string
	calories     int
	uses         []planner.Use
	instructions []string
}

var mealRotation = []mealTemplate{
	{
		name:     "Oatmeal with Banana",
		calories: 420,
		uses: []planner.Use{
			{Name: "Rolled Oats", Quantity: 80, Unit: "g"},
			{Name: "Milk", Quantity: 250, Unit: "mL"},
			{Name: "Banana", Quantity: 1, Unit: "unit"},
		},
		instructions: []string{
			"Simmer the oats in milk until creamy.",
			"Top with sliced banana.",
		},
	},
	{
		name:     "Chicken Rice Bowl",
		calories: 650,
		uses: []planner.Use{
			{Name: "Chicken Breast", Quantity: 200, Unit: "g"},
			{Name: "Rice", Quantity: 90, Unit: "g"},
			{Name: "Olive Oil", Quantity: 10, Unit: "mL"},
		},
		instructions: []string{
			"Cook the rice.",
			"Pan fry the chicken in olive oil and slice over the rice.",
		},
	},
	{
		name:     "Lentil Soup",
		calories: 480,
		uses: []planner.Use{
			{Name: "Red Lentils", Quantity: 120, Unit: "g"},
			{Name: "Vegetable Stock", Quantity: 500, Unit: "mL"},
			{Name: "Onion", Quantity: 1, Unit: "unit"},
		},
		instructions: []string{
			"Sweat the onion, add lentils and stock.",
			"Simmer 25 minutes and season.",
		},
	},
	{
		name:     "Greek Yogurt Bowl",
		calories: 350,
		uses: []planner.Use{
			{Name: "Greek Yogurt", Quantity: 200, Unit: "g"},
			{Name: "Honey", Quantity: 15, Unit: "g"},
			{Name: "Walnuts", Quantity: 30, Unit: "g"},
		},
		instructions: []string{
			"Spoon the yogurt into a bowl, drizzle honey, scatter walnuts.",
		},
	},
	{
		name:     "Salmon with Potatoes",
		calories: 700,
		uses: []planner.Use{
			{Name: "Salmon Fillet", Quantity: 180, Unit: "g"},
			{Name: "Potatoes", Quantity: 300, Unit: "g"},
			{Name: "Butter", Quantity: 20, Unit: "g"},
		},
		instructions: []string{
			"Roast the potatoes.",
			"Pan sear the salmon in butter and serve together.",
		},
	},
	{
		name:     "Veggie Omelette",
		calories: 400,
		uses: []planner.Use{
			{Name: "Egg", Quantity: 3, Unit: "unit"},
			{Name: "Bell Pepper", Quantity: 1, Unit: "unit"},
			{Name: "Cheese", Quantity: 40, Unit: "g"},
		},
		instructions: []string{
			"Whisk the eggs, fold in pepper and cheese, cook until set.",
		},
	},
}

func (local *Local) Generate(_ context.Context, request planner.GenerationRequest) (planner.Tree, error) {
	days := make([]planner.Day, 0, request.DurationDays)
	rotation := 0
	for dayIndex := 0; dayIndex < request.DurationDays; dayIndex++ {
		meals := make([]planner.Meal, 0, request.MealsPerDay)
		for mealIndex := 0; mealIndex < request.MealsPerDay; mealIndex++ {
			template := mealRotation[rotation%len(mealRotation)]
			rotation++
			meal := planner.Meal{
				Name:         template.name,
				Calories:     template.calories,
				Uses:         append([]planner.Use(nil), template.uses...),
				Instructions: append([]string(nil), template.instructions...),
			}
			if request.CuisineStyle != "" {
				meal.Name = fmt.Sprintf("%s (%s style)", template.name, request.CuisineStyle)
			}
			meals = append(meals, meal)
		}
		days = append(days, planner.Day{Meals: meals})
	}

	return planner.Tree{
		Meta: planner.Meta{
			DurationDays:         request.DurationDays,
			MealsPerDay:          request.MealsPerDay,
			TargetCaloriesPerDay: request.TargetCaloriesPerDay,
			CuisineStyle:         request.CuisineStyle,
		},
		Days: days,
	}, nil
}
