package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

// per100g holds macro values for 100 grams of an ingredient.
type per100g struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Fiber    float64
	Sugar    float64
}

// nutritionTable covers the staples a school kitchen actually cooks with.
// Unknown ingredients make Calculate fail, which callers treat as
// best-effort: the recipe is saved without nutrition.
var nutritionTable = map[string]per100g{
	"rice":        {Calories: 130, Protein: 2.7, Carbs: 28, Fats: 0.3, Fiber: 0.4, Sugar: 0.1},
	"lentils":     {Calories: 116, Protein: 9, Carbs: 20, Fats: 0.4, Fiber: 7.9, Sugar: 1.8},
	"chicken":     {Calories: 165, Protein: 31, Carbs: 0, Fats: 3.6},
	"egg":         {Calories: 155, Protein: 13, Carbs: 1.1, Fats: 11, Sugar: 1.1},
	"milk":        {Calories: 61, Protein: 3.2, Carbs: 4.8, Fats: 3.3, Sugar: 5.1},
	"potato":      {Calories: 77, Protein: 2, Carbs: 17, Fats: 0.1, Fiber: 2.2, Sugar: 0.8},
	"carrot":      {Calories: 41, Protein: 0.9, Carbs: 9.6, Fats: 0.2, Fiber: 2.8, Sugar: 4.7},
	"spinach":     {Calories: 23, Protein: 2.9, Carbs: 3.6, Fats: 0.4, Fiber: 2.2, Sugar: 0.4},
	"bread":       {Calories: 265, Protein: 9, Carbs: 49, Fats: 3.2, Fiber: 2.7, Sugar: 5},
	"pasta":       {Calories: 131, Protein: 5, Carbs: 25, Fats: 1.1, Fiber: 1.8, Sugar: 0.6},
	"beans":       {Calories: 127, Protein: 8.7, Carbs: 22.8, Fats: 0.5, Fiber: 6.4, Sugar: 0.3},
	"cheese":      {Calories: 402, Protein: 25, Carbs: 1.3, Fats: 33, Sugar: 0.5},
	"tomato":      {Calories: 18, Protein: 0.9, Carbs: 3.9, Fats: 0.2, Fiber: 1.2, Sugar: 2.6},
	"onion":       {Calories: 40, Protein: 1.1, Carbs: 9.3, Fats: 0.1, Fiber: 1.7, Sugar: 4.2},
	"fish":        {Calories: 206, Protein: 22, Carbs: 0, Fats: 12},
	"oats":        {Calories: 389, Protein: 16.9, Carbs: 66, Fats: 6.9, Fiber: 10.6},
	"banana":      {Calories: 89, Protein: 1.1, Carbs: 22.8, Fats: 0.3, Fiber: 2.6, Sugar: 12.2},
	"apple":       {Calories: 52, Protein: 0.3, Carbs: 13.8, Fats: 0.2, Fiber: 2.4, Sugar: 10.4},
	"yogurt":      {Calories: 59, Protein: 10, Carbs: 3.6, Fats: 0.4, Sugar: 3.2},
	"tofu":        {Calories: 76, Protein: 8, Carbs: 1.9, Fats: 4.8, Fiber: 0.3},
	"flour":       {Calories: 364, Protein: 10.3, Carbs: 76.3, Fats: 1, Fiber: 2.7, Sugar: 0.3},
	"oil":         {Calories: 884, Protein: 0, Carbs: 0, Fats: 100},
	"butter":      {Calories: 717, Protein: 0.9, Carbs: 0.1, Fats: 81},
	"sugar":       {Calories: 387, Protein: 0, Carbs: 100, Fats: 0, Sugar: 100},
	"chickpeas":   {Calories: 164, Protein: 8.9, Carbs: 27.4, Fats: 2.6, Fiber: 7.6, Sugar: 4.8},
	"sweet corn":  {Calories: 86, Protein: 3.3, Carbs: 19, Fats: 1.4, Fiber: 2, Sugar: 6.3},
	"green beans": {Calories: 31, Protein: 1.8, Carbs: 7, Fats: 0.1, Fiber: 3.4, Sugar: 3.3},
}

// gramsPerUnit maps common kitchen units onto grams.
var gramsPerUnit = map[string]float64{
	"g":     1,
	"gram":  1,
	"grams": 1,
	"kg":    1000,
	"ml":    1,
	"l":     1000,
	"cup":   240,
	"cups":  240,
	"tbsp":  15,
	"tsp":   5,
	"piece": 50,
	"pcs":   50,
}

// TableNutritionCalculator estimates recipe nutrition from a built-in lookup
// table of per-100g macro values.
type TableNutritionCalculator struct{}

// NewTableNutritionCalculator returns the default nutrition calculator.
func NewTableNutritionCalculator() *TableNutritionCalculator {
	return &TableNutritionCalculator{}
}

// Calculate sums the macros of each ingredient, scaled by quantity and unit.
// It fails when any ingredient or unit is unknown rather than returning a
// partial estimate.
func (c *TableNutritionCalculator) Calculate(_ context.Context, ingredients []domain.Ingredient) (domain.NutritionalInfo, error) {
	var calories, protein, carbs, fats, fiber, sugar float64

	for _, ing := range ingredients {
		values, ok := nutritionTable[strings.ToLower(strings.TrimSpace(ing.Name))]
		if !ok {
			return domain.NutritionalInfo{}, fmt.Errorf("no nutrition data for ingredient %q", ing.Name)
		}
		grams, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(ing.Unit))]
		if !ok {
			return domain.NutritionalInfo{}, fmt.Errorf("unknown unit %q for ingredient %q", ing.Unit, ing.Name)
		}

		scale := ing.Quantity * grams / 100
		calories += values.Calories * scale
		protein += values.Protein * scale
		carbs += values.Carbs * scale
		fats += values.Fats * scale
		fiber += values.Fiber * scale
		sugar += values.Sugar * scale
	}

	return domain.NewNutritionalInfo(calories, protein, carbs, fats, fiber, sugar)
}
