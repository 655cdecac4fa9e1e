package domain

import (
	"fmt"
	"strings"
	"time"
)

// KnownAllergens is the fixed allergen vocabulary accepted on recipes and
// student records.
var KnownAllergens = []string{
	"dairy", "eggs", "fish", "shellfish", "tree_nuts", "peanuts",
	"wheat", "soy", "sesame",
}

// IsKnownAllergen reports whether name belongs to the allergen vocabulary.
func IsKnownAllergen(name string) bool {
	for _, a := range KnownAllergens {
		if a == name {
			return true
		}
	}
	return false
}

// Ingredient is one entry of a recipe's ordered ingredient list.
type Ingredient struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	IsEssential bool    `json:"isEssential"`
}

// Recipe is the meal-plan aggregate. It exclusively owns its ingredient list
// and nutrition/dietary values; the repository layer alone assigns ID and the
// first-save timestamps.
type Recipe struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Ingredients  []Ingredient     `json:"ingredients"`
	Instructions string           `json:"instructions"`
	Nutrition    *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	DietaryFlags DietaryFlags     `json:"dietaryFlags"`
	Allergens    []string         `json:"allergens"`
	ServingSize  int              `json:"servingSize"`
	PrepTime     int              `json:"prepTime"`
	Seasonal     []string         `json:"seasonal"`
	IsActive     bool             `json:"isActive"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// NewRecipe builds an unpersisted recipe with defaults applied. Call
// Validate before handing it to a repository.
func NewRecipe(name, description string, ingredients []Ingredient, instructions string, flags DietaryFlags, allergens []string, servingSize, prepTime int) *Recipe {
	return &Recipe{
		Name:         name,
		Description:  description,
		Ingredients:  ingredients,
		Instructions: instructions,
		DietaryFlags: flags,
		Allergens:    allergens,
		ServingSize:  servingSize,
		PrepTime:     prepTime,
		IsActive:     true,
	}
}

// Validate checks the recipe invariants in a fixed order and returns a
// ValidationError for the first violation.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name", "name required")
	}
	if len(r.Ingredients) == 0 {
		return NewValidationError("ingredients", "at least one ingredient required")
	}
	if strings.TrimSpace(r.Instructions) == "" {
		return NewValidationError("instructions", "instructions required")
	}
	if r.ServingSize <= 0 {
		return NewValidationError("servingSize", "serving size must be > 0")
	}
	return nil
}

// AdjustServingSize rescales every ingredient quantity by
// newSize/currentSize and records the new serving size. A non-positive
// newSize is rejected: scaling by it would zero out or negate quantities.
func (r *Recipe) AdjustServingSize(newSize int) error {
	if newSize <= 0 {
		return fmt.Errorf("serving size must be > 0: %w", ErrInvalidArgument)
	}
	multiplier := float64(newSize) / float64(r.ServingSize)
	for i := range r.Ingredients {
		r.Ingredients[i].Quantity *= multiplier
	}
	r.ServingSize = newSize
	r.touch()
	return nil
}

// UpdateNutrition replaces the nutrition values unconditionally.
func (r *Recipe) UpdateNutrition(info NutritionalInfo) {
	r.Nutrition = &info
	r.touch()
}

// MarkInactive soft-deletes the recipe. Calling it on an already inactive
// recipe is not an error; it only touches the update timestamp again.
func (r *Recipe) MarkInactive() {
	r.IsActive = false
	r.touch()
}

// IsVegetarian reports the vegetarian dietary flag.
func (r *Recipe) IsVegetarian() bool {
	return r.DietaryFlags.Vegetarian
}

// IsHalal reports the halal dietary flag.
func (r *Recipe) IsHalal() bool {
	return r.DietaryFlags.Halal
}

// HasAllergen reports whether the recipe lists the given allergen.
func (r *Recipe) HasAllergen(allergen string) bool {
	for _, a := range r.Allergens {
		if a == allergen {
			return true
		}
	}
	return false
}

func (r *Recipe) touch() {
	r.UpdatedAt = time.Now().UTC()
}
