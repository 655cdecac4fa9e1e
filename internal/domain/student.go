package domain

import (
	"strings"
	"time"
)

// Student is an enrolled child the kitchen serves. Dietary flags and
// allergens drive meal compliance checks.
type Student struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Grade           int          `json:"grade"`
	ClassName       string       `json:"className"`
	DietaryFlags    DietaryFlags `json:"dietaryFlags"`
	Allergens       []string     `json:"allergens"`
	GuardianContact string       `json:"guardianContact"`
	IsActive        bool         `json:"isActive"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (s *Student) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return NewValidationError("firstName", "first name required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		return NewValidationError("lastName", "last name required")
	}
	if s.Grade < 0 {
		return NewValidationError("grade", "must not be negative")
	}
	return nil
}

// FullName joins first and last name for display and search.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// MarkInactive soft-deletes the student record.
func (s *Student) MarkInactive() {
	s.IsActive = false
	s.UpdatedAt = time.Now().UTC()
}

// RecipeCompliance is the result of checking a recipe against a student's
// dietary requirements and allergens.
type RecipeCompliance struct {
	Compliant        bool     `json:"compliant"`
	FailedFlags      []string `json:"failedFlags"`
	MatchedAllergens []string `json:"matchedAllergens"`
}

// CheckRecipeCompliance reports whether the recipe satisfies the student's
// required dietary flags and avoids every allergen on the student's record.
func (s *Student) CheckRecipeCompliance(recipe *Recipe) RecipeCompliance {
	result := RecipeCompliance{Compliant: true}

	have := recipe.DietaryFlags.FlagFields()
	for i, want := range s.DietaryFlags.FlagFields() {
		if want.Set && !have[i].Set {
			result.Compliant = false
			result.FailedFlags = append(result.FailedFlags, want.Name)
		}
	}
	for _, allergen := range s.Allergens {
		if recipe.HasAllergen(allergen) {
			result.Compliant = false
			result.MatchedAllergens = append(result.MatchedAllergens, allergen)
		}
	}
	return result
}
