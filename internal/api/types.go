package api

import (
	"strings"
	"time"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

type ingredientRequest struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	IsEssential bool    `json:"isEssential"`
}

func (r ingredientRequest) toDomain() domain.Ingredient {
	return domain.Ingredient(r)
}

type nutritionRequest struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

func (r nutritionRequest) toDomain() (domain.NutritionalInfo, error) {
	return domain.NewNutritionalInfo(r.Calories, r.Protein, r.Carbs, r.Fats, r.Fiber, r.Sugar)
}

type createRecipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Ingredients  []ingredientRequest `json:"ingredients"`
	Instructions string              `json:"instructions"`
	Nutrition    *nutritionRequest   `json:"nutritionalInfo"`
	DietaryFlags domain.DietaryFlags `json:"dietaryFlags"`
	Allergens    []string            `json:"allergens"`
	ServingSize  int                 `json:"servingSize"`
	PrepTime     int                 `json:"prepTime"`
	Seasonal     []string            `json:"seasonal"`
}

type updateRecipeRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Ingredients  *[]ingredientRequest `json:"ingredients"`
	Instructions *string              `json:"instructions"`
	Nutrition    *nutritionRequest    `json:"nutritionalInfo"`
	DietaryFlags *domain.DietaryFlags `json:"dietaryFlags"`
	Allergens    *[]string            `json:"allergens"`
	ServingSize  *int                 `json:"servingSize"`
	PrepTime     *int                 `json:"prepTime"`
	Seasonal     *[]string            `json:"seasonal"`
}

type servingSizeRequest struct {
	ServingSize int `json:"servingSize"`
}

type createInventoryRequest struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ReorderLevel *float64   `json:"reorderLevel"`
	ExpiryDate   *time.Time `json:"expiryDate"`
}

type patchInventoryRequest struct {
	Name         *string    `json:"name"`
	Category     *string    `json:"category"`
	Quantity     *float64   `json:"quantity"`
	Unit         *string    `json:"unit"`
	ReorderLevel *float64   `json:"reorderLevel"`
	ExpiryDate   *time.Time `json:"expiryDate"`
	ClearExpiry  bool       `json:"clearExpiry"`
}

type studentRequest struct {
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	Grade           int                 `json:"grade"`
	ClassName       string              `json:"className"`
	DietaryFlags    domain.DietaryFlags `json:"dietaryFlags"`
	Allergens       []string            `json:"allergens"`
	GuardianContact string              `json:"guardianContact"`
}

type mealSessionRequest struct {
	Date            time.Time `json:"date"`
	MealType        string    `json:"mealType"`
	RecipeIDs       []string  `json:"recipeIds"`
	PlannedServings int       `json:"plannedServings"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
}

type attendanceRequest struct {
	StudentID  string `json:"studentId"`
	Present    bool   `json:"present"`
	MealServed bool   `json:"mealServed"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// validateAllergens checks every name against the fixed allergen vocabulary.
func validateAllergens(allergens []string) error {
	for _, a := range allergens {
		if !domain.IsKnownAllergen(a) {
			return domain.NewValidationError("allergens", "unknown allergen: "+a)
		}
	}
	return nil
}

// parseDietaryCSV maps a comma-separated list of flag names onto
// DietaryFlags. The vocabulary is closed; unknown names are reported instead
// of silently ignored.
func parseDietaryCSV(csv string) (domain.DietaryFlags, error) {
	var flags domain.DietaryFlags
	for _, raw := range strings.Split(csv, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		switch name {
		case "vegetarian":
			flags.Vegetarian = true
		case "vegan":
			flags.Vegan = true
		case "halal":
			flags.Halal = true
		case "glutenfree", "gluten-free":
			flags.GlutenFree = true
		case "dairyfree", "dairy-free":
			flags.DairyFree = true
		case "nutfree", "nut-free":
			flags.NutFree = true
		default:
			return domain.DietaryFlags{}, domain.NewValidationError("dietary", "unknown dietary flag: "+name)
		}
	}
	return flags, nil
}
