package domain

// NutritionalInfo holds per-serving nutrition values. Calories are kcal,
// everything else grams. It is a value type and is never mutated after
// construction.
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// highProteinThreshold is the strict lower bound, in grams, above which a
// serving counts as high protein.
const highProteinThreshold = 20

// NewNutritionalInfo validates and builds a NutritionalInfo. Calories,
// protein, carbs and fats must be non-negative. Fiber and sugar are accepted
// unchecked: the legacy data model never validated them and stored records
// exist with negative values, so tightening this is a migration, not a fix.
func NewNutritionalInfo(calories, protein, carbs, fats, fiber, sugar float64) (NutritionalInfo, error) {
	switch {
	case calories < 0:
		return NutritionalInfo{}, NewValidationError("calories", "must not be negative")
	case protein < 0:
		return NutritionalInfo{}, NewValidationError("protein", "must not be negative")
	case carbs < 0:
		return NutritionalInfo{}, NewValidationError("carbs", "must not be negative")
	case fats < 0:
		return NutritionalInfo{}, NewValidationError("fats", "must not be negative")
	}
	return NutritionalInfo{
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fats:     fats,
		Fiber:    fiber,
		Sugar:    sugar,
	}, nil
}

// TotalMacros returns protein + carbs + fats in grams.
func (n NutritionalInfo) TotalMacros() float64 {
	return n.Protein + n.Carbs + n.Fats
}

// CaloriesFromProtein returns the kcal contributed by protein (4 kcal/g).
func (n NutritionalInfo) CaloriesFromProtein() float64 {
	return n.Protein * 4
}

// CaloriesFromCarbs returns the kcal contributed by carbohydrates (4 kcal/g).
func (n NutritionalInfo) CaloriesFromCarbs() float64 {
	return n.Carbs * 4
}

// CaloriesFromFats returns the kcal contributed by fats (9 kcal/g).
func (n NutritionalInfo) CaloriesFromFats() float64 {
	return n.Fats * 9
}

// IsHighProtein reports whether protein strictly exceeds 20g.
func (n NutritionalInfo) IsHighProtein() bool {
	return n.Protein > highProteinThreshold
}

// Equals reports exact field-wise equality. A nil other never matches.
func (n NutritionalInfo) Equals(other *NutritionalInfo) bool {
	if other == nil {
		return false
	}
	return n == *other
}
