package domain

// DietaryFlags is the set of dietary classifications carried by recipes and
// students. It is a value type: copies are independent and there are no
// setters. No cross-field rule is applied — vegan does not force vegetarian.
type DietaryFlags struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	Halal      bool `json:"halal"`
	GlutenFree bool `json:"glutenFree"`
	DairyFree  bool `json:"dairyFree"`
	NutFree    bool `json:"nutFree"`
}

// FlagField pairs a persisted flag field name with its value. The set of
// names is closed; repository adapters build their filters from it instead of
// iterating arbitrary keys.
type FlagField struct {
	Name string
	Set  bool
}

// FlagFields enumerates the flags in their fixed order.
func (f DietaryFlags) FlagFields() []FlagField {
	return []FlagField{
		{"vegetarian", f.Vegetarian},
		{"vegan", f.Vegan},
		{"halal", f.Halal},
		{"glutenFree", f.GlutenFree},
		{"dairyFree", f.DairyFree},
		{"nutFree", f.NutFree},
	}
}

// IsCompliantWith reports whether every flag required (set true) in req is
// also set on f. Flags absent from req are unconstrained; an empty
// requirement set is trivially satisfied.
func (f DietaryFlags) IsCompliantWith(req DietaryFlags) bool {
	have := f.FlagFields()
	for i, want := range req.FlagFields() {
		if want.Set && !have[i].Set {
			return false
		}
	}
	return true
}

var flagLabels = []string{"Vegetarian", "Vegan", "Halal", "Gluten-Free", "Dairy-Free", "Nut-Free"}

// ActiveFlags returns human-readable labels for the set flags, in the fixed
// display order Vegetarian, Vegan, Halal, Gluten-Free, Dairy-Free, Nut-Free.
func (f DietaryFlags) ActiveFlags() []string {
	var labels []string
	for i, field := range f.FlagFields() {
		if field.Set {
			labels = append(labels, flagLabels[i])
		}
	}
	return labels
}

// Any reports whether at least one flag is set.
func (f DietaryFlags) Any() bool {
	for _, field := range f.FlagFields() {
		if field.Set {
			return true
		}
	}
	return false
}
