package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

func TestNewNutritionalInfo(t *testing.T) {
	info, err := domain.NewNutritionalInfo(450, 25, 40, 15, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, 450.0, info.Calories)
	assert.Equal(t, 25.0, info.Protein)
}

func TestNewNutritionalInfoRejectsNegativeMacros(t *testing.T) {
	for _, field := range []string{"calories", "protein", "carbs", "fats"} {
		args := map[string]float64{"calories": 100, "protein": 1, "carbs": 1, "fats": 1}
		args[field] = -1

		_, err := domain.NewNutritionalInfo(args["calories"], args["protein"], args["carbs"], args["fats"], 0, 0)
		require.Error(t, err, field)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), field)
	}
}

func TestNewNutritionalInfoAllowsNegativeFiberAndSugar(t *testing.T) {
	// Fiber and sugar are unchecked, matching how existing records were
	// stored before validation tightened.
	info, err := domain.NewNutritionalInfo(100, 1, 1, 1, -2, -3)
	require.NoError(t, err)
	assert.Equal(t, -2.0, info.Fiber)
	assert.Equal(t, -3.0, info.Sugar)
}

func TestTotalMacros(t *testing.T) {
	info, err := domain.NewNutritionalInfo(450, 25, 40, 15, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, 80.0, info.TotalMacros())
}

func TestCaloriesBreakdown(t *testing.T) {
	info, err := domain.NewNutritionalInfo(450, 25, 40, 15, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, info.CaloriesFromProtein())
	assert.Equal(t, 160.0, info.CaloriesFromCarbs())
	assert.Equal(t, 135.0, info.CaloriesFromFats())
}

func TestIsHighProtein(t *testing.T) {
	low, _ := domain.NewNutritionalInfo(100, 20, 0, 0, 0, 0)
	assert.False(t, low.IsHighProtein(), "threshold is strict")

	high, _ := domain.NewNutritionalInfo(100, 20.5, 0, 0, 0, 0)
	assert.True(t, high.IsHighProtein())
}

func TestEquals(t *testing.T) {
	a, _ := domain.NewNutritionalInfo(100, 10, 10, 5, 1, 1)
	b, _ := domain.NewNutritionalInfo(100, 10, 10, 5, 1, 1)
	c, _ := domain.NewNutritionalInfo(200, 10, 10, 5, 1, 1)

	assert.True(t, a.Equals(&b))
	assert.False(t, a.Equals(&c))
	assert.False(t, a.Equals(nil))
}
