package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository/memory"
	"github.com/lakindu62/kidsfeed/internal/service"
)

func newStudentFixture(t *testing.T) (*service.StudentService, *memory.RecipeRepository) {
	t.Helper()
	recipes := memory.NewRecipeRepository()
	return service.NewStudentService(memory.NewStudentRepository(), recipes, zap.NewNop()), recipes
}

func TestStudentCreateAndGet(t *testing.T) {
	svc, _ := newStudentFixture(t)

	created, err := svc.Create(context.Background(), &domain.Student{
		FirstName: "Amaya",
		LastName:  "Perera",
		Grade:     3,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amaya Perera", got.FullName())
}

func TestStudentCreateRejectsInvalid(t *testing.T) {
	svc, _ := newStudentFixture(t)

	_, err := svc.Create(context.Background(), &domain.Student{LastName: "Perera"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestStudentComplianceCheck(t *testing.T) {
	svc, recipes := newStudentFixture(t)

	student, err := svc.Create(context.Background(), &domain.Student{
		FirstName:    "Amaya",
		LastName:     "Perera",
		Grade:        3,
		DietaryFlags: domain.DietaryFlags{Vegetarian: true},
		Allergens:    []string{"eggs"},
	})
	require.NoError(t, err)

	recipe, err := recipes.Save(context.Background(), domain.NewRecipe(
		"Egg Fried Rice",
		"Rice with egg.",
		[]domain.Ingredient{{Name: "rice", Quantity: 200, Unit: "g"}},
		"Fry it.",
		domain.DietaryFlags{Vegetarian: true},
		[]string{"eggs"},
		4, 20,
	))
	require.NoError(t, err)

	result, err := svc.CheckRecipeCompliance(context.Background(), student.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, result.Compliant)
	assert.Equal(t, []string{"eggs"}, result.MatchedAllergens)
	assert.Empty(t, result.FailedFlags)
}

func TestStudentComplianceCheckMissingEntities(t *testing.T) {
	svc, recipes := newStudentFixture(t)

	recipe, err := recipes.Save(context.Background(), domain.NewRecipe(
		"Plain Rice", "Just rice.",
		[]domain.Ingredient{{Name: "rice", Quantity: 200, Unit: "g"}},
		"Boil it.", domain.DietaryFlags{}, nil, 4, 15,
	))
	require.NoError(t, err)

	_, err = svc.CheckRecipeCompliance(context.Background(), "no-such-student", recipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	student, err := svc.Create(context.Background(), &domain.Student{
		FirstName: "Amaya", LastName: "Perera", Grade: 3,
	})
	require.NoError(t, err)

	_, err = svc.CheckRecipeCompliance(context.Background(), student.ID, "no-such-recipe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStudentDeleteIsSoft(t *testing.T) {
	svc, _ := newStudentFixture(t)

	created, err := svc.Create(context.Background(), &domain.Student{
		FirstName: "Amaya", LastName: "Perera", Grade: 3,
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	// Still retrievable by id.
	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
