// Package memory provides map-backed repository adapters used by tests and
// local development. Records are deep-copied on the way in and out so callers
// never alias the stored state.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// RecipeRepository is an in-memory repository.RecipeRepository.
type RecipeRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Recipe
	order   []string
}

// NewRecipeRepository returns an empty in-memory recipe store.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{records: make(map[string]*domain.Recipe)}
}

func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneRecipe(recipe)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.records[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneRecipe(stored), nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return cloneRecipe(stored), nil
}

func (r *RecipeRepository) FindAll(ctx context.Context, filter repository.RecipeFilter, page, limit int) (repository.Page[*domain.Recipe], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 1 {
		limit = repository.DefaultLimit
	}
	var matched []*domain.Recipe
	for _, id := range r.order {
		stored := r.records[id]
		if recipeMatches(stored, filter) {
			matched = append(matched, stored)
		}
	}

	total := int64(len(matched))
	start := repository.Skip(page, limit)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]*domain.Recipe, 0, end-start)
	for _, stored := range matched[start:end] {
		items = append(items, cloneRecipe(stored))
	}
	return repository.NewPage(items, total, page, limit), nil
}

func recipeMatches(recipe *domain.Recipe, filter repository.RecipeFilter) bool {
	if filter.ActiveOnly && !recipe.IsActive {
		return false
	}
	if filter.NameQuery != "" {
		q := strings.ToLower(filter.NameQuery)
		if !strings.Contains(strings.ToLower(recipe.Name), q) &&
			!strings.Contains(strings.ToLower(recipe.Description), q) {
			return false
		}
	}
	for _, allergen := range filter.ExcludeAllergens {
		if recipe.HasAllergen(allergen) {
			return false
		}
	}
	return true
}

func (r *RecipeRepository) Update(ctx context.Context, id string, patch repository.RecipePatch) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	applyRecipePatch(stored, patch)
	stored.UpdatedAt = time.Now().UTC()
	return cloneRecipe(stored), nil
}

func applyRecipePatch(recipe *domain.Recipe, patch repository.RecipePatch) {
	if patch.Name != nil {
		recipe.Name = *patch.Name
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = append([]domain.Ingredient(nil), (*patch.Ingredients)...)
	}
	if patch.Instructions != nil {
		recipe.Instructions = *patch.Instructions
	}
	if patch.Nutrition != nil {
		info := *patch.Nutrition
		recipe.Nutrition = &info
	}
	if patch.DietaryFlags != nil {
		recipe.DietaryFlags = *patch.DietaryFlags
	}
	if patch.Allergens != nil {
		recipe.Allergens = append([]string(nil), (*patch.Allergens)...)
	}
	if patch.ServingSize != nil {
		recipe.ServingSize = *patch.ServingSize
	}
	if patch.PrepTime != nil {
		recipe.PrepTime = *patch.PrepTime
	}
	if patch.Seasonal != nil {
		recipe.Seasonal = append([]string(nil), (*patch.Seasonal)...)
	}
}

func (r *RecipeRepository) SoftDelete(ctx context.Context, id string) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	stored.IsActive = false
	stored.UpdatedAt = time.Now().UTC()
	return cloneRecipe(stored), nil
}

func (r *RecipeRepository) SearchByIngredient(ctx context.Context, text string) ([]*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(text)
	var items []*domain.Recipe
	for _, id := range r.order {
		stored := r.records[id]
		if !stored.IsActive {
			continue
		}
		for _, ing := range stored.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), q) {
				items = append(items, cloneRecipe(stored))
				break
			}
		}
	}
	return items, nil
}

func (r *RecipeRepository) FindByDietaryFlags(ctx context.Context, flags domain.DietaryFlags) ([]*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domain.Recipe
	for _, id := range r.order {
		stored := r.records[id]
		if stored.IsActive && stored.DietaryFlags.IsCompliantWith(flags) {
			items = append(items, cloneRecipe(stored))
		}
	}
	return items, nil
}

func cloneRecipe(recipe *domain.Recipe) *domain.Recipe {
	clone := *recipe
	clone.Ingredients = append([]domain.Ingredient(nil), recipe.Ingredients...)
	clone.Allergens = append([]string(nil), recipe.Allergens...)
	clone.Seasonal = append([]string(nil), recipe.Seasonal...)
	if recipe.Nutrition != nil {
		info := *recipe.Nutrition
		clone.Nutrition = &info
	}
	return &clone
}
