package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

const recipeCacheTTL = 5 * time.Minute

// RecipeService orchestrates recipe use cases: entity validation, best-effort
// nutrition enrichment, persistence and a read-through cache.
type RecipeService struct {
	repo      repository.RecipeRepository
	nutrition NutritionCalculator
	cache     *redis.Client
	log       *zap.Logger
}

// NewRecipeService wires a RecipeService. nutrition and cache may be nil;
// both features degrade to no-ops.
func NewRecipeService(repo repository.RecipeRepository, nutrition NutritionCalculator, cache *redis.Client, log *zap.Logger) *RecipeService {
	return &RecipeService{
		repo:      repo,
		nutrition: nutrition,
		cache:     cache,
		log:       log.Named("recipe-service"),
	}
}

// Create validates the recipe, attaches calculated nutrition when a
// calculator is configured and the recipe has ingredients, and persists it.
// A calculator failure is logged and swallowed: enrichment never blocks
// creation.
func (s *RecipeService) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if s.nutrition != nil && recipe.Nutrition == nil && len(recipe.Ingredients) > 0 {
		info, err := s.nutrition.Calculate(ctx, recipe.Ingredients)
		if err != nil {
			s.log.Warn("nutrition calculation failed, creating recipe without it",
				zap.String("recipe", recipe.Name), zap.Error(err))
		} else {
			recipe.UpdateNutrition(info)
		}
	}

	return s.repo.Save(ctx, recipe)
}

// Get returns a recipe by id, through the cache when one is configured.
func (s *RecipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	s.cacheSet(ctx, recipe)
	return recipe, nil
}

// List returns a page of recipes matching the filter.
func (s *RecipeService) List(ctx context.Context, filter repository.RecipeFilter, page, limit int) (repository.Page[*domain.Recipe], error) {
	return s.repo.FindAll(ctx, filter, page, limit)
}

// Update applies a partial update after checking the patched invariants.
func (s *RecipeService) Update(ctx context.Context, id string, patch repository.RecipePatch) (*domain.Recipe, error) {
	if err := validateRecipePatch(patch); err != nil {
		return nil, err
	}
	recipe, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	s.cacheInvalidate(ctx, id)
	return recipe, nil
}

func validateRecipePatch(patch repository.RecipePatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.NewValidationError("name", "name required")
	}
	if patch.Ingredients != nil && len(*patch.Ingredients) == 0 {
		return domain.NewValidationError("ingredients", "at least one ingredient required")
	}
	if patch.Instructions != nil && strings.TrimSpace(*patch.Instructions) == "" {
		return domain.NewValidationError("instructions", "instructions required")
	}
	if patch.ServingSize != nil && *patch.ServingSize <= 0 {
		return domain.NewValidationError("servingSize", "serving size must be > 0")
	}
	return nil
}

// AdjustServingSize rescales the stored recipe's ingredient quantities to the
// new serving size and persists the result.
func (s *RecipeService) AdjustServingSize(ctx context.Context, id string, servingSize int) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if err := recipe.AdjustServingSize(servingSize); err != nil {
		return nil, err
	}

	patch := repository.RecipePatch{
		Ingredients: &recipe.Ingredients,
		ServingSize: &recipe.ServingSize,
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	s.cacheInvalidate(ctx, id)
	return updated, nil
}

// SetNutrition replaces the stored recipe's nutrition values.
func (s *RecipeService) SetNutrition(ctx context.Context, id string, info domain.NutritionalInfo) (*domain.Recipe, error) {
	updated, err := s.repo.Update(ctx, id, repository.RecipePatch{Nutrition: &info})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	s.cacheInvalidate(ctx, id)
	return updated, nil
}

// Delete soft-deletes the recipe. The record stays retrievable by id but
// drops out of active-only listings.
func (s *RecipeService) Delete(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	s.cacheInvalidate(ctx, id)
	return recipe, nil
}

// SearchByIngredient finds active recipes whose ingredient names contain the
// text, case-insensitively.
func (s *RecipeService) SearchByIngredient(ctx context.Context, text string) ([]*domain.Recipe, error) {
	return s.repo.SearchByIngredient(ctx, text)
}

// FindByDietaryFlags finds active recipes satisfying every set flag.
func (s *RecipeService) FindByDietaryFlags(ctx context.Context, flags domain.DietaryFlags) ([]*domain.Recipe, error) {
	return s.repo.FindByDietaryFlags(ctx, flags)
}

func recipeCacheKey(id string) string {
	return "recipe:" + id
}

func (s *RecipeService) cacheGet(ctx context.Context, id string) *domain.Recipe {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, recipeCacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("recipe cache read failed", zap.String("id", id), zap.Error(err))
		}
		return nil
	}
	var recipe domain.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		s.log.Warn("recipe cache entry corrupt", zap.String("id", id), zap.Error(err))
		return nil
	}
	return &recipe
}

func (s *RecipeService) cacheSet(ctx context.Context, recipe *domain.Recipe) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, recipeCacheKey(recipe.ID), data, recipeCacheTTL).Err(); err != nil {
		s.log.Warn("recipe cache write failed", zap.String("id", recipe.ID), zap.Error(err))
	}
}

func (s *RecipeService) cacheInvalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, recipeCacheKey(id)).Err(); err != nil {
		s.log.Warn("recipe cache invalidation failed", zap.String("id", id), zap.Error(err))
	}
}
