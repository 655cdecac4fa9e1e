package service

import (
	"context"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// NutritionCalculator is the optional enrichment collaborator. Create flows
// treat its failures as non-fatal: nutrition is best-effort.
type NutritionCalculator interface {
	Calculate(ctx context.Context, ingredients []domain.Ingredient) (domain.NutritionalInfo, error)
}

// IRecipeService defines the recipe use cases the API layer consumes.
type IRecipeService interface {
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context, filter repository.RecipeFilter, page, limit int) (repository.Page[*domain.Recipe], error)
	Update(ctx context.Context, id string, patch repository.RecipePatch) (*domain.Recipe, error)
	AdjustServingSize(ctx context.Context, id string, servingSize int) (*domain.Recipe, error)
	SetNutrition(ctx context.Context, id string, info domain.NutritionalInfo) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) (*domain.Recipe, error)
	SearchByIngredient(ctx context.Context, text string) ([]*domain.Recipe, error)
	FindByDietaryFlags(ctx context.Context, flags domain.DietaryFlags) ([]*domain.Recipe, error)
}

// IInventoryService defines the inventory use cases.
type IInventoryService interface {
	Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	Get(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, filter repository.InventoryFilter, page, limit int) (repository.Page[*domain.InventoryItem], error)
	Patch(ctx context.Context, id string, patch InventoryPatch) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// IStudentService defines the student use cases.
type IStudentService interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Get(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context, activeOnly bool, page, limit int) (repository.Page[*domain.Student], error)
	SearchByName(ctx context.Context, query string) ([]*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Delete(ctx context.Context, id string) (*domain.Student, error)
	CheckRecipeCompliance(ctx context.Context, studentID, recipeID string) (domain.RecipeCompliance, error)
}

// IMealSessionService defines the meal session and attendance use cases.
type IMealSessionService interface {
	Create(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error)
	Get(ctx context.Context, id string) (*domain.MealSession, error)
	List(ctx context.Context, filter repository.SessionFilter, page, limit int) (repository.Page[*domain.MealSession], error)
	Update(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error)
	Delete(ctx context.Context, id string) error
	RecordAttendance(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error)
	ListAttendance(ctx context.Context, sessionID string) ([]*domain.MealAttendance, error)
}

// IAuthService defines staff authentication.
type IAuthService interface {
	Register(ctx context.Context, email, username, password string, role domain.Role) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	ValidateToken(token string) (*TokenClaims, error)
}
