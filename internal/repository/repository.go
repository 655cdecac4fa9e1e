// Package repository defines the persistence contracts consumed by the
// service layer. Two adapters satisfy them: memory (tests, development) and
// mongodb (production). Lookups that miss return (nil, nil) — absence is a
// result, not an error — and identifiers the adapter cannot parse count as
// absent. Store failures are returned wrapped.
package repository

import (
	"context"
	"time"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

// DefaultLimit is the page size applied when the caller does not choose one.
const DefaultLimit = 20

// Page is one page of a paginated listing. Pages are 1-based.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// NewPage assembles a Page, deriving TotalPages as ceil(total/limit).
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page[T]{Items: items, Total: total, Page: page, TotalPages: totalPages}
}

// Skip returns the number of records to skip for a 1-based page.
func Skip(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	ActiveOnly       bool
	NameQuery        string
	ExcludeAllergens []string
}

// RecipePatch is a partial recipe update; nil fields keep their stored value.
type RecipePatch struct {
	Name         *string
	Description  *string
	Ingredients  *[]domain.Ingredient
	Instructions *string
	Nutrition    *domain.NutritionalInfo
	DietaryFlags *domain.DietaryFlags
	Allergens    *[]string
	ServingSize  *int
	PrepTime     *int
	Seasonal     *[]string
}

// RecipeRepository persists Recipe aggregates. Save assigns identity and the
// create/update timestamps; SoftDelete marks the record inactive and keeps
// it retrievable by ID.
type RecipeRepository interface {
	Save(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	FindAll(ctx context.Context, filter RecipeFilter, page, limit int) (Page[*domain.Recipe], error)
	Update(ctx context.Context, id string, patch RecipePatch) (*domain.Recipe, error)
	SoftDelete(ctx context.Context, id string) (*domain.Recipe, error)
	SearchByIngredient(ctx context.Context, text string) ([]*domain.Recipe, error)
	FindByDietaryFlags(ctx context.Context, flags domain.DietaryFlags) ([]*domain.Recipe, error)
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Status   domain.InventoryStatus
	Category string
}

// InventoryRepository persists inventory items. Update replaces the stored
// record with the merged view the service built and returns nil when the id
// is unknown. Delete is physical: stock rows are operational data, recipes
// alone are soft-deleted.
type InventoryRepository interface {
	Save(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	FindAll(ctx context.Context, filter InventoryFilter, page, limit int) (Page[*domain.InventoryItem], error)
	Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StudentRepository persists student records.
type StudentRepository interface {
	Save(ctx context.Context, student *domain.Student) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	FindAll(ctx context.Context, activeOnly bool, page, limit int) (Page[*domain.Student], error)
	SearchByName(ctx context.Context, query string) ([]*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) (*domain.Student, error)
	SoftDelete(ctx context.Context, id string) (*domain.Student, error)
}

// SessionFilter narrows meal-session listings. Zero time bounds are open.
type SessionFilter struct {
	From     time.Time
	To       time.Time
	MealType domain.MealType
}

// MealSessionRepository persists meal sessions.
type MealSessionRepository interface {
	Save(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error)
	FindByID(ctx context.Context, id string) (*domain.MealSession, error)
	FindAll(ctx context.Context, filter SessionFilter, page, limit int) (Page[*domain.MealSession], error)
	Update(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AttendanceRepository persists per-student attendance for meal sessions.
type AttendanceRepository interface {
	Save(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error)
	FindBySession(ctx context.Context, sessionID string) ([]*domain.MealAttendance, error)
	FindBySessionAndStudent(ctx context.Context, sessionID, studentID string) (*domain.MealAttendance, error)
	Update(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error)
}

// UserRepository persists staff accounts. Create returns
// domain.ErrAlreadyExists when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
