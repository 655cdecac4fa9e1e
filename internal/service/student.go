package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// StudentService orchestrates student lookup and compliance use cases.
type StudentService struct {
	students repository.StudentRepository
	recipes  repository.RecipeRepository
	log      *zap.Logger
}

// NewStudentService wires a StudentService. The recipe repository backs the
// compliance check.
func NewStudentService(students repository.StudentRepository, recipes repository.RecipeRepository, log *zap.Logger) *StudentService {
	return &StudentService{students: students, recipes: recipes, log: log.Named("student-service")}
}

// Create validates and persists a new student record.
func (s *StudentService) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if err := student.Validate(); err != nil {
		return nil, err
	}
	student.IsActive = true
	return s.students.Save(ctx, student)
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrNotFound
	}
	return student, nil
}

// List returns a page of students.
func (s *StudentService) List(ctx context.Context, activeOnly bool, page, limit int) (repository.Page[*domain.Student], error) {
	return s.students.FindAll(ctx, activeOnly, page, limit)
}

// SearchByName finds active students whose name contains the query text.
func (s *StudentService) SearchByName(ctx context.Context, query string) ([]*domain.Student, error) {
	return s.students.SearchByName(ctx, query)
}

// Update validates and replaces a student record.
func (s *StudentService) Update(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if err := student.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.students.Update(ctx, student)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// Delete soft-deletes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrNotFound
	}
	return student, nil
}

// CheckRecipeCompliance reports whether a recipe satisfies a student's
// dietary flags and avoids the student's allergens.
func (s *StudentService) CheckRecipeCompliance(ctx context.Context, studentID, recipeID string) (domain.RecipeCompliance, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return domain.RecipeCompliance{}, err
	}
	if student == nil {
		return domain.RecipeCompliance{}, domain.ErrNotFound
	}

	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeCompliance{}, err
	}
	if recipe == nil {
		return domain.RecipeCompliance{}, domain.ErrNotFound
	}

	return student.CheckRecipeCompliance(recipe), nil
}
