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

// StudentRepository is an in-memory repository.StudentRepository.
type StudentRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Student
	order   []string
}

// NewStudentRepository returns an empty in-memory student store.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{records: make(map[string]*domain.Student)}
}

func (r *StudentRepository) Save(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneStudent(student)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.records[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneStudent(stored), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return cloneStudent(stored), nil
}

func (r *StudentRepository) FindAll(ctx context.Context, activeOnly bool, page, limit int) (repository.Page[*domain.Student], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 1 {
		limit = repository.DefaultLimit
	}
	var matched []*domain.Student
	for _, id := range r.order {
		stored := r.records[id]
		if activeOnly && !stored.IsActive {
			continue
		}
		matched = append(matched, stored)
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

	items := make([]*domain.Student, 0, end-start)
	for _, stored := range matched[start:end] {
		items = append(items, cloneStudent(stored))
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *StudentRepository) SearchByName(ctx context.Context, query string) ([]*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var items []*domain.Student
	for _, id := range r.order {
		stored := r.records[id]
		if !stored.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(stored.FullName()), q) {
			items = append(items, cloneStudent(stored))
		}
	}
	return items, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[student.ID]
	if !ok {
		return nil, nil
	}
	updated := cloneStudent(student)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.records[student.ID] = updated
	return cloneStudent(updated), nil
}

func (r *StudentRepository) SoftDelete(ctx context.Context, id string) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	stored.IsActive = false
	stored.UpdatedAt = time.Now().UTC()
	return cloneStudent(stored), nil
}

func cloneStudent(student *domain.Student) *domain.Student {
	clone := *student
	clone.Allergens = append([]string(nil), student.Allergens...)
	return &clone
}
