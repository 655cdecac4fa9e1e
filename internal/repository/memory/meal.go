package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// MealSessionRepository is an in-memory repository.MealSessionRepository.
type MealSessionRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.MealSession
	order   []string
}

// NewMealSessionRepository returns an empty in-memory session store.
func NewMealSessionRepository() *MealSessionRepository {
	return &MealSessionRepository{records: make(map[string]*domain.MealSession)}
}

func (r *MealSessionRepository) Save(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneSession(session)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Status == "" {
		stored.Status = domain.SessionPlanned
	}

	r.records[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneSession(stored), nil
}

func (r *MealSessionRepository) FindByID(ctx context.Context, id string) (*domain.MealSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(stored), nil
}

func (r *MealSessionRepository) FindAll(ctx context.Context, filter repository.SessionFilter, page, limit int) (repository.Page[*domain.MealSession], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 1 {
		limit = repository.DefaultLimit
	}
	var matched []*domain.MealSession
	for _, id := range r.order {
		stored := r.records[id]
		if !filter.From.IsZero() && stored.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && stored.Date.After(filter.To) {
			continue
		}
		if filter.MealType != "" && stored.MealType != filter.MealType {
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

	items := make([]*domain.MealSession, 0, end-start)
	for _, stored := range matched[start:end] {
		items = append(items, cloneSession(stored))
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *MealSessionRepository) Update(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[session.ID]
	if !ok {
		return nil, nil
	}
	updated := cloneSession(session)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.records[session.ID] = updated
	return cloneSession(updated), nil
}

func (r *MealSessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func cloneSession(session *domain.MealSession) *domain.MealSession {
	clone := *session
	clone.RecipeIDs = append([]string(nil), session.RecipeIDs...)
	return &clone
}

// AttendanceRepository is an in-memory repository.AttendanceRepository.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.MealAttendance
	order   []string
}

// NewAttendanceRepository returns an empty in-memory attendance store.
func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]*domain.MealAttendance)}
}

func (r *AttendanceRepository) Save(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	stored.ID = uuid.NewString()
	stored.RecordedAt = time.Now().UTC()

	r.records[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *AttendanceRepository) FindBySession(ctx context.Context, sessionID string) ([]*domain.MealAttendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domain.MealAttendance
	for _, id := range r.order {
		stored := r.records[id]
		if stored.SessionID == sessionID {
			out := *stored
			items = append(items, &out)
		}
	}
	return items, nil
}

func (r *AttendanceRepository) FindBySessionAndStudent(ctx context.Context, sessionID, studentID string) (*domain.MealAttendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		stored := r.records[id]
		if stored.SessionID == sessionID && stored.StudentID == studentID {
			out := *stored
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return nil, nil
	}
	updated := *record
	updated.RecordedAt = time.Now().UTC()
	r.records[record.ID] = &updated
	out := updated
	return &out, nil
}
