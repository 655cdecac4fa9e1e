package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// MealSessionService orchestrates meal planning and attendance recording.
type MealSessionService struct {
	sessions   repository.MealSessionRepository
	attendance repository.AttendanceRepository
	students   repository.StudentRepository
	log        *zap.Logger
}

// NewMealSessionService wires a MealSessionService.
func NewMealSessionService(sessions repository.MealSessionRepository, attendance repository.AttendanceRepository, students repository.StudentRepository, log *zap.Logger) *MealSessionService {
	return &MealSessionService{
		sessions:   sessions,
		attendance: attendance,
		students:   students,
		log:        log.Named("meal-service"),
	}
}

// Create validates and persists a new session. Sessions start as planned
// unless the caller chose another status.
func (s *MealSessionService) Create(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	if session.Status == "" {
		session.Status = domain.SessionPlanned
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	return s.sessions.Save(ctx, session)
}

// Get returns a session by id.
func (s *MealSessionService) Get(ctx context.Context, id string) (*domain.MealSession, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// List returns a page of sessions matching the filter.
func (s *MealSessionService) List(ctx context.Context, filter repository.SessionFilter, page, limit int) (repository.Page[*domain.MealSession], error) {
	return s.sessions.FindAll(ctx, filter, page, limit)
}

// Update validates and replaces a session. Status writes are last-write-wins;
// there is no transition guard.
func (s *MealSessionService) Update(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// Delete removes a session.
func (s *MealSessionService) Delete(ctx context.Context, id string) error {
	deleted, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// RecordAttendance upserts the attendance record for (session, student).
// Recording twice updates the existing record instead of duplicating it.
// Both the session and the student must exist.
func (s *MealSessionService) RecordAttendance(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, record.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	student, err := s.students.FindByID(ctx, record.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := s.attendance.FindBySessionAndStudent(ctx, record.SessionID, record.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Present = record.Present
		existing.MealServed = record.MealServed
		updated, err := s.attendance.Update(ctx, existing)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, domain.ErrNotFound
		}
		return updated, nil
	}
	return s.attendance.Save(ctx, record)
}

// ListAttendance returns the attendance records for a session.
func (s *MealSessionService) ListAttendance(ctx context.Context, sessionID string) ([]*domain.MealAttendance, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return s.attendance.FindBySession(ctx, sessionID)
}
