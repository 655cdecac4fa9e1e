package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
	"github.com/lakindu62/kidsfeed/internal/repository/memory"
)

func seedSession(t *testing.T, repo *memory.MealSessionRepository, date time.Time, mealType domain.MealType) *domain.MealSession {
	t.Helper()
	saved, err := repo.Save(context.Background(), &domain.MealSession{
		Date:            date,
		MealType:        mealType,
		PlannedServings: 100,
	})
	require.NoError(t, err)
	return saved
}

func TestSessionSaveDefaultsStatus(t *testing.T) {
	repo := memory.NewMealSessionRepository()
	saved := seedSession(t, repo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.MealLunch)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.SessionPlanned, saved.Status)
}

func TestSessionFindAllFilter(t *testing.T) {
	repo := memory.NewMealSessionRepository()
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	seedSession(t, repo, day(1), domain.MealBreakfast)
	seedSession(t, repo, day(2), domain.MealLunch)
	seedSession(t, repo, day(3), domain.MealLunch)
	seedSession(t, repo, day(4), domain.MealSnack)

	lunches, err := repo.FindAll(context.Background(), repository.SessionFilter{MealType: domain.MealLunch}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, lunches.Items, 2)

	ranged, err := repo.FindAll(context.Background(), repository.SessionFilter{From: day(2), To: day(3)}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, ranged.Items, 2)
}

func TestSessionUpdate(t *testing.T) {
	repo := memory.NewMealSessionRepository()
	saved := seedSession(t, repo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.MealLunch)

	saved.Status = domain.SessionCompleted
	saved.Notes = "served on time"
	updated, err := repo.Update(context.Background(), saved)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.SessionCompleted, updated.Status)
	assert.Equal(t, "served on time", updated.Notes)

	absent, err := repo.Update(context.Background(), &domain.MealSession{ID: "no-such-id"})
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestSessionDelete(t *testing.T) {
	repo := memory.NewMealSessionRepository()
	saved := seedSession(t, repo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.MealLunch)

	deleted, err := repo.Delete(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	again, err := repo.Delete(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestAttendanceSaveAndLookup(t *testing.T) {
	repo := memory.NewAttendanceRepository()

	saved, err := repo.Save(context.Background(), &domain.MealAttendance{
		SessionID:  "session-1",
		StudentID:  "student-1",
		Present:    true,
		MealServed: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.RecordedAt.IsZero())

	got, err := repo.FindBySessionAndStudent(context.Background(), "session-1", "student-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)

	absent, err := repo.FindBySessionAndStudent(context.Background(), "session-1", "student-2")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestAttendanceFindBySession(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	for _, studentID := range []string{"student-1", "student-2"} {
		_, err := repo.Save(context.Background(), &domain.MealAttendance{
			SessionID: "session-1",
			StudentID: studentID,
			Present:   true,
		})
		require.NoError(t, err)
	}
	_, err := repo.Save(context.Background(), &domain.MealAttendance{
		SessionID: "session-2",
		StudentID: "student-1",
	})
	require.NoError(t, err)

	records, err := repo.FindBySession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAttendanceUpdate(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	saved, err := repo.Save(context.Background(), &domain.MealAttendance{
		SessionID: "session-1",
		StudentID: "student-1",
		Present:   false,
	})
	require.NoError(t, err)

	saved.Present = true
	saved.MealServed = true
	updated, err := repo.Update(context.Background(), saved)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Present)
	assert.True(t, updated.MealServed)
	assert.Equal(t, saved.ID, updated.ID)
}
