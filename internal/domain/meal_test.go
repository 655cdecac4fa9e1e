package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

func TestMealTypeIsValid(t *testing.T) {
	assert.True(t, domain.MealBreakfast.IsValid())
	assert.True(t, domain.MealLunch.IsValid())
	assert.True(t, domain.MealSnack.IsValid())
	assert.False(t, domain.MealType("dinner").IsValid())
}

func TestMealSessionValidate(t *testing.T) {
	valid := &domain.MealSession{
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		MealType:        domain.MealLunch,
		PlannedServings: 120,
	}
	assert.NoError(t, valid.Validate())

	noDate := *valid
	noDate.Date = time.Time{}
	assert.Error(t, noDate.Validate())

	badType := *valid
	badType.MealType = "dinner"
	assert.Error(t, badType.Validate())

	negative := *valid
	negative.PlannedServings = -1
	assert.Error(t, negative.Validate())

	badStatus := *valid
	badStatus.Status = "archived"
	assert.Error(t, badStatus.Validate())

	withStatus := *valid
	withStatus.Status = domain.SessionCompleted
	assert.NoError(t, withStatus.Validate())
}

func TestMealAttendanceValidate(t *testing.T) {
	record := &domain.MealAttendance{SessionID: "s1", StudentID: "st1", Present: true}
	assert.NoError(t, record.Validate())

	record.SessionID = ""
	assert.Error(t, record.Validate())

	record.SessionID = "s1"
	record.StudentID = ""
	assert.Error(t, record.Validate())
}
