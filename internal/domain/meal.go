package domain

import "time"

// MealType classifies a meal session.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
)

// IsValid reports whether t is a recognized meal type.
func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealSnack:
		return true
	}
	return false
}

// SessionStatus tracks a meal session through the serving day.
type SessionStatus string

const (
	SessionPlanned    SessionStatus = "planned"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// IsValid reports whether s is a recognized session status.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionPlanned, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// MealSession is one planned serving of one or more recipes on a given date.
// Updates are last-write-wins; there is no transition guard between statuses.
type MealSession struct {
	ID              string        `json:"id"`
	Date            time.Time     `json:"date"`
	MealType        MealType      `json:"mealType"`
	RecipeIDs       []string      `json:"recipeIds"`
	PlannedServings int           `json:"plannedServings"`
	Notes           string        `json:"notes"`
	Status          SessionStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (m *MealSession) Validate() error {
	if m.Date.IsZero() {
		return NewValidationError("date", "date required")
	}
	if !m.MealType.IsValid() {
		return NewValidationError("mealType", "unknown meal type")
	}
	if m.PlannedServings < 0 {
		return NewValidationError("plannedServings", "must not be negative")
	}
	if m.Status != "" && !m.Status.IsValid() {
		return NewValidationError("status", "unknown status")
	}
	return nil
}

// MealAttendance records whether a student attended a session and was served.
// One record exists per (session, student); recording again updates it.
type MealAttendance struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	StudentID  string    `json:"studentId"`
	Present    bool      `json:"present"`
	MealServed bool      `json:"mealServed"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (a *MealAttendance) Validate() error {
	if a.SessionID == "" {
		return NewValidationError("sessionId", "session id required")
	}
	if a.StudentID == "" {
		return NewValidationError("studentId", "student id required")
	}
	return nil
}
