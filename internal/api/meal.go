package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
	"github.com/lakindu62/kidsfeed/internal/service"
)

// MealSessionHandler exposes the meal session and attendance endpoints.
type MealSessionHandler struct {
	sessions service.IMealSessionService
	log      *zap.Logger
}

// NewMealSessionHandler builds a MealSessionHandler.
func NewMealSessionHandler(sessions service.IMealSessionService, log *zap.Logger) *MealSessionHandler {
	return &MealSessionHandler{sessions: sessions, log: log.Named("meal-handler")}
}

// RegisterRoutes mounts the meal session routes.
func (h *MealSessionHandler) RegisterRoutes(router *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	sessions := router.Group("/meal-sessions")
	{
		sessions.GET("", h.List)
		sessions.GET("/:id", h.Get)
		sessions.GET("/:id/attendance", h.ListAttendance)
		sessions.POST("", append(writeMiddleware, h.Create)...)
		sessions.PUT("/:id", append(writeMiddleware, h.Update)...)
		sessions.DELETE("/:id", append(writeMiddleware, h.Delete)...)
		sessions.POST("/:id/attendance", append(writeMiddleware, h.RecordAttendance)...)
	}
}

// List handles GET /meal-sessions with optional from/to/meal_type filters.
func (h *MealSessionHandler) List(c *gin.Context) {
	filter := repository.SessionFilter{
		MealType: domain.MealType(c.Query("meal_type")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		filter.To = t
	}

	page, limit := pagination(c)
	result, err := h.sessions.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /meal-sessions/:id.
func (h *MealSessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Create handles POST /meal-sessions.
func (h *MealSessionHandler) Create(c *gin.Context) {
	var req mealSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := &domain.MealSession{
		Date:            req.Date,
		MealType:        domain.MealType(req.MealType),
		RecipeIDs:       req.RecipeIDs,
		PlannedServings: req.PlannedServings,
		Notes:           req.Notes,
		Status:          domain.SessionStatus(req.Status),
	}
	created, err := h.sessions.Create(c.Request.Context(), session)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /meal-sessions/:id.
func (h *MealSessionHandler) Update(c *gin.Context) {
	var req mealSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := &domain.MealSession{
		ID:              c.Param("id"),
		Date:            req.Date,
		MealType:        domain.MealType(req.MealType),
		RecipeIDs:       req.RecipeIDs,
		PlannedServings: req.PlannedServings,
		Notes:           req.Notes,
		Status:          domain.SessionStatus(req.Status),
	}
	updated, err := h.sessions.Update(c.Request.Context(), session)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /meal-sessions/:id.
func (h *MealSessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal session deleted"})
}

// RecordAttendance handles POST /meal-sessions/:id/attendance. Recording the
// same student twice updates the existing record.
func (h *MealSessionHandler) RecordAttendance(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &domain.MealAttendance{
		SessionID:  c.Param("id"),
		StudentID:  req.StudentID,
		Present:    req.Present,
		MealServed: req.MealServed,
	}
	saved, err := h.sessions.RecordAttendance(c.Request.Context(), record)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ListAttendance handles GET /meal-sessions/:id/attendance.
func (h *MealSessionHandler) ListAttendance(c *gin.Context) {
	records, err := h.sessions.ListAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}
