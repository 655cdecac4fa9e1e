package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/service"
)

// StudentHandler exposes the student lookup endpoints.
type StudentHandler struct {
	students service.IStudentService
	log      *zap.Logger
}

// NewStudentHandler builds a StudentHandler.
func NewStudentHandler(students service.IStudentService, log *zap.Logger) *StudentHandler {
	return &StudentHandler{students: students, log: log.Named("student-handler")}
}

// RegisterRoutes mounts the student routes.
func (h *StudentHandler) RegisterRoutes(router *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	students := router.Group("/students")
	{
		students.GET("", h.List)
		students.GET("/:id", h.Get)
		students.GET("/:id/compliance", h.CheckCompliance)
		students.POST("", append(writeMiddleware, h.Create)...)
		students.PUT("/:id", append(writeMiddleware, h.Update)...)
		students.DELETE("/:id", append(writeMiddleware, h.Delete)...)
	}
}

// List handles GET /students. A q parameter switches to name search.
func (h *StudentHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		items, err := h.students.SearchByName(c.Request.Context(), q)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"students": items})
		return
	}

	page, limit := pagination(c)
	activeOnly := c.Query("include_inactive") != "true"
	result, err := h.students.List(c.Request.Context(), activeOnly, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /students/:id.
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// CheckCompliance handles GET /students/:id/compliance?recipe_id=...
func (h *StudentHandler) CheckCompliance(c *gin.Context) {
	recipeID := c.Query("recipe_id")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}
	result, err := h.students.CheckRecipeCompliance(c.Request.Context(), c.Param("id"), recipeID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /students.
func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateAllergens(req.Allergens); err != nil {
		respondError(c, h.log, err)
		return
	}

	student := &domain.Student{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Grade:           req.Grade,
		ClassName:       req.ClassName,
		DietaryFlags:    req.DietaryFlags,
		Allergens:       req.Allergens,
		GuardianContact: req.GuardianContact,
	}
	created, err := h.students.Create(c.Request.Context(), student)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /students/:id.
func (h *StudentHandler) Update(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateAllergens(req.Allergens); err != nil {
		respondError(c, h.log, err)
		return
	}

	student := &domain.Student{
		ID:              c.Param("id"),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Grade:           req.Grade,
		ClassName:       req.ClassName,
		DietaryFlags:    req.DietaryFlags,
		Allergens:       req.Allergens,
		GuardianContact: req.GuardianContact,
		IsActive:        true,
	}
	updated, err := h.students.Update(c.Request.Context(), student)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /students/:id (soft delete).
func (h *StudentHandler) Delete(c *gin.Context) {
	deleted, err := h.students.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
