package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
	"github.com/lakindu62/kidsfeed/internal/service"
)

// RecipeHandler exposes the recipe endpoints.
type RecipeHandler struct {
	recipes service.IRecipeService
	log     *zap.Logger
}

// NewRecipeHandler builds a RecipeHandler.
func NewRecipeHandler(recipes service.IRecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log.Named("recipe-handler")}
}

// RegisterRoutes mounts the recipe routes. writeMiddleware (auth, then the
// optional rate limiter) guards every mutating route.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id", h.Get)
		recipes.POST("", append(writeMiddleware, h.Create)...)
		recipes.PUT("/:id", append(writeMiddleware, h.Update)...)
		recipes.DELETE("/:id", append(writeMiddleware, h.Delete)...)
		recipes.POST("/:id/serving-size", append(writeMiddleware, h.AdjustServingSize)...)
		recipes.PUT("/:id/nutrition", append(writeMiddleware, h.SetNutrition)...)
	}
}

// List handles GET /recipes. The ingredient and dietary query parameters
// switch to the corresponding search; otherwise a filtered page is returned.
func (h *RecipeHandler) List(c *gin.Context) {
	if text := c.Query("ingredient"); text != "" {
		items, err := h.recipes.SearchByIngredient(c.Request.Context(), text)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": items})
		return
	}

	if csv := c.Query("dietary"); csv != "" {
		flags, err := parseDietaryCSV(csv)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		items, err := h.recipes.FindByDietaryFlags(c.Request.Context(), flags)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": items})
		return
	}

	filter := repository.RecipeFilter{
		ActiveOnly: c.Query("include_inactive") != "true",
		NameQuery:  c.Query("q"),
	}
	if ex := c.Query("exclude"); ex != "" {
		for _, a := range strings.Split(ex, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.ExcludeAllergens = append(filter.ExcludeAllergens, a)
			}
		}
	}

	page, limit := pagination(c)
	result, err := h.recipes.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateAllergens(req.Allergens); err != nil {
		respondError(c, h.log, err)
		return
	}

	ingredients := make([]domain.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, ing.toDomain())
	}

	recipe := domain.NewRecipe(req.Name, req.Description, ingredients, req.Instructions,
		req.DietaryFlags, req.Allergens, req.ServingSize, req.PrepTime)
	recipe.Seasonal = req.Seasonal

	if req.Nutrition != nil {
		info, err := req.Nutrition.toDomain()
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		recipe.Nutrition = &info
	}

	created, err := h.recipes.Create(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /recipes/:id as a partial update.
func (h *RecipeHandler) Update(c *gin.Context) {
	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.RecipePatch{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		DietaryFlags: req.DietaryFlags,
		ServingSize:  req.ServingSize,
		PrepTime:     req.PrepTime,
		Seasonal:     req.Seasonal,
	}
	if req.Ingredients != nil {
		ingredients := make([]domain.Ingredient, 0, len(*req.Ingredients))
		for _, ing := range *req.Ingredients {
			ingredients = append(ingredients, ing.toDomain())
		}
		patch.Ingredients = &ingredients
	}
	if req.Allergens != nil {
		if err := validateAllergens(*req.Allergens); err != nil {
			respondError(c, h.log, err)
			return
		}
		patch.Allergens = req.Allergens
	}
	if req.Nutrition != nil {
		info, err := req.Nutrition.toDomain()
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		patch.Nutrition = &info
	}

	updated, err := h.recipes.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AdjustServingSize handles POST /recipes/:id/serving-size.
func (h *RecipeHandler) AdjustServingSize(c *gin.Context) {
	var req servingSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.recipes.AdjustServingSize(c.Request.Context(), c.Param("id"), req.ServingSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetNutrition handles PUT /recipes/:id/nutrition.
func (h *RecipeHandler) SetNutrition(c *gin.Context) {
	var req nutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, err := req.toDomain()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	updated, err := h.recipes.SetNutrition(c.Request.Context(), c.Param("id"), info)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /recipes/:id. Deletion is soft: the recipe is marked
// inactive and stays retrievable by id.
func (h *RecipeHandler) Delete(c *gin.Context) {
	deleted, err := h.recipes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
