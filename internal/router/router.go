package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakindu62/kidsfeed/internal/api"
	"github.com/lakindu62/kidsfeed/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth        *api.AuthHandler
	Recipes     *api.RecipeHandler
	Inventory   *api.InventoryHandler
	Students    *api.StudentHandler
	MealSession *api.MealSessionHandler
}

// Setup configures the application routes. Reads are public; writes require
// a bearer token, and recipe writes additionally pass the rate limiter when
// one is configured.
func Setup(handlers Handlers, validator middleware.TokenValidator, rateLimiter *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	handlers.Auth.RegisterRoutes(v1)

	write := []gin.HandlerFunc{middleware.Auth(validator)}
	recipeWrite := write
	if rateLimiter != nil {
		recipeWrite = append([]gin.HandlerFunc{middleware.Auth(validator)}, rateLimiter.Middleware())
	}

	handlers.Recipes.RegisterRoutes(v1, recipeWrite...)
	handlers.Inventory.RegisterRoutes(v1, write...)
	handlers.Students.RegisterRoutes(v1, write...)
	handlers.MealSession.RegisterRoutes(v1, write...)

	return router
}
