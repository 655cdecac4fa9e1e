package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/api"
	"github.com/lakindu62/kidsfeed/internal/repository/memory"
	"github.com/lakindu62/kidsfeed/internal/router"
	"github.com/lakindu62/kidsfeed/internal/service"
)

type testApp struct {
	engine *gin.Engine
	token  string
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	recipeRepo := memory.NewRecipeRepository()
	studentRepo := memory.NewStudentRepository()

	recipeSvc := service.NewRecipeService(recipeRepo, nil, nil, log)
	inventorySvc := service.NewInventoryService(memory.NewInventoryRepository(), log)
	studentSvc := service.NewStudentService(studentRepo, recipeRepo, log)
	mealSvc := service.NewMealSessionService(memory.NewMealSessionRepository(), memory.NewAttendanceRepository(), studentRepo, log)
	authSvc := service.NewAuthService(memory.NewUserRepository(), "test-secret", log)

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authSvc, log),
		Recipes:     api.NewRecipeHandler(recipeSvc, log),
		Inventory:   api.NewInventoryHandler(inventorySvc, log),
		Students:    api.NewStudentHandler(studentSvc, log),
		MealSession: api.NewMealSessionHandler(mealSvc, log),
	}
	engine := router.Setup(handlers, authSvc, nil, []string{"*"})

	app := &testApp{engine: engine}

	resp := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "staff@example.com",
		"username": "staff",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	app.token = body.Token
	return app
}

func (a *testApp) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func recipePayload() gin.H {
	return gin.H{
		"name":        "Lentil Curry",
		"description": "Mild lentil curry.",
		"ingredients": []gin.H{
			{"name": "lentils", "quantity": 300, "unit": "g", "isEssential": true},
		},
		"instructions": "Simmer until soft.",
		"dietaryFlags": gin.H{"vegetarian": true, "vegan": true},
		"servingSize":  4,
		"prepTime":     40,
	}
}

func (a *testApp) createRecipe(t *testing.T) string {
	t.Helper()
	resp := a.request(t, http.MethodPost, "/api/v1/recipes", a.token, recipePayload())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	resp := app.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRecipeCreateRequiresToken(t *testing.T) {
	app := setupApp(t)

	resp := app.request(t, http.MethodPost, "/api/v1/recipes", "", recipePayload())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = app.request(t, http.MethodPost, "/api/v1/recipes", "not-a-token", recipePayload())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRecipeCreateAndGet(t *testing.T) {
	app := setupApp(t)
	id := app.createRecipe(t)

	resp := app.request(t, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		Name         string `json:"name"`
		DietaryFlags struct {
			Vegan bool `json:"vegan"`
		} `json:"dietaryFlags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Lentil Curry", got.Name)
	assert.True(t, got.DietaryFlags.Vegan)
}

func TestRecipeWritesWithoutRateLimiter(t *testing.T) {
	app := setupApp(t)

	// With no rate limiter configured, writes carry no rate-limit headers.
	resp := app.request(t, http.MethodPost, "/api/v1/recipes", app.token, recipePayload())
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Empty(t, resp.Header().Get("X-RateLimit-Limit"))
}

func TestRecipeCreateValidationError(t *testing.T) {
	app := setupApp(t)

	payload := recipePayload()
	payload["ingredients"] = []gin.H{}
	resp := app.request(t, http.MethodPost, "/api/v1/recipes", app.token, payload)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "at least one ingredient required")
}

func TestRecipeCreateUnknownAllergen(t *testing.T) {
	app := setupApp(t)

	payload := recipePayload()
	payload["allergens"] = []string{"pollen"}
	resp := app.request(t, http.MethodPost, "/api/v1/recipes", app.token, payload)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "unknown allergen")
}

func TestRecipeGetNotFound(t *testing.T) {
	app := setupApp(t)
	resp := app.request(t, http.MethodGet, "/api/v1/recipes/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRecipeAdjustServingSize(t *testing.T) {
	app := setupApp(t)
	id := app.createRecipe(t)

	resp := app.request(t, http.MethodPost, "/api/v1/recipes/"+id+"/serving-size", app.token, gin.H{"servingSize": 8})
	require.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		ServingSize int `json:"servingSize"`
		Ingredients []struct {
			Quantity float64 `json:"quantity"`
		} `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, 8, got.ServingSize)
	assert.Equal(t, 600.0, got.Ingredients[0].Quantity)

	resp = app.request(t, http.MethodPost, "/api/v1/recipes/"+id+"/serving-size", app.token, gin.H{"servingSize": 0})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRecipeDietaryQuery(t *testing.T) {
	app := setupApp(t)
	app.createRecipe(t)

	resp := app.request(t, http.MethodGet, "/api/v1/recipes?dietary=vegan,vegetarian", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got.Recipes, 1)

	resp = app.request(t, http.MethodGet, "/api/v1/recipes?dietary=paleo", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRecipeSoftDeleteFlow(t *testing.T) {
	app := setupApp(t)
	id := app.createRecipe(t)

	resp := app.request(t, http.MethodDelete, "/api/v1/recipes/"+id, app.token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// Gone from the default listing.
	resp = app.request(t, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.Equal(t, int64(0), page.Total)

	// Still retrievable by id.
	resp = app.request(t, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRecipeListPagination(t *testing.T) {
	app := setupApp(t)
	for i := 0; i < 23; i++ {
		payload := recipePayload()
		payload["name"] = fmt.Sprintf("Recipe %02d", i)
		resp := app.request(t, http.MethodPost, "/api/v1/recipes", app.token, payload)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := app.request(t, http.MethodGet, "/api/v1/recipes?page=3&limit=10", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		TotalPages int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(23), page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestInventoryLifecycle(t *testing.T) {
	app := setupApp(t)

	resp := app.request(t, http.MethodPost, "/api/v1/inventory", app.token, gin.H{
		"name":     "Rice",
		"category": "grains",
		"quantity": 50,
		"unit":     "kg",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		ID           string  `json:"id"`
		Status       string  `json:"status"`
		ReorderLevel float64 `json:"reorderLevel"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "ACTIVE", created.Status)
	assert.Equal(t, 10.0, created.ReorderLevel, "reorder level defaulted")

	// Patch with only quantity: merged view recomputes status.
	resp = app.request(t, http.MethodPatch, "/api/v1/inventory/"+created.ID, app.token, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.Code)

	var patched struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &patched))
	assert.Equal(t, "Rice", patched.Name, "unpatched fields kept")
	assert.Equal(t, "OUT_OF_STOCK", patched.Status)

	resp = app.request(t, http.MethodDelete, "/api/v1/inventory/"+created.ID, app.token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = app.request(t, http.MethodGet, "/api/v1/inventory/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestStudentComplianceEndpoint(t *testing.T) {
	app := setupApp(t)

	payload := recipePayload()
	payload["allergens"] = []string{"eggs"}
	resp := app.request(t, http.MethodPost, "/api/v1/recipes", app.token, payload)
	require.Equal(t, http.StatusCreated, resp.Code)
	var recipe struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recipe))

	resp = app.request(t, http.MethodPost, "/api/v1/students", app.token, gin.H{
		"firstName":    "Amaya",
		"lastName":     "Perera",
		"grade":        3,
		"dietaryFlags": gin.H{"vegetarian": true},
		"allergens":    []string{"eggs"},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var student struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &student))

	resp = app.request(t, http.MethodGet, "/api/v1/students/"+student.ID+"/compliance?recipe_id="+recipe.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Compliant        bool     `json:"compliant"`
		MatchedAllergens []string `json:"matchedAllergens"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.False(t, result.Compliant)
	assert.Equal(t, []string{"eggs"}, result.MatchedAllergens)

	// Missing recipe_id parameter.
	resp = app.request(t, http.MethodGet, "/api/v1/students/"+student.ID+"/compliance", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAttendanceEndpointUpserts(t *testing.T) {
	app := setupApp(t)

	resp := app.request(t, http.MethodPost, "/api/v1/students", app.token, gin.H{
		"firstName": "Amaya",
		"lastName":  "Perera",
		"grade":     3,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var student struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &student))

	resp = app.request(t, http.MethodPost, "/api/v1/meal-sessions", app.token, gin.H{
		"date":            "2026-03-02T00:00:00Z",
		"mealType":        "lunch",
		"plannedServings": 120,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var session struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &session))
	assert.Equal(t, "planned", session.Status)

	attend := func(served bool) *httptest.ResponseRecorder {
		return app.request(t, http.MethodPost, "/api/v1/meal-sessions/"+session.ID+"/attendance", app.token, gin.H{
			"studentId":  student.ID,
			"present":    true,
			"mealServed": served,
		})
	}

	resp = attend(false)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = attend(true)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = app.request(t, http.MethodGet, "/api/v1/meal-sessions/"+session.ID+"/attendance", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var list struct {
		Attendance []struct {
			MealServed bool `json:"mealServed"`
		} `json:"attendance"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Attendance, 1)
	assert.True(t, list.Attendance[0].MealServed)
}

func TestAuthEndpoints(t *testing.T) {
	app := setupApp(t)

	// Duplicate registration conflicts.
	resp := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "staff@example.com",
		"username": "other",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "staff@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "staff@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Password hash never leaks in responses.
	assert.NotContains(t, resp.Body.String(), "passwordHash")
}
