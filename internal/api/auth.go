package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/service"
)

// AuthHandler exposes staff registration and login.
type AuthHandler struct {
	auth service.IAuthService
	log  *zap.Logger
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(auth service.IAuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.Named("auth-handler")}
}

// RegisterRoutes mounts the auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password, domain.Role(req.Role))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
