package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
	"github.com/lakindu62/kidsfeed/internal/service"
)

// InventoryHandler exposes the inventory endpoints.
type InventoryHandler struct {
	inventory service.IInventoryService
	log       *zap.Logger
}

// NewInventoryHandler builds an InventoryHandler.
func NewInventoryHandler(inventory service.IInventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log.Named("inventory-handler")}
}

// RegisterRoutes mounts the inventory routes.
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	inventory := router.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.GET("/:id", h.Get)
		inventory.POST("", append(writeMiddleware, h.Create)...)
		inventory.PATCH("/:id", append(writeMiddleware, h.Patch)...)
		inventory.DELETE("/:id", append(writeMiddleware, h.Delete)...)
	}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *gin.Context) {
	filter := repository.InventoryFilter{
		Status:   domain.InventoryStatus(c.Query("status")),
		Category: c.Query("category"),
	}
	page, limit := pagination(c)
	result, err := h.inventory.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reorderLevel := float64(domain.DefaultReorderLevel)
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}
	item := &domain.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: reorderLevel,
		ExpiryDate:   req.ExpiryDate,
	}

	created, err := h.inventory.Create(c.Request.Context(), item)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Patch handles PATCH /inventory/:id. Omitted fields keep their stored
// values; the status is recomputed from the merged record.
func (h *InventoryHandler) Patch(c *gin.Context) {
	var req patchInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.InventoryPatch{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   req.ExpiryDate,
		ClearExpiry:  req.ClearExpiry,
	}
	updated, err := h.inventory.Patch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /inventory/:id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}
