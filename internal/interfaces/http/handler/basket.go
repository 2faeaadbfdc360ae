package handler

import (
	"github.com/gin-gonic/gin"
	appordering "github.com/orderhub/backend/internal/application/ordering"
)

// BasketHandler serves the customer's pre-checkout basket
type BasketHandler struct {
	BaseHandler
	basketService  *appordering.BasketService
	authMiddleware gin.HandlerFunc
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basketService *appordering.BasketService, authMiddleware gin.HandlerFunc) *BasketHandler {
	return &BasketHandler{
		basketService:  basketService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", h.authMiddleware)
	{
		basket.GET("", h.Get)
		basket.POST("", h.AddItems)
		basket.PUT("", h.UpdateItems)
		basket.DELETE("", h.RemoveItems)
	}
}

// Get handles GET /basket
func (h *BasketHandler) Get(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	basket, err := h.basketService.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// BasketItemsRequest carries the lines of a basket mutation
type BasketItemsRequest struct {
	Items []appordering.BasketItemInput `json:"items" binding:"required,min=1"`
}

// AddItems handles POST /basket
func (h *BasketHandler) AddItems(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req BasketItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.basketService.AddItems(c.Request.Context(), ident.UserID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateItems handles PUT /basket
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req BasketItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.basketService.UpdateItems(c.Request.Context(), ident.UserID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveItemsRequest names the products to drop from the basket
type RemoveItemsRequest struct {
	Items []string `json:"items" binding:"required,min=1"`
}

// RemoveItems handles DELETE /basket
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.basketService.RemoveItems(c.Request.Context(), ident.UserID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
