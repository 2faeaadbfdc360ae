package handler

import (
	"github.com/gin-gonic/gin"
	appordering "github.com/orderhub/backend/internal/application/ordering"
)

// OrderHandler serves the customer's placed orders
type OrderHandler struct {
	BaseHandler
	orderService   *appordering.OrderService
	authMiddleware gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appordering.OrderService, authMiddleware gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authMiddleware)
	{
		orders.GET("", h.List)
		orders.POST("", h.Place)
		orders.DELETE("", h.Delete)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Amend)
	}
}

// List handles GET /orders. The state parameter filters by order status;
// order_by=total_sum sorts by the read-time total.
func (h *OrderHandler) List(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if state := c.Query("state"); state != "" {
		filter.Filters["state"] = state
	}

	page, err := h.orderService.List(c.Request.Context(), ident.UserID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Place handles POST /orders
func (h *OrderHandler) Place(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input appordering.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), ident.UserID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), ident.UserID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Amend handles PUT /orders/:id
func (h *OrderHandler) Amend(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input appordering.AmendOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Amend(c.Request.Context(), ident.UserID, orderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /orders
func (h *OrderHandler) Delete(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input appordering.DeleteOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	deleted, err := h.orderService.Delete(c.Request.Context(), ident.UserID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}
