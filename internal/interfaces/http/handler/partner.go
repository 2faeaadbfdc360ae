package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	appordering "github.com/orderhub/backend/internal/application/ordering"
	domordering "github.com/orderhub/backend/internal/domain/ordering"
)

// PartnerHandler serves the supplier-side endpoints: price-list upload, the
// order-acceptance toggle and incoming orders.
type PartnerHandler struct {
	BaseHandler
	importService  *appcatalog.ImportService
	partnerService *appcatalog.PartnerService
	orderService   *appordering.OrderService
	authMiddleware gin.HandlerFunc
	shopMiddleware gin.HandlerFunc
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	importService *appcatalog.ImportService,
	partnerService *appcatalog.PartnerService,
	orderService *appordering.OrderService,
	authMiddleware, shopMiddleware gin.HandlerFunc,
) *PartnerHandler {
	return &PartnerHandler{
		importService:  importService,
		partnerService: partnerService,
		orderService:   orderService,
		authMiddleware: authMiddleware,
		shopMiddleware: shopMiddleware,
	}
}

// RegisterRoutes registers the partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner", h.authMiddleware, h.shopMiddleware)
	{
		partner.POST("/update", h.ImportPriceList)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.POST("/email", h.SetAdminEmail)
		partner.GET("/orders", h.ListOrders)
		partner.PUT("/orders/:id/state", h.AdvanceOrder)
	}
}

// ImportPriceList handles POST /partner/update. The price list is a YAML
// document, sent either as a multipart "file" field or as the raw body.
func (h *PartnerHandler) ImportPriceList(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var reader io.Reader = c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			h.BadRequest(c, "Cannot read uploaded file")
			return
		}
		defer f.Close()
		reader = f
	}

	result, err := h.importService.ImportPriceList(c.Request.Context(), ident.UserID, reader)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetState handles GET /partner/state
func (h *PartnerHandler) GetState(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	state, err := h.partnerService.GetState(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// SetStateRequest toggles whether the shop accepts orders
type SetStateRequest struct {
	State *bool `json:"state" binding:"required"`
}

// SetState handles POST /partner/state
func (h *PartnerHandler) SetState(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	state, err := h.partnerService.SetState(c.Request.Context(), ident.UserID, *req.State)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// SetAdminEmailRequest sets the address order notifications go to
type SetAdminEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SetAdminEmail handles POST /partner/email
func (h *PartnerHandler) SetAdminEmail(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req SetAdminEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.partnerService.SetAdminEmail(c.Request.Context(), ident.UserID, req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"email": req.Email})
}

// AdvanceOrderRequest moves an incoming order to a new status
type AdvanceOrderRequest struct {
	State string `json:"state" binding:"required"`
}

// AdvanceOrder handles PUT /partner/orders/:id/state: the supplier moves an
// incoming order through the fulfilment flow or cancels it.
func (h *PartnerHandler) AdvanceOrder(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AdvanceForPartner(c.Request.Context(), ident.UserID, orderID,
		domordering.OrderStatus(req.State))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListOrders handles GET /partner/orders: placed orders containing the
// supplier's SKUs.
func (h *PartnerHandler) ListOrders(c *gin.Context) {
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

	page, err := h.orderService.ListForPartner(c.Request.Context(), ident.UserID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
