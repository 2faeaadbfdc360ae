package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/orderhub/backend/internal/application/catalog"
)

// CatalogHandler serves the customer-facing catalog listings
type CatalogHandler struct {
	BaseHandler
	queryService *appcatalog.QueryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(queryService *appcatalog.QueryService) *CatalogHandler {
	return &CatalogHandler{queryService: queryService}
}

// RegisterRoutes registers the catalog routes. Browsing the catalog does not
// require an account.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops", h.ListShops)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/products", h.SearchProducts)
	rg.GET("/products/:id", h.GetProduct)
}

// ListShops handles GET /shops. The state parameter filters by whether the
// shop is accepting orders.
func (h *CatalogHandler) ListShops(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if state := c.Query("state"); state != "" {
		filter.Filters["state"] = state == "true"
	}

	page, err := h.queryService.ListShops(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.queryService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// SearchProducts handles GET /products. On top of the common listing
// parameters it supports exact shop_id, category_id and product_id filters.
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	for _, key := range []string{"shop_id", "category_id", "product_id"} {
		if value := c.Query(key); value != "" {
			filter.Filters[key] = value
		}
	}

	page, err := h.queryService.SearchProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	product, err := h.queryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
