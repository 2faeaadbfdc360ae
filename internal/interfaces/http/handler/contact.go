package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/orderhub/backend/internal/application/identity"
)

// ContactHandler serves the user's delivery contacts
type ContactHandler struct {
	BaseHandler
	contactService *appidentity.ContactService
	authMiddleware gin.HandlerFunc
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *appidentity.ContactService, authMiddleware gin.HandlerFunc) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the contact routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/user/contact", h.authMiddleware)
	{
		contacts.GET("", h.List)
		contacts.POST("", h.Create)
		contacts.PUT("/:id", h.Update)
		contacts.DELETE("", h.Delete)
	}
}

// List handles GET /user/contact
func (h *ContactHandler) List(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Create handles POST /user/contact
func (h *ContactHandler) Create(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input appidentity.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), ident.UserID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Update handles PUT /user/contact/:id
func (h *ContactHandler) Update(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}
	contactID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input appidentity.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), ident.UserID, contactID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContactsRequest names the contacts to delete
type DeleteContactsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// Delete handles DELETE /user/contact
func (h *ContactHandler) Delete(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var req DeleteContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	deleted, err := h.contactService.Delete(c.Request.Context(), ident.UserID, req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}
