package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/orderhub/backend/internal/application/identity"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves registration, confirmation and session endpoints
type AuthHandler struct {
	BaseHandler
	authService    *appidentity.AuthService
	accountService *appidentity.AccountService
	authMiddleware gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService *appidentity.AuthService,
	accountService *appidentity.AccountService,
	authMiddleware gin.HandlerFunc,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the user account routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/register/confirm", h.Confirm)
		user.POST("/login", h.Login)
		user.POST("/logout", h.authMiddleware, h.Logout)
		user.GET("/details", h.authMiddleware, h.GetAccount)
		user.PUT("/details", h.authMiddleware, h.UpdateAccount)
		user.DELETE("/details", h.authMiddleware, h.DeleteAccount)
	}
}

// Register handles POST /user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input appidentity.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ConfirmRequest carries the e-mailed confirmation token
type ConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// Confirm handles POST /user/register/confirm
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.Confirm(c.Request.Context(), req.Token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"confirmed": true})
}

// Login handles POST /user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input appidentity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout handles POST /user/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.BadRequest(c, "No session to revoke")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetAccount handles GET /user/details
func (h *AuthHandler) GetAccount(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	user, err := h.accountService.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateAccount handles PUT /user/details
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input appidentity.UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.accountService.Update(c.Request.Context(), ident.UserID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// DeleteAccount handles DELETE /user/details. The session token is revoked
// along with the account.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	ident, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), ident.UserID); err != nil {
		h.HandleError(c, err)
		return
	}
	if claims := middleware.GetClaims(c); claims != nil {
		if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.NoContent(c)
}
