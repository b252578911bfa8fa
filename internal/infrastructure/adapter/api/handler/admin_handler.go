package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/usecase/catalog"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin elevation and catalog management
type AdminHandler struct {
	catalogs *catalog.Service
	sessions *session.Manager
	guard    *session.AdminGuard
	logger   coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(catalogs *catalog.Service, sessions *session.Manager, guard *session.AdminGuard, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		catalogs: catalogs,
		sessions: sessions,
		guard:    guard,
		logger:   logger,
	}
}

// LoginPage handles GET /admin-login
func (h *AdminHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"flashes": h.sessions.TakeFlashes(c.Writer, c.Request),
	})
}

// LogIn handles POST /admin-login: a correct passcode mints a signed
// capability token bound to the logged-in user. A wrong passcode changes
// nothing in the session.
func (h *AdminHandler) LogIn(c *gin.Context) {
	userID := middleware.UserID(c)

	var req dto.AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Passcode is required")
		c.Redirect(http.StatusFound, "/admin-login")
		return
	}

	token, err := h.guard.Elevate(userID, req.Passcode)
	if err != nil {
		h.logger.Warn("Admin elevation rejected", map[string]any{
			"user_id": userID,
			"ip":      c.ClientIP(),
		})
		_ = h.sessions.Flash(c.Writer, c.Request, "Invalid passcode")
		c.Redirect(http.StatusFound, "/admin-login")
		return
	}

	if err := h.sessions.SetAdminToken(c.Writer, c.Request, token); err != nil {
		h.logger.Error("Failed to store admin token", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// LogOut handles POST /admin-logout, dropping only the admin token
func (h *AdminHandler) LogOut(c *gin.Context) {
	if err := h.sessions.SetAdminToken(c.Writer, c.Request, ""); err != nil {
		h.logger.Warn("Failed to clear admin token", map[string]any{
			"error": err.Error(),
		})
	}
	c.Redirect(http.StatusFound, "/shop")
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"flashes": h.sessions.TakeFlashes(c.Writer, c.Request),
	})
}

// AddProduct handles POST /admin/products
func (h *AdminHandler) AddProduct(c *gin.Context) {
	var req dto.AddProductRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Name, country, platform, price and secret are required")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	product, err := h.catalogs.AddProduct(c.Request.Context(),
		req.Name, req.Description, req.ImageURL, req.Country, req.Platform, req.Price, req.Secret)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	_ = h.sessions.Flash(c.Writer, c.Request, "Product added: "+product.Name)
	c.Redirect(http.StatusFound, "/admin")
}

// DeleteProduct handles POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Unknown product")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	if err := h.catalogs.DeleteProduct(c.Request.Context(), productID); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	_ = h.sessions.Flash(c.Writer, c.Request, "Product deleted")
	c.Redirect(http.StatusFound, "/admin")
}

// Orders handles GET /admin/orders
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.catalogs.AllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": dto.NewOrderResponses(orders)})
}

// Users handles GET /admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.catalogs.AllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}
