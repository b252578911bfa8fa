package handler

import (
	"net/http"

	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/usecase/account"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles registration, login and the shopper's own pages
type AccountHandler struct {
	accounts *account.Service
	sessions *session.Manager
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts *account.Service, sessions *session.Manager, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// SignUp handles POST /signup. On success the new user is logged in and
// redirected to the shop.
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Email and password are required")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	user, err := h.accounts.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, messageFor(err))
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	if err := h.sessions.LogIn(c.Writer, c.Request, user.ID); err != nil {
		h.logger.Error("Failed to create session", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
	c.Redirect(http.StatusFound, "/shop")
}

// LogIn handles POST /login
func (h *AccountHandler) LogIn(c *gin.Context) {
	var req dto.LogInRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Email and password are required")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.accounts.LogIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = h.sessions.Flash(c.Writer, c.Request, "Invalid email or password")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.sessions.LogIn(c.Writer, c.Request, user.ID); err != nil {
		h.logger.Error("Failed to create session", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
	c.Redirect(http.StatusFound, "/shop")
}

// LogOut handles POST /logout
func (h *AccountHandler) LogOut(c *gin.Context) {
	if err := h.sessions.LogOut(c.Writer, c.Request); err != nil {
		h.logger.Warn("Failed to drop session", map[string]any{
			"error": err.Error(),
		})
	}
	c.Redirect(http.StatusFound, "/shop")
}

// Wallet handles GET /wallet
func (h *AccountHandler) Wallet(c *gin.Context) {
	userID := middleware.UserID(c)

	view, err := h.accounts.Wallet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		UserID:  view.UserID,
		Email:   view.Email,
		Balance: view.Balance,
		Flashes: h.sessions.TakeFlashes(c.Writer, c.Request),
	})
}

// Orders handles GET /user/orders
func (h *AccountHandler) Orders(c *gin.Context) {
	userID := middleware.UserID(c)

	orders, err := h.accounts.Orders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": dto.NewOrderResponses(orders)})
}
