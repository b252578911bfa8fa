package routes

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/handler"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Account  *handler.AccountHandler
	Shop     *handler.ShopHandler
	Purchase *handler.PurchaseHandler
	Wallet   *handler.WalletHandler
	Webhook  *handler.WebhookHandler
	Admin    *handler.AdminHandler
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m *metrics.Metrics) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
}

// SetupRoutes configures all the routes for the storefront
func SetupRoutes(
	router *gin.Engine,
	h Handlers,
	sessions *session.Manager,
	guard *session.AdminGuard,
	m *metrics.Metrics,
	healthCheck func(ctx context.Context) error,
) {
	// Public routes
	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/shop") })
	router.GET("/shop", h.Shop.Shop)

	router.POST("/signup", h.Account.SignUp)
	router.POST("/login", h.Account.LogIn)
	router.POST("/logout", h.Account.LogOut)

	// Provider webhook, authenticated by its signature rather than a session
	router.POST("/webhook/paystack", h.Webhook.Paystack)

	// Shopper routes
	authed := router.Group("/", middleware.RequireUser(sessions))
	{
		authed.POST("/buy/:productId", h.Purchase.Buy)
		authed.POST("/pay", h.Purchase.Pay)
		authed.GET("/payment/:productId", h.Shop.PaymentView)

		authed.GET("/wallet", h.Account.Wallet)
		authed.POST("/wallet/fund", h.Wallet.Fund)
		authed.GET("/wallet/callback", h.Wallet.Callback)

		authed.GET("/user/orders", h.Account.Orders)

		authed.GET("/admin-login", h.Admin.LoginPage)
		authed.POST("/admin-login", h.Admin.LogIn)
		authed.POST("/admin-logout", h.Admin.LogOut)
	}

	// Admin routes
	admin := router.Group("/admin", middleware.RequireUser(sessions), middleware.RequireAdmin(sessions, guard))
	{
		admin.GET("", h.Admin.Dashboard)
		admin.POST("/products", h.Admin.AddProduct)
		admin.POST("/products/:id/delete", h.Admin.DeleteProduct)
		admin.GET("/orders", h.Admin.Orders)
		admin.GET("/users", h.Admin.Users)
	}

	// Operational endpoints
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := healthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
