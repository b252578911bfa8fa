package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
	"github.com/davidokon/secretshop/internal/domain/usecase/catalog"
	"github.com/davidokon/secretshop/internal/domain/usecase/purchase"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/dto"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/middleware"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// ShopHandler serves the public shop listing and the payment page
type ShopHandler struct {
	catalogs  *catalog.Service
	purchases *purchase.Service
	sessions  *session.Manager
	logger    coreport.Logger
}

// NewShopHandler creates a new shop handler instance
func NewShopHandler(catalogs *catalog.Service, purchases *purchase.Service, sessions *session.Manager, logger coreport.Logger) *ShopHandler {
	return &ShopHandler{
		catalogs:  catalogs,
		purchases: purchases,
		sessions:  sessions,
		logger:    logger,
	}
}

// Shop handles GET /shop with optional country and platform filters
func (h *ShopHandler) Shop(c *gin.Context) {
	filter := persistence.ProductFilter{
		Country:  c.Query("country"),
		Platform: c.Query("platform"),
	}

	listing, err := h.catalogs.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	products := make([]dto.ProductResponse, 0, len(listing.Products))
	for _, p := range listing.Products {
		products = append(products, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Country:     p.Country,
			Platform:    p.Platform,
			Price:       p.Price,
			IsSold:      p.IsSold,
		})
	}

	c.JSON(http.StatusOK, dto.ShopResponse{
		Products:  products,
		Countries: listing.Countries,
		Platforms: listing.Platforms,
		Flashes:   h.sessions.TakeFlashes(c.Writer, c.Request),
	})
}

// PaymentView handles GET /payment/:productId. The secret appears only
// for the buyer of a sold product.
func (h *ShopHandler) PaymentView(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, domainerr.ErrProductNotFound)
		return
	}

	userID := middleware.UserID(c)

	product, secretVisible, err := h.purchases.PaymentView(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.PaymentViewResponse{Product: dto.NewProductResponse(product)}
	if secretVisible {
		resp.Secret = product.Secret
	}
	c.JSON(http.StatusOK, resp)
}
