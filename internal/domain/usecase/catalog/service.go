package catalog

import (
	"context"

	"github.com/davidokon/secretshop/internal/domain/entity"
	cacheport "github.com/davidokon/secretshop/internal/domain/port/cache"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
)

// listingCacheTTL bounds staleness of cached shop pages. Purchases and
// admin edits invalidate eagerly; the TTL is the backstop.
const listingCacheTTL = 30 * coreport.Second

// ProductView is the secrets-free projection of a product on shop pages.
// Only this shape is cached, so secret payloads never leave the database
// through the listing path.
type ProductView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Country     string `json:"country"`
	Platform    string `json:"platform"`
	Price       string `json:"price"`
	IsSold      bool   `json:"is_sold"`
}

func newProductView(p *entity.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Country:     p.Country,
		Platform:    p.Platform,
		Price:       p.GetPrice(),
		IsSold:      p.IsSold,
	}
}

// Listing is a filtered shop page: the available products plus the filter
// options the storefront renders as dropdowns.
type Listing struct {
	Products  []ProductView `json:"products"`
	Countries []string      `json:"countries"`
	Platforms []string      `json:"platforms"`
}

// Service serves the public shop listing and the admin-side catalog
// management operations.
type Service struct {
	productRepo  persistence.ProductRepository
	orderRepo    persistence.OrderRepository
	userRepo     persistence.UserRepository
	cache        cacheport.Cache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a catalog service
func NewService(
	productRepo persistence.ProductRepository,
	orderRepo persistence.OrderRepository,
	userRepo persistence.UserRepository,
	cache cacheport.Cache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns the unsold products matching the filter, read through the
// cache, together with the distinct country and platform filter options.
func (s *Service) List(ctx context.Context, filter persistence.ProductFilter) (*Listing, error) {
	key := cacheport.ShopKey(filter.Country, filter.Platform)

	if s.cache != nil {
		var listing Listing
		hit, err := s.cache.Get(ctx, key, &listing)
		if err != nil {
			s.logger.Warn("Shop cache read failed", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		} else if hit {
			return &listing, nil
		}
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	countries, err := s.productRepo.DistinctCountries(ctx)
	if err != nil {
		return nil, err
	}
	platforms, err := s.productRepo.DistinctPlatforms(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	listing := &Listing{
		Products:  views,
		Countries: countries,
		Platforms: platforms,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, listing, listingCacheTTL.Std()); err != nil {
			s.logger.Warn("Shop cache write failed", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return listing, nil
}

// AddProduct creates a product from admin input. Price is a 2-dp
// major-unit string.
func (s *Service) AddProduct(ctx context.Context, name, description, imageURL, country, platform, price, secret string) (*entity.Product, error) {
	product, err := entity.NewProduct(name, description, imageURL, country, platform, price, secret, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product added", map[string]any{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.GetPrice(),
	})

	s.invalidateListing(ctx, product.Country, product.Platform)
	return product, nil
}

// DeleteProduct removes a product from the catalog. Orders keep their own
// snapshot of what was bought, so past purchases are unaffected.
func (s *Service) DeleteProduct(ctx context.Context, productID uint64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.logger.Info("Product deleted", map[string]any{
		"product_id": productID,
		"name":       product.Name,
	})

	s.invalidateListing(ctx, product.Country, product.Platform)
	return nil
}

// AllOrders returns every order across all users, newest first.
func (s *Service) AllOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// AllUsers returns every registered user.
func (s *Service) AllUsers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) invalidateListing(ctx context.Context, country, platform string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx,
		cacheport.ShopKey(country, platform),
		cacheport.ShopKey("", ""),
	); err != nil {
		s.logger.Warn("Failed to invalidate shop cache", map[string]any{
			"error": err.Error(),
		})
	}
}
