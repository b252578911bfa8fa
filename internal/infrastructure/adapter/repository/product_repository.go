package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/domain/port/persistence"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ProductRepository implements the ProductRepository port using GORM
type ProductRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *ProductRepository) modelToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		Country:      m.Country,
		Platform:     m.Platform,
		PriceInCents: m.PriceInCents,
		Secret:       m.Secret,
		IsSold:       m.IsSold,
		BuyerID:      m.BuyerID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		SoldAt:       m.SoldAt,
	}
}

func (r *ProductRepository) handleDatabaseError(operation string, err error, productID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"product_id": productID,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrProductNotFound
	}
	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Create persists a new product listing
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	productModel := model.Product{
		Name:         product.Name,
		Description:  product.Description,
		ImageURL:     product.ImageURL,
		Country:      product.Country,
		Platform:     product.Platform,
		PriceInCents: product.PriceInCents,
		Secret:       product.Secret,
		IsSold:       product.IsSold,
		BuyerID:      product.BuyerID,
		SoldAt:       product.SoldAt,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&productModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating product", result.Error, 0)
	}

	product.ID = productModel.ID
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var productModel model.Product
	result := r.db.WithContext(ctx).First(&productModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting product", result.Error, id)
	}
	return r.modelToEntity(&productModel), nil
}

// List returns unsold products matching the filter, newest first.
// Empty filter fields match everything.
func (r *ProductRepository) List(ctx context.Context, filter persistence.ProductFilter) ([]*entity.Product, error) {
	query := r.db.WithContext(ctx).Where("is_sold = ?", false)
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}

	var productModels []model.Product
	result := query.Order("created_at DESC").Find(&productModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing products", result.Error, 0)
	}

	products := make([]*entity.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, r.modelToEntity(&productModels[i]))
	}
	return products, nil
}

// DistinctCountries returns the distinct countries across unsold products
func (r *ProductRepository) DistinctCountries(ctx context.Context) ([]string, error) {
	var countries []string
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_sold = ?", false).
		Distinct("country").
		Order("country").
		Pluck("country", &countries)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing countries", result.Error, 0)
	}
	return countries, nil
}

// DistinctPlatforms returns the distinct platforms across unsold products
func (r *ProductRepository) DistinctPlatforms(ctx context.Context) ([]string, error) {
	var platforms []string
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_sold = ?", false).
		Distinct("platform").
		Order("platform").
		Pluck("platform", &platforms)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing platforms", result.Error, 0)
	}
	return platforms, nil
}

// MarkSold performs the one-shot sale transition. The is_sold = false guard
// makes it a compare-and-set: of any number of concurrent buyers, exactly
// one update matches a row. Zero rows means either the product is gone or
// somebody else already bought it.
func (r *ProductRepository) MarkSold(ctx context.Context, productID, buyerID uint64) error {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_sold = ?", productID, false).
		Updates(map[string]any{
			"is_sold":    true,
			"buyer_id":   buyerID,
			"sold_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return r.handleDatabaseError("marking product sold", result.Error, productID)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Product{}).
			Where("id = ?", productID).Count(&count).Error; err != nil {
			return r.handleDatabaseError("checking product", err, productID)
		}
		if count == 0 {
			return errs.ErrProductNotFound
		}
		r.logger.Warn("Sale lost to concurrent buyer", map[string]any{
			"product_id": productID,
			"buyer_id":   buyerID,
		})
		return errs.ErrProductSold
	}

	r.logger.Info("Product marked sold", map[string]any{
		"product_id": productID,
		"buyer_id":   buyerID,
	})
	return nil
}

// Delete removes a product listing
func (r *ProductRepository) Delete(ctx context.Context, productID uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, productID)
	if result.Error != nil {
		return r.handleDatabaseError("deleting product", result.Error, productID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}
