package repository

import (
	"context"
	"fmt"

	"github.com/davidokon/secretshop/internal/domain/entity"
	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// OrderRepository implements the OrderRepository port using GORM
type OrderRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *OrderRepository) modelToEntity(m *model.Order) *entity.Order {
	items := make([]entity.OrderItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, entity.OrderItem{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceInCents: item.PriceInCents,
			Secret:       item.Secret,
		})
	}
	return &entity.Order{
		ID:           m.ID,
		UserID:       m.UserID,
		Items:        items,
		TotalInCents: m.TotalInCents,
		Status:       entity.OrderStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func (r *OrderRepository) handleDatabaseError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists an order together with its item snapshots
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	items := make([]model.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, model.OrderItem{
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceInCents: item.PriceInCents,
			Secret:       item.Secret,
		})
	}

	orderModel := model.Order{
		UserID:       order.UserID,
		TotalInCents: order.TotalInCents,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		Items:        items,
	}

	result := r.db.WithContext(ctx).Create(&orderModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating order", result.Error)
	}

	order.ID = orderModel.ID
	for i := range orderModel.Items {
		order.Items[i].ID = orderModel.Items[i].ID
		order.Items[i].OrderID = orderModel.ID
	}
	return nil
}

// ListByUser returns the given user's orders with items, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing user orders", result.Error)
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, r.modelToEntity(&orderModels[i]))
	}
	return orders, nil
}

// ListAll returns every order with items, newest first
func (r *OrderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing orders", result.Error)
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, r.modelToEntity(&orderModels[i]))
	}
	return orders, nil
}
