package dto

import (
	"time"

	"github.com/davidokon/secretshop/internal/domain/entity"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductResponse is the public view of a product. The secret payload is
// never part of it.
type ProductResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Country     string `json:"country"`
	Platform    string `json:"platform"`
	Price       string `json:"price"`
	IsSold      bool   `json:"is_sold"`
}

// NewProductResponse converts a product entity to its public view
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
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

// ShopResponse is the shop listing page document
type ShopResponse struct {
	Products  []ProductResponse `json:"products"`
	Countries []string          `json:"countries"`
	Platforms []string          `json:"platforms"`
	Flashes   []string          `json:"flashes,omitempty"`
}

// PaymentViewResponse is the payment page document. Secret is only set
// when the requesting user owns the product.
type PaymentViewResponse struct {
	Product ProductResponse `json:"product"`
	Secret  string          `json:"secret,omitempty"`
}

// OrderItemResponse is an order line item, secret included: order views
// are only ever shown to the buyer (or an admin).
type OrderItemResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Secret      string `json:"secret"`
}

// OrderResponse is the view of a completed order
type OrderResponse struct {
	ID        uint64              `json:"id"`
	UserID    uint64              `json:"user_id"`
	Total     string              `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

// NewOrderResponse converts an order entity to its view
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       entity.AmountInCentsToString(item.PriceInCents),
			Secret:      item.Secret,
		})
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.GetTotal(),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

// NewOrderResponses converts a slice of orders
func NewOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

// UserResponse is the admin view of a registered user
type UserResponse struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Balance   string    `json:"wallet_balance"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a user entity to its admin view
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Balance:   u.GetWalletBalance(),
		CreatedAt: u.CreatedAt,
	}
}

// WalletResponse is the wallet dashboard document
type WalletResponse struct {
	UserID  uint64   `json:"user_id"`
	Email   string   `json:"email"`
	Balance string   `json:"balance"`
	Flashes []string `json:"flashes,omitempty"`
}
