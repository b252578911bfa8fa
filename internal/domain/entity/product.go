package entity

import (
	"strings"
	"time"

	errs "github.com/davidokon/secretshop/internal/domain/error"
	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
)

// Product represents a purchasable secret-info listing.
// The secret payload stays hidden until the product is sold, and
// IsSold/BuyerID transition false->true exactly once.
type Product struct {
	ID           uint64     // Unique identifier for the product
	Name         string     // Display name
	Description  string     // Free-form description
	ImageURL     string     // Optional image reference
	Country      string     // Country filter dimension
	Platform     string     // Platform filter dimension
	PriceInCents int64      // Price in cents, non-negative
	Secret       string     // Hidden payload revealed to the buyer after purchase
	IsSold       bool       // Set once when purchased
	BuyerID      *uint64    // Owning buyer, nil until sold
	CreatedAt    time.Time  // When the product was listed
	UpdatedAt    time.Time  // When the product was last updated
	SoldAt       *time.Time // When the product was sold (nullable)
}

// NewProduct creates a product listing with basic validation.
// Price is a 2-dp major-unit string, as entered by the admin.
func NewProduct(name, description, imageURL, country, platform, price, secret string, timeProvider coreport.TimeProvider) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.ErrInvalidProductName
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errs.ErrMissingSecret
	}
	if strings.TrimSpace(country) == "" || strings.TrimSpace(platform) == "" {
		return nil, errs.ErrMissingProductFilter
	}

	priceInCents := int64(0)
	if strings.TrimSpace(price) != "" {
		var err error
		priceInCents, err = ValidateAndConvertAmount(price)
		if err != nil {
			return nil, err
		}
	}

	now := timeProvider.Now()
	return &Product{
		Name:         strings.TrimSpace(name),
		Description:  description,
		ImageURL:     imageURL,
		Country:      strings.TrimSpace(country),
		Platform:     strings.TrimSpace(platform),
		PriceInCents: priceInCents,
		Secret:       secret,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetPrice returns the price as a string with 2 decimal places
func (p *Product) GetPrice() string {
	return AmountInCentsToString(p.PriceInCents)
}

// OwnedBy reports whether the product has been sold to the given user
func (p *Product) OwnedBy(userID uint64) bool {
	return p.IsSold && p.BuyerID != nil && *p.BuyerID == userID
}
