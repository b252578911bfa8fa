package dto

// SignUpRequest is the registration form payload
type SignUpRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LogInRequest is the login form payload
type LogInRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// FundWalletRequest is the wallet funding form payload.
// Amount is a 2-dp major-unit string, e.g. "50.00".
type FundWalletRequest struct {
	Amount string `form:"amount" json:"amount" binding:"required"`
}

// PayRequest is the legacy payment form payload; it funnels into the same
// purchase flow as /buy/:productId.
type PayRequest struct {
	ProductID uint64 `form:"product_id" json:"product_id" binding:"required"`
}

// AddProductRequest is the admin product creation payload
type AddProductRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
	ImageURL    string `form:"image_url" json:"image_url"`
	Country     string `form:"country" json:"country" binding:"required"`
	Platform    string `form:"platform" json:"platform" binding:"required"`
	Price       string `form:"price" json:"price" binding:"required"`
	Secret      string `form:"secret" json:"secret" binding:"required"`
}

// AdminLoginRequest is the admin elevation form payload
type AdminLoginRequest struct {
	Passcode string `form:"passcode" json:"passcode" binding:"required"`
}
