package dto

import "time"

// PurchaseRequest reports a completed store purchase from the app.
type PurchaseRequest struct {
	ProductID     string `json:"product_id"`
	TransactionID string `json:"transaction_id"`
}

// RestoreRequest reports a restored transaction from the app.
type RestoreRequest struct {
	ProductID     string `json:"product_id"`
	TransactionID string `json:"transaction_id"`
}

type SubscriptionResponse struct {
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ProductID     string     `json:"product_id,omitempty"`
	PremiumActive bool       `json:"premium_active"`
}

type ProductResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Price          int    `json:"price"`
	LocalizedPrice string `json:"localized_price"`
}
