package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
)

// PremiumPeriodDays is the entitlement window granted per purchase or
// restore. The window is overwritten on re-activation, never stacked.
const PremiumPeriodDays = 30

// Subscription is the single per-account subscription record. A missing
// row means free/never-subscribed; callers go through
// SubscriptionService.Snapshot which applies that default.
type Subscription struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	Status            string     `gorm:"not null;default:'free';size:20" json:"status"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ProductID         string     `gorm:"size:255" json:"product_id"`
	LastTransactionID string     `gorm:"size:255" json:"last_transaction_id"`
	LastTransactionAt *time.Time `json:"last_transaction_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Account           Account    `gorm:"foreignKey:AccountID" json:"-"`
}

// Activate grants (or re-grants) premium until expiresAt. Used by
// purchase, restore and billing webhook paths.
func (s *Subscription) Activate(productID, transactionID string, now, expiresAt time.Time) {
	s.Status = string(entitlement.StatusPremium)
	s.ExpiresAt = &expiresAt
	s.ProductID = productID
	s.LastTransactionID = transactionID
	s.LastTransactionAt = &now
}

// Cancel is the non-destructive downgrade: status drops to free but the
// expiry stays, so the paid window keeps granting access until it passes.
// Expiry is evaluated lazily at read time; no sweep flips the state.
func (s *Subscription) Cancel() {
	s.Status = string(entitlement.StatusFree)
}

// Snapshot converts the stored row to the pure value the evaluator
// consumes.
func (s *Subscription) Snapshot() entitlement.Snapshot {
	return entitlement.Snapshot{
		Status:    entitlement.Status(s.Status),
		ExpiresAt: s.ExpiresAt,
	}
}
