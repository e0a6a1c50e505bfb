package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BillingTransaction is an audit record of every store confirmation the
// backend acted on (app-reported purchases/restores and billing
// webhooks). Payload keeps the raw webhook event when one exists.
type BillingTransaction struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	TransactionID string         `gorm:"size:255;index" json:"transaction_id"`
	ProductID     string         `gorm:"size:255" json:"product_id"`
	EventType     string         `gorm:"size:50;not null" json:"event_type"`
	Payload       datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
