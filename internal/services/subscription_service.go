package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lunasee-app/lunasee-backend/internal/dto"
	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/models"
)

var ErrAccountRequired = errors.New("account id is required")

// SubscriptionService is the sole writer of subscription status and
// expiry. Expiry is never swept by a background job; readers evaluate it
// lazily through entitlement.IsPremiumActive.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Find returns the account's subscription row, or nil when the account
// never subscribed.
func (s *SubscriptionService) Find(accountID uuid.UUID) (*models.Subscription, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}

	var sub models.Subscription
	err := s.db.Scopes(models.ForAccount(accountID)).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// Snapshot returns the entitlement snapshot for the account. A missing
// row yields the explicit free/no-expiry default here, in one place,
// rather than as nil-handling scattered through callers.
func (s *SubscriptionService) Snapshot(accountID uuid.UUID) (entitlement.Snapshot, error) {
	sub, err := s.Find(accountID)
	if err != nil {
		return entitlement.Snapshot{}, err
	}
	if sub == nil {
		return entitlement.Snapshot{Status: entitlement.StatusFree}, nil
	}
	return sub.Snapshot(), nil
}

// Activate grants premium for models.PremiumPeriodDays from now. The same
// 30-day window applies to purchases and restores; re-activation while a
// previous window is still open overwrites the expiry rather than
// extending it.
func (s *SubscriptionService) Activate(accountID uuid.UUID, productID, transactionID, eventType string, now time.Time) (*models.Subscription, error) {
	expiresAt := now.AddDate(0, 0, models.PremiumPeriodDays)
	return s.activate(accountID, productID, transactionID, eventType, nil, now, expiresAt)
}

func (s *SubscriptionService) activate(accountID uuid.UUID, productID, transactionID, eventType string, payload datatypes.JSON, now, expiresAt time.Time) (*models.Subscription, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}

	var sub models.Subscription
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Scopes(models.ForAccount(accountID)).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sub = models.Subscription{ID: uuid.New(), AccountID: accountID}
		} else if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}

		sub.Activate(productID, transactionID, now, expiresAt)
		if err := tx.Save(&sub).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		record := models.BillingTransaction{
			ID:            uuid.New(),
			AccountID:     accountID,
			TransactionID: transactionID,
			ProductID:     productID,
			EventType:     eventType,
			Payload:       payload,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record billing transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Cancel is the non-destructive downgrade: the status drops to free but
// the granted expiry stays in place, so access persists until it passes.
// Cancelling a never-subscribed account is a no-op.
func (s *SubscriptionService) Cancel(accountID uuid.UUID) (*models.Subscription, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}

	sub, err := s.Find(accountID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	sub.Cancel()
	if err := s.db.Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

// HandleWebhookEvent applies a billing provider event. Purchase and
// renewal events activate with the provider-reported expiration when one
// is present; cancellation and expiration events downgrade the status
// while leaving any remaining window to run out on its own.
func (s *SubscriptionService) HandleWebhookEvent(event *dto.BillingEvent, raw []byte, now time.Time) error {
	accountID, err := uuid.Parse(event.AppUserID)
	if err != nil {
		return fmt.Errorf("invalid app_user_id %q: %w", event.AppUserID, err)
	}

	switch event.Type {
	case dto.BillingEventInitialPurchase, dto.BillingEventRenewal:
		expiresAt := now.AddDate(0, 0, models.PremiumPeriodDays)
		if event.ExpirationAtMs > 0 {
			expiresAt = msToTime(event.ExpirationAtMs)
		}
		_, err := s.activate(accountID, event.ProductID, event.TransactionID, event.Type, datatypes.JSON(raw), now, expiresAt)
		return err
	case dto.BillingEventCancellation, dto.BillingEventExpiration:
		if _, err := s.Cancel(accountID); err != nil {
			return err
		}
		record := models.BillingTransaction{
			ID:            uuid.New(),
			AccountID:     accountID,
			TransactionID: event.TransactionID,
			ProductID:     event.ProductID,
			EventType:     event.Type,
			Payload:       datatypes.JSON(raw),
		}
		return s.db.Create(&record).Error
	default:
		return nil
	}
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC()
}
