package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/models"
)

func TestSubscriptionLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, models.PremiumPeriodDays)

	t.Run("activate grants premium with the full window", func(t *testing.T) {
		t.Parallel()
		var sub models.Subscription
		sub.Activate("com.lunasee.premium.monthly", "txn_1", now, expiry)

		assert.Equal(t, string(entitlement.StatusPremium), sub.Status)
		require.NotNil(t, sub.ExpiresAt)
		assert.Equal(t, expiry, *sub.ExpiresAt)
		assert.Equal(t, "txn_1", sub.LastTransactionID)
		assert.True(t, entitlement.IsPremiumActive(sub.Snapshot(), now))
	})

	t.Run("cancel keeps the expiry", func(t *testing.T) {
		t.Parallel()
		var sub models.Subscription
		sub.Activate("com.lunasee.premium.monthly", "txn_1", now, expiry)
		sub.Cancel()

		assert.Equal(t, string(entitlement.StatusFree), sub.Status)
		require.NotNil(t, sub.ExpiresAt)
		assert.Equal(t, expiry, *sub.ExpiresAt)

		// The paid window keeps granting access after cancellation.
		assert.True(t, entitlement.IsPremiumActive(sub.Snapshot(), now.AddDate(0, 0, 29)))
		assert.False(t, entitlement.IsPremiumActive(sub.Snapshot(), now.AddDate(0, 0, 31)))
	})

	t.Run("re-activation overwrites the window instead of stacking", func(t *testing.T) {
		t.Parallel()
		var sub models.Subscription
		sub.Activate("com.lunasee.premium.monthly", "txn_1", now, expiry)
		sub.Cancel()

		later := now.AddDate(0, 0, 10)
		laterExpiry := later.AddDate(0, 0, models.PremiumPeriodDays)
		sub.Activate("com.lunasee.premium.monthly", "txn_2", later, laterExpiry)

		assert.Equal(t, string(entitlement.StatusPremium), sub.Status)
		require.NotNil(t, sub.ExpiresAt)
		assert.Equal(t, laterExpiry, *sub.ExpiresAt)
		assert.Equal(t, "txn_2", sub.LastTransactionID)
	})

	t.Run("cancel before any purchase stays free", func(t *testing.T) {
		t.Parallel()
		var sub models.Subscription
		sub.Status = string(entitlement.StatusFree)
		sub.Cancel()

		assert.Equal(t, string(entitlement.StatusFree), sub.Status)
		assert.Nil(t, sub.ExpiresAt)
		assert.False(t, entitlement.IsPremiumActive(sub.Snapshot(), now))
	})
}
