package entitlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestIsPremiumActive(t *testing.T) {
	t.Parallel()

	t.Run("false without an expiry", func(t *testing.T) {
		t.Parallel()
		assert.False(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusFree}, now))
		assert.False(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusPremium}, now))
	})

	t.Run("true with a future expiry regardless of status", func(t *testing.T) {
		t.Parallel()
		expiry := ptr(now.AddDate(0, 0, 1))
		assert.True(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusPremium, ExpiresAt: expiry}, now))
		// Cancelled-but-not-yet-expired keeps granting access.
		assert.True(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusFree, ExpiresAt: expiry}, now))
	})

	t.Run("false once the expiry has passed", func(t *testing.T) {
		t.Parallel()
		expiry := ptr(now.AddDate(0, 0, -1))
		assert.False(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusFree, ExpiresAt: expiry}, now))
	})

	t.Run("expiry equal to now does not grant access", func(t *testing.T) {
		t.Parallel()
		assert.False(t, entitlement.IsPremiumActive(entitlement.Snapshot{Status: entitlement.StatusPremium, ExpiresAt: ptr(now)}, now))
	})
}

func TestCanAccess(t *testing.T) {
	t.Parallel()

	free := entitlement.Snapshot{Status: entitlement.StatusFree}
	premium := entitlement.Snapshot{Status: entitlement.StatusPremium, ExpiresAt: ptr(now.AddDate(0, 0, 1))}
	pendingExpiry := entitlement.Snapshot{Status: entitlement.StatusFree, ExpiresAt: ptr(now.AddDate(0, 0, 1))}
	expired := entitlement.Snapshot{Status: entitlement.StatusFree, ExpiresAt: ptr(now.AddDate(0, 0, -1))}

	t.Run("first two positions are always accessible", func(t *testing.T) {
		t.Parallel()
		for position := 0; position < entitlement.FreeProfileLimit; position++ {
			for _, snap := range []entitlement.Snapshot{free, premium, pendingExpiry, expired} {
				assert.True(t, entitlement.CanAccess(position, snap, now), "position %d", position)
			}
		}
	})

	t.Run("third position requires active premium", func(t *testing.T) {
		t.Parallel()
		assert.False(t, entitlement.CanAccess(2, free, now))
		assert.True(t, entitlement.CanAccess(2, premium, now))
		assert.True(t, entitlement.CanAccess(2, pendingExpiry, now))
		assert.False(t, entitlement.CanAccess(2, expired, now))
	})

	t.Run("cancellation window runs out on its own", func(t *testing.T) {
		t.Parallel()
		// Activated for 30 days, then cancelled: access holds at day
		// 29 and is gone at day 31, with no state change in between.
		snap := entitlement.Snapshot{
			Status:    entitlement.StatusFree,
			ExpiresAt: ptr(now.AddDate(0, 0, 30)),
		}
		assert.True(t, entitlement.CanAccess(2, snap, now.AddDate(0, 0, 29)))
		assert.False(t, entitlement.CanAccess(2, snap, now.AddDate(0, 0, 31)))
	})
}
