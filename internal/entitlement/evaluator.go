// Package entitlement decides whether an account may view or edit a
// tracked profile, from the profile's ordinal position and the account's
// subscription snapshot. Everything here is pure; decisions are
// re-evaluated against the caller's clock on every read and never cached
// across a subscription change.
package entitlement

import "time"

type Status string

const (
	StatusFree    Status = "free"
	StatusPremium Status = "premium"
)

// FreeProfileLimit is the number of tracked profiles available without
// an active premium subscription.
const FreeProfileLimit = 2

// Snapshot is the point-in-time subscription state of an account.
// ExpiresAt may be set while Status is free: that is a cancelled
// subscription whose paid window has not run out yet.
type Snapshot struct {
	Status    Status     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IsPremiumActive reports whether the snapshot grants premium access at
// the given time. Presence of a future expiry is the activity signal,
// independent of Status, so a cancelled-but-not-yet-expired subscription
// still grants access.
func IsPremiumActive(s Snapshot, now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.After(now)
}

// CanAccess reports whether a profile at the given zero-based ordinal
// position may be viewed or edited. The first two profiles are always
// accessible; later positions require active premium.
func CanAccess(position int, s Snapshot, now time.Time) bool {
	if position < FreeProfileLimit {
		return true
	}
	return IsPremiumActive(s, now)
}
