package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/models"
)

var (
	ErrPremiumRequired = errors.New("premium subscription required")
	ErrProfileNotFound = errors.New("tracked profile not found")
	ErrNameRequired    = errors.New("profile name is required")
)

// ProfileService is the registry of an account's tracked profiles.
// Creation and cycle adjustments re-check entitlement against the
// profile's current ordinal position; deletion never does.
type ProfileService struct {
	db   *gorm.DB
	subs *SubscriptionService
}

func NewProfileService(db *gorm.DB, subs *SubscriptionService) *ProfileService {
	return &ProfileService{db: db, subs: subs}
}

// ProfileDraft carries the user-entered facts for a create or an adjust.
// PeriodDate is a start or an end date depending on PeriodInputType.
type ProfileDraft struct {
	Name            string
	CycleLength     int
	PeriodLength    int
	PeriodDate      time.Time
	PeriodInputType string
}

func (d ProfileDraft) validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	facts := cycle.Facts{CycleLength: d.CycleLength, PeriodLength: d.PeriodLength}
	return facts.Validate()
}

// periodStart resolves the entered date to the stored start date.
func (d ProfileDraft) periodStart() time.Time {
	if d.PeriodInputType == models.PeriodInputEnd {
		return cycle.StartFromEnd(d.PeriodDate, d.PeriodLength)
	}
	return cycle.DateOnly(d.PeriodDate)
}

// List returns the account's profiles ordered by creation time, with id
// as a stable tie-break.
func (s *ProfileService) List(accountID uuid.UUID) ([]models.TrackedProfile, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}

	var profiles []models.TrackedProfile
	err := s.db.Scopes(models.ForAccount(accountID)).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Create adds a new tracked profile. The prospective ordinal position is
// the current count; the count and the insert run in one transaction so
// two concurrent creates cannot both squeeze under the free limit.
func (s *ProfileService) Create(accountID uuid.UUID, draft ProfileDraft, now time.Time) (*models.TrackedProfile, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}
	if err := draft.validate(); err != nil {
		return nil, err
	}

	snap, err := s.subs.Snapshot(accountID)
	if err != nil {
		return nil, err
	}

	var profile models.TrackedProfile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TrackedProfile{}).Scopes(models.ForAccount(accountID)).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count profiles: %w", err)
		}
		if !entitlement.CanAccess(int(count), snap, now) {
			return ErrPremiumRequired
		}

		profile = models.TrackedProfile{
			ID:              uuid.New(),
			AccountID:       accountID,
			Name:            draft.Name,
			CycleLength:     draft.CycleLength,
			PeriodLength:    draft.PeriodLength,
			LastPeriodStart: draft.periodStart(),
			PeriodInputType: draft.PeriodInputType,
		}
		if profile.PeriodInputType == "" {
			profile.PeriodInputType = models.PeriodInputStart
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update adjusts the cycle facts of an existing profile. The entitlement
// gate uses the profile's current position, which can only have changed
// through deletions of earlier profiles. CreatedAt is preserved.
func (s *ProfileService) Update(accountID, profileID uuid.UUID, draft ProfileDraft, now time.Time) (*models.TrackedProfile, error) {
	if accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}
	if err := draft.validate(); err != nil {
		return nil, err
	}

	profiles, err := s.List(accountID)
	if err != nil {
		return nil, err
	}
	position := models.PositionOf(profiles, profileID)
	if position < 0 {
		return nil, ErrProfileNotFound
	}

	snap, err := s.subs.Snapshot(accountID)
	if err != nil {
		return nil, err
	}
	if !entitlement.CanAccess(position, snap, now) {
		return nil, ErrPremiumRequired
	}

	profile := profiles[position]
	profile.Name = draft.Name
	profile.CycleLength = draft.CycleLength
	profile.PeriodLength = draft.PeriodLength
	profile.LastPeriodStart = draft.periodStart()
	profile.PeriodInputType = draft.PeriodInputType
	if profile.PeriodInputType == "" {
		profile.PeriodInputType = models.PeriodInputStart
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &profile, nil
}

// Delete removes a tracked profile. Never entitlement-gated; profiles
// behind the paywall can always be deleted.
func (s *ProfileService) Delete(accountID, profileID uuid.UUID) error {
	if accountID == uuid.Nil {
		return ErrAccountRequired
	}

	result := s.db.Scopes(models.ForAccount(accountID)).Where("id = ?", profileID).Delete(&models.TrackedProfile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Calendar re-checks entitlement for the profile's current position and
// projects the phase calendar for [from, to].
func (s *ProfileService) Calendar(accountID, profileID uuid.UUID, from, to, now time.Time) ([]cycle.Day, error) {
	profiles, err := s.List(accountID)
	if err != nil {
		return nil, err
	}
	position := models.PositionOf(profiles, profileID)
	if position < 0 {
		return nil, ErrProfileNotFound
	}

	snap, err := s.subs.Snapshot(accountID)
	if err != nil {
		return nil, err
	}
	if !entitlement.CanAccess(position, snap, now) {
		return nil, ErrPremiumRequired
	}

	return cycle.Project(profiles[position].Facts(), from, to)
}
