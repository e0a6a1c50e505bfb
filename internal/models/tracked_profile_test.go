package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/models"
)

func TestPositionOf(t *testing.T) {
	t.Parallel()

	profiles := []models.TrackedProfile{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
		{ID: uuid.New(), Name: "C"},
	}

	t.Run("returns creation-order index", func(t *testing.T) {
		t.Parallel()
		for i := range profiles {
			assert.Equal(t, i, models.PositionOf(profiles, profiles[i].ID))
		}
	})

	t.Run("absent id yields -1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, -1, models.PositionOf(profiles, uuid.New()))
		assert.Equal(t, -1, models.PositionOf(nil, profiles[0].ID))
	})

	t.Run("deleting an earlier profile re-opens free access", func(t *testing.T) {
		t.Parallel()
		now := time.Now().UTC()
		third := profiles[2].ID

		// At position 2 without premium the profile is locked.
		assert.False(t, entitlement.CanAccess(models.PositionOf(profiles, third), entitlement.Snapshot{}, now))

		// Removing the first profile shifts it to position 1.
		remaining := profiles[1:]
		assert.Equal(t, 1, models.PositionOf(remaining, third))
		assert.True(t, entitlement.CanAccess(models.PositionOf(remaining, third), entitlement.Snapshot{}, now))
	})
}

func TestTrackedProfileFacts(t *testing.T) {
	t.Parallel()

	p := models.TrackedProfile{
		CycleLength:     28,
		PeriodLength:    5,
		LastPeriodStart: time.Date(2024, time.January, 1, 15, 42, 0, 0, time.UTC),
	}

	facts := p.Facts()
	assert.Equal(t, 28, facts.CycleLength)
	assert.Equal(t, 5, facts.PeriodLength)
	// The stored timestamp is truncated to a date before projection.
	assert.Equal(t, cycle.DateOnly(p.LastPeriodStart), facts.LastPeriodStart)
	assert.Equal(t, 0, facts.LastPeriodStart.Hour())
}
