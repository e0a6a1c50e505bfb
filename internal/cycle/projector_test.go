package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
)

func TestProject(t *testing.T) {
	t.Parallel()

	facts := cycle.Facts{
		LastPeriodStart: date(2024, time.January, 1),
		CycleLength:     28,
		PeriodLength:    5,
	}

	t.Run("labels a full cycle", func(t *testing.T) {
		t.Parallel()
		days, err := cycle.Project(facts, date(2024, time.January, 1), date(2024, time.January, 28))
		require.NoError(t, err)
		require.Len(t, days, 28)

		for i, d := range days {
			assert.Equal(t, date(2024, time.January, 1+i), d.Date)
			switch {
			case i < 5:
				assert.Equal(t, cycle.PhaseMenstrual, d.Phase, "day %d", i+1)
			case i < 13:
				assert.Equal(t, cycle.PhaseFollicular, d.Phase, "day %d", i+1)
			case i == 13:
				assert.Equal(t, cycle.PhaseOvulation, d.Phase)
				assert.True(t, d.IsOvulationDay)
			default:
				assert.Equal(t, cycle.PhaseLuteal, d.Phase, "day %d", i+1)
			}
		}
	})

	t.Run("single-day window", func(t *testing.T) {
		t.Parallel()
		days, err := cycle.Project(facts, date(2024, time.January, 14), date(2024, time.January, 14))
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.True(t, days[0].IsOvulationDay)
	})

	t.Run("window before the recorded start", func(t *testing.T) {
		t.Parallel()
		days, err := cycle.Project(facts, date(2023, time.December, 31), date(2023, time.December, 31))
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, cycle.PhaseLuteal, days[0].Phase)
	})

	t.Run("window into a later cycle repeats the labeling", func(t *testing.T) {
		t.Parallel()
		days, err := cycle.Project(facts, date(2024, time.January, 29), date(2024, time.February, 2))
		require.NoError(t, err)
		require.Len(t, days, 5)
		for i, d := range days {
			assert.Equal(t, cycle.PhaseMenstrual, d.Phase, "day %d", i)
		}
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		t.Parallel()
		_, err := cycle.Project(facts, date(2024, time.January, 10), date(2024, time.January, 9))
		assert.ErrorIs(t, err, cycle.ErrInvalidRange)
	})

	t.Run("rejects out-of-bounds facts", func(t *testing.T) {
		t.Parallel()
		bad := facts
		bad.CycleLength = 19
		_, err := cycle.Project(bad, date(2024, time.January, 1), date(2024, time.January, 2))
		assert.ErrorIs(t, err, cycle.ErrInvalidProfile)

		bad = facts
		bad.PeriodLength = 11
		_, err = cycle.Project(bad, date(2024, time.January, 1), date(2024, time.January, 2))
		assert.ErrorIs(t, err, cycle.ErrInvalidProfile)
	})
}

func TestFactsValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts the full declared range", func(t *testing.T) {
		t.Parallel()
		for cl := cycle.MinCycleLength; cl <= cycle.MaxCycleLength; cl++ {
			for pl := cycle.MinPeriodLength; pl <= cycle.MaxPeriodLength; pl++ {
				facts := cycle.Facts{CycleLength: cl, PeriodLength: pl}
				assert.NoError(t, facts.Validate(), "cycle %d period %d", cl, pl)
			}
		}
	})

	t.Run("rejects bounds violations", func(t *testing.T) {
		t.Parallel()
		for _, facts := range []cycle.Facts{
			{CycleLength: 19, PeriodLength: 5},
			{CycleLength: 41, PeriodLength: 5},
			{CycleLength: 28, PeriodLength: 2},
			{CycleLength: 28, PeriodLength: 11},
		} {
			assert.ErrorIs(t, facts.Validate(), cycle.ErrInvalidProfile)
		}
	})
}
