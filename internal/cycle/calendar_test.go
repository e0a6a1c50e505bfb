package cycle_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayOffset(t *testing.T) {
	t.Parallel()

	t.Run("counts whole days forward", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 13, cycle.DayOffset(date(2024, time.January, 1), date(2024, time.January, 14)))
	})

	t.Run("negative when to precedes from", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, -5, cycle.DayOffset(date(2024, time.January, 10), date(2024, time.January, 5)))
	})

	t.Run("ignores time of day", func(t *testing.T) {
		t.Parallel()
		from := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
		to := time.Date(2024, time.January, 2, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 1, cycle.DayOffset(from, to))
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 31, cycle.DayOffset(date(2023, time.December, 15), date(2024, time.January, 15)))
	})
}

func TestClassifyPhase(t *testing.T) {
	t.Parallel()

	// 28-day cycle with a 5-day period: days 1-5 menstrual, 6-13
	// follicular, 14 ovulation, 15-28 luteal.
	tests := []struct {
		daysSinceStart int
		wantPhase      cycle.Phase
		wantOvulation  bool
	}{
		{0, cycle.PhaseMenstrual, false},
		{4, cycle.PhaseMenstrual, false},
		{5, cycle.PhaseFollicular, false},
		{12, cycle.PhaseFollicular, false},
		{13, cycle.PhaseOvulation, true},
		{14, cycle.PhaseLuteal, false},
		{27, cycle.PhaseLuteal, false},
		{28, cycle.PhaseMenstrual, false}, // next cycle wraps around
	}
	for _, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("day offset %d", tc.daysSinceStart), func(t *testing.T) {
			t.Parallel()
			phase, ovulation := cycle.ClassifyPhase(tc.daysSinceStart, 28, 5)
			assert.Equal(t, tc.wantPhase, phase)
			assert.Equal(t, tc.wantOvulation, ovulation)
		})
	}

	t.Run("negative offsets classify through the normalized cycle", func(t *testing.T) {
		t.Parallel()
		// One day before the recorded start is the last luteal day of
		// the previous cycle.
		phase, ovulation := cycle.ClassifyPhase(-1, 28, 5)
		assert.Equal(t, cycle.PhaseLuteal, phase)
		assert.False(t, ovulation)

		phase, _ = cycle.ClassifyPhase(-28, 28, 5)
		assert.Equal(t, cycle.PhaseMenstrual, phase)
	})

	t.Run("short cycle with long period has no ovulation day", func(t *testing.T) {
		t.Parallel()
		// Cycle 20 with period 10: ovulation would land on day 6,
		// inside the period, so it is not marked at all.
		for offset := 0; offset < 20; offset++ {
			phase, ovulation := cycle.ClassifyPhase(offset, 20, 10)
			assert.False(t, ovulation, "offset %d", offset)
			if offset < 10 {
				assert.Equal(t, cycle.PhaseMenstrual, phase, "offset %d", offset)
			} else {
				assert.Equal(t, cycle.PhaseLuteal, phase, "offset %d", offset)
			}
		}
	})

	t.Run("periodicity across all valid lengths", func(t *testing.T) {
		t.Parallel()
		for cycleLength := cycle.MinCycleLength; cycleLength <= cycle.MaxCycleLength; cycleLength++ {
			for periodLength := cycle.MinPeriodLength; periodLength <= cycle.MaxPeriodLength; periodLength++ {
				for offset := 0; offset < cycleLength; offset++ {
					p1, o1 := cycle.ClassifyPhase(offset, cycleLength, periodLength)
					p2, o2 := cycle.ClassifyPhase(offset+cycleLength, cycleLength, periodLength)
					assert.Equal(t, p1, p2, "cycle %d period %d offset %d", cycleLength, periodLength, offset)
					assert.Equal(t, o1, o2, "cycle %d period %d offset %d", cycleLength, periodLength, offset)
				}
			}
		}
	})
}

func TestStartEndConversion(t *testing.T) {
	t.Parallel()

	t.Run("end date converts to start date", func(t *testing.T) {
		t.Parallel()
		// A 5-day period ending Jan 10 started Jan 6.
		start := cycle.StartFromEnd(date(2024, time.January, 10), 5)
		assert.Equal(t, date(2024, time.January, 6), start)
	})

	t.Run("round trips exactly for every period length", func(t *testing.T) {
		t.Parallel()
		end := date(2024, time.March, 3)
		for periodLength := cycle.MinPeriodLength; periodLength <= cycle.MaxPeriodLength; periodLength++ {
			start := cycle.StartFromEnd(end, periodLength)
			assert.Equal(t, end, cycle.EndFromStart(start, periodLength), "period %d", periodLength)
		}
	})
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	got := cycle.DateOnly(time.Date(2024, time.June, 15, 18, 30, 45, 999, time.UTC))
	assert.Equal(t, date(2024, time.June, 15), got)
	assert.Equal(t, time.UTC, got.Location())
}
