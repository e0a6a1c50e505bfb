package cycle

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange   = errors.New("window end is before window start")
	ErrInvalidProfile = errors.New("cycle facts out of bounds")
)

// Facts are the raw user-entered inputs a projection is derived from.
// LastPeriodStart is always a start date; end-date entries are converted
// before they get here.
type Facts struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodLength    int
}

func (f Facts) Validate() error {
	if f.CycleLength < MinCycleLength || f.CycleLength > MaxCycleLength {
		return fmt.Errorf("%w: cycle length %d not in [%d,%d]", ErrInvalidProfile, f.CycleLength, MinCycleLength, MaxCycleLength)
	}
	if f.PeriodLength < MinPeriodLength || f.PeriodLength > MaxPeriodLength {
		return fmt.Errorf("%w: period length %d not in [%d,%d]", ErrInvalidProfile, f.PeriodLength, MinPeriodLength, MaxPeriodLength)
	}
	return nil
}

// Day is one projected calendar day. Projections are recomputed on demand
// and never persisted.
type Day struct {
	Date           time.Time `json:"date"`
	Phase          Phase     `json:"phase"`
	IsOvulationDay bool      `json:"is_ovulation_day"`
}

// Project labels every date in [windowStart, windowEnd] with its cycle
// phase. Pure function of its inputs; windows before the recorded period
// start are valid and classify through the normalized offset.
func Project(facts Facts, windowStart, windowEnd time.Time) ([]Day, error) {
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	start := DateOnly(windowStart)
	end := DateOnly(windowEnd)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	days := make([]Day, 0, DayOffset(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		phase, ovulation := ClassifyPhase(DayOffset(facts.LastPeriodStart, d), facts.CycleLength, facts.PeriodLength)
		days = append(days, Day{Date: d, Phase: phase, IsOvulationDay: ovulation})
	}
	return days, nil
}
