package cycle

import "time"

// Phase labels one day of a projected cycle calendar.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// Accepted bounds for user-entered cycle facts.
const (
	MinCycleLength  = 20
	MaxCycleLength  = 40
	MinPeriodLength = 3
	MaxPeriodLength = 10
)

// lutealDays places ovulation on day cycleLength-14 of the cycle, the
// standard luteal-phase assumption: the last 14 days of the cycle
// belong to the luteal phase. A modeling convention, not a measured
// fact.
const lutealDays = 14

// DateOnly strips the time-of-day component, anchoring the date in UTC.
// All calendar math operates on date-only values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOffset returns the whole-day difference between two dates,
// ignoring time-of-day. Negative when to precedes from.
func DayOffset(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// ClassifyPhase maps a day offset from the recorded period start to a
// cycle phase. The offset is normalized into [0, cycleLength), so days
// before the recorded start classify correctly when projecting backward.
//
// Cycles too short to fit a period before the ovulation point get no
// ovulation day at all; the follicular window collapses and everything
// after the period is luteal.
func ClassifyPhase(daysSinceStart, cycleLength, periodLength int) (Phase, bool) {
	offset := ((daysSinceStart % cycleLength) + cycleLength) % cycleLength
	day := offset + 1 // 1-based day of cycle

	ovulationDay := cycleLength - lutealDays
	hasOvulation := ovulationDay > periodLength

	switch {
	case day <= periodLength:
		return PhaseMenstrual, false
	case hasOvulation && day == ovulationDay:
		return PhaseOvulation, true
	case hasOvulation && day < ovulationDay:
		return PhaseFollicular, false
	default:
		return PhaseLuteal, false
	}
}

// StartFromEnd converts an entered period end date to the stored start
// date: start = end - (periodLength - 1).
func StartFromEnd(end time.Time, periodLength int) time.Time {
	return DateOnly(end).AddDate(0, 0, -(periodLength - 1))
}

// EndFromStart is the inverse of StartFromEnd.
func EndFromStart(start time.Time, periodLength int) time.Time {
	return DateOnly(start).AddDate(0, 0, periodLength-1)
}
