package offsets

import (
	"fmt"
	"time"
)

// Anchor selects the day-in-month a period offset lands on. Positive values
// name an explicit day of month, clipped to the month length.
type Anchor int

const (
	// AnchorNone keeps the day of month, clipped to the month length.
	AnchorNone Anchor = 0
	// AnchorStart is the first calendar day.
	AnchorStart Anchor = -1
	// AnchorEnd is the last calendar day.
	AnchorEnd Anchor = -2
	// AnchorBusinessStart is the first weekday.
	AnchorBusinessStart Anchor = -3
	// AnchorBusinessEnd is the last weekday.
	AnchorBusinessEnd Anchor = -4
)

func (a Anchor) String() string {
	switch a {
	case AnchorNone:
		return "none"
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	case AnchorBusinessStart:
		return "business_start"
	case AnchorBusinessEnd:
		return "business_end"
	}
	if a > 0 {
		return fmt.Sprintf("day %d", int(a))
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// dayOf resolves anchor within year and month. AnchorNone resolves to day.
func (a Anchor) dayOf(year, month, day int) int {
	switch a {
	case AnchorNone:
		if dim := DaysInMonth(year, month); day > dim {
			return dim
		}
		return day
	case AnchorStart:
		return 1
	case AnchorEnd:
		return DaysInMonth(year, month)
	case AnchorBusinessStart:
		return FirstBusinessDay(year, month)
	case AnchorBusinessEnd:
		return LastBusinessDay(year, month)
	default:
		if dim := DaysInMonth(year, month); int(a) > dim {
			return dim
		}
		return int(a)
	}
}

// addMonths moves year and month by months.
func addMonths(year, month, months int) (int, int) {
	total := int64(year)*12 + int64(month-1) + int64(months)
	y := floorDiv(total, 12)
	return int(y), int(total-y*12) + 1
}

// shiftMonthFields is the field level month shift shared by the scalar
// and vectorized paths.
func shiftMonthFields(year, month, day, months int, anchor Anchor) (int, int, int) {
	y, m := addMonths(year, month, months)
	return y, m, anchor.dayOf(y, m, day)
}

// ShiftMonth moves t by months and resolves the day with anchor. The time of
// day and location are preserved.
func ShiftMonth(t time.Time, months int, anchor Anchor) time.Time {
	y, m, d := shiftMonthFields(t.Year(), int(t.Month()), t.Day(), months, anchor)
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// RollConvention decrements n when moving forward from before the anchor day
// and increments it when moving backward from after it.
func RollConvention(day, n, compare int) int {
	if n > 0 && day < compare {
		return n - 1
	}
	if n <= 0 && day > compare {
		return n + 1
	}
	return n
}

// RollQtrDay applies the roll convention for quarterly (modby 3) or yearly
// (modby 12) periods anchored on month.
func RollQtrDay(t time.Time, n, month int, anchor Anchor, modby int) int {
	y, m, d := t.Date()
	return rollQtrDay(y, int(m), d, n, month, anchor, modby)
}

func rollQtrDay(year, month, day, n, anchorMonth int, anchor Anchor, modby int) int {
	monthsSince := month%modby - anchorMonth%modby
	compare := anchor.dayOf(year, month, day)
	if n > 0 {
		if monthsSince < 0 || (monthsSince == 0 && day < compare) {
			n--
		}
	} else if monthsSince > 0 || (monthsSince == 0 && day > compare) {
		n++
	}
	return n
}

// RollYearDay applies the roll convention for yearly periods anchored on month.
func RollYearDay(t time.Time, n, month int, anchor Anchor) int {
	y, m, d := t.Date()
	return rollYearDay(y, int(m), d, n, month, anchor)
}

func rollYearDay(year, month, day, n, anchorMonth int, anchor Anchor) int {
	compare := anchor.dayOf(year, month, day)
	if n > 0 {
		if month < anchorMonth || (month == anchorMonth && day < compare) {
			n--
		}
	} else if month > anchorMonth || (month == anchorMonth && day > compare) {
		n++
	}
	return n
}

// shiftDays moves t by whole calendar days of wall clock.
func shiftDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
