package offsets

import (
	"sort"
	"time"
)

// HolidayCalendar supplies holidays to custom business offsets.
type HolidayCalendar interface {
	Holidays(from, to time.Time) []time.Time
}

// holidayRange bounds the dates pulled from a HolidayCalendar.
var (
	holidayRangeStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	holidayRangeEnd   = time.Date(2200, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// BusinessDayCalendar answers whether a date is a business day.
// It is immutable once built.
type BusinessDayCalendar struct {
	weekmask Weekmask
	holidays []int64 // sorted, unique day numbers
}

// NewBusinessDayCalendar builds a calendar from a weekmask string, explicit
// holidays and an optional external holiday calendar.
func NewBusinessDayCalendar(weekmask string, holidays []time.Time, calendar HolidayCalendar) (*BusinessDayCalendar, error) {
	mask, err := ParseWeekmask(weekmask)
	if err != nil {
		return nil, err
	}

	all := append([]time.Time(nil), holidays...)
	if calendar != nil {
		all = append(all, calendar.Holidays(holidayRangeStart, holidayRangeEnd)...)
	}

	days := make([]int64, 0, len(all))
	for _, h := range all {
		days = append(days, civilDays(h))
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	unique := days[:0]
	for i, d := range days {
		if i > 0 && d == days[i-1] {
			continue
		}
		unique = append(unique, d)
	}

	return &BusinessDayCalendar{
		weekmask: mask,
		holidays: unique,
	}, nil
}

// Weekmask returns the calendar's weekmask.
func (c *BusinessDayCalendar) Weekmask() Weekmask {
	return c.weekmask
}

// Holidays returns the holidays as UTC midnights.
func (c *BusinessDayCalendar) Holidays() []time.Time {
	hh := make([]time.Time, 0, len(c.holidays))
	for _, d := range c.holidays {
		y, m, dd := civilFromDays(d)
		hh = append(hh, time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC))
	}
	return hh
}

// IsBusinessDay reports whether date (ignoring time) is a business day.
func (c *BusinessDayCalendar) IsBusinessDay(date time.Time) bool {
	return c.isBusday(civilDays(date))
}

func (c *BusinessDayCalendar) isBusday(days int64) bool {
	if !c.weekmask[weekdayFromDays(days)] {
		return false
	}
	i := sort.Search(len(c.holidays), func(i int) bool { return c.holidays[i] >= days })
	return i == len(c.holidays) || c.holidays[i] != days
}
