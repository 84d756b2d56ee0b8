package offsets

import (
	"fmt"
	"sort"
	"time"
)

// Observance moves a holiday that falls on a weekend.
type Observance func(date time.Time) time.Time

// NearestWorkday moves Saturday to Friday and Sunday to Monday.
func NearestWorkday(date time.Time) time.Time {
	switch weekday(date) {
	case Saturday:
		return shiftDays(date, -1)
	case Sunday:
		return shiftDays(date, 1)
	}
	return date
}

// SundayToMonday moves Sunday to Monday.
func SundayToMonday(date time.Time) time.Time {
	if weekday(date) == Sunday {
		return shiftDays(date, 1)
	}
	return date
}

// WeekendToMonday moves Saturday and Sunday to Monday.
func WeekendToMonday(date time.Time) time.Time {
	switch weekday(date) {
	case Saturday:
		return shiftDays(date, 2)
	case Sunday:
		return shiftDays(date, 1)
	}
	return date
}

// NextMonday moves Saturday and Sunday to the following Monday.
func NextMonday(date time.Time) time.Time { return WeekendToMonday(date) }

// PreviousFriday moves Saturday and Sunday to the preceding Friday.
func PreviousFriday(date time.Time) time.Time {
	switch weekday(date) {
	case Saturday:
		return shiftDays(date, -1)
	case Sunday:
		return shiftDays(date, -2)
	}
	return date
}

// Holiday is a yearly rule. The reference date Month/Day of every year is
// moved by Offset, if set, or else by Observance.
//
// A Holiday with a non zero Year occurs only in that year.
type Holiday struct {
	Name       string
	Year       int
	Month      int
	Day        int
	Offset     *Offset
	Observance Observance
	Start      time.Time // zero for no lower bound
	End        time.Time // zero for no upper bound
}

// NewHoliday returns a holiday on month and day of every year.
func NewHoliday(name string, month, day int) Holiday {
	return Holiday{Name: name, Month: month, Day: day}
}

// NewHolidayObserved returns a holiday on month and day moved by observance.
func NewHolidayObserved(name string, month, day int, observance Observance) Holiday {
	return Holiday{Name: name, Month: month, Day: day, Observance: observance}
}

// NewHolidayFloat returns a holiday on the nth weekday counted from month and
// day; a negative nth counts backwards.
func NewHolidayFloat(name string, month, day, wd, nth int) (Holiday, error) {
	offset, err := NewDateOffset(1, Delta{"weekday": wd, "nth": nth})
	if err != nil {
		return Holiday{}, fmt.Errorf("holiday %v: %w", name, err)
	}
	return Holiday{Name: name, Month: month, Day: day, Offset: offset}, nil
}

// Dates lists the occurrences of h within [from, to].
func (h Holiday) Dates(from, to time.Time) ([]time.Time, error) {
	if h.Month < 1 || h.Month > 12 || h.Day < 1 || h.Day > 31 {
		return nil, fmt.Errorf("holiday %v: invalid month %d or day %d", h.Name, h.Month, h.Day)
	}

	first, last := from.Year()-1, to.Year()+1
	if h.Year != 0 {
		first, last = h.Year, h.Year
	}
	if !h.Start.IsZero() && h.Start.Year() > first {
		first = h.Start.Year()
	}
	if !h.End.IsZero() && h.End.Year() < last {
		last = h.End.Year()
	}

	var dates []time.Time
	for year := first; year <= last; year++ {
		day := h.Day
		if dim := DaysInMonth(year, h.Month); day > dim {
			day = dim
		}
		date := time.Date(year, time.Month(h.Month), day, 0, 0, 0, 0, time.UTC)

		switch {
		case h.Offset != nil:
			v, err := h.Offset.Apply(date)
			if err != nil {
				return nil, fmt.Errorf("holiday %v: %w", h.Name, err)
			}
			date = v
		case h.Observance != nil:
			date = h.Observance(date)
		}

		if !h.Start.IsZero() && date.Before(h.Start) {
			continue
		}
		if !h.End.IsZero() && date.After(h.End) {
			continue
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// RuleCalendar is a HolidayCalendar made of yearly rules.
type RuleCalendar struct {
	Name  string
	Rules []Holiday
}

// NewRuleCalendar validates rules and returns a calendar.
func NewRuleCalendar(name string, rules ...Holiday) (*RuleCalendar, error) {
	c := &RuleCalendar{Name: name, Rules: rules}
	for _, rule := range rules {
		if _, err := rule.Dates(holidayRangeStart, holidayRangeStart); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Holidays returns the sorted, unique holidays within [from, to].
func (c *RuleCalendar) Holidays(from, to time.Time) []time.Time {
	seen := map[int64]bool{}
	var all []time.Time
	for _, rule := range c.Rules {
		dates, err := rule.Dates(from, to)
		if err != nil {
			// rules are validated by NewRuleCalendar
			continue
		}
		for _, d := range dates {
			if key := civilDays(d); !seen[key] {
				seen[key] = true
				all = append(all, d)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })
	return all
}

// Rule returns the rule called name.
func (c *RuleCalendar) Rule(name string) (Holiday, bool) {
	for _, rule := range c.Rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return Holiday{}, false
}

// USFederalHolidayCalendar returns the US federal holidays. Observed dates
// agree with github.com/rickar/cal/v2/us from 1986 on.
func USFederalHolidayCalendar() *RuleCalendar {
	floating := func(name string, month, day, wd, nth int) Holiday {
		h, err := NewHolidayFloat(name, month, day, wd, nth)
		if err != nil {
			panic(err)
		}
		return h
	}

	mlk := floating("Martin Luther King Jr. Day", 1, 1, Monday, 3)
	mlk.Start = time.Date(1986, time.January, 1, 0, 0, 0, 0, time.UTC)

	juneteenth := NewHolidayObserved("Juneteenth National Independence Day", 6, 19, NearestWorkday)
	juneteenth.Start = time.Date(2021, time.June, 18, 0, 0, 0, 0, time.UTC)

	return &RuleCalendar{
		Name: "USFederalHolidayCalendar",
		Rules: []Holiday{
			NewHolidayObserved("New Years Day", 1, 1, NearestWorkday),
			mlk,
			floating("Presidents Day", 2, 1, Monday, 3),
			floating("Memorial Day", 5, 31, Monday, -1),
			juneteenth,
			NewHolidayObserved("July 4th", 7, 4, NearestWorkday),
			floating("Labor Day", 9, 1, Monday, 1),
			floating("Columbus Day", 10, 1, Monday, 2),
			NewHolidayObserved("Veterans Day", 11, 11, NearestWorkday),
			floating("Thanksgiving", 11, 1, Thursday, 4),
			NewHolidayObserved("Christmas", 12, 25, NearestWorkday),
		},
	}
}
