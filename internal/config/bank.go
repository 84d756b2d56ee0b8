package config

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// bankHolidays adapts rickar/cal holidays to offsets.HolidayCalendar using
// their observed dates.
type bankHolidays []*cal.Holiday

func usBankHolidays() bankHolidays {
	return bankHolidays{
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	}
}

func (b bankHolidays) Holidays(from, to time.Time) []time.Time {
	var dates []time.Time
	for year := from.Year() - 1; year <= to.Year()+1; year++ {
		for _, h := range b {
			_, observed := h.Calc(year)
			if observed.IsZero() {
				continue
			}
			date := time.Date(observed.Year(), observed.Month(), observed.Day(), 0, 0, 0, 0, time.UTC)
			if date.Before(from) || date.After(to) {
				continue
			}
			dates = append(dates, date)
		}
	}
	return dates
}
