package offsets

import (
	"fmt"
	"time"
)

var (
	defaultStart = []string{"09:00"}
	defaultEnd   = []string{"17:00"}
)

// dayStepper counts business days for business hour offsets.
type dayStepper interface {
	isBusday(t time.Time) bool
	stepDays(n int, t time.Time) time.Time
}

type weekdays struct{}

func (weekdays) isBusday(t time.Time) bool { return weekday(t) <= Friday }

func (weekdays) stepDays(n int, t time.Time) time.Time {
	return shiftDays(t, bdayDays(n, weekday(t)))
}

type calendarDays struct {
	rule customBusinessDayRule
}

func (c calendarDays) isBusday(t time.Time) bool { return c.rule.cal.IsBusinessDay(t) }

func (c calendarDays) stepDays(n int, t time.Time) time.Time { return c.rule.step(n, t) }

type businessHourRule struct {
	businessOffset
	hours  Hours
	days   dayStepper
	prefix string
	extra  []Param
}

func (r businessHourRule) code() string    { return r.prefix }
func (r businessHourRule) adjustDST() bool { return true }

func (r businessHourRule) params() []Param {
	pp := []Param{
		{Name: "start", Value: r.hours.Starts()},
		{Name: "end", Value: r.hours.Ends()},
		{Name: "offset", Value: r.offset},
	}
	return append(pp, r.extra...)
}

func (r businessHourRule) calendar() *BusinessDayCalendar {
	if c, ok := r.days.(calendarDays); ok {
		return c.rule.cal
	}
	return nil
}

func (r businessHourRule) onOffset(o *Offset, t time.Time) bool {
	return r.isOn(o.n, t)
}

// isOn reports whether t lies within the window opened by the nearest
// opening time at or before it.
func (r businessHourRule) isOn(n int, t time.Time) bool {
	var op time.Time
	if n >= 0 {
		op = r.nextOpening(n, t, -1)
	} else {
		op = r.nextOpening(n, t, 1)
	}

	var open time.Duration
	if slot, ok := r.hours.slotAt(op); ok {
		open = slot.Duration()
	}
	return t.Sub(op) <= open
}

// nextOpening returns the earliest opening time at or after t when n and sign
// agree, else the latest opening time at or before t. Opening times always
// fall on business days.
func (r businessHourRule) nextOpening(n int, t time.Time, sign int) time.Time {
	nb := 1
	if n < 0 {
		nb = -1
	}

	var (
		earliest = r.hours.earliest()
		latest   = r.hours.latest()
		tod      = timeOfDay(t)
		at       Time
	)

	switch {
	case !r.days.isBusday(t):
		t = r.days.stepDays(sign*nb, t)
		if n*sign >= 0 {
			at = earliest
		} else {
			at = latest
		}

	case n*sign >= 0:
		if latest.Offset() < tod {
			t = r.days.stepDays(sign*nb, t)
			at = earliest
			break
		}
		for _, slot := range r.hours {
			if tod <= slot.From.Offset() {
				at = slot.From
				break
			}
		}

	default:
		if tod < earliest.Offset() {
			t = r.days.stepDays(sign*nb, t)
			at = latest
			break
		}
		for i := len(r.hours) - 1; i >= 0; i-- {
			if tod >= r.hours[i].From.Offset() {
				at = r.hours[i].From
				break
			}
		}
	}

	return at.Align(t)
}

// closingTime returns the close of the window opening at t.
func (r businessHourRule) closingTime(t time.Time) time.Time {
	slot, ok := r.hours.slotAt(t)
	if !ok {
		panic(fmt.Errorf("%v is not an opening time of %v", t, r.hours))
	}
	return t.Add(slot.Duration())
}

func (r businessHourRule) shift(o *Offset, t time.Time) (time.Time, error) {
	nanos := t.Nanosecond() % 1000
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()-nanos, t.Location())
	n := o.n

	if n >= 0 {
		if r.hours.isEnd(timeOfDay(t)) || !r.isOn(n, t) {
			t = r.nextOpening(n, t, 1)
		}
	} else {
		if r.hours.isStart(timeOfDay(t)) {
			// move into the previous business day
			t = t.Add(-time.Second)
		}
		if !r.isOn(n, t) {
			t = r.closingTime(r.nextOpening(n, t, 1))
		}
	}

	perDay := int(r.hours.Total() / time.Minute)
	minutes := n * 60
	if minutes < 0 {
		minutes = -minutes
	}
	bd, rem := minutes/perDay, minutes%perDay
	if n < 0 {
		bd, rem = -bd, -rem
	}

	if bd != 0 {
		if !r.days.isBusday(t) {
			// a window past midnight may close on a non business day
			prevOpen := r.nextOpening(n, t, -1)
			remain := t.Sub(prevOpen)
			t = r.days.stepDays(bd, prevOpen).Add(remain)
		} else {
			t = r.days.stepDays(bd, t)
		}
	}

	remain := time.Duration(rem) * time.Minute
	if n >= 0 {
		for remain != 0 {
			left := r.closingTime(r.nextOpening(n, t, -1)).Sub(t)
			if remain < left {
				t = t.Add(remain)
				break
			}
			remain -= left
			t = r.nextOpening(n, t.Add(left), 1)
		}
	} else {
		for remain != 0 {
			left := r.nextOpening(n, t, 1).Sub(t)
			if remain > left || (remain == left && nanos != 0) {
				t = t.Add(remain)
				break
			}
			remain -= left
			t = r.closingTime(r.nextOpening(n, t.Add(left-time.Second), 1))
		}
	}

	return t, nil
}

func (r businessHourRule) rollforward(o *Offset, t time.Time) time.Time {
	if o.IsOnOffset(t) {
		return t
	}
	loc := t.Location()
	v := naive(t)
	if o.n >= 0 {
		v = r.nextOpening(o.n, v, 1)
	} else {
		v = r.nextOpening(o.n, v, -1)
	}
	return Localize(v, loc)
}

func (r businessHourRule) rollback(o *Offset, t time.Time) time.Time {
	if o.IsOnOffset(t) {
		return t
	}
	loc := t.Location()
	v := naive(t)
	if o.n >= 0 {
		v = r.nextOpening(o.n, v, -1)
	} else {
		v = r.nextOpening(o.n, v, 1)
	}
	return Localize(r.closingTime(v), loc)
}

func businessHours(kind Kind, o options) (Hours, error) {
	start, end := o.start, o.end
	if start == nil && end == nil {
		start, end = defaultStart, defaultEnd
	}
	hours, err := NewHours(start, end)
	if err != nil {
		return nil, constructionErr(kind, "%v", err)
	}
	return hours, nil
}

// NewBusinessHour returns n business hours. Opening windows default to
// 09:00-17:00 and are set with WithHours.
func NewBusinessHour(n int, opts ...Option) (*Offset, error) {
	o := buildOptions(opts)
	hours, err := businessHours(KindBusinessHour, o)
	if err != nil {
		return nil, err
	}
	return newOffset(KindBusinessHour, n, o.normalize, businessHourRule{
		businessOffset: businessOffset{offset: o.offset},
		hours:          hours,
		days:           weekdays{},
		prefix:         "BH",
	})
}

// NewCustomBusinessHour returns n business hours over the valid days of a
// business day calendar.
func NewCustomBusinessHour(n int, opts ...Option) (*Offset, error) {
	o := buildOptions(opts)
	hours, err := businessHours(KindCustomBusinessHour, o)
	if err != nil {
		return nil, err
	}
	cal, err := buildCalendar(KindCustomBusinessHour, o)
	if err != nil {
		return nil, err
	}
	days := calendarDays{rule: customBusinessDayRule{customCalendar: cal}}
	return newOffset(KindCustomBusinessHour, n, o.normalize, businessHourRule{
		businessOffset: businessOffset{offset: o.offset},
		hours:          hours,
		days:           days,
		prefix:         "CBH",
		extra:          cal.calendarParams(),
	})
}

// Hours returns the opening windows of business hour offsets.
func (o *Offset) Hours() Hours {
	if r, ok := o.rule.(businessHourRule); ok {
		return r.hours
	}
	return nil
}
