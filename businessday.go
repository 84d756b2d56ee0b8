package offsets

import (
	"strconv"
	"strings"
	"time"
)

// bdayDays is the number of calendar days n business days away from a day
// with Monday=0 weekday wday. A weekend start counts from the next Monday when
// n <= 0 and from the previous Friday otherwise.
func bdayDays(n, wday int) int {
	weeks := int(floorDiv(int64(n), 5))
	if n <= 0 && wday > Friday {
		n++
	}
	n -= 5 * weeks

	var days int
	switch {
	case n == 0 && wday > Friday:
		days = Friday - wday
	case wday > Friday:
		days = 7 - wday + n - 1
	case wday+n <= Friday:
		days = n
	default:
		days = n + 2
	}
	return 7*weeks + days
}

// businessOffset carries the fixed duration added after a business day shift.
type businessOffset struct {
	offset time.Duration
}

func (b businessOffset) offsetSuffix() string {
	if b.offset == 0 {
		return ""
	}
	if b.offset < 0 {
		return "-" + durationCode(-b.offset)
	}
	return "+" + durationCode(b.offset)
}

// durationCode renders d like "1D2H3Min4s5us".
func durationCode(d time.Duration) string {
	var sb strings.Builder
	if days := d / (24 * time.Hour); days > 0 {
		sb.WriteString(strconv.FormatInt(int64(days), 10) + "D")
		d -= days * 24 * time.Hour
	}
	if h := d / time.Hour; h > 0 {
		sb.WriteString(strconv.FormatInt(int64(h), 10) + "H")
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		sb.WriteString(strconv.FormatInt(int64(m), 10) + "Min")
		d -= m * time.Minute
	}
	if s := d / time.Second; s > 0 {
		sb.WriteString(strconv.FormatInt(int64(s), 10) + "s")
		d -= s * time.Second
	}
	if us := d / time.Microsecond; us > 0 {
		sb.WriteString(strconv.FormatInt(int64(us), 10) + "us")
	}
	return sb.String()
}

type businessDayRule struct {
	businessOffset
}

func (r businessDayRule) code() string    { return "B" }
func (r businessDayRule) adjustDST() bool { return true }

func (r businessDayRule) params() []Param {
	return []Param{{Name: "offset", Value: r.offset}}
}

func (r businessDayRule) onOffset(_ *Offset, t time.Time) bool {
	return weekday(t) <= Friday
}

func (r businessDayRule) shift(o *Offset, t time.Time) (time.Time, error) {
	return shiftDays(t, bdayDays(o.n, weekday(t))).Add(r.offset), nil
}

func (r businessDayRule) shiftArray(o *Offset, dst, src []int64) error {
	ShiftBusinessDays(dst, src, o.n)
	addOffsetNanos(dst, int64(r.offset))
	return nil
}

func (r businessDayRule) addDuration(o *Offset, d time.Duration) (*Offset, error) {
	return newOffset(o.kind, o.n, o.normalize, businessDayRule{businessOffset{offset: r.offset + d}})
}

// NewBusinessDay returns n weekdays. WithOffset adds a fixed duration to each result.
func NewBusinessDay(n int, opts ...Option) (*Offset, error) {
	o := buildOptions(opts)
	return newOffset(KindBusinessDay, n, o.normalize, businessDayRule{businessOffset{offset: o.offset}})
}

// customCalendar holds the business day calendar of custom business offsets.
type customCalendar struct {
	cal *BusinessDayCalendar
}

func (c customCalendar) calendarParams() []Param {
	return []Param{
		{Name: "weekmask", Value: c.cal.Weekmask().String()},
		{Name: "holidays", Value: formatHolidays(c.cal.Holidays())},
	}
}

func formatHolidays(hh []time.Time) string {
	ss := make([]string, 0, len(hh))
	for _, h := range hh {
		ss = append(ss, h.Format(DateLayout))
	}
	return strings.Join(ss, ",")
}

// Calendar returns the business day calendar of custom business offsets, or nil.
func (o *Offset) Calendar() *BusinessDayCalendar {
	if c, ok := o.rule.(interface{ calendar() *BusinessDayCalendar }); ok {
		return c.calendar()
	}
	return nil
}

func (c customCalendar) calendar() *BusinessDayCalendar { return c.cal }

// WithCalendar returns a copy of a custom business offset that uses cal. Other
// kinds are returned unchanged.
func (o *Offset) WithCalendar(cal *BusinessDayCalendar) (*Offset, error) {
	if cal == nil {
		return o, nil
	}

	var r rule
	switch v := o.rule.(type) {
	case customBusinessDayRule:
		v.customCalendar = customCalendar{cal: cal}
		r = v
	case customMonthRule:
		v.customCalendar = customCalendar{cal: cal}
		r = v
	case businessHourRule:
		c, ok := v.days.(calendarDays)
		if !ok {
			return o, nil
		}
		c.rule.customCalendar = customCalendar{cal: cal}
		v.days = c
		v.extra = c.rule.calendarParams()
		r = v
	default:
		return o, nil
	}
	return newOffset(o.kind, o.n, o.normalize, r)
}

func buildCalendar(kind Kind, o options) (customCalendar, error) {
	if o.busdaycal != nil {
		return customCalendar{cal: o.busdaycal}, nil
	}
	cal, err := NewBusinessDayCalendar(o.weekmask, o.holidays, o.calendar)
	if err != nil {
		return customCalendar{}, constructionErr(kind, "%v", err)
	}
	return customCalendar{cal: cal}, nil
}

type customBusinessDayRule struct {
	customCalendar
	businessOffset
}

func (r customBusinessDayRule) code() string    { return "C" }
func (r customBusinessDayRule) adjustDST() bool { return true }

func (r customBusinessDayRule) params() []Param {
	return append(r.calendarParams(), Param{Name: "offset", Value: r.offset})
}

func (r customBusinessDayRule) onOffset(_ *Offset, t time.Time) bool {
	return r.cal.IsBusinessDay(t)
}

func (r customBusinessDayRule) shift(o *Offset, t time.Time) (time.Time, error) {
	return r.step(o.n, t).Add(r.offset), nil
}

// step moves n valid days without the fixed offset.
func (r customBusinessDayRule) step(n int, t time.Time) time.Time {
	roll := RollBackward
	if n <= 0 {
		roll = RollForward
	}
	return r.cal.AddBusinessDays(t, n, roll)
}

func (r customBusinessDayRule) addDuration(o *Offset, d time.Duration) (*Offset, error) {
	next := r
	next.offset += d
	return newOffset(o.kind, o.n, o.normalize, next)
}

// NewCustomBusinessDay returns n valid days of a business day calendar built
// from WithWeekmask, WithHolidays and WithHolidayCalendar, or supplied with
// WithBusinessDayCalendar.
func NewCustomBusinessDay(n int, opts ...Option) (*Offset, error) {
	o := buildOptions(opts)
	cal, err := buildCalendar(KindCustomBusinessDay, o)
	if err != nil {
		return nil, err
	}
	return newOffset(KindCustomBusinessDay, n, o.normalize, customBusinessDayRule{
		customCalendar: cal,
		businessOffset: businessOffset{offset: o.offset},
	})
}
