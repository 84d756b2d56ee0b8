package offsets

import (
	"strconv"
	"time"
)

func checkWeekday(kind Kind, wd int) error {
	if wd < Monday || wd > Sunday {
		return constructionErr(kind, "Day must be 0<=day<=6, got %d", wd)
	}
	return nil
}

// weekRule moves whole weeks, optionally landing on weekday.
type weekRule struct {
	weekday int
}

func (r weekRule) code() string {
	if r.weekday == NoWeekday {
		return "W"
	}
	return "W-" + WeekdayCode(r.weekday)
}

func (r weekRule) params() []Param {
	return []Param{{Name: "weekday", Value: r.weekday}}
}

func (r weekRule) adjustDST() bool { return true }
func (r weekRule) anchored() bool  { return r.weekday != NoWeekday }

func (r weekRule) onOffset(_ *Offset, t time.Time) bool {
	return r.weekday == NoWeekday || weekday(t) == r.weekday
}

// days is the calendar day distance n weeks away from a day on weekday wd.
func (r weekRule) days(n, wd int) int {
	if r.weekday == NoWeekday {
		return 7 * n
	}
	var days int
	if wd != r.weekday {
		days = floorMod(r.weekday-wd, 7)
		if n > 0 {
			n--
		}
	}
	return days + 7*n
}

func (r weekRule) shift(o *Offset, t time.Time) (time.Time, error) {
	return shiftDays(t, r.days(o.n, weekday(t))), nil
}

func (r weekRule) shiftArray(o *Offset, dst, src []int64) error {
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}
		days, tod := splitNanos(v)
		dst[i] = joinNanos(days+int64(r.days(o.n, weekdayFromDays(days))), tod)
	}
	return nil
}

// Weekday returns the anchor weekday of week based offsets.
func (o *Offset) Weekday() (int, bool) {
	switch r := o.rule.(type) {
	case weekRule:
		return r.weekday, r.weekday != NoWeekday
	case weekOfMonthRule:
		return r.weekday, true
	case fy5253Rule:
		return r.weekday, true
	case fy5253QuarterRule:
		return r.year.weekday, true
	}
	return 0, false
}

// NewWeek returns n weeks. With a weekday other than NoWeekday results land
// on that weekday.
func NewWeek(n, wd int, opts ...Option) (*Offset, error) {
	if wd != NoWeekday {
		if err := checkWeekday(KindWeek, wd); err != nil {
			return nil, err
		}
	}
	o := buildOptions(opts)
	return newOffset(KindWeek, n, o.normalize, weekRule{weekday: wd})
}

// weekOfMonthRule lands on the week-th weekday of the month, or the last one
// when week is -1.
type weekOfMonthRule struct {
	nonZeroN
	week    int
	weekday int
}

func (r weekOfMonthRule) code() string {
	if r.week < 0 {
		return "LWOM-" + WeekdayCode(r.weekday)
	}
	return "WOM-" + strconv.Itoa(r.week+1) + WeekdayCode(r.weekday)
}

func (r weekOfMonthRule) params() []Param {
	return []Param{
		{Name: "week", Value: r.week},
		{Name: "weekday", Value: r.weekday},
	}
}

func (r weekOfMonthRule) adjustDST() bool { return true }

// offsetDay is the anchor day within year and month.
func (r weekOfMonthRule) offsetDay(year, month int) int {
	if r.week < 0 {
		dim := DaysInMonth(year, month)
		return dim - floorMod(DayOfWeek(year, month, dim)-r.weekday, 7)
	}
	return 1 + floorMod(r.weekday-DayOfWeek(year, month, 1), 7) + 7*r.week
}

func (r weekOfMonthRule) onOffset(_ *Offset, t time.Time) bool {
	y, m, d := t.Date()
	return d == r.offsetDay(y, int(m))
}

func (r weekOfMonthRule) shift(o *Offset, t time.Time) (time.Time, error) {
	y, m, d := t.Date()
	compare := r.offsetDay(y, int(m))

	months := o.n
	if months > 0 && compare > d {
		months--
	} else if months <= 0 && compare < d {
		months++
	}

	shifted := ShiftMonth(t, months, AnchorStart)
	to := r.offsetDay(shifted.Year(), int(shifted.Month()))
	return shiftDays(shifted, to-shifted.Day()), nil
}

// NewWeekOfMonth returns n months landing on the week-th (0-3) weekday.
func NewWeekOfMonth(n, week, wd int, opts ...Option) (*Offset, error) {
	if err := checkWeekday(KindWeekOfMonth, wd); err != nil {
		return nil, err
	}
	if week < 0 || week > 3 {
		return nil, constructionErr(KindWeekOfMonth, "Week must be 0<=week<=3, got %d", week)
	}
	o := buildOptions(opts)
	return newOffset(KindWeekOfMonth, n, o.normalize, weekOfMonthRule{week: week, weekday: wd})
}

// NewLastWeekOfMonth returns n months landing on the last weekday of the month.
func NewLastWeekOfMonth(n, wd int, opts ...Option) (*Offset, error) {
	if err := checkWeekday(KindLastWeekOfMonth, wd); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return newOffset(KindLastWeekOfMonth, n, o.normalize, weekOfMonthRule{week: -1, weekday: wd})
}
