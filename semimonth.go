package offsets

import (
	"strconv"
	"time"
)

const (
	// DefaultDayOfMonth is the conventional mid month anchor.
	DefaultDayOfMonth = 15
	maxDayOfMonth     = 27
)

// semiMonthRule lands twice a month: on dayOfMonth and on the month end
// (SM) or month start (SMS).
type semiMonthRule struct {
	begin      bool
	dayOfMonth int
}

func (r semiMonthRule) code() string {
	prefix := "SM"
	if r.begin {
		prefix = "SMS"
	}
	return prefix + "-" + strconv.Itoa(r.dayOfMonth)
}

func (r semiMonthRule) params() []Param {
	return []Param{{Name: "day_of_month", Value: r.dayOfMonth}}
}

func (r semiMonthRule) adjustDST() bool { return true }

func (r semiMonthRule) onOffset(_ *Offset, t time.Time) bool {
	y, m, d := t.Date()
	if r.begin {
		return d == 1 || d == r.dayOfMonth
	}
	return d == r.dayOfMonth || d == DaysInMonth(y, int(m))
}

// fields shifts a date n half months.
func (r semiMonthRule) fields(n, year, month, day int) (int, int, int) {
	periods := RollConvention(day, n, r.dayOfMonth)
	if r.begin && n <= 0 && day == 1 {
		periods--
	} else if !r.begin && n > 0 && day == DaysInMonth(year, month) {
		periods++
	}
	n = periods

	half := n - int(floorDiv(int64(n), 2))*2
	months := int(floorDiv(int64(n), 2))
	target := Anchor(r.dayOfMonth)
	if r.begin {
		months += half
		if half == 1 {
			target = AnchorStart
		}
	} else if half == 1 {
		target = Anchor(31)
	}
	return shiftMonthFields(year, month, day, months, target)
}

func (r semiMonthRule) shift(o *Offset, t time.Time) (time.Time, error) {
	y, m, d := r.fields(o.n, t.Year(), int(t.Month()), t.Day())
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
}

func (r semiMonthRule) shiftArray(o *Offset, dst, src []int64) error {
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}
		days, tod := splitNanos(v)
		y, m, d := civilFromDays(days)
		y, m, d = r.fields(o.n, y, m, d)
		dst[i] = joinNanos(daysFromCivil(y, m, d), tod)
	}
	return nil
}

func newSemiMonth(kind Kind, n int, begin bool, dayOfMonth int, opts []Option) (*Offset, error) {
	lowest := 1
	if begin {
		lowest = 2
	}
	if dayOfMonth < lowest || dayOfMonth > maxDayOfMonth {
		return nil, constructionErr(kind, "day_of_month must be %d<=day_of_month<=27, got %d", lowest, dayOfMonth)
	}
	o := buildOptions(opts)
	return newOffset(kind, n, o.normalize, semiMonthRule{begin: begin, dayOfMonth: dayOfMonth})
}

// NewSemiMonthEnd returns n half months landing on dayOfMonth and the month
// end.
func NewSemiMonthEnd(n, dayOfMonth int, opts ...Option) (*Offset, error) {
	return newSemiMonth(KindSemiMonthEnd, n, false, dayOfMonth, opts)
}

// NewSemiMonthBegin returns n half months landing on the 1st and dayOfMonth.
func NewSemiMonthBegin(n, dayOfMonth int, opts ...Option) (*Offset, error) {
	return newSemiMonth(KindSemiMonthBegin, n, true, dayOfMonth, opts)
}
