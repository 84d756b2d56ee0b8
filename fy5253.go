package offsets

import (
	"fmt"
	"strconv"
	"time"
)

// Variation selects how a 52/53 week fiscal year end is placed.
type Variation string

const (
	// VariationNearest ends the year on the weekday nearest the last day of the month.
	VariationNearest Variation = "nearest"
	// VariationLast ends the year on the last such weekday in the month.
	VariationLast Variation = "last"
)

func (v Variation) code() string {
	if v == VariationLast {
		return "L"
	}
	return "N"
}

func parseVariation(code string) (Variation, error) {
	switch code {
	case "N":
		return VariationNearest, nil
	case "L":
		return VariationLast, nil
	}
	return "", fmt.Errorf("Unable to parse varion_code: %v", code)
}

// fy5253Rule is a 52/53 week fiscal year ending on weekday near the end of
// startingMonth.
type fy5253Rule struct {
	nonZeroN
	weekday       int
	startingMonth int
	variation     Variation
}

func (r fy5253Rule) suffix() string {
	return r.variation.code() + "-" + MonthAlias(r.startingMonth) + "-" + WeekdayCode(r.weekday)
}

func (r fy5253Rule) code() string    { return "RE-" + r.suffix() }
func (r fy5253Rule) adjustDST() bool { return true }
func (r fy5253Rule) anchored() bool  { return true }

func (r fy5253Rule) params() []Param {
	return []Param{
		{Name: "weekday", Value: r.weekday},
		{Name: "startingMonth", Value: r.startingMonth},
		{Name: "variation", Value: string(r.variation)},
	}
}

// yearEnd returns the day number of the fiscal year end falling in year.
func (r fy5253Rule) yearEnd(year int) int64 {
	dim := DaysInMonth(year, r.startingMonth)
	target := daysFromCivil(year, r.startingMonth, dim)
	diff := r.weekday - weekdayFromDays(target)
	if diff == 0 {
		return target
	}

	forward := floorMod(diff, 7)
	if r.variation == VariationLast {
		return target + int64(forward-7)
	}
	if forward <= 3 {
		return target + int64(forward)
	}
	return target + int64(forward-7)
}

func (r fy5253Rule) onOffset(_ *Offset, t time.Time) bool {
	days := civilDays(t)
	if r.yearEnd(t.Year()) == days {
		return true
	}
	if r.variation == VariationNearest {
		prev := ShiftMonth(t, -1, AnchorNone)
		return r.yearEnd(prev.Year()) == days
	}
	return false
}

func (r fy5253Rule) shift(o *Offset, t time.Time) (time.Time, error) {
	return r.apply(o.n, t), nil
}

func (r fy5253Rule) apply(n int, t time.Time) time.Time {
	norm := civilDays(t)
	prev := r.yearEnd(t.Year() - 1)
	cur := r.yearEnd(t.Year())
	next := r.yearEnd(t.Year() + 1)

	switch {
	case norm == prev:
		n--
	case norm == cur:
	case n > 0:
		if norm < prev {
			n -= 2
		} else if prev < norm && norm < cur {
			n--
		}
	default:
		switch {
		case cur < norm && norm < next:
			n++
		case prev < norm && norm < cur:
		case norm < prev && prev-norm <= 6:
			n--
		default:
			panic(fmt.Errorf("fiscal year end of %v not bracketed by %v", t, r.suffix()))
		}
	}

	y, m, d := civilFromDays(r.yearEnd(t.Year() + n))
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// rollback returns t when it is a fiscal year end, else the previous one.
func (r fy5253Rule) rollback(t time.Time) time.Time {
	if r.onOffset(nil, t) {
		return t
	}
	return r.apply(-1, t)
}

func (r fy5253Rule) rollforward(t time.Time) time.Time {
	if r.onOffset(nil, t) {
		return t
	}
	return r.apply(1, t)
}

func fy5253(kind Kind, wd, startingMonth int, variation Variation) (fy5253Rule, error) {
	if err := checkWeekday(kind, wd); err != nil {
		return fy5253Rule{}, err
	}
	if startingMonth < 1 || startingMonth > 12 {
		return fy5253Rule{}, constructionErr(kind, "Month must go from 1 to 12")
	}
	if variation != VariationNearest && variation != VariationLast {
		return fy5253Rule{}, constructionErr(kind, "%v is not a valid variation", variation)
	}
	return fy5253Rule{weekday: wd, startingMonth: startingMonth, variation: variation}, nil
}

// NewFY5253 returns n 52/53 week fiscal years ending on weekday wd at the
// end of startingMonth.
func NewFY5253(n, wd, startingMonth int, variation Variation, opts ...Option) (*Offset, error) {
	r, err := fy5253(KindFY5253, wd, startingMonth, variation)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return newOffset(KindFY5253, n, o.normalize, r)
}

// fy5253QuarterRule splits a 52/53 week fiscal year into 13 week quarters;
// qtrWithExtraWeek gets the 14th week of a 53 week year.
type fy5253QuarterRule struct {
	nonZeroN
	year             fy5253Rule
	qtrWithExtraWeek int
}

func (r fy5253QuarterRule) code() string {
	return "REQ-" + r.year.suffix() + "-" + strconv.Itoa(r.qtrWithExtraWeek)
}

func (r fy5253QuarterRule) adjustDST() bool { return true }
func (r fy5253QuarterRule) anchored() bool  { return true }

func (r fy5253QuarterRule) params() []Param {
	return append(r.year.params(), Param{Name: "qtr_with_extra_week", Value: r.qtrWithExtraWeek})
}

// yearHasExtraWeek reports whether the fiscal year containing t has 53 weeks.
func (r fy5253QuarterRule) yearHasExtraWeek(t time.Time) bool {
	norm := midnight(t)
	next := civilDays(r.year.rollforward(norm))
	prev := civilDays(r.year.apply(-1, norm))

	weeks := (next - prev) / 7
	if (next-prev)%7 != 0 || (weeks != 52 && weeks != 53) {
		panic(fmt.Errorf("fiscal year %v has %d days", r.year.suffix(), next-prev))
	}
	return weeks == 53
}

func (r fy5253QuarterRule) weeks(t time.Time) [4]int {
	ww := [4]int{13, 13, 13, 13}
	if r.yearHasExtraWeek(t) {
		ww[r.qtrWithExtraWeek-1] = 14
	}
	return ww
}

// rollbackToYear returns the latest fiscal year end at or before t, the whole
// quarters elapsed since, and the time left over.
func (r fy5253QuarterRule) rollbackToYear(t time.Time) (time.Time, int, time.Duration) {
	start := r.year.rollback(t)
	if !start.Before(t) {
		return start, 0, 0
	}

	lens := r.weeks(t)
	total := 0
	for _, l := range lens {
		total += l
	}
	if end := shiftDays(start, 7*total); !r.year.onOffset(nil, end) {
		panic(fmt.Errorf("quarters from %v do not reach a fiscal year end", start))
	}

	var qtrs int
	delta := t.Sub(start)
	for _, l := range lens {
		span := time.Duration(l) * 7 * 24 * time.Hour
		if delta < span {
			break
		}
		qtrs++
		delta -= span
	}
	return start, qtrs, delta
}

func (r fy5253QuarterRule) shift(o *Offset, t time.Time) (time.Time, error) {
	n := o.n
	res, qtrs, delta := r.rollbackToYear(t)
	n += qtrs
	if o.n <= 0 && delta > 0 {
		n++
	}

	if years := int(floorDiv(int64(n), 4)); years != 0 {
		res = r.year.apply(years, res)
		n -= years * 4
	}

	lens := r.weeks(shiftDays(res, 1))
	weeks := 0
	for _, l := range lens[:n] {
		weeks += l
	}
	if weeks != 0 {
		res = shiftDays(res, 7*weeks)
	}
	return res, nil
}

func (r fy5253QuarterRule) onOffset(_ *Offset, t time.Time) bool {
	if r.year.onOffset(nil, t) {
		return true
	}
	current := r.year.apply(-1, t)
	for _, l := range r.weeks(t) {
		current = shiftDays(current, 7*l)
		if current.Equal(t) {
			return true
		}
	}
	return false
}

// NewFY5253Quarter returns n quarters of a 52/53 week fiscal year.
// qtrWithExtraWeek (1-4) takes the extra week of 53 week years.
func NewFY5253Quarter(n, wd, startingMonth, qtrWithExtraWeek int, variation Variation, opts ...Option) (*Offset, error) {
	year, err := fy5253(KindFY5253Quarter, wd, startingMonth, variation)
	if err != nil {
		return nil, err
	}
	if qtrWithExtraWeek < 1 || qtrWithExtraWeek > 4 {
		return nil, constructionErr(KindFY5253Quarter, "qtr_with_extra_week must be 1<=qtr<=4, got %d", qtrWithExtraWeek)
	}
	o := buildOptions(opts)
	return newOffset(KindFY5253Quarter, n, o.normalize, fy5253QuarterRule{year: year, qtrWithExtraWeek: qtrWithExtraWeek})
}
