package offsets

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Delta keys accepted by NewDateOffset. Plural keys add, singular keys replace.
var (
	relativeKeys = []string{"years", "months", "weeks", "days", "hours", "minutes", "seconds", "microseconds", "nanoseconds"}
	absoluteKeys = []string{"year", "month", "day", "hour", "minute", "second", "microsecond", "weekday", "nth"}

	// keys that still add absolute time on zone aware values
	durationKeys = map[string]time.Duration{
		"hours":        time.Hour,
		"minutes":      time.Minute,
		"seconds":      time.Second,
		"microseconds": time.Microsecond,
		"nanoseconds":  time.Nanosecond,
	}

	absoluteRange = map[string][2]int{
		"year":        {1, 9999},
		"month":       {1, 12},
		"day":         {1, 31},
		"hour":        {0, 23},
		"minute":      {0, 59},
		"second":      {0, 59},
		"microsecond": {0, 999999},
		"weekday":     {Monday, Sunday},
		"nth":         {-53, 53},
	}
)

// Delta is a calendar delta in the style of a relative delta, keyed by
// field name, e.g. {"months": 1, "day": 31}.
type Delta map[string]int

func (d Delta) has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d Delta) get(key string, fallback int) int {
	if v, ok := d[key]; ok {
		return v
	}
	return fallback
}

// relative reports whether d needs calendar arithmetic rather than a fixed duration.
func (d Delta) relative() bool {
	for key := range d {
		if _, ok := durationKeys[key]; !ok {
			return true
		}
	}
	return false
}

// vectorizable reports whether d only carries relative keys.
func (d Delta) vectorizable() bool {
	for key := range d {
		if _, ok := absoluteRange[key]; ok {
			return false
		}
	}
	return true
}

// duration is the fixed time part of d.
func (d Delta) duration() time.Duration {
	var total time.Duration
	for key, unit := range durationKeys {
		total += time.Duration(d[key]) * unit
	}
	return total
}

func (d Delta) monthsAndDays() (int, int) {
	return d["years"]*12 + d["months"], d["weeks"]*7 + d["days"]
}

func (d Delta) String() string {
	var parts []string
	for _, keys := range [][]string{relativeKeys, absoluteKeys} {
		for _, key := range keys {
			if v, ok := d[key]; ok {
				parts = append(parts, key+"="+strconv.Itoa(v))
			}
		}
	}
	return strings.Join(parts, ", ")
}

// add applies d once, forward when sign is 1 and backward when -1. Absolute
// keys are not negated.
func (d Delta) add(t time.Time, sign int) time.Time {
	months, days := d.monthsAndDays()

	year := d.get("year", t.Year())
	month := d.get("month", int(t.Month()))
	year, month = addMonths(year, month, sign*months)

	day := d.get("day", t.Day())
	if dim := DaysInMonth(year, month); day > dim {
		day = dim
	}

	nsec := t.Nanosecond()
	if d.has("microsecond") {
		nsec = d["microsecond"]*1000 + nsec%1000
	}
	ret := time.Date(year, time.Month(month), day,
		d.get("hour", t.Hour()), d.get("minute", t.Minute()), d.get("second", t.Second()), nsec, t.Location())
	ret = shiftDays(ret, sign*days).Add(time.Duration(sign) * d.duration())

	if wd, ok := d["weekday"]; ok {
		nth := d.get("nth", 1)
		if nth == 0 {
			nth = 1
		}
		jump := 7 * (abs(nth) - 1)
		if nth > 0 {
			jump += floorMod(7-weekday(ret)+wd, 7)
		} else {
			jump = -(jump + floorMod(weekday(ret)-wd, 7))
		}
		ret = shiftDays(ret, jump)
	}
	return ret
}

// addNanos is add on an epoch nanosecond value for deltas of relative keys only.
func (d Delta) addNanos(v int64, sign int) int64 {
	months, days := d.monthsAndDays()
	dn, tod := splitNanos(v)
	if months != 0 {
		y, m, dd := civilFromDays(dn)
		y, m, dd = shiftMonthFields(y, m, dd, sign*months, AnchorNone)
		dn = daysFromCivil(y, m, dd)
	}
	dn += int64(sign * days)
	tod += int64(sign) * int64(d.duration())
	return joinNanos(dn, tod)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type dateOffsetRule struct {
	delta Delta
}

func (r dateOffsetRule) code() string {
	if len(r.delta) == 0 {
		return "DateOffset"
	}
	return "DateOffset(" + r.delta.String() + ")"
}

func (r dateOffsetRule) params() []Param {
	var pp []Param
	for _, keys := range [][]string{relativeKeys, absoluteKeys} {
		for _, key := range keys {
			if v, ok := r.delta[key]; ok {
				pp = append(pp, Param{Name: key, Value: v})
			}
		}
	}
	return pp
}

func (r dateOffsetRule) adjustDST() bool { return false }
func (r dateOffsetRule) ownsNanos() bool { return r.delta.has("nanoseconds") }

func (r dateOffsetRule) onOffset(*Offset, time.Time) bool { return true }

func (r dateOffsetRule) shift(o *Offset, t time.Time) (time.Time, error) {
	sign, count := 1, o.n
	if o.n < 0 {
		sign, count = -1, -o.n
	}

	if len(r.delta) == 0 {
		return t.Add(time.Duration(o.n) * 24 * time.Hour), nil
	}
	if !r.delta.relative() {
		return t.Add(time.Duration(o.n) * r.delta.duration()), nil
	}

	loc := t.Location()
	t = naive(t)
	for i := 0; i < count; i++ {
		t = r.delta.add(t, sign)
	}
	return Localize(t, loc), nil
}

func (r dateOffsetRule) shiftArray(o *Offset, dst, src []int64) error {
	if !r.delta.vectorizable() {
		var keys []string
		for _, key := range absoluteKeys {
			if r.delta.has(key) {
				keys = append(keys, key)
			}
		}
		return notImplemented(o, "DateOffset with relativedelta keyword(s) %v not able to be applied vectorized", keys)
	}

	sign, count := 1, o.n
	if o.n < 0 {
		sign, count = -1, -o.n
	}
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}
		if len(r.delta) == 0 {
			v += int64(o.n) * nanosPerDay
		}
		for k := 0; k < count && len(r.delta) > 0; k++ {
			v = r.delta.addNanos(v, sign)
		}
		dst[i] = v
	}
	return nil
}

// Delta returns a copy of the calendar delta of a DateOffset.
func (o *Offset) Delta() Delta {
	r, ok := o.rule.(dateOffsetRule)
	if !ok {
		return nil
	}
	d := make(Delta, len(r.delta))
	for k, v := range r.delta {
		d[k] = v
	}
	return d
}

// NewDateOffset applies delta n times. An empty delta is n days of 24 hours.
// Deltas made only of hours, minutes, seconds, microseconds and nanoseconds
// add absolute time; any other key works on the wall clock and re-localizes.
func NewDateOffset(n int, delta Delta, opts ...Option) (*Offset, error) {
	d := make(Delta, len(delta))
	for key, v := range delta {
		if bounds, ok := absoluteRange[key]; ok {
			if v < bounds[0] || v > bounds[1] {
				return nil, constructionErr(KindDateOffset, "%v must be in %d..%d, got %d", key, bounds[0], bounds[1], v)
			}
		} else if !isRelativeKey(key) {
			return nil, constructionErr(KindDateOffset, "invalid delta keyword %q", key)
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, constructionErr(KindDateOffset, "%v out of range, got %d", key, v)
		}
		d[key] = v
	}
	if d.has("nth") && !d.has("weekday") {
		return nil, constructionErr(KindDateOffset, "nth requires weekday")
	}

	o := buildOptions(opts)
	return newOffset(KindDateOffset, n, o.normalize, dateOffsetRule{delta: d})
}

func isRelativeKey(key string) bool {
	for _, k := range relativeKeys {
		if k == key {
			return true
		}
	}
	return false
}
