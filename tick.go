package offsets

import (
	"math"
	"strconv"
	"time"
)

var tickUnits = map[Kind]struct {
	code  string
	nanos int64
}{
	KindDay:    {code: "D", nanos: nanosPerDay},
	KindHour:   {code: "H", nanos: nanosPerHour},
	KindMinute: {code: "T", nanos: nanosPerMin},
	KindSecond: {code: "S", nanos: nanosPerSec},
	KindMilli:  {code: "L", nanos: nanosPerMilli},
	KindMicro:  {code: "U", nanos: nanosPerMicro},
	KindNano:   {code: "N", nanos: 1},
}

// tickKinds is ordered from the largest unit down.
var tickKinds = []Kind{KindDay, KindHour, KindMinute, KindSecond, KindMilli, KindMicro, KindNano}

type tickRule struct {
	kind Kind
}

func (r tickRule) code() string                     { return tickUnits[r.kind].code }
func (r tickRule) params() []Param                  { return nil }
func (r tickRule) adjustDST() bool                  { return false }
func (r tickRule) ownsNanos() bool                  { return true }
func (r tickRule) onOffset(*Offset, time.Time) bool { return true }

func (r tickRule) shift(o *Offset, t time.Time) (time.Time, error) {
	delta, ok := r.delta(o.n)
	if !ok {
		return time.Time{}, &OverflowError{Offset: o.String(), Operand: t.String()}
	}
	return t.Add(time.Duration(delta)), nil
}

func (r tickRule) delta(n int) (int64, bool) {
	unit := tickUnits[r.kind].nanos
	if n != 0 && (int64(n) > math.MaxInt64/unit || int64(n) < -math.MaxInt64/unit) {
		return 0, false
	}
	return int64(n) * unit, true
}

func (r tickRule) shiftArray(o *Offset, dst, src []int64) error {
	delta, ok := r.delta(o.n)
	if !ok {
		return &OverflowError{Offset: o.String(), Operand: "array"}
	}
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}
		sum := v + delta
		if (delta > 0 && sum < v) || (delta < 0 && sum > v) || sum == NaT {
			return &OverflowError{Offset: o.String(), Operand: strconv.FormatInt(v, 10)}
		}
		dst[i] = sum
	}
	return nil
}

// checkN rejects counts whose length does not fit in int64 nanoseconds.
func (r tickRule) checkN(kind Kind, n int) error {
	if _, ok := r.delta(n); !ok {
		return &OverflowError{Offset: strconv.Itoa(n) + r.code(), Operand: "nanoseconds"}
	}
	return nil
}

func newTick(kind Kind, n int, opts []Option) (*Offset, error) {
	if buildOptions(opts).normalize {
		return nil, constructionErr(kind, "Tick offset with `normalize=True` are not allowed.")
	}
	return newOffset(kind, n, false, tickRule{kind: kind})
}

// NewDay returns n fixed 24 hour days.
func NewDay(n int, opts ...Option) (*Offset, error) { return newTick(KindDay, n, opts) }

// NewHour returns n hours.
func NewHour(n int, opts ...Option) (*Offset, error) { return newTick(KindHour, n, opts) }

// NewMinute returns n minutes.
func NewMinute(n int, opts ...Option) (*Offset, error) { return newTick(KindMinute, n, opts) }

// NewSecond returns n seconds.
func NewSecond(n int, opts ...Option) (*Offset, error) { return newTick(KindSecond, n, opts) }

// NewMilli returns n milliseconds.
func NewMilli(n int, opts ...Option) (*Offset, error) { return newTick(KindMilli, n, opts) }

// NewMicro returns n microseconds.
func NewMicro(n int, opts ...Option) (*Offset, error) { return newTick(KindMicro, n, opts) }

// NewNano returns n nanoseconds.
func NewNano(n int, opts ...Option) (*Offset, error) { return newTick(KindNano, n, opts) }

// tickNanos is the signed length of a tick offset. Callers check IsTick;
// construction guarantees the product fits.
func (o *Offset) tickNanos() int64 {
	return int64(o.n) * tickUnits[o.kind].nanos
}

// Nanos returns the length of a tick offset, or false for other kinds.
func (o *Offset) Nanos() (int64, bool) {
	if !o.kind.IsTick() {
		return 0, false
	}
	return o.tickNanos(), true
}

// DeltaToTick expresses nanos in the largest unit dividing it exactly.
func DeltaToTick(nanos int64) *Offset {
	for _, kind := range tickKinds {
		unit := tickUnits[kind].nanos
		if nanos%unit != 0 {
			continue
		}
		o, _ := newTick(kind, int(nanos/unit), nil)
		return o
	}
	panic("unreachable")
}
