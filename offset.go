package offsets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NaT is the not-a-time sentinel of nanosecond timestamp arrays.
const NaT int64 = math.MinInt64

// Kind enumerates the closed set of offset variants.
type Kind int

const (
	KindDay Kind = iota
	KindHour
	KindMinute
	KindSecond
	KindMilli
	KindMicro
	KindNano
	KindBusinessDay
	KindBusinessHour
	KindCustomBusinessDay
	KindCustomBusinessHour
	KindMonthEnd
	KindMonthBegin
	KindBusinessMonthEnd
	KindBusinessMonthBegin
	KindCustomBusinessMonthEnd
	KindCustomBusinessMonthBegin
	KindSemiMonthEnd
	KindSemiMonthBegin
	KindWeek
	KindWeekOfMonth
	KindLastWeekOfMonth
	KindQuarterEnd
	KindQuarterBegin
	KindBQuarterEnd
	KindBQuarterBegin
	KindYearEnd
	KindYearBegin
	KindBYearEnd
	KindBYearBegin
	KindFY5253
	KindFY5253Quarter
	KindEaster
	KindDateOffset
)

var kindNames = [...]string{
	KindDay:                      "Day",
	KindHour:                     "Hour",
	KindMinute:                   "Minute",
	KindSecond:                   "Second",
	KindMilli:                    "Milli",
	KindMicro:                    "Micro",
	KindNano:                     "Nano",
	KindBusinessDay:              "BusinessDay",
	KindBusinessHour:             "BusinessHour",
	KindCustomBusinessDay:        "CustomBusinessDay",
	KindCustomBusinessHour:       "CustomBusinessHour",
	KindMonthEnd:                 "MonthEnd",
	KindMonthBegin:               "MonthBegin",
	KindBusinessMonthEnd:         "BusinessMonthEnd",
	KindBusinessMonthBegin:       "BusinessMonthBegin",
	KindCustomBusinessMonthEnd:   "CustomBusinessMonthEnd",
	KindCustomBusinessMonthBegin: "CustomBusinessMonthBegin",
	KindSemiMonthEnd:             "SemiMonthEnd",
	KindSemiMonthBegin:           "SemiMonthBegin",
	KindWeek:                     "Week",
	KindWeekOfMonth:              "WeekOfMonth",
	KindLastWeekOfMonth:          "LastWeekOfMonth",
	KindQuarterEnd:               "QuarterEnd",
	KindQuarterBegin:             "QuarterBegin",
	KindBQuarterEnd:              "BQuarterEnd",
	KindBQuarterBegin:            "BQuarterBegin",
	KindYearEnd:                  "YearEnd",
	KindYearBegin:                "YearBegin",
	KindBYearEnd:                 "BYearEnd",
	KindBYearBegin:               "BYearBegin",
	KindFY5253:                   "FY5253",
	KindFY5253Quarter:            "FY5253Quarter",
	KindEaster:                   "Easter",
	KindDateOffset:               "DateOffset",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind maps a variant name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsTick reports whether k is a fixed length duration.
func (k Kind) IsTick() bool {
	return k >= KindDay && k <= KindNano
}

// Param is one named offset parameter.
type Param struct {
	Name  string
	Value interface{}
}

// rule is the per-variant behaviour table.
type rule interface {
	// code is the rule code, e.g. "W-SUN".
	code() string
	// params lists variant parameters in a stable order.
	params() []Param
	// onOffset is the membership rule; normalize has already been checked.
	onOffset(o *Offset, t time.Time) bool
	// shift applies the variant to one timestamp.
	shift(o *Offset, t time.Time) (time.Time, error)
	// adjustDST reports whether shift runs on the zone-less wall clock.
	adjustDST() bool
}

// arrayRule is implemented by variants with a vectorized kernel.
type arrayRule interface {
	shiftArray(o *Offset, dst, src []int64) error
}

// roller is implemented by variants with their own roll semantics.
type roller interface {
	rollforward(o *Offset, t time.Time) time.Time
	rollback(o *Offset, t time.Time) time.Time
}

// nChecker is implemented by variants restricting n.
type nChecker interface {
	checkN(kind Kind, n int) error
}

// Offset is an immutable calendar offset: n periods of one variant.
type Offset struct {
	kind      Kind
	n         int
	normalize bool
	rule      rule
	key       string
}

func newOffset(kind Kind, n int, normalize bool, r rule) (*Offset, error) {
	if c, ok := r.(nChecker); ok {
		if err := c.checkN(kind, n); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	b.WriteString(kind.String())
	fmt.Fprintf(&b, "|normalize=%v", normalize)
	for _, p := range r.params() {
		fmt.Fprintf(&b, "|%v=%v", p.Name, p.Value)
	}

	return &Offset{
		kind:      kind,
		n:         n,
		normalize: normalize,
		rule:      r,
		key:       b.String(),
	}, nil
}

// nonZeroN rejects n == 0.
type nonZeroN struct{}

func (nonZeroN) checkN(kind Kind, n int) error {
	if n == 0 {
		return constructionErr(kind, "N cannot be 0")
	}
	return nil
}

// Kind returns the variant.
func (o *Offset) Kind() Kind { return o.kind }

// N returns the signed period count.
func (o *Offset) N() int { return o.n }

// Normalize reports whether results are truncated to midnight.
func (o *Offset) Normalize() bool { return o.normalize }

// Name returns the rule code, e.g. "BQS-MAR".
func (o *Offset) Name() string { return o.rule.code() }

// String returns the frequency string of o.
func (o *Offset) String() string {
	code := o.rule.code()
	if o.n != 1 {
		code = strconv.Itoa(o.n) + code
	}
	if s, ok := o.rule.(interface{ offsetSuffix() string }); ok {
		code += s.offsetSuffix()
	}
	return code
}

// Params lists n, normalize and the variant parameters.
func (o *Offset) Params() []Param {
	pp := []Param{
		{Name: "n", Value: o.n},
		{Name: "normalize", Value: o.normalize},
	}
	return append(pp, o.rule.params()...)
}

// Equal reports whether both offsets are the same variant with the same parameters.
func (o *Offset) Equal(other *Offset) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.kind.IsTick() && other.kind.IsTick() {
		return o.tickNanos() == other.tickNanos()
	}
	return o.kind == other.kind && o.n == other.n && o.key == other.key
}

// EqualString resolves freq with the default registry and compares.
func (o *Offset) EqualString(freq string) bool {
	other, err := ToOffset(freq)
	if err != nil {
		return false
	}
	return o.Equal(other)
}

// IsAnchored reports whether o is a single period of an anchored variant.
func (o *Offset) IsAnchored() bool {
	if a, ok := o.rule.(interface{ anchored() bool }); ok {
		return o.n == 1 && a.anchored()
	}
	return o.n == 1
}

// WithN returns the same variant with n periods.
func (o *Offset) WithN(n int) (*Offset, error) {
	return newOffset(o.kind, n, o.normalize, o.rule)
}

// Mul multiplies the period count by k.
func (o *Offset) Mul(k int) (*Offset, error) {
	n, ok := mulInt(o.n, k)
	if !ok {
		return nil, &OverflowError{Offset: o.String(), Operand: strconv.Itoa(k)}
	}
	return o.WithN(n)
}

// Neg returns the offset moving in the opposite direction.
func (o *Offset) Neg() *Offset {
	neg, err := o.WithN(-o.n)
	if err != nil {
		// -n is valid whenever n was
		panic(err)
	}
	return neg
}

func (o *Offset) unit() *Offset {
	one, err := o.WithN(1)
	if err != nil {
		panic(err)
	}
	return one
}

// Plus combines two offsets. Ticks of any unit add through nanoseconds; other
// variants add when kind and parameters other than n match.
func (o *Offset) Plus(other *Offset) (*Offset, error) {
	if o.kind.IsTick() && other.kind.IsTick() {
		sum, ok := addInt64(o.tickNanos(), other.tickNanos())
		if !ok || sum == NaT {
			return nil, &OverflowError{Offset: o.String(), Operand: other.String()}
		}
		if o.kind != other.kind {
			return DeltaToTick(sum), nil
		}
	}
	if o.kind == other.kind && o.key == other.key {
		n, ok := addInt64(int64(o.n), int64(other.n))
		if !ok || n > int64(maxInt) || n < -int64(maxInt)-1 {
			return nil, &OverflowError{Offset: o.String(), Operand: other.String()}
		}
		return o.WithN(int(n))
	}
	return nil, fmt.Errorf("cannot add %v and %v: %w", o, other, ErrNotApplicable)
}

// addInt64 returns a+b and false when the sum wraps.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	return sum, !(b > 0 && sum < a) && !(b < 0 && sum > a)
}

// mulInt returns a*b and false when the product wraps.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == -maxInt-1) || (b == -1 && a == -maxInt-1) {
		return 0, false
	}
	return p, true
}

// IsOnOffset reports whether t lies on the offset.
func (o *Offset) IsOnOffset(t time.Time) bool {
	if o.normalize && !isNormalized(t) {
		return false
	}
	if o.rule.adjustDST() {
		t = naive(t)
	}
	return o.rule.onOffset(o, t)
}

// Apply shifts t by the offset.
func (o *Offset) Apply(t time.Time) (time.Time, error) {
	loc := t.Location()
	nano := t.Nanosecond() % 1000

	in := t
	if o.rule.adjustDST() {
		in = naive(t)
	}

	result, err := o.rule.shift(o, in)
	if err != nil {
		return time.Time{}, err
	}

	if o.rule.adjustDST() {
		result = Localize(result, loc)
	}
	if o.normalize {
		result = midnight(result)
	}
	if !o.normalize && nano != 0 && !keepsNanos(o.rule) && result.Nanosecond()%1000 != nano {
		result = result.Add(time.Duration(nano))
	}
	return result, nil
}

// keepsNanos reports whether the rule sets sub-microsecond fields itself.
func keepsNanos(r rule) bool {
	k, ok := r.(interface{ ownsNanos() bool })
	return ok && k.ownsNanos()
}

// ApplyNanos shifts one epoch nanosecond value. NaT passes through.
func (o *Offset) ApplyNanos(v int64) (int64, error) {
	if v == NaT {
		return NaT, nil
	}
	result, err := o.Apply(time.Unix(0, v).UTC())
	if err != nil {
		return 0, err
	}
	if !inNanoRange(result) {
		return 0, &OverflowError{Offset: o.String(), Operand: strconv.FormatInt(v, 10)}
	}
	return result.UnixNano(), nil
}

// Add combines o with an operand of type time.Time, int64 nanoseconds,
// time.Duration or *Offset. Any other operand yields ErrNotApplicable.
func (o *Offset) Add(operand interface{}) (interface{}, error) {
	switch v := operand.(type) {
	case time.Time:
		return o.Apply(v)
	case int64:
		return o.ApplyNanos(v)
	case time.Duration:
		return o.addDuration(v)
	case *Offset:
		return o.Plus(v)
	default:
		return nil, fmt.Errorf("%v + %T: %w", o, operand, ErrNotApplicable)
	}
}

func (o *Offset) addDuration(d time.Duration) (interface{}, error) {
	if a, ok := o.rule.(interface {
		addDuration(o *Offset, d time.Duration) (*Offset, error)
	}); ok {
		return a.addDuration(o, d)
	}
	if o.kind.IsTick() {
		sum := time.Duration(o.tickNanos()) + d
		return sum, nil
	}
	return nil, fmt.Errorf("%v + %v: %w", o, d, ErrNotApplicable)
}

// Rollforward moves t forward to the next date on the offset, if it is not on it.
func (o *Offset) Rollforward(t time.Time) time.Time {
	if r, ok := o.rule.(roller); ok {
		return r.rollforward(o, t)
	}
	if o.IsOnOffset(t) {
		return t
	}
	v, err := o.unit().Apply(t)
	if err != nil {
		return t
	}
	return v
}

// Rollback moves t back to the previous date on the offset, if it is not on it.
func (o *Offset) Rollback(t time.Time) time.Time {
	if r, ok := o.rule.(roller); ok {
		return r.rollback(o, t)
	}
	if o.IsOnOffset(t) {
		return t
	}
	v, err := o.unit().Neg().Apply(t)
	if err != nil {
		return t
	}
	return v
}

// ApplyArray shifts every element of values into a new slice. NaT passes
// through. Variants without a kernel return ErrNotImplemented.
func (o *Offset) ApplyArray(values []int64) ([]int64, error) {
	dst := make([]int64, len(values))
	if err := o.ApplyArrayInto(dst, values); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyArrayInto is ApplyArray writing into dst, which must be as long as src.
// src is never modified; dst must not be shared with other writers.
func (o *Offset) ApplyArrayInto(dst, src []int64) error {
	if len(dst) < len(src) {
		return fmt.Errorf("destination holds %d values, need %d", len(dst), len(src))
	}
	a, ok := o.rule.(arrayRule)
	if !ok {
		return notImplemented(o, "no kernel for %v", o.kind)
	}
	if err := a.shiftArray(o, dst[:len(src)], src); err != nil {
		return err
	}
	if o.normalize {
		normalizeNanos(dst[:len(src)])
	}
	return nil
}

// naive returns the wall clock of t as a zone-less UTC time.
func naive(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Localize attaches loc to the wall clock fields of v.
func Localize(v time.Time, loc *time.Location) time.Time {
	if loc == v.Location() {
		return v
	}
	return time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), loc)
}

var (
	minNanoTime = time.Unix(0, math.MinInt64+1)
	maxNanoTime = time.Unix(0, math.MaxInt64)
)

func inNanoRange(t time.Time) bool {
	return !t.Before(minNanoTime) && !t.After(maxNanoTime)
}

// options collects constructor arguments shared by several variants.
type options struct {
	normalize bool
	offset    time.Duration
	weekmask  string
	holidays  []time.Time
	calendar  HolidayCalendar
	busdaycal *BusinessDayCalendar
	start     []string
	end       []string
}

// Option customizes an offset constructor. Options a variant does not use are ignored.
type Option func(*options)

// WithNormalize truncates every result to midnight.
func WithNormalize() Option {
	return func(o *options) { o.normalize = true }
}

// WithOffset adds a fixed duration after business day shifts.
func WithOffset(d time.Duration) Option {
	return func(o *options) { o.offset = d }
}

// WithWeekmask sets the business weekdays of custom business offsets.
func WithWeekmask(weekmask string) Option {
	return func(o *options) { o.weekmask = weekmask }
}

// WithHolidays adds holidays to custom business offsets.
func WithHolidays(holidays ...time.Time) Option {
	return func(o *options) { o.holidays = append(o.holidays, holidays...) }
}

// WithHolidayCalendar merges the holidays of an external calendar.
func WithHolidayCalendar(c HolidayCalendar) Option {
	return func(o *options) { o.calendar = c }
}

// WithBusinessDayCalendar uses c as-is, trusting it over weekmask and holidays.
func WithBusinessDayCalendar(c *BusinessDayCalendar) Option {
	return func(o *options) { o.busdaycal = c }
}

// WithHours sets the opening windows of business hour offsets.
func WithHours(start, end []string) Option {
	return func(o *options) {
		o.start = start
		o.end = end
	}
}

func buildOptions(opts []Option) options {
	o := options{weekmask: DefaultWeekmask}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
