package offsets

import "time"

type monthRule struct {
	prefix string
	anchor Anchor
}

func (r monthRule) code() string    { return r.prefix }
func (r monthRule) params() []Param { return nil }
func (r monthRule) adjustDST() bool { return true }

func (r monthRule) onOffset(_ *Offset, t time.Time) bool {
	y, m, d := t.Date()
	return d == r.anchor.dayOf(y, int(m), d)
}

func (r monthRule) shift(o *Offset, t time.Time) (time.Time, error) {
	y, m, d := t.Date()
	n := RollConvention(d, o.n, r.anchor.dayOf(y, int(m), d))
	return ShiftMonth(t, n, r.anchor), nil
}

func (r monthRule) shiftArray(o *Offset, dst, src []int64) error {
	ShiftMonths(dst, src, o.n, r.anchor)
	return nil
}

func newMonth(kind Kind, n int, prefix string, anchor Anchor, opts []Option) (*Offset, error) {
	o := buildOptions(opts)
	return newOffset(kind, n, o.normalize, monthRule{prefix: prefix, anchor: anchor})
}

// NewMonthEnd returns n calendar month ends.
func NewMonthEnd(n int, opts ...Option) (*Offset, error) {
	return newMonth(KindMonthEnd, n, "M", AnchorEnd, opts)
}

// NewMonthBegin returns n calendar month starts.
func NewMonthBegin(n int, opts ...Option) (*Offset, error) {
	return newMonth(KindMonthBegin, n, "MS", AnchorStart, opts)
}

// NewBusinessMonthEnd returns n last weekdays of the month.
func NewBusinessMonthEnd(n int, opts ...Option) (*Offset, error) {
	return newMonth(KindBusinessMonthEnd, n, "BM", AnchorBusinessEnd, opts)
}

// NewBusinessMonthBegin returns n first weekdays of the month.
func NewBusinessMonthBegin(n int, opts ...Option) (*Offset, error) {
	return newMonth(KindBusinessMonthBegin, n, "BMS", AnchorBusinessStart, opts)
}

// customMonthRule anchors on the first or last valid day of a month under a
// business day calendar.
type customMonthRule struct {
	customCalendar
	begin bool
}

func (r customMonthRule) code() string {
	if r.begin {
		return "CBMS"
	}
	return "CBM"
}

func (r customMonthRule) params() []Param { return r.calendarParams() }
func (r customMonthRule) adjustDST() bool { return true }

// monthRoll moves t to the first or last calendar day of its month.
func (r customMonthRule) monthRoll(t time.Time) time.Time {
	if r.begin {
		return ShiftMonth(t, 0, AnchorStart)
	}
	return ShiftMonth(t, 0, AnchorEnd)
}

// dayRoll moves t forward (begin) or backward (end) onto a valid day.
func (r customMonthRule) dayRoll(t time.Time) time.Time {
	if r.cal.IsBusinessDay(t) {
		return t
	}
	if r.begin {
		return r.cal.AddBusinessDays(t, 1, RollBackward)
	}
	return r.cal.AddBusinessDays(t, -1, RollForward)
}

func (r customMonthRule) onOffset(_ *Offset, t time.Time) bool {
	return civilDays(t) == civilDays(r.dayRoll(r.monthRoll(t)))
}

func (r customMonthRule) shift(o *Offset, t time.Time) (time.Time, error) {
	cur := r.monthRoll(t)
	compare := r.dayRoll(cur)
	n := RollConvention(t.Day(), o.n, compare.Day())

	anchor := AnchorEnd
	if r.begin {
		anchor = AnchorStart
	}
	return r.dayRoll(ShiftMonth(cur, n, anchor)), nil
}

func newCustomMonth(kind Kind, n int, begin bool, opts []Option) (*Offset, error) {
	o := buildOptions(opts)
	cal, err := buildCalendar(kind, o)
	if err != nil {
		return nil, err
	}
	return newOffset(kind, n, o.normalize, customMonthRule{customCalendar: cal, begin: begin})
}

// NewCustomBusinessMonthEnd returns n last valid days of the month under a
// business day calendar.
func NewCustomBusinessMonthEnd(n int, opts ...Option) (*Offset, error) {
	return newCustomMonth(KindCustomBusinessMonthEnd, n, false, opts)
}

// NewCustomBusinessMonthBegin returns n first valid days of the month under a
// business day calendar.
func NewCustomBusinessMonthBegin(n int, opts ...Option) (*Offset, error) {
	return newCustomMonth(KindCustomBusinessMonthBegin, n, true, opts)
}
