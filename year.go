package offsets

import "time"

type yearRule struct {
	prefix string
	anchor Anchor
	month  int
}

func (r yearRule) code() string    { return r.prefix + "-" + MonthAlias(r.month) }
func (r yearRule) adjustDST() bool { return true }

func (r yearRule) params() []Param {
	return []Param{{Name: "month", Value: r.month}}
}

func (r yearRule) onOffset(_ *Offset, t time.Time) bool {
	y, m, d := t.Date()
	return int(m) == r.month && d == r.anchor.dayOf(y, int(m), d)
}

func (r yearRule) shift(o *Offset, t time.Time) (time.Time, error) {
	y, m, d := t.Date()
	years := rollYearDay(y, int(m), d, o.n, r.month, r.anchor)
	return ShiftMonth(t, years*12+r.month-int(m), r.anchor), nil
}

func (r yearRule) shiftArray(o *Offset, dst, src []int64) error {
	ShiftQuarters(dst, src, o.n, r.month, r.anchor, 12)
	return nil
}

// Month returns the anchor month of year offsets.
func (o *Offset) Month() (int, bool) {
	if r, ok := o.rule.(yearRule); ok {
		return r.month, true
	}
	return 0, false
}

func newYear(kind Kind, n int, prefix string, anchor Anchor, month int, opts []Option) (*Offset, error) {
	if month < 1 || month > 12 {
		return nil, constructionErr(kind, "Month must go from 1 to 12")
	}
	o := buildOptions(opts)
	return newOffset(kind, n, o.normalize, yearRule{prefix: prefix, anchor: anchor, month: month})
}

// NewYearEnd returns n year ends in month (1-12).
func NewYearEnd(n, month int, opts ...Option) (*Offset, error) {
	return newYear(KindYearEnd, n, "A", AnchorEnd, month, opts)
}

// NewYearBegin returns n year starts in month (1-12).
func NewYearBegin(n, month int, opts ...Option) (*Offset, error) {
	return newYear(KindYearBegin, n, "AS", AnchorStart, month, opts)
}

// NewBYearEnd returns n last weekdays of the year ending in month.
func NewBYearEnd(n, month int, opts ...Option) (*Offset, error) {
	return newYear(KindBYearEnd, n, "BA", AnchorBusinessEnd, month, opts)
}

// NewBYearBegin returns n first weekdays of the year starting in month.
func NewBYearBegin(n, month int, opts ...Option) (*Offset, error) {
	return newYear(KindBYearBegin, n, "BAS", AnchorBusinessStart, month, opts)
}
