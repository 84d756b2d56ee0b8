package offsets

import "time"

type quarterRule struct {
	prefix        string
	anchor        Anchor
	startingMonth int
}

func (r quarterRule) code() string    { return r.prefix + "-" + MonthAlias(r.startingMonth) }
func (r quarterRule) adjustDST() bool { return true }
func (r quarterRule) anchored() bool  { return true }

func (r quarterRule) params() []Param {
	return []Param{{Name: "startingMonth", Value: r.startingMonth}}
}

func (r quarterRule) onOffset(_ *Offset, t time.Time) bool {
	y, m, d := t.Date()
	return floorMod(int(m)-r.startingMonth, 3) == 0 && d == r.anchor.dayOf(y, int(m), d)
}

func (r quarterRule) shift(o *Offset, t time.Time) (time.Time, error) {
	y, m, d := t.Date()
	monthsSince := int(m)%3 - r.startingMonth%3
	qtrs := rollQtrDay(y, int(m), d, o.n, r.startingMonth, r.anchor, 3)
	return ShiftMonth(t, qtrs*3-monthsSince, r.anchor), nil
}

func (r quarterRule) shiftArray(o *Offset, dst, src []int64) error {
	ShiftQuarters(dst, src, o.n, r.startingMonth, r.anchor, 3)
	return nil
}

// StartingMonth returns the anchor month of quarter offsets.
func (o *Offset) StartingMonth() (int, bool) {
	switch r := o.rule.(type) {
	case quarterRule:
		return r.startingMonth, true
	case fy5253Rule:
		return r.startingMonth, true
	case fy5253QuarterRule:
		return r.year.startingMonth, true
	}
	return 0, false
}

// DefaultStartingMonth is the conventional quarter anchor, March.
const DefaultStartingMonth = 3

func newQuarter(kind Kind, n int, prefix string, anchor Anchor, startingMonth int, opts []Option) (*Offset, error) {
	if startingMonth < 1 || startingMonth > 12 {
		return nil, constructionErr(kind, "Month must go from 1 to 12")
	}
	o := buildOptions(opts)
	return newOffset(kind, n, o.normalize, quarterRule{
		prefix:        prefix,
		anchor:        anchor,
		startingMonth: startingMonth,
	})
}

// NewQuarterEnd returns n quarter ends.
func NewQuarterEnd(n, startingMonth int, opts ...Option) (*Offset, error) {
	return newQuarter(KindQuarterEnd, n, "Q", AnchorEnd, startingMonth, opts)
}

// NewQuarterBegin returns n quarter starts.
func NewQuarterBegin(n, startingMonth int, opts ...Option) (*Offset, error) {
	return newQuarter(KindQuarterBegin, n, "QS", AnchorStart, startingMonth, opts)
}

// NewBQuarterEnd returns n last weekdays of the quarter.
func NewBQuarterEnd(n, startingMonth int, opts ...Option) (*Offset, error) {
	return newQuarter(KindBQuarterEnd, n, "BQ", AnchorBusinessEnd, startingMonth, opts)
}

// NewBQuarterBegin returns n first weekdays of the quarter.
func NewBQuarterBegin(n, startingMonth int, opts ...Option) (*Offset, error) {
	return newQuarter(KindBQuarterBegin, n, "BQS", AnchorBusinessStart, startingMonth, opts)
}
