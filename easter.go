package offsets

import "time"

type easterRule struct{}

func (easterRule) code() string    { return "Easter" }
func (easterRule) params() []Param { return nil }
func (easterRule) adjustDST() bool { return true }

func (easterRule) onOffset(_ *Offset, t time.Time) bool {
	m, d := Easter(t.Year())
	return int(t.Month()) == m && t.Day() == d
}

func (easterRule) shift(o *Offset, t time.Time) (time.Time, error) {
	m, d := Easter(t.Year())
	current := time.Date(t.Year(), time.Month(m), d, 0, 0, 0, 0, t.Location())

	// n == 0 counts as forward: a date before this year's Easter moves back a year.
	n := o.n
	if n >= 0 && t.Before(current) {
		n--
	} else if n < 0 && t.After(current) {
		n++
	}

	year := t.Year() + n
	m, d = Easter(year)
	return time.Date(year, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
}

// NewEaster returns n Western Easter Sundays.
func NewEaster(n int, opts ...Option) (*Offset, error) {
	o := buildOptions(opts)
	return newOffset(KindEaster, n, o.normalize, easterRule{})
}
