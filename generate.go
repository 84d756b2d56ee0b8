package offsets

import (
	"errors"
	"fmt"
	"time"
)

// ErrRangeBounds is returned when a range does not get exactly two of start,
// end and periods.
var ErrRangeBounds = errors.New("of the three parameters: start, end, and periods, exactly two must be specified")

// GenerateRange lists the dates on o between start and end inclusive. A zero
// start or end is unset; periods <= 0 is unset. An unanchored start is rolled
// forward, else an unanchored end is rolled back.
func GenerateRange(o *Offset, start, end time.Time, periods int) ([]time.Time, error) {
	set := 0
	for _, ok := range []bool{!start.IsZero(), !end.IsZero(), periods > 0} {
		if ok {
			set++
		}
	}
	if set != 2 {
		return nil, ErrRangeBounds
	}

	if !start.IsZero() && !o.IsOnOffset(start) {
		start = o.Rollforward(start)
	} else if !end.IsZero() && !o.IsOnOffset(end) {
		end = o.Rollback(end)
	}

	switch {
	case end.IsZero():
		v, err := o.times(periods-1, start)
		if err != nil {
			return nil, err
		}
		end = v
	case start.IsZero():
		v, err := o.times(1-periods, end)
		if err != nil {
			return nil, err
		}
		start = v
	case end.Before(start) && o.n >= 0:
		return nil, nil
	}

	var (
		dates []time.Time
		cur   = start
	)
	for {
		if o.n >= 0 && cur.After(end) || o.n < 0 && cur.Before(end) {
			break
		}
		dates = append(dates, cur)
		if cur.Equal(end) {
			break
		}

		next, err := o.Apply(cur)
		if err != nil {
			return nil, err
		}
		if o.n >= 0 && !next.After(cur) {
			return nil, fmt.Errorf("Offset %v did not increment date", o)
		}
		if o.n < 0 && !next.Before(cur) {
			return nil, fmt.Errorf("Offset %v did not decrement date", o)
		}
		cur = next
	}
	return dates, nil
}

// times applies o k times to t, in one step.
func (o *Offset) times(k int, t time.Time) (time.Time, error) {
	if k == 0 {
		return t, nil
	}
	scaled, err := o.Mul(k)
	if err != nil {
		return time.Time{}, err
	}
	return scaled.Apply(t)
}
