package offsets

import (
	"time"
)

// Roll selects how a date that is not a business day is moved before counting.
type Roll int

const (
	RollForward Roll = iota
	RollBackward
)

// AddBusinessDays performs date arithmetic counting only business days. The
// date is first rolled onto a business day, then moved n business days. The
// time of day is preserved.
func (c *BusinessDayCalendar) AddBusinessDays(t time.Time, n int, roll Roll) time.Time {
	days := c.offsetDays(civilDays(t), n, roll)
	y, m, d := civilFromDays(days)
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (c *BusinessDayCalendar) offsetDays(days int64, n int, roll Roll) int64 {
	delta := int64(1)
	if roll == RollBackward {
		delta = -1
	}
	for !c.isBusday(days) {
		days += delta
	}

	delta = 1
	if n < 0 {
		delta = -1
	}

loop:
	for n != 0 {
		days += delta
		if !c.isBusday(days) {
			continue loop
		}

		n -= int(delta)
	}

	return days
}
