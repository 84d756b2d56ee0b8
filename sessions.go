package offsets

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const fullDay = 24 * time.Hour

// interval is a slot measured from its opening day's midnight. end passes
// 24h for windows running past midnight.
type interval struct {
	start, end time.Duration
}

func (t TimeSlot) interval() interval {
	start := t.From.Offset()
	return interval{start: start, end: start + t.Duration()}
}

func (iv interval) slot() TimeSlot {
	return TimeSlot{From: Midnight.Add(iv.start), To: Midnight.Add(iv.end)}
}

// cut removes [start, end) from iv.
func (iv interval) cut(start, end time.Duration) []interval {
	if end <= iv.start || start >= iv.end {
		return []interval{iv}
	}
	var kept []interval
	if start > iv.start {
		kept = append(kept, interval{start: iv.start, end: start})
	}
	if end < iv.end {
		kept = append(kept, interval{start: end, end: iv.end})
	}
	return kept
}

// ParseTimeSlot parses an "HH:MM-HH:MM" window.
func ParseTimeSlot(s string) (TimeSlot, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return TimeSlot{}, fmt.Errorf("time slot %q must match 'HH:MM-HH:MM' format", s)
	}
	f, err := ParseTime(strings.TrimSpace(from))
	if err != nil {
		return TimeSlot{}, err
	}
	t, err := ParseTime(strings.TrimSpace(to))
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(f, t), nil
}

// Sub removes v from t. The parts of v falling outside t are ignored; a v
// before t's opening also cuts the following morning.
func (t TimeSlot) Sub(v TimeSlot) []TimeSlot {
	kept := []interval{t.interval()}
	b := v.interval()
	for _, shift := range []time.Duration{0, fullDay} {
		var next []interval
		for _, iv := range kept {
			next = append(next, iv.cut(b.start+shift, b.end+shift)...)
		}
		kept = next
	}

	var slots []TimeSlot
	for _, iv := range kept {
		slots = append(slots, iv.slot())
	}
	return slots
}

// Sessions returns the business hour windows opening on date, or false when
// o is not a business hour offset or date is not a business day.
func (o *Offset) Sessions(date time.Time) ([]TimeSlot, bool) {
	r, ok := o.rule.(businessHourRule)
	if !ok || !r.days.isBusday(naive(date)) {
		return nil, false
	}
	return append([]TimeSlot(nil), r.hours...), true
}

// Availability is the business hours of date left over after reserved.
func Availability(o *Offset, date time.Time, reserved []TimeSlot) []TimeSlot {
	blocks, ok := o.Sessions(date)
	if !ok {
		return nil
	}
	return SubAll(blocks, Union(reserved...))
}

// Sub removes v from every block.
func Sub(blocks []TimeSlot, v TimeSlot) []TimeSlot {
	var results []TimeSlot
	for _, block := range blocks {
		results = append(results, block.Sub(v)...)
	}
	return results
}

// SubAll removes each of sans from blocks.
func SubAll(blocks, sans []TimeSlot) []TimeSlot {
	for _, s := range sans {
		blocks = Sub(blocks, s)
	}
	return blocks
}

// Union merges overlapping or touching slots, ordered by opening time.
func Union(blocks ...TimeSlot) []TimeSlot {
	ivs := make([]interval, 0, len(blocks))
	for _, b := range blocks {
		ivs = append(ivs, b.interval())
	}
	sort.Slice(ivs, func(i, j int) bool {
		return ivs[i].start < ivs[j].start
	})

	var results []TimeSlot
	for i := 0; i < len(ivs); {
		cur := ivs[i]
		for i++; i < len(ivs) && ivs[i].start <= cur.end; i++ {
			if ivs[i].end > cur.end {
				cur.end = ivs[i].end
			}
		}
		results = append(results, cur.slot())
	}
	return results
}
