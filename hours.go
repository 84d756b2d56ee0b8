package offsets

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidHours is returned when business hour windows do not partition the day.
var ErrInvalidHours = errors.New("invalid starting and ending time(s): opening hours should not touch or overlap with one another")

// TimeSlot is one opening window. A window whose To is not after From runs
// past midnight.
type TimeSlot struct {
	From Time // opening time
	To   Time // closing time
}

// NewTimeSlot returns a new TimeSlot
func NewTimeSlot(from, to Time) TimeSlot {
	return TimeSlot{
		From: from,
		To:   to,
	}
}

// Duration of this TimeSlot
func (t TimeSlot) Duration() time.Duration {
	return span(t.From, t.To)
}

// span is the time from a until the next occurrence of b; equal times span a whole day.
func span(a, b Time) time.Duration {
	d := b.Offset() - a.Offset()
	if a >= b {
		d += 24 * time.Hour
	}
	return d
}

// Hours is a validated, start-sorted set of opening windows.
type Hours []TimeSlot

// NewHours parses and validates parallel lists of "HH:MM" opening and closing times.
func NewHours(start, end []string) (Hours, error) {
	if len(start) == 0 {
		return nil, fmt.Errorf("must include at least 1 start time")
	}
	if len(end) == 0 {
		return nil, fmt.Errorf("must include at least 1 end time")
	}
	if len(start) != len(end) {
		return nil, fmt.Errorf("number of starting time and ending time must be the same")
	}

	hours := make(Hours, 0, len(start))
	for i := range start {
		from, err := ParseTime(start[i])
		if err != nil {
			return nil, err
		}
		to, err := ParseTime(end[i])
		if err != nil {
			return nil, err
		}
		hours = append(hours, NewTimeSlot(from, to))
	}

	if err := hours.validate(); err != nil {
		return nil, err
	}
	return hours, nil
}

func (h Hours) validate() error {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].From < h[j].From
	})

	var total time.Duration
	for i, slot := range h {
		next := h[(i+1)%len(h)]
		total += slot.Duration()
		total += span(slot.To, next.From)
	}
	if total != 24*time.Hour {
		return ErrInvalidHours
	}
	return nil
}

// Starts lists the opening times.
func (h Hours) Starts() []string {
	ss := make([]string, 0, len(h))
	for _, slot := range h {
		ss = append(ss, slot.From.String())
	}
	return ss
}

// Ends lists the closing times in opening order.
func (h Hours) Ends() []string {
	ss := make([]string, 0, len(h))
	for _, slot := range h {
		ss = append(ss, slot.To.String())
	}
	return ss
}

// Total is the open time in one business day.
func (h Hours) Total() time.Duration {
	var total time.Duration
	for _, slot := range h {
		total += slot.Duration()
	}
	return total
}

func (h Hours) earliest() Time { return h[0].From }
func (h Hours) latest() Time   { return h[len(h)-1].From }

// isEnd reports whether tod is exactly one of the closing times.
func (h Hours) isEnd(tod time.Duration) bool {
	for _, slot := range h {
		if slot.To.Offset() == tod {
			return true
		}
	}
	return false
}

// isStart reports whether tod is exactly one of the opening times.
func (h Hours) isStart(tod time.Duration) bool {
	for _, slot := range h {
		if slot.From.Offset() == tod {
			return true
		}
	}
	return false
}

// slotAt finds the window opening at v's hour and minute.
func (h Hours) slotAt(v time.Time) (TimeSlot, bool) {
	for _, slot := range h {
		if slot.From.Hour() == v.Hour() && slot.From.Minute() == v.Minute() {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

func (h Hours) String() string {
	buffer := make([]byte, 0, 12*len(h))
	for i, slot := range h {
		if i > 0 {
			buffer = append(buffer, ',')
		}
		buffer = slot.From.Append(buffer)
		buffer = append(buffer, '-')
		buffer = slot.To.Append(buffer)
	}
	return string(buffer)
}
