package offsets

import (
	"fmt"
	"strconv"
	"time"
)

// Midnight is the first Time of the day.
const Midnight Time = 0

// Time is a wall clock time of day with minute resolution encoded as hhmm.
type Time int32

func NewTime(hour, minute int) Time {
	if hour < 0 || hour > 23 {
		panic(fmt.Errorf("invalid hour, %v", hour))
	}
	if minute < 0 || minute > 59 {
		panic(fmt.Errorf("invalid minute, %v", minute))
	}

	return Time(hour*100 + minute)
}

// ParseTime parses an "HH:MM" business time. Seconds are not accepted.
func ParseTime(s string) (Time, error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("time data %q must match '%%H:%%M' format", s)
	}

	colon := len(s) - 3
	if s[colon] != ':' {
		return 0, fmt.Errorf("time data %q must match '%%H:%%M' format", s)
	}

	h, err := strconv.Atoi(s[:colon])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time data %q must match '%%H:%%M' format", s)
	}
	m, err := strconv.Atoi(s[colon+1:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("time data %q must match '%%H:%%M' format", s)
	}

	return NewTime(h, m), nil
}

func (t Time) Append(buffer []byte) []byte {
	h, m := t.Hour(), t.Minute()
	if h < 10 {
		buffer = append(buffer, '0')
	}
	buffer = strconv.AppendInt(buffer, int64(h), 10)
	buffer = append(buffer, ':')
	if m < 10 {
		buffer = append(buffer, '0')
	}
	buffer = strconv.AppendInt(buffer, int64(m), 10)
	return buffer
}

func (t Time) Hour() int {
	return int(t / 100)
}

func (t Time) Minute() int {
	return int(t % 100)
}

// Offset is the time elapsed since midnight.
func (t Time) Offset() time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

func (t Time) String() string {
	return string(t.Append(make([]byte, 0, 5)))
}

// Align returns v's date at time t.
func (t Time) Align(v time.Time) time.Time {
	return time.Date(v.Year(), v.Month(), v.Day(), t.Hour(), t.Minute(), 0, 0, v.Location())
}

// Add returns the time of day d after t, wrapping at midnight.
func (t Time) Add(d time.Duration) Time {
	minutes := floorMod(int((t.Offset()+d)/time.Minute), 24*60)
	return NewTime(minutes/60, minutes%60)
}

// timeOfDay is the time elapsed since v's midnight.
func timeOfDay(v time.Time) time.Duration {
	return time.Duration(v.Hour())*time.Hour +
		time.Duration(v.Minute())*time.Minute +
		time.Duration(v.Second())*time.Second +
		time.Duration(v.Nanosecond())
}

// midnight truncates v to the start of its day.
func midnight(v time.Time) time.Time {
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())
}

// isNormalized reports whether v sits exactly on midnight.
func isNormalized(v time.Time) bool {
	return v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0
}
