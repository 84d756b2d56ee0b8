package offsets

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// DateLayout is the layout of closure and holiday dates.
const DateLayout = "2006-01-02"

const (
	indexVersion  = 1
	indexDateFrom = 2
	indexDateTo   = 3
	indexWeekdays = 4
)

// Closure is a run of dates on which business is closed.
//
// version:date-from:date-to:weekdays
//
// An empty date bound is open ended; empty weekdays close every day.
type Closure []byte

// NewClosure closes the weekdays (Monday=0) between dateFrom and dateTo inclusive.
func NewClosure(dateFrom, dateTo string, weekdays ...int) Closure {
	buffer := make([]byte, 0, 48)
	buffer = append(buffer, '1') // version
	buffer = append(buffer, ':')
	buffer = append(buffer, dateFrom...)
	buffer = append(buffer, ':')
	buffer = append(buffer, dateTo...)
	buffer = append(buffer, ':')
	for _, w := range weekdays {
		if d, ok := getDayOfTheWeek(w); ok {
			buffer = append(buffer, d...)
		}
	}
	return Closure(buffer)
}

// ParseClosure validates an encoded closure.
func ParseClosure(s string) (Closure, error) {
	c := Closure(s)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c Closure) index(n int) (int, int, bool) {
	if n < 1 {
		return 0, 0, false
	}

	offset, previous := -1, 0
	for i := 0; i < len(c); i++ {
		if c[i] == ':' {
			previous = offset + 1
			offset = i

			n--
			if n == 0 {
				return previous, offset, previous != offset
			}
		}
	}

	if n != 1 {
		return 0, 0, false
	}

	previous = offset + 1
	offset = len(c)
	return previous, offset, previous != offset
}

func (c Closure) validate() error {
	if i, j, ok := c.index(indexVersion); !ok || string(c[i:j]) != "1" {
		return fmt.Errorf("invalid Closure, %s: missing version", c)
	}
	if strings.Count(string(c), ":") != indexWeekdays-1 {
		return fmt.Errorf("invalid Closure, %s: want %d fields", c, indexWeekdays)
	}
	for _, n := range []int{indexDateFrom, indexDateTo} {
		if i, j, ok := c.index(n); ok {
			if _, err := time.Parse(DateLayout, string(c[i:j])); err != nil {
				return fmt.Errorf("invalid Closure, %s: %w", c, err)
			}
		}
	}
	if i, j, ok := c.index(indexWeekdays); ok {
		days := c[i:j]
		if len(days)%3 != 0 {
			return fmt.Errorf("invalid Closure, %s: bad weekdays", c)
		}
		for k := 0; k+2 < len(days); k += 3 {
			if _, ok := getDayOfTheWeekBytes(days[k : k+3]); !ok {
				return fmt.Errorf("invalid Closure, %s: bad weekday %s", c, days[k:k+3])
			}
		}
	}
	return nil
}

func (c Closure) MarshalDynamoDBAttributeValue(item *dynamodb.AttributeValue) error {
	*item = dynamodb.AttributeValue{
		S: aws.String(string(c)),
	}
	return nil
}

func (c *Closure) UnmarshalDynamoDBAttributeValue(item *dynamodb.AttributeValue) error {
	if item == nil || item.S == nil {
		return fmt.Errorf("dynamodb.AttributeValue not a Closure:  missing S key")
	}

	v := Closure(*item.S)
	if err := v.validate(); err != nil {
		return err
	}

	*c = v
	return nil
}

func (c Closure) DateFrom() (string, bool) {
	i, j, ok := c.index(indexDateFrom)
	if !ok {
		return "", false
	}

	return string(c[i:j]), true
}

func (c Closure) DateTo() (string, bool) {
	i, j, ok := c.index(indexDateTo)
	if !ok {
		return "", false
	}

	return string(c[i:j]), true
}

// Contains matches the provided date (but not time)
func (c Closure) Contains(date time.Time) bool {
	if !c.ContainsWeekday(weekday(date)) {
		return false
	}

	var (
		buf [len(DateLayout)]byte
		str = date.AppendFormat(buf[:0], DateLayout)
	)

	if i, j, ok := c.index(indexDateFrom); ok && string(c[i:j]) > string(str) {
		return false
	}
	if i, j, ok := c.index(indexDateTo); ok && string(c[i:j]) < string(str) {
		return false
	}
	return true
}

// ContainsWeekday matches the weekday only
func (c Closure) ContainsWeekday(wd int) bool {
	if i, j, ok := c.index(indexWeekdays); ok {
		d, _ := getDayOfTheWeek(wd)
		return strings.Contains(string(c[i:j]), d.String())
	}
	return true
}

func (c Closure) String() string {
	return string(c)
}

// Weekdays lists the closed weekdays, Monday=0; nil means every day.
func (c Closure) Weekdays() []int {
	i, j, ok := c.index(indexWeekdays)
	if !ok {
		return nil
	}

	days := c[i:j]

	var ww []int
	for k := 0; k+2 < len(days); k += 3 {
		d, ok := getDayOfTheWeekBytes(days[k : k+3])
		if !ok {
			continue
		}
		if w, ok := d.Weekday(); ok {
			ww = append(ww, w)
		}
	}

	return ww
}

// Closures is a HolidayCalendar made of closed date runs.
type Closures []Closure

// Holidays lists every closed date within [from, to].
func (cc Closures) Holidays(from, to time.Time) []time.Time {
	var dates []time.Time
	for _, c := range cc {
		lo, hi := from, to
		if s, ok := c.DateFrom(); ok {
			if v, err := time.Parse(DateLayout, s); err == nil && v.After(lo) {
				lo = v
			}
		}
		if s, ok := c.DateTo(); ok {
			if v, err := time.Parse(DateLayout, s); err == nil && v.Before(hi) {
				hi = v
			}
		}

		for d, last := civilDays(lo), civilDays(hi); d <= last; d++ {
			y, m, dd := civilFromDays(d)
			date := time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC)
			if c.ContainsWeekday(weekdayFromDays(d)) {
				dates = append(dates, date)
			}
		}
	}
	return dates
}

// Contains reports whether any closure covers date.
func (cc Closures) Contains(date time.Time) bool {
	for _, c := range cc {
		if c.Contains(date) {
			return true
		}
	}
	return false
}
