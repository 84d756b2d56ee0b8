package offsets

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultWeekmask is the Monday through Friday working week.
const DefaultWeekmask = "Mon Tue Wed Thu Fri"

type DayOfTheWeek string

func (d DayOfTheWeek) String() string {
	return string(d)
}

// Weekday returns the Monday=0 weekday number of d.
func (d DayOfTheWeek) Weekday() (int, bool) {
	switch d {
	case Mon:
		return Monday, true
	case Tue:
		return Tuesday, true
	case Wed:
		return Wednesday, true
	case Thu:
		return Thursday, true
	case Fri:
		return Friday, true
	case Sat:
		return Saturday, true
	case Sun:
		return Sunday, true
	default:
		return 0, false
	}
}

func getDayOfTheWeek(item int) (DayOfTheWeek, bool) {
	switch item {
	case Monday:
		return Mon, true
	case Tuesday:
		return Tue, true
	case Wednesday:
		return Wed, true
	case Thursday:
		return Thu, true
	case Friday:
		return Fri, true
	case Saturday:
		return Sat, true
	case Sunday:
		return Sun, true
	default:
		return "", false
	}
}

func getDayOfTheWeekBytes(b []byte) (DayOfTheWeek, bool) {
	switch {
	case bytes.Equal(bMon, b):
		return Mon, true
	case bytes.Equal(bTue, b):
		return Tue, true
	case bytes.Equal(bWed, b):
		return Wed, true
	case bytes.Equal(bThu, b):
		return Thu, true
	case bytes.Equal(bFri, b):
		return Fri, true
	case bytes.Equal(bSat, b):
		return Sat, true
	case bytes.Equal(bSun, b):
		return Sun, true
	default:
		return "", false
	}
}

const (
	Mon DayOfTheWeek = "Mon"
	Tue DayOfTheWeek = "Tue"
	Wed DayOfTheWeek = "Wed"
	Thu DayOfTheWeek = "Thu"
	Fri DayOfTheWeek = "Fri"
	Sat DayOfTheWeek = "Sat"
	Sun DayOfTheWeek = "Sun"
)

var (
	bMon = []byte(Mon)
	bTue = []byte(Tue)
	bWed = []byte(Wed)
	bThu = []byte(Thu)
	bFri = []byte(Fri)
	bSat = []byte(Sat)
	bSun = []byte(Sun)
)

// Weekmask flags the valid business weekdays, Monday first.
type Weekmask [7]bool

// ParseWeekmask accepts "1111100", "Mon Tue Wed Thu Fri" or "MonTueWedThuFri".
func ParseWeekmask(s string) (Weekmask, error) {
	var mask Weekmask

	if len(s) == 7 && strings.Trim(s, "01") == "" {
		for i := 0; i < 7; i++ {
			mask[i] = s[i] == '1'
		}
		return mask, mask.validate(s)
	}

	b := []byte(strings.Join(strings.Fields(s), ""))
	if len(b) == 0 || len(b)%3 != 0 {
		return mask, fmt.Errorf("invalid business day weekmask string %q", s)
	}
	for k := 0; k+2 < len(b); k += 3 {
		d, ok := getDayOfTheWeekBytes(b[k : k+3])
		if !ok {
			return mask, fmt.Errorf("invalid business day weekmask string %q", s)
		}
		w, _ := d.Weekday()
		mask[w] = true
	}
	return mask, mask.validate(s)
}

func (m Weekmask) validate(s string) error {
	for _, ok := range m {
		if ok {
			return nil
		}
	}
	return fmt.Errorf("cannot construct a business day calendar with a weekmask of all zeros, %q", s)
}

// String renders the mask in the "Mon Tue" form.
func (m Weekmask) String() string {
	var parts []string
	for i, ok := range m {
		if !ok {
			continue
		}
		if d, ok := getDayOfTheWeek(i); ok {
			parts = append(parts, d.String())
		}
	}
	return strings.Join(parts, " ")
}

// Weekdays returns the masked weekday numbers.
func (m Weekmask) Weekdays() []int {
	var ww []int
	for i, ok := range m {
		if ok {
			ww = append(ww, i)
		}
	}
	return ww
}
