package offsets

import "time"

// Weekday numbers follow the Monday=0 convention used throughout this package.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// NoWeekday marks an unanchored Week offset.
const NoWeekday = -1

const (
	nanosPerMicro = int64(1000)
	nanosPerMilli = 1000 * nanosPerMicro
	nanosPerSec   = 1000 * nanosPerMilli
	nanosPerMin   = 60 * nanosPerSec
	nanosPerHour  = 60 * nanosPerMin
	nanosPerDay   = 24 * nanosPerHour

	daysPer400Years   = 146097
	unixDaysFromYear0 = 719468
)

var daysPerMonth = [2][12]int{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year.
func DaysInMonth(year, month int) int {
	if IsLeapYear(year) {
		return daysPerMonth[1][month-1]
	}
	return daysPerMonth[0][month-1]
}

// DayOfWeek returns 0 for Monday through 6 for Sunday.
func DayOfWeek(year, month, day int) int {
	return weekdayFromDays(daysFromCivil(year, month, day))
}

// FirstBusinessDay returns the first weekday of the month.
func FirstBusinessDay(year, month int) int {
	switch DayOfWeek(year, month, 1) {
	case Saturday:
		return 3
	case Sunday:
		return 2
	default:
		return 1
	}
}

// LastBusinessDay returns the last weekday of the month.
func LastBusinessDay(year, month int) int {
	dim := DaysInMonth(year, month)
	wday := DayOfWeek(year, month, dim)
	if wday > Friday {
		return dim - (wday - Friday)
	}
	return dim
}

// Easter returns month and day of Western Easter for year using the
// anonymous Gregorian computus.
func Easter(year int) (int, int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return month, day
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int) int {
	m := x % y
	if m != 0 && ((m < 0) != (y < 0)) {
		m += y
	}
	return m
}

// daysFromCivil converts a proleptic Gregorian date into days since 1970-01-01.
// See https://howardhinnant.github.io/date_algorithms.html
func daysFromCivil(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64(month+9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPer400Years + doe - unixDaysFromYear0
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (int, int, int) {
	days += unixDaysFromYear0
	era := floorDiv(days, daysPer400Years)
	doe := days - era*daysPer400Years
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func weekdayFromDays(days int64) int {
	// 1970-01-01 was a Thursday
	return int(days + 3 - floorDiv(days+3, 7)*7)
}

// weekday returns the Monday=0 weekday of t's wall clock date.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// civilDays returns the day number of t's wall clock date.
func civilDays(t time.Time) int64 {
	y, m, d := t.Date()
	return daysFromCivil(y, int(m), d)
}

var monthAliases = [...]string{"", "JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var weekdayCodes = [...]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// MonthAlias returns the three letter code of month, e.g. "MAR".
func MonthAlias(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAliases[month]
}

// WeekdayCode returns the three letter code of a Monday=0 weekday, e.g. "FRI".
func WeekdayCode(wd int) string {
	if wd < Monday || wd > Sunday {
		return ""
	}
	return weekdayCodes[wd]
}

func parseMonthAlias(s string) (int, bool) {
	for i := 1; i < len(monthAliases); i++ {
		if monthAliases[i] == s {
			return i, true
		}
	}
	return 0, false
}

func parseWeekdayCode(s string) (int, bool) {
	for i, code := range weekdayCodes {
		if code == s {
			return i, true
		}
	}
	return 0, false
}
