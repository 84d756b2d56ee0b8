package offsets

import (
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestDateOffset_Apply(t *testing.T) {
	testCases := map[string]struct {
		N     int
		Delta Delta
		Base  time.Time
		Want  time.Time
	}{
		"empty":             {N: 3, Base: datetime(2021, 1, 1, 8, 0), Want: datetime(2021, 1, 4, 8, 0)},
		"month clips":       {N: 1, Delta: Delta{"months": 1}, Base: date(2021, 1, 31), Want: date(2021, 2, 28)},
		"month twice":       {N: 2, Delta: Delta{"months": 1}, Base: date(2021, 1, 31), Want: date(2021, 3, 28)},
		"month back":        {N: -1, Delta: Delta{"months": 1, "days": 1}, Base: date(2021, 3, 1), Want: date(2021, 1, 31)},
		"years and weeks":   {N: 1, Delta: Delta{"years": 1, "weeks": 2}, Base: date(2020, 2, 29), Want: date(2021, 3, 14)},
		"hours":             {N: 2, Delta: Delta{"hours": 5}, Base: datetime(2021, 1, 1, 20, 0), Want: datetime(2021, 1, 2, 6, 0)},
		"mixed time":        {N: 1, Delta: Delta{"days": 1, "minutes": 90}, Base: date(2021, 1, 1), Want: datetime(2021, 1, 2, 1, 30)},
		"absolute day":      {N: 1, Delta: Delta{"months": 1, "day": 31}, Base: date(2021, 1, 15), Want: date(2021, 2, 28)},
		"absolute date":     {N: 1, Delta: Delta{"year": 2020, "month": 2, "day": 29}, Base: date(2021, 5, 10), Want: date(2020, 2, 29)},
		"absolute time":     {N: 1, Delta: Delta{"hour": 17, "minute": 0}, Base: datetime(2021, 5, 10, 9, 45), Want: datetime(2021, 5, 10, 17, 0)},
		"next friday":       {N: 1, Delta: Delta{"weekday": Friday}, Base: date(2021, 1, 6), Want: date(2021, 1, 8)},
		"same friday":       {N: 1, Delta: Delta{"weekday": Friday}, Base: date(2021, 1, 8), Want: date(2021, 1, 8)},
		"previous friday":   {N: 1, Delta: Delta{"weekday": Friday, "nth": -1}, Base: date(2021, 1, 6), Want: date(2021, 1, 1)},
		"second friday":     {N: 1, Delta: Delta{"weekday": Friday, "nth": 2}, Base: date(2021, 1, 6), Want: date(2021, 1, 15)},
		"month then monday": {N: 1, Delta: Delta{"months": 1, "day": 1, "weekday": Monday}, Base: date(2021, 4, 20), Want: date(2021, 5, 3)},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			o, err := NewDateOffset(tc.N, tc.Delta)
			assert.Nil(t, err)
			checkApply(t, o, tc.Base, tc.Want)
		})
	}
}

func TestDateOffset_ApplyArray(t *testing.T) {
	o, err := NewDateOffset(1, Delta{"months": 1, "day": 31})
	assert.Nil(t, err)

	_, err = o.ApplyArray([]int64{0})
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.Contains(t, err.Error(), "day")

	plain, err := NewDateOffset(-2, Delta{"months": 1})
	assert.Nil(t, err)
	got, err := plain.ApplyArray([]int64{date(2021, 3, 31).UnixNano(), NaT})
	assert.Nil(t, err)
	assert.Equal(t, []int64{date(2021, 1, 28).UnixNano(), NaT}, got)
}

func TestDateOffset_Zone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("time zone database unavailable")
	}
	base := time.Date(2021, time.March, 13, 12, 0, 0, 0, loc)

	wall, err := NewDateOffset(1, Delta{"days": 1})
	assert.Nil(t, err)
	got, err := wall.Apply(base)
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2021, time.March, 14, 12, 0, 0, 0, loc), got)

	absolute, err := NewDateOffset(1, Delta{"hours": 24})
	assert.Nil(t, err)
	got, err = absolute.Apply(base)
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2021, time.March, 14, 13, 0, 0, 0, loc), got)
}

func TestDateOffset_Properties(t *testing.T) {
	o, err := NewDateOffset(1, Delta{"months": 1})
	assert.Nil(t, err)
	assert.Equal(t, "DateOffset(months=1)", o.String())
	assert.Equal(t, Delta{"months": 1}, o.Delta())
	assert.True(t, o.IsOnOffset(datetime(2021, 5, 10, 9, 45)))

	two, err := NewDateOffset(2, Delta{"days": 1, "day": 3})
	assert.Nil(t, err)
	assert.Equal(t, "2DateOffset(days=1, day=3)", two.String())

	empty, err := NewDateOffset(1, nil)
	assert.Nil(t, err)
	assert.Equal(t, "DateOffset", empty.String())

	month, _ := NewMonthEnd(1)
	assert.Nil(t, month.Delta())
}

func TestDateOffset_Construction(t *testing.T) {
	testCases := map[string]Delta{
		"unknown key":     {"fortnights": 1},
		"bad month":       {"month": 13},
		"bad weekday":     {"weekday": 7},
		"nth alone":       {"nth": 2},
		"bad microsecond": {"microsecond": 1000000},
	}

	for label, delta := range testCases {
		t.Run(label, func(t *testing.T) {
			_, err := NewDateOffset(1, delta)
			assert.True(t, errors.Is(err, ErrConstruction))
		})
	}
}
