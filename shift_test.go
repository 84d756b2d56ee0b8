package offsets

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestShiftMonth(t *testing.T) {
	testCases := map[string]struct {
		Date   time.Time
		Months int
		Anchor Anchor
		Want   time.Time
	}{
		"end of short month": {
			Date:   date(2017, 1, 31),
			Months: 1,
			Anchor: AnchorEnd,
			Want:   date(2017, 2, 28),
		},
		"none clips": {
			Date:   date(2017, 1, 31),
			Months: 1,
			Want:   date(2017, 2, 28),
		},
		"leap": {
			Date:   date(2024, 1, 31),
			Months: 1,
			Want:   date(2024, 2, 29),
		},
		"start": {
			Date:   datetime(2021, 3, 15, 10, 30),
			Months: -3,
			Anchor: AnchorStart,
			Want:   datetime(2020, 12, 1, 10, 30),
		},
		"business start": {
			Date:   date(2021, 4, 20),
			Months: 1,
			Anchor: AnchorBusinessStart,
			Want:   date(2021, 5, 3),
		},
		"business end": {
			Date:   date(2021, 2, 1),
			Months: -1,
			Anchor: AnchorBusinessEnd,
			Want:   date(2021, 1, 29),
		},
		"explicit day": {
			Date:   date(2021, 1, 5),
			Months: 1,
			Anchor: Anchor(30),
			Want:   date(2021, 2, 28),
		},
		"many years": {
			Date:   date(2021, 6, 15),
			Months: -30,
			Want:   date(2018, 12, 15),
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, ShiftMonth(tc.Date, tc.Months, tc.Anchor))
		})
	}
}

func TestRollConvention(t *testing.T) {
	testCases := map[string]struct {
		Day, N, Compare int
		Want            int
	}{
		"forward before": {Day: 10, N: 1, Compare: 15, Want: 0},
		"forward after":  {Day: 20, N: 1, Compare: 15, Want: 1},
		"forward on":     {Day: 15, N: 2, Compare: 15, Want: 2},
		"back after":     {Day: 20, N: -1, Compare: 15, Want: 0},
		"back before":    {Day: 10, N: -1, Compare: 15, Want: -1},
		"zero after":     {Day: 20, N: 0, Compare: 15, Want: 1},
		"zero before":    {Day: 10, N: 0, Compare: 15, Want: 0},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, RollConvention(tc.Day, tc.N, tc.Compare))
		})
	}
}

func TestRollQtrDay(t *testing.T) {
	testCases := map[string]struct {
		Date   time.Time
		N      int
		Month  int
		Anchor Anchor
		Want   int
	}{
		"before anchor month": {Date: date(2021, 2, 10), N: 1, Month: 3, Anchor: AnchorEnd, Want: 1},
		"anchor month early":  {Date: date(2021, 3, 10), N: 1, Month: 3, Anchor: AnchorEnd, Want: 0},
		"on anchor":           {Date: date(2021, 3, 31), N: 1, Month: 3, Anchor: AnchorEnd, Want: 1},
		"after anchor month":  {Date: date(2021, 4, 10), N: -1, Month: 3, Anchor: AnchorEnd, Want: 0},
		"back on start":       {Date: date(2021, 3, 1), N: -1, Month: 3, Anchor: AnchorStart, Want: -1},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, RollQtrDay(tc.Date, tc.N, tc.Month, tc.Anchor, 3))
		})
	}

	assert.Equal(t, 0, RollYearDay(date(2008, 1, 1), 1, 12, AnchorBusinessEnd))
	assert.Equal(t, 1, RollYearDay(date(2005, 12, 31), 0, 12, AnchorBusinessEnd))
}

func TestAnchor_String(t *testing.T) {
	assert.Equal(t, "end", AnchorEnd.String())
	assert.Equal(t, "business_start", AnchorBusinessStart.String())
	assert.Equal(t, "day 15", Anchor(15).String())
}
