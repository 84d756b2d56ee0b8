package offsets

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func nanos(tt ...time.Time) []int64 {
	values := make([]int64, 0, len(tt))
	for _, t := range tt {
		values = append(values, t.UnixNano())
	}
	return values
}

func TestShiftMonths(t *testing.T) {
	testCases := map[string]struct {
		Months int
		Anchor Anchor
		Src    time.Time
		Want   time.Time
	}{
		"clipped":         {Months: 1, Anchor: AnchorNone, Src: date(2021, 1, 31), Want: date(2021, 2, 28)},
		"leap":            {Months: 12, Anchor: AnchorNone, Src: date(2020, 2, 29), Want: date(2021, 2, 28)},
		"end same month":  {Months: 1, Anchor: AnchorEnd, Src: date(2021, 1, 15), Want: date(2021, 1, 31)},
		"end next month":  {Months: 1, Anchor: AnchorEnd, Src: date(2021, 1, 31), Want: date(2021, 2, 28)},
		"start":           {Months: 1, Anchor: AnchorStart, Src: date(2021, 1, 15), Want: date(2021, 2, 1)},
		"start back":      {Months: -1, Anchor: AnchorStart, Src: date(2021, 1, 15), Want: date(2021, 1, 1)},
		"business end":    {Months: 1, Anchor: AnchorBusinessEnd, Src: date(2021, 7, 30), Want: date(2021, 8, 31)},
		"business start":  {Months: 1, Anchor: AnchorBusinessStart, Src: date(2021, 7, 15), Want: date(2021, 8, 2)},
		"before epoch":    {Months: 1, Anchor: AnchorEnd, Src: datetime(1969, 12, 31, 12, 0), Want: datetime(1970, 1, 31, 12, 0)},
		"keeps time":      {Months: -2, Anchor: AnchorNone, Src: datetime(2021, 3, 31, 23, 59), Want: datetime(2021, 1, 31, 23, 59)},
		"explicit day 15": {Months: 1, Anchor: Anchor(15), Src: date(2021, 1, 10), Want: date(2021, 1, 15)},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			src := []int64{tc.Src.UnixNano(), NaT}
			dst := make([]int64, len(src))
			ShiftMonths(dst, src, tc.Months, tc.Anchor)
			assert.Equal(t, []int64{tc.Want.UnixNano(), NaT}, dst)
			assert.Equal(t, tc.Src.UnixNano(), src[0])
		})
	}
}

func TestShiftQuarters(t *testing.T) {
	testCases := map[string]struct {
		Quarters int
		Start    int
		Anchor   Anchor
		Modby    int
		Src      time.Time
		Want     time.Time
	}{
		"quarter end":        {Quarters: 1, Start: 3, Anchor: AnchorEnd, Modby: 3, Src: date(2021, 1, 15), Want: date(2021, 3, 31)},
		"quarter end on":     {Quarters: 1, Start: 3, Anchor: AnchorEnd, Modby: 3, Src: date(2021, 3, 31), Want: date(2021, 6, 30)},
		"quarter end back":   {Quarters: -1, Start: 3, Anchor: AnchorEnd, Modby: 3, Src: date(2021, 5, 15), Want: date(2021, 3, 31)},
		"quarter end zero":   {Quarters: 0, Start: 3, Anchor: AnchorEnd, Modby: 3, Src: date(2021, 5, 15), Want: date(2021, 6, 30)},
		"quarter start":      {Quarters: 1, Start: 1, Anchor: AnchorStart, Modby: 3, Src: date(2021, 2, 15), Want: date(2021, 4, 1)},
		"quarter start back": {Quarters: -1, Start: 1, Anchor: AnchorStart, Modby: 3, Src: date(2021, 2, 15), Want: date(2021, 1, 1)},
		"year end":           {Quarters: 1, Start: 12, Anchor: AnchorEnd, Modby: 12, Src: date(2021, 1, 15), Want: date(2021, 12, 31)},
		"year start":         {Quarters: 1, Start: 1, Anchor: AnchorStart, Modby: 12, Src: date(2021, 1, 1), Want: date(2022, 1, 1)},
		"fiscal year end":    {Quarters: 2, Start: 6, Anchor: AnchorEnd, Modby: 12, Src: date(2021, 7, 1), Want: date(2023, 6, 30)},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			src := []int64{NaT, tc.Src.UnixNano()}
			dst := make([]int64, len(src))
			ShiftQuarters(dst, src, tc.Quarters, tc.Start, tc.Anchor, tc.Modby)
			assert.Equal(t, []int64{NaT, tc.Want.UnixNano()}, dst)
		})
	}
}

func TestShiftBusinessDays(t *testing.T) {
	testCases := map[string]struct {
		Periods int
		Src     time.Time
		Want    time.Time
	}{
		"friday":          {Periods: 1, Src: datetime(2021, 1, 8, 10, 0), Want: datetime(2021, 1, 11, 10, 0)},
		"saturday":        {Periods: 1, Src: date(2021, 1, 9), Want: date(2021, 1, 11)},
		"saturday back":   {Periods: -1, Src: date(2021, 1, 9), Want: date(2021, 1, 8)},
		"two weeks":       {Periods: 10, Src: date(2021, 1, 6), Want: date(2021, 1, 20)},
		"monday back":     {Periods: -1, Src: date(2021, 1, 11), Want: date(2021, 1, 8)},
		"before epoch":    {Periods: 1, Src: datetime(1969, 12, 31, 6, 0), Want: datetime(1970, 1, 1, 6, 0)},
		"sunday back two": {Periods: -2, Src: date(2021, 1, 10), Want: date(2021, 1, 7)},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			src := []int64{tc.Src.UnixNano(), NaT}
			ShiftBusinessDays(src, src, tc.Periods)
			assert.Equal(t, []int64{tc.Want.UnixNano(), NaT}, src)
		})
	}
}

func TestNormalizeNanos(t *testing.T) {
	values := []int64{datetime(2021, 1, 8, 10, 30).UnixNano() + 17, NaT, datetime(1969, 12, 31, 23, 0).UnixNano()}
	normalizeNanos(values)
	assert.Equal(t, []int64{date(2021, 1, 8).UnixNano(), NaT, date(1969, 12, 31).UnixNano()}, values)

	addOffsetNanos(values, nanosPerHour)
	assert.Equal(t, []int64{datetime(2021, 1, 8, 1, 0).UnixNano(), NaT, datetime(1969, 12, 31, 1, 0).UnixNano()}, values)
}

func TestKernels_MatchScalar(t *testing.T) {
	freqs := []string{"M", "MS", "BM", "BMS", "Q-DEC", "QS-FEB", "BQ-NOV", "A-JUN", "AS-APR", "BA", "W-FRI", "W", "SM", "SMS", "B", "D", "90T"}
	ns := []int{-2, 1, 3}

	var bases []time.Time
	for day := date(2020, 12, 1); day.Before(date(2021, 3, 15)); day = day.AddDate(0, 0, 1) {
		bases = append(bases, day.Add(9*time.Hour+30*time.Minute))
	}
	src := nanos(bases...)

	for _, freq := range freqs {
		for _, n := range ns {
			o, err := mustOffset(t, freq).WithN(n)
			assert.Nil(t, err)

			got, err := o.ApplyArray(src)
			assert.Nil(t, err)

			for i, base := range bases {
				want, err := o.Apply(base)
				assert.Nil(t, err)
				assert.Equal(t, want.UnixNano(), got[i], "%v + %v", base, o)
			}
		}
	}
}
