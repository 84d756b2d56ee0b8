package offsets

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestTimeSlot_Sub(t *testing.T) {
	var (
		morning   = NewTimeSlot(800, 1200)
		afternoon = NewTimeSlot(1200, 1600)
		lunch     = NewTimeSlot(1100, 1300)
		day       = NewTimeSlot(800, 1600)
	)

	testCases := map[string]struct {
		Time TimeSlot
		Sub  TimeSlot
		Want []TimeSlot
	}{
		"no-overlap": {
			Time: morning,
			Sub:  afternoon,
			Want: []TimeSlot{morning},
		},
		"equal": {
			Time: morning,
			Sub:  morning,
			Want: nil,
		},
		"head": {
			Time: day,
			Sub:  morning,
			Want: []TimeSlot{afternoon},
		},
		"tail": {
			Time: day,
			Sub:  afternoon,
			Want: []TimeSlot{morning},
		},
		"middle": {
			Time: day,
			Sub:  lunch,
			Want: []TimeSlot{
				NewTimeSlot(day.From, lunch.From),
				NewTimeSlot(lunch.To, day.To),
			},
		},
		"clipped": {
			Time: morning,
			Sub:  lunch,
			Want: []TimeSlot{NewTimeSlot(800, 1100)},
		},
		"covering": {
			Time: lunch,
			Sub:  day,
			Want: nil,
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got := tc.Time.Sub(tc.Sub)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestSub(t *testing.T) {
	var (
		morning   = NewTimeSlot(800, 1000)
		midday    = NewTimeSlot(1000, 1200)
		lunch     = NewTimeSlot(1200, 1400)
		afternoon = NewTimeSlot(1400, 1600)
		head      = NewTimeSlot(800, 1400)
		tail      = NewTimeSlot(1400, 2000)
	)

	testCases := map[string]struct {
		Slots []TimeSlot
		Sub   TimeSlot
		Want  []TimeSlot
	}{
		"no-overlap": {
			Slots: []TimeSlot{morning},
			Sub:   afternoon,
			Want:  []TimeSlot{morning},
		},
		"equal": {
			Slots: []TimeSlot{morning},
			Sub:   morning,
			Want:  nil,
		},
		"save tail": {
			Slots: []TimeSlot{morning, midday, lunch},
			Sub:   morning,
			Want:  []TimeSlot{midday, lunch},
		},
		"save head": {
			Slots: []TimeSlot{morning, midday, lunch},
			Sub:   midday,
			Want:  []TimeSlot{morning, lunch},
		},
		"splice middle": {
			Slots: []TimeSlot{head, tail},
			Sub:   midday,
			Want:  []TimeSlot{morning, lunch, tail},
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got := Sub(tc.Slots, tc.Sub)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestUnion(t *testing.T) {
	var (
		morning = NewTimeSlot(800, 1000)
		midday  = NewTimeSlot(1000, 1200)
		lunch   = NewTimeSlot(1200, 1400)
		head    = NewTimeSlot(800, 1400)
	)

	testCases := map[string]struct {
		Slots []TimeSlot
		Want  []TimeSlot
	}{
		"nil": {
			Slots: nil,
			Want:  nil,
		},
		"single": {
			Slots: []TimeSlot{head},
			Want:  []TimeSlot{head},
		},
		"pair": {
			Slots: []TimeSlot{morning, midday, lunch},
			Want:  []TimeSlot{head},
		},
		"out of order": {
			Slots: []TimeSlot{morning, lunch, midday},
			Want:  []TimeSlot{head},
		},
		"unconnected": {
			Slots: []TimeSlot{morning, lunch},
			Want:  []TimeSlot{morning, lunch},
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got := Union(tc.Slots...)
			assert.EqualValues(t, tc.Want, got)
		})
	}
}

func TestOffset_Sessions(t *testing.T) {
	bh, err := NewBusinessHour(1, WithHours([]string{"08:00", "13:00"}, []string{"12:00", "18:00"}))
	assert.Nil(t, err)

	cbh, err := NewCustomBusinessHour(1,
		WithHours([]string{"08:00"}, []string{"18:00"}),
		WithHolidays(time.Date(2020, time.February, 17, 0, 0, 0, 0, time.UTC)),
	)
	assert.Nil(t, err)

	day, err := NewBusinessDay(1)
	assert.Nil(t, err)

	testCases := map[string]struct {
		Offset *Offset
		Date   time.Time
		Ok     bool
		Want   []TimeSlot
	}{
		"open day": {
			Offset: bh,
			Date:   time.Date(2020, time.February, 17, 0, 0, 0, 0, time.UTC),
			Ok:     true,
			Want:   []TimeSlot{NewTimeSlot(800, 1200), NewTimeSlot(1300, 1800)},
		},
		"weekend": {
			Offset: bh,
			Date:   time.Date(2020, time.February, 16, 0, 0, 0, 0, time.UTC),
		},
		"holiday": {
			Offset: cbh,
			Date:   time.Date(2020, time.February, 17, 0, 0, 0, 0, time.UTC),
		},
		"custom open day": {
			Offset: cbh,
			Date:   time.Date(2020, time.February, 18, 0, 0, 0, 0, time.UTC),
			Ok:     true,
			Want:   []TimeSlot{NewTimeSlot(800, 1800)},
		},
		"not business hours": {
			Offset: day,
			Date:   time.Date(2020, time.February, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got, ok := tc.Offset.Sessions(tc.Date)
			assert.Equal(t, tc.Ok, ok)
			assert.EqualValues(t, tc.Want, got)
		})
	}
}

func TestAvailability(t *testing.T) {
	bh, err := NewBusinessHour(1, WithHours([]string{"08:00"}, []string{"18:00"}))
	assert.Nil(t, err)

	var (
		monday   = time.Date(2020, time.February, 17, 0, 0, 0, 0, time.UTC)
		saturday = time.Date(2020, time.February, 22, 0, 0, 0, 0, time.UTC)
	)

	testCases := map[string]struct {
		Date     time.Time
		Reserved []TimeSlot
		Want     []TimeSlot
	}{
		"open day": {
			Date: monday,
			Want: []TimeSlot{
				NewTimeSlot(800, 1800),
			},
		},
		"day off": {
			Date: saturday,
			Want: nil,
		},
		"overlapping reservations": {
			Date: monday,
			Reserved: []TimeSlot{
				NewTimeSlot(1100, 1300),
				NewTimeSlot(700, 900),
				NewTimeSlot(1200, 1400),
			},
			Want: []TimeSlot{
				NewTimeSlot(900, 1100),
				NewTimeSlot(1400, 1800),
			},
		},
		"reservations": {
			Date: monday,
			Reserved: []TimeSlot{
				NewTimeSlot(900, 1000),
				NewTimeSlot(1700, 1800),
			},
			Want: []TimeSlot{
				NewTimeSlot(800, 900),
				NewTimeSlot(1000, 1700),
			},
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got := Availability(bh, tc.Date, tc.Reserved)
			assert.EqualValues(t, tc.Want, got)
		})
	}
}

func TestTimeSlot_Overnight(t *testing.T) {
	night := NewTimeSlot(2200, 600)
	assert.Equal(t, []TimeSlot{NewTimeSlot(2200, 2300), NewTimeSlot(100, 600)}, night.Sub(NewTimeSlot(2300, 100)))
	assert.Equal(t, []TimeSlot{NewTimeSlot(2200, 100), NewTimeSlot(200, 600)}, night.Sub(NewTimeSlot(100, 200)))
	assert.Equal(t, []TimeSlot{NewTimeSlot(2000, 600)}, Union(night, NewTimeSlot(2000, 2200)))
	assert.Equal(t, []TimeSlot{night}, night.Sub(NewTimeSlot(900, 1700)))
}

func TestParseTimeSlot(t *testing.T) {
	testCases := map[string]struct {
		Input string
		Want  TimeSlot
		Err   bool
	}{
		"ok":        {Input: "12:00-13:30", Want: NewTimeSlot(1200, 1330)},
		"spaces":    {Input: "9:00 - 10:00", Want: NewTimeSlot(900, 1000)},
		"overnight": {Input: "22:00-06:00", Want: NewTimeSlot(2200, 600)},
		"no dash":   {Input: "12:00", Err: true},
		"bad end":   {Input: "12:00-25:00", Err: true},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got, err := ParseTimeSlot(tc.Input)
			if tc.Err {
				assert.Error(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}
