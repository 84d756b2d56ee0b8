package offsets

import (
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestTimeSlot_Duration(t *testing.T) {
	testCases := map[string]struct {
		Slot TimeSlot
		Want time.Duration
	}{
		"morning":   {Slot: NewTimeSlot(800, 1200), Want: 4 * time.Hour},
		"half hour": {Slot: NewTimeSlot(930, 1000), Want: 30 * time.Minute},
		"overnight": {Slot: NewTimeSlot(2200, 200), Want: 4 * time.Hour},
		"full day":  {Slot: NewTimeSlot(900, 900), Want: 24 * time.Hour},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, tc.Slot.Duration())
		})
	}
}

func TestNewHours(t *testing.T) {
	testCases := map[string]struct {
		Start []string
		End   []string
		Want  string
		Err   error
	}{
		"default": {
			Start: []string{"09:00"},
			End:   []string{"17:00"},
			Want:  "09:00-17:00",
		},
		"lunch break": {
			Start: []string{"09:00", "13:00"},
			End:   []string{"12:00", "17:00"},
			Want:  "09:00-12:00,13:00-17:00",
		},
		"unsorted": {
			Start: []string{"13:00", "09:00"},
			End:   []string{"17:00", "12:00"},
			Want:  "09:00-12:00,13:00-17:00",
		},
		"overnight": {
			Start: []string{"22:00"},
			End:   []string{"06:00"},
			Want:  "22:00-06:00",
		},
		"overlap": {
			Start: []string{"09:00", "12:00"},
			End:   []string{"13:00", "17:00"},
			Err:   ErrInvalidHours,
		},
		"touch": {
			Start: []string{"09:00", "12:00"},
			End:   []string{"12:00", "17:00"},
			Err:   ErrInvalidHours,
		},
		"whole day": {
			Start: []string{"09:00"},
			End:   []string{"09:00"},
			Err:   ErrInvalidHours,
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			got, err := NewHours(tc.Start, tc.End)
			if tc.Err != nil {
				assert.Equal(t, tc.Err, err)
				assert.Contains(t, err.Error(), "opening hours should not touch or overlap")
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got.String())
		})
	}
}

func TestNewHours_Malformed(t *testing.T) {
	_, err := NewHours(nil, []string{"17:00"})
	assert.Error(t, err)

	_, err = NewHours([]string{"09:00"}, nil)
	assert.Error(t, err)

	_, err = NewHours([]string{"09:00", "13:00"}, []string{"17:00"})
	assert.Error(t, err)

	_, err = NewHours([]string{"09:00:30"}, []string{"17:00"})
	assert.Error(t, err)
}

func TestHours_Total(t *testing.T) {
	h, err := NewHours([]string{"09:00", "13:00"}, []string{"12:00", "17:00"})
	assert.Nil(t, err)
	assert.Equal(t, 7*time.Hour, h.Total())
	assert.Equal(t, []string{"09:00", "13:00"}, h.Starts())
	assert.Equal(t, []string{"12:00", "17:00"}, h.Ends())
}
