package offsets

import (
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestQuarterOffsets(t *testing.T) {
	testCases := map[string]struct {
		New           func(n, startingMonth int, opts ...Option) (*Offset, error)
		N             int
		StartingMonth int
		Cases         map[time.Time]time.Time
	}{
		"quarter end": {
			New:           NewQuarterEnd,
			N:             1,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2008, 1, 1):  date(2008, 1, 31),
				date(2008, 1, 31): date(2008, 4, 30),
				date(2008, 2, 15): date(2008, 4, 30),
				date(2008, 2, 29): date(2008, 4, 30),
				date(2008, 3, 15): date(2008, 4, 30),
				date(2008, 3, 31): date(2008, 4, 30),
				date(2008, 4, 15): date(2008, 4, 30),
				date(2008, 4, 30): date(2008, 7, 31),
			},
		},
		"quarter end back": {
			New:           NewQuarterEnd,
			N:             -1,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2008, 1, 1):  date(2007, 10, 31),
				date(2008, 1, 31): date(2007, 10, 31),
				date(2008, 2, 15): date(2008, 1, 31),
				date(2008, 2, 29): date(2008, 1, 31),
				date(2008, 3, 15): date(2008, 1, 31),
				date(2008, 3, 31): date(2008, 1, 31),
				date(2008, 4, 15): date(2008, 1, 31),
				date(2008, 4, 30): date(2008, 1, 31),
			},
		},
		"quarter begin": {
			New:           NewQuarterBegin,
			N:             1,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2007, 12, 1): date(2008, 1, 1),
				date(2008, 1, 1):  date(2008, 4, 1),
				date(2008, 2, 15): date(2008, 4, 1),
				date(2008, 2, 29): date(2008, 4, 1),
				date(2008, 3, 15): date(2008, 4, 1),
				date(2008, 3, 31): date(2008, 4, 1),
				date(2008, 4, 15): date(2008, 7, 1),
				date(2008, 4, 1):  date(2008, 7, 1),
			},
		},
		"business quarter end": {
			New:           NewBQuarterEnd,
			N:             1,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2008, 1, 1):  date(2008, 1, 31),
				date(2008, 1, 31): date(2008, 4, 30),
				date(2008, 2, 15): date(2008, 4, 30),
				date(2008, 2, 29): date(2008, 4, 30),
				date(2008, 3, 15): date(2008, 4, 30),
				date(2008, 3, 31): date(2008, 4, 30),
				date(2008, 4, 15): date(2008, 4, 30),
				date(2008, 4, 30): date(2008, 7, 31),
			},
		},
		"business quarter begin": {
			New:           NewBQuarterBegin,
			N:             1,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2008, 1, 1):  date(2008, 4, 1),
				date(2008, 1, 31): date(2008, 4, 1),
				date(2008, 1, 15): date(2008, 4, 1),
				date(2008, 2, 29): date(2008, 4, 1),
				date(2008, 3, 15): date(2008, 4, 1),
				date(2008, 3, 31): date(2008, 4, 1),
				date(2008, 4, 15): date(2008, 7, 1),
				date(2007, 3, 15): date(2007, 4, 2),
				date(2007, 2, 28): date(2007, 4, 2),
				date(2007, 1, 1):  date(2007, 4, 2),
				date(2007, 4, 15): date(2007, 7, 2),
				date(2007, 7, 1):  date(2007, 7, 2),
				date(2007, 4, 1):  date(2007, 4, 2),
				date(2007, 4, 2):  date(2007, 7, 2),
				date(2008, 4, 30): date(2008, 7, 1),
			},
		},
		"business quarter begin march": {
			New:           NewBQuarterBegin,
			N:             1,
			StartingMonth: 3,
			Cases: map[time.Time]time.Time{
				date(2021, 1, 15): date(2021, 3, 1),
				date(2021, 3, 1):  date(2021, 6, 1),
				date(2021, 7, 4):  date(2021, 9, 1),
				date(2021, 11, 2): date(2021, 12, 1),
			},
		},
		"quarter end zero": {
			New: NewQuarterEnd,
			N:   0,
			Cases: map[time.Time]time.Time{
				date(2021, 3, 31): date(2021, 3, 31),
				date(2021, 4, 1):  date(2021, 6, 30),
				date(2021, 5, 31): date(2021, 6, 30),
			},
		},
		"quarter begin two back": {
			New:           NewQuarterBegin,
			N:             -2,
			StartingMonth: 1,
			Cases: map[time.Time]time.Time{
				date(2008, 4, 1):  date(2007, 10, 1),
				date(2008, 4, 15): date(2008, 1, 1),
				date(2008, 2, 29): date(2007, 10, 1),
			},
		},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			o, err := tc.New(tc.N, tc.StartingMonth)
			assert.Nil(t, err)
			for base, want := range tc.Cases {
				checkApply(t, o, base, want)
			}
		})
	}
}

func TestQuarter_IsOnOffset(t *testing.T) {
	q, _ := NewQuarterEnd(1, DefaultStartingMonth)
	bq, _ := NewBQuarterEnd(1, 2)
	bqs, _ := NewBQuarterBegin(1, 1)

	testCases := map[string]struct {
		Offset *Offset
		Date   time.Time
		Want   bool
	}{
		"march end":        {Offset: q, Date: date(2008, 3, 31), Want: true},
		"december end":     {Offset: q, Date: date(2008, 12, 31), Want: true},
		"january end":      {Offset: q, Date: date(2008, 1, 31)},
		"business weekend": {Offset: bq, Date: date(2008, 5, 31)},
		"business friday":  {Offset: bq, Date: date(2008, 5, 30), Want: true},
		"business leap":    {Offset: bq, Date: date(2008, 2, 29), Want: true},
		"business begin":   {Offset: bqs, Date: date(2007, 4, 2), Want: true},
		"sunday begin":     {Offset: bqs, Date: date(2007, 4, 1)},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, tc.Offset.IsOnOffset(tc.Date))
		})
	}
}

func TestQuarter_Construction(t *testing.T) {
	o, err := NewBQuarterBegin(1, 3)
	assert.Nil(t, err)
	assert.Equal(t, "BQS-MAR", o.String())
	assert.True(t, o.IsAnchored())

	two, err := o.WithN(2)
	assert.Nil(t, err)
	assert.False(t, two.IsAnchored())
	assert.Equal(t, "2BQS-MAR", two.String())

	month, ok := o.StartingMonth()
	assert.True(t, ok)
	assert.Equal(t, 3, month)

	def, err := NewQuarterEnd(1, DefaultStartingMonth)
	assert.Nil(t, err)
	assert.Equal(t, "Q-MAR", def.String())

	testCases := map[string]struct {
		New           func(n, startingMonth int, opts ...Option) (*Offset, error)
		StartingMonth int
	}{
		"zero end":            {New: NewQuarterEnd, StartingMonth: 0},
		"zero begin":          {New: NewQuarterBegin, StartingMonth: 0},
		"zero business end":   {New: NewBQuarterEnd, StartingMonth: 0},
		"zero business begin": {New: NewBQuarterBegin, StartingMonth: 0},
		"thirteen":            {New: NewQuarterBegin, StartingMonth: 13},
		"negative":            {New: NewBQuarterEnd, StartingMonth: -2},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			_, err := tc.New(1, tc.StartingMonth)
			assert.True(t, errors.Is(err, ErrConstruction))
		})
	}
}
