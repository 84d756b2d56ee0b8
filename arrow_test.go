package offsets

import (
	"errors"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/tj/assert"
)

func timestampArray(mem memory.Allocator, dtype *arrow.TimestampType, values []int64, valid []bool) *array.Timestamp {
	b := array.NewTimestampBuilder(mem, dtype)
	defer b.Release()

	ts := make([]arrow.Timestamp, len(values))
	for i, v := range values {
		ts[i] = arrow.Timestamp(v)
	}
	b.AppendValues(ts, valid)
	return b.NewTimestampArray()
}

func TestApplyArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	o := mustOffset(t, "M")

	t.Run("nanoseconds", func(t *testing.T) {
		in := timestampArray(mem, &arrow.TimestampType{Unit: arrow.Nanosecond},
			nanos(date(2021, 1, 15), date(2021, 2, 28), datetime(2021, 3, 1, 6, 0)),
			[]bool{true, false, true})
		defer in.Release()

		out, err := ApplyArrow(o, in, mem)
		assert.Nil(t, err)
		defer out.Release()

		assert.Equal(t, 3, out.Len())
		assert.True(t, out.IsNull(1))
		assert.Equal(t, arrow.Timestamp(date(2021, 1, 31).UnixNano()), out.Value(0))
		assert.Equal(t, arrow.Timestamp(datetime(2021, 3, 31, 6, 0).UnixNano()), out.Value(2))
	})

	t.Run("seconds", func(t *testing.T) {
		dtype := &arrow.TimestampType{Unit: arrow.Second}
		in := timestampArray(mem, dtype, []int64{date(2021, 1, 15).Unix(), datetime(1969, 12, 15, 12, 0).Unix()}, nil)
		defer in.Release()

		out, err := ApplyArrow(o, in, mem)
		assert.Nil(t, err)
		defer out.Release()

		assert.True(t, arrow.TypeEqual(dtype, out.DataType()))
		assert.Equal(t, arrow.Timestamp(date(2021, 1, 31).Unix()), out.Value(0))
		assert.Equal(t, arrow.Timestamp(datetime(1969, 12, 31, 12, 0).Unix()), out.Value(1))
	})

	t.Run("zone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("time zone database unavailable")
		}

		base := time.Date(2021, time.March, 12, 9, 0, 0, 0, loc)
		in := timestampArray(mem, &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "America/New_York"},
			[]int64{base.UnixMicro()}, nil)
		defer in.Release()

		out, err := ApplyArrow(mustOffset(t, "B"), in, mem)
		assert.Nil(t, err)
		defer out.Release()

		want := time.Date(2021, time.March, 15, 9, 0, 0, 0, loc)
		assert.Equal(t, arrow.Timestamp(want.UnixMicro()), out.Value(0))
	})

	t.Run("no kernel", func(t *testing.T) {
		in := timestampArray(mem, &arrow.TimestampType{Unit: arrow.Nanosecond}, []int64{0}, nil)
		defer in.Release()

		_, err := ApplyArrow(mustOffset(t, "C"), in, mem)
		assert.True(t, errors.Is(err, ErrNotImplemented))
	})
}
