package offsets

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ApplyArrow applies o to a timestamp array of any unit and returns a new
// array of the same type. Nulls stay null. Zone aware arrays are shifted on
// their wall clock and re-localized. Results finer than the array unit are
// truncated. The caller releases the returned array.
func ApplyArrow(o *Offset, values *array.Timestamp, mem memory.Allocator) (*array.Timestamp, error) {
	dtype, ok := values.DataType().(*arrow.TimestampType)
	if !ok {
		return nil, fmt.Errorf("expected timestamp array, got %v", values.DataType())
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	var loc *time.Location
	if dtype.TimeZone != "" && o.rule.adjustDST() {
		l, err := time.LoadLocation(dtype.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("unable to load time zone %v: %w", dtype.TimeZone, err)
		}
		loc = l
	}

	unit := int64(dtype.Unit.Multiplier())
	nanos := make([]int64, values.Len())
	for i := range nanos {
		if values.IsNull(i) {
			nanos[i] = NaT
			continue
		}
		v := int64(values.Value(i)) * unit
		if loc != nil {
			v = naive(time.Unix(0, v).In(loc)).UnixNano()
		}
		nanos[i] = v
	}

	if err := o.ApplyArrayInto(nanos, nanos); err != nil {
		return nil, err
	}

	builder := array.NewTimestampBuilder(mem, dtype)
	defer builder.Release()
	builder.Reserve(len(nanos))

	for _, v := range nanos {
		if v == NaT {
			builder.AppendNull()
			continue
		}
		if loc != nil {
			v = Localize(time.Unix(0, v).UTC(), loc).UnixNano()
		}
		builder.Append(arrow.Timestamp(floorDiv(v, unit)))
	}
	return builder.NewTimestampArray(), nil
}
