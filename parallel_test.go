package offsets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestApplyParallel(t *testing.T) {
	values := make([]int64, 10000)
	for i := range values {
		if i%97 == 0 {
			values[i] = NaT
			continue
		}
		values[i] = date(2000, 1, 1).Add(time.Duration(i) * 7 * time.Hour).UnixNano()
	}

	for _, freq := range []string{"BM", "W-WED", "-3B", "QS-NOV"} {
		t.Run(freq, func(t *testing.T) {
			o := mustOffset(t, freq)

			want, err := o.ApplyArray(values)
			assert.Nil(t, err)

			for _, workers := range []int{0, 1, 3, 16} {
				got, err := ApplyParallel(context.Background(), o, values, workers)
				assert.Nil(t, err)
				assert.Equal(t, want, got, "workers %d", workers)
			}
		})
	}

	t.Run("empty", func(t *testing.T) {
		got, err := ApplyParallel(context.Background(), mustOffset(t, "M"), nil, 4)
		assert.Nil(t, err)
		assert.Len(t, got, 0)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ApplyParallel(ctx, mustOffset(t, "M"), values, 2)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("no kernel", func(t *testing.T) {
		_, err := ApplyParallel(context.Background(), mustOffset(t, "CBM"), values, 2)
		assert.True(t, errors.Is(err, ErrNotImplemented))
	})
}

func TestApplyTimes(t *testing.T) {
	east := time.FixedZone("", -5*60*60)
	times := []time.Time{
		time.Date(2021, time.January, 31, 22, 0, 0, 0, east),
		time.Date(2021, time.January, 8, 16, 0, 0, 0, time.UTC),
	}

	for _, freq := range []string{"M", "B", "W-SUN", "2H", "Q-DEC"} {
		t.Run(freq, func(t *testing.T) {
			o := mustOffset(t, freq)

			got, err := ApplyTimes(context.Background(), o, times, 2)
			assert.Nil(t, err)
			for i, base := range times {
				want, err := o.Apply(base)
				assert.Nil(t, err)
				assert.True(t, want.Equal(got[i]), "%v + %v: %v != %v", base, o, want, got[i])
				assert.Equal(t, base.Location(), got[i].Location())
			}
		})
	}

	got, err := ApplyTimes(context.Background(), mustOffset(t, "M"), times[:1], 1)
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2021, time.February, 28, 22, 0, 0, 0, east), got[0])
}
