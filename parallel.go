package offsets

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice handed to a single worker.
const minChunk = 4096

// ApplyParallel is ApplyArray split over disjoint ranges of values. workers <= 0
// uses GOMAXPROCS. values is only read.
func ApplyParallel(ctx context.Context, o *Offset, values []int64, workers int) ([]int64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	dst := make([]int64, len(values))
	size := (len(values) + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(values); lo += size {
		hi := lo + size
		if hi > len(values) {
			hi = len(values)
		}

		lo := lo
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return o.ApplyArrayInto(dst[lo:hi], values[lo:hi])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyTimes is ApplyParallel over zoned times. Calendar offsets shift each
// wall clock and re-attach its location so the results match Apply.
func ApplyTimes(ctx context.Context, o *Offset, times []time.Time, workers int) ([]time.Time, error) {
	wall := o.rule.adjustDST()

	values := make([]int64, len(times))
	for i, t := range times {
		if wall {
			t = naive(t)
		}
		values[i] = t.UnixNano()
	}

	shifted, err := ApplyParallel(ctx, o, values, workers)
	if err != nil {
		return nil, err
	}

	got := make([]time.Time, len(shifted))
	for i, v := range shifted {
		if wall {
			got[i] = Localize(time.Unix(0, v).UTC(), times[i].Location())
		} else {
			got[i] = time.Unix(0, v).In(times[i].Location())
		}
	}
	return got, nil
}
