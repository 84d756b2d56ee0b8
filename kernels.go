package offsets

// Kernels work on epoch nanosecond values split into a day number and the
// nanoseconds elapsed in that day. NaT is checked before anything else and
// passes through unchanged. dst and src may be the same slice.

// splitNanos returns the day number and time of day of v.
func splitNanos(v int64) (int64, int64) {
	days := floorDiv(v, nanosPerDay)
	return days, v - days*nanosPerDay
}

// joinNanos is the inverse of splitNanos. tod may fall outside a single day.
func joinNanos(days, tod int64) int64 {
	return days*nanosPerDay + tod
}

// ShiftMonths moves every value by months and resolves the day with anchor.
// Anchored shifts apply the roll convention first.
func ShiftMonths(dst, src []int64, months int, anchor Anchor) {
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}

		days, tod := splitNanos(v)
		y, m, d := civilFromDays(days)
		n := months
		if anchor != AnchorNone {
			n = RollConvention(d, n, anchor.dayOf(y, m, d))
		}
		y, m, d = shiftMonthFields(y, m, d, n, anchor)
		dst[i] = joinNanos(daysFromCivil(y, m, d), tod)
	}
}

// ShiftQuarters moves every value by quarters periods of modby months whose
// first period starts in month q1start.
func ShiftQuarters(dst, src []int64, quarters, q1start int, anchor Anchor, modby int) {
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}

		days, tod := splitNanos(v)
		y, m, d := civilFromDays(days)
		n := quarters
		monthsSince := floorMod(m-q1start, modby)
		compare := anchor.dayOf(y, m, d)

		if n <= 0 && (monthsSince != 0 || d > compare) {
			// roll forward onto this period's anchor first
			n++
		} else if n > 0 && monthsSince == 0 && d < compare {
			n--
		}

		y, m, d = shiftMonthFields(y, m, d, modby*n-monthsSince, anchor)
		dst[i] = joinNanos(daysFromCivil(y, m, d), tod)
	}
}

// ShiftBusinessDays moves every value periods weekdays, keeping the time of day.
func ShiftBusinessDays(dst, src []int64, periods int) {
	for i, v := range src {
		if v == NaT {
			dst[i] = NaT
			continue
		}

		days, _ := splitNanos(v)
		dst[i] = v + int64(bdayDays(periods, weekdayFromDays(days)))*nanosPerDay
	}
}

// addOffsetNanos adds delta to every value in place.
func addOffsetNanos(values []int64, delta int64) {
	if delta == 0 {
		return
	}
	for i, v := range values {
		if v != NaT {
			values[i] = v + delta
		}
	}
}

// normalizeNanos truncates every value to midnight in place.
func normalizeNanos(values []int64) {
	for i, v := range values {
		if v != NaT {
			days, _ := splitNanos(v)
			values[i] = joinNanos(days, 0)
		}
	}
}
