package offsets

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/vmihailenco/msgpack/v5"
)

// ToN validates an untyped period count. Integral floats such as 2.0 are
// accepted; fractions, durations and non numbers are not.
func ToN(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n > int64(maxInt) || n < -int64(maxInt)-1 {
			return 0, fmt.Errorf("N out of range, got %v", n)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > uint64(maxInt) {
			return 0, fmt.Errorf("N out of range, got %v", n)
		}
		return int(n), nil
	case float32:
		return ToN(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("`n` argument must be an integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("`n` argument must be an integer, got %T", v)
	}
}

// State returns the parameters needed to rebuild o. The business day
// calendar is represented by its weekmask and holidays only.
func (o *Offset) State() map[string]interface{} {
	state := map[string]interface{}{
		"kind": o.kind.String(),
	}
	for _, p := range o.Params() {
		switch v := p.Value.(type) {
		case time.Duration:
			state[p.Name] = int64(v)
		case string:
			if p.Name == "holidays" {
				if v == "" {
					continue
				}
				state[p.Name] = strings.Split(v, ",")
				continue
			}
			state[p.Name] = v
		default:
			state[p.Name] = v
		}
	}
	return state
}

type stateReader struct {
	state map[string]interface{}
	err   error
}

func (s *stateReader) int(key string, fallback int) int {
	v, ok := s.state[key]
	if !ok || s.err != nil {
		return fallback
	}
	n, err := ToN(v)
	if err != nil {
		s.err = fmt.Errorf("%v: %w", key, err)
		return fallback
	}
	return n
}

func (s *stateReader) string(key, fallback string) string {
	v, ok := s.state[key]
	if !ok || s.err != nil {
		return fallback
	}
	str, ok := v.(string)
	if !ok {
		s.err = fmt.Errorf("%v: expected string, got %T", key, v)
		return fallback
	}
	return str
}

func (s *stateReader) bool(key string) bool {
	v, ok := s.state[key]
	if !ok || s.err != nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		s.err = fmt.Errorf("%v: expected bool, got %T", key, v)
	}
	return b
}

func (s *stateReader) strings(key string) []string {
	v, ok := s.state[key]
	if !ok || s.err != nil {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		ss := make([]string, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				s.err = fmt.Errorf("%v: expected strings, got %T", key, item)
				return nil
			}
			ss = append(ss, str)
		}
		return ss
	}
	s.err = fmt.Errorf("%v: expected strings, got %T", key, v)
	return nil
}

func (s *stateReader) duration(key string) time.Duration {
	v, ok := s.state[key]
	if !ok || s.err != nil {
		return 0
	}
	if d, ok := v.(time.Duration); ok {
		return d
	}
	n, err := ToN(v)
	if err != nil {
		s.err = fmt.Errorf("%v: %w", key, err)
	}
	return time.Duration(n)
}

func (s *stateReader) holidays() []time.Time {
	var hh []time.Time
	for _, str := range s.strings("holidays") {
		h, err := time.Parse(DateLayout, str)
		if err != nil {
			s.err = fmt.Errorf("holidays: %w", err)
			return nil
		}
		hh = append(hh, h)
	}
	return hh
}

// FromState rebuilds an offset from State output, including state decoded
// from DynamoDB or msgpack where numbers lose their Go types.
func FromState(state map[string]interface{}) (*Offset, error) {
	s := &stateReader{state: state}
	kind, ok := ParseKind(s.string("kind", ""))
	if !ok {
		return nil, fmt.Errorf("unable to rebuild offset: unknown kind %v", state["kind"])
	}

	n := s.int("n", 1)
	var opts []Option
	if s.bool("normalize") {
		opts = append(opts, WithNormalize())
	}
	if d := s.duration("offset"); d != 0 {
		opts = append(opts, WithOffset(d))
	}
	if start, end := s.strings("start"), s.strings("end"); start != nil || end != nil {
		opts = append(opts, WithHours(start, end))
	}
	if wm := s.string("weekmask", ""); wm != "" {
		opts = append(opts, WithWeekmask(wm))
	}
	if hh := s.holidays(); len(hh) > 0 {
		opts = append(opts, WithHolidays(hh...))
	}
	if s.err != nil {
		return nil, fmt.Errorf("unable to rebuild %v: %w", kind, s.err)
	}

	var (
		o   *Offset
		err error
	)
	switch kind {
	case KindDay, KindHour, KindMinute, KindSecond, KindMilli, KindMicro, KindNano:
		o, err = newTick(kind, n, opts)
	case KindBusinessDay:
		o, err = NewBusinessDay(n, opts...)
	case KindCustomBusinessDay:
		o, err = NewCustomBusinessDay(n, opts...)
	case KindBusinessHour:
		o, err = NewBusinessHour(n, opts...)
	case KindCustomBusinessHour:
		o, err = NewCustomBusinessHour(n, opts...)
	case KindMonthEnd:
		o, err = NewMonthEnd(n, opts...)
	case KindMonthBegin:
		o, err = NewMonthBegin(n, opts...)
	case KindBusinessMonthEnd:
		o, err = NewBusinessMonthEnd(n, opts...)
	case KindBusinessMonthBegin:
		o, err = NewBusinessMonthBegin(n, opts...)
	case KindCustomBusinessMonthEnd:
		o, err = NewCustomBusinessMonthEnd(n, opts...)
	case KindCustomBusinessMonthBegin:
		o, err = NewCustomBusinessMonthBegin(n, opts...)
	case KindSemiMonthEnd:
		o, err = NewSemiMonthEnd(n, s.int("day_of_month", DefaultDayOfMonth), opts...)
	case KindSemiMonthBegin:
		o, err = NewSemiMonthBegin(n, s.int("day_of_month", DefaultDayOfMonth), opts...)
	case KindWeek:
		o, err = NewWeek(n, s.int("weekday", NoWeekday), opts...)
	case KindWeekOfMonth:
		o, err = NewWeekOfMonth(n, s.int("week", 0), s.int("weekday", 0), opts...)
	case KindLastWeekOfMonth:
		o, err = NewLastWeekOfMonth(n, s.int("weekday", 0), opts...)
	case KindQuarterEnd:
		o, err = NewQuarterEnd(n, s.int("startingMonth", DefaultStartingMonth), opts...)
	case KindQuarterBegin:
		o, err = NewQuarterBegin(n, s.int("startingMonth", DefaultStartingMonth), opts...)
	case KindBQuarterEnd:
		o, err = NewBQuarterEnd(n, s.int("startingMonth", DefaultStartingMonth), opts...)
	case KindBQuarterBegin:
		o, err = NewBQuarterBegin(n, s.int("startingMonth", DefaultStartingMonth), opts...)
	case KindYearEnd:
		o, err = NewYearEnd(n, s.int("month", 12), opts...)
	case KindYearBegin:
		o, err = NewYearBegin(n, s.int("month", 1), opts...)
	case KindBYearEnd:
		o, err = NewBYearEnd(n, s.int("month", 12), opts...)
	case KindBYearBegin:
		o, err = NewBYearBegin(n, s.int("month", 1), opts...)
	case KindFY5253:
		o, err = NewFY5253(n, s.int("weekday", 0), s.int("startingMonth", 1),
			Variation(s.string("variation", string(VariationNearest))), opts...)
	case KindFY5253Quarter:
		o, err = NewFY5253Quarter(n, s.int("weekday", 0), s.int("startingMonth", 1), s.int("qtr_with_extra_week", 1),
			Variation(s.string("variation", string(VariationNearest))), opts...)
	case KindEaster:
		o, err = NewEaster(n, opts...)
	case KindDateOffset:
		delta := Delta{}
		for _, keys := range [][]string{relativeKeys, absoluteKeys} {
			for _, key := range keys {
				if _, ok := state[key]; ok {
					delta[key] = s.int(key, 0)
				}
			}
		}
		o, err = NewDateOffset(n, delta, opts...)
	default:
		return nil, fmt.Errorf("unable to rebuild offset: unsupported kind %v", kind)
	}
	if s.err != nil {
		return nil, fmt.Errorf("unable to rebuild %v: %w", kind, s.err)
	}
	return o, err
}

// StateKeys returns the sorted keys of o's state.
func (o *Offset) StateKeys() []string {
	state := o.State()
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalDynamoDBAttributeValue stores the offset state as an M attribute.
func (o *Offset) MarshalDynamoDBAttributeValue(item *dynamodb.AttributeValue) error {
	m, err := dynamodbattribute.MarshalMap(o.State())
	if err != nil {
		return fmt.Errorf("unable to marshal %v: %w", o, err)
	}
	*item = dynamodb.AttributeValue{
		M: m,
	}
	return nil
}

// UnmarshalDynamoDBAttributeValue rebuilds the offset from an M attribute.
func (o *Offset) UnmarshalDynamoDBAttributeValue(item *dynamodb.AttributeValue) error {
	if item == nil || item.M == nil {
		return fmt.Errorf("dynamodb.AttributeValue not an Offset:  missing M key")
	}

	var state map[string]interface{}
	if err := dynamodbattribute.UnmarshalMap(item.M, &state); err != nil {
		return err
	}

	v, err := FromState(state)
	if err != nil {
		return err
	}

	*o = *v
	return nil
}

var (
	_ msgpack.CustomEncoder = (*Offset)(nil)
	_ msgpack.CustomDecoder = (*Offset)(nil)
)

// EncodeMsgpack writes the offset state as a msgpack map.
func (o *Offset) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(o.State())
}

// DecodeMsgpack rebuilds the offset from a msgpack map.
func (o *Offset) DecodeMsgpack(dec *msgpack.Decoder) error {
	state, err := dec.DecodeMap()
	if err != nil {
		return err
	}

	v, err := FromState(state)
	if err != nil {
		return err
	}

	*o = *v
	return nil
}
