package offsets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultCacheSize bounds the default frequency cache.
const DefaultCacheSize = 512

var opattern = regexp.MustCompile(`([+\-]?\d*|[+\-]?\d*\.\d*)\s*([A-Za-z]+([\-][\dA-Za-z\-]+)?)`)

// liteRuleAlias maps legacy and shorthand names to canonical ones.
var liteRuleAlias = map[string]string{
	"W":   "W-SUN",
	"Q":   "Q-DEC",
	"A":   "A-DEC",
	"Y":   "A-DEC",
	"AS":  "AS-JAN",
	"YS":  "AS-JAN",
	"BA":  "BA-DEC",
	"BY":  "BA-DEC",
	"BAS": "BAS-JAN",
	"BYS": "BAS-JAN",
	"Min": "T",
	"min": "T",
	"ms":  "L",
	"us":  "U",
	"ns":  "N",
}

// prefixAlias maps the Y spellings of anchored year prefixes.
var prefixAlias = map[string]string{
	"Y":   "A",
	"YS":  "AS",
	"BY":  "BA",
	"BYS": "BAS",
}

var dontUppercase = map[string]bool{"ms": true}

// bumps lists, per tick code, the next finer code and its multiplier.
var bumps = map[string]struct {
	next string
	mult int64
}{
	"D": {next: "H", mult: 24},
	"H": {next: "T", mult: 60},
	"T": {next: "S", mult: 60},
	"S": {next: "L", mult: 1000},
	"L": {next: "U", mult: 1000},
	"U": {next: "N", mult: 1000},
	"N": {},
}

type fromName func(parts []string) (*Offset, error)

func noSuffix(build func() (*Offset, error)) fromName {
	return func(parts []string) (*Offset, error) {
		if len(parts) > 0 {
			return nil, fmt.Errorf("Bad freq suffix %v", strings.Join(parts, "-"))
		}
		return build()
	}
}

func monthSuffix(build func(month int) (*Offset, error), fallback int) fromName {
	return func(parts []string) (*Offset, error) {
		switch len(parts) {
		case 0:
			return build(fallback)
		case 1:
			month, ok := parseMonthAlias(parts[0])
			if !ok {
				return nil, fmt.Errorf("invalid month %q", parts[0])
			}
			return build(month)
		}
		return nil, fmt.Errorf("too many suffixes %v", parts)
	}
}

func weekdaySuffix(parts []string) (int, error) {
	if len(parts) != 1 {
		return 0, fmt.Errorf("expected one weekday suffix, got %v", parts)
	}
	wd, ok := parseWeekdayCode(parts[0])
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", parts[0])
	}
	return wd, nil
}

func fy5253Suffix(parts []string) (int, int, Variation, error) {
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("expected variation, month and weekday, got %v", parts)
	}
	variation, err := parseVariation(parts[0])
	if err != nil {
		return 0, 0, "", err
	}
	month, ok := parseMonthAlias(parts[1])
	if !ok {
		return 0, 0, "", fmt.Errorf("invalid month %q", parts[1])
	}
	wd, ok := parseWeekdayCode(parts[2])
	if !ok {
		return 0, 0, "", fmt.Errorf("invalid weekday %q", parts[2])
	}
	return wd, month, variation, nil
}

// prefixes builds the n=1 offset of every frequency prefix from its suffix.
var prefixes = map[string]fromName{
	"D":    noSuffix(func() (*Offset, error) { return NewDay(1) }),
	"H":    noSuffix(func() (*Offset, error) { return NewHour(1) }),
	"T":    noSuffix(func() (*Offset, error) { return NewMinute(1) }),
	"S":    noSuffix(func() (*Offset, error) { return NewSecond(1) }),
	"L":    noSuffix(func() (*Offset, error) { return NewMilli(1) }),
	"U":    noSuffix(func() (*Offset, error) { return NewMicro(1) }),
	"N":    noSuffix(func() (*Offset, error) { return NewNano(1) }),
	"B":    noSuffix(func() (*Offset, error) { return NewBusinessDay(1) }),
	"C":    noSuffix(func() (*Offset, error) { return NewCustomBusinessDay(1) }),
	"BH":   noSuffix(func() (*Offset, error) { return NewBusinessHour(1) }),
	"CBH":  noSuffix(func() (*Offset, error) { return NewCustomBusinessHour(1) }),
	"M":    noSuffix(func() (*Offset, error) { return NewMonthEnd(1) }),
	"MS":   noSuffix(func() (*Offset, error) { return NewMonthBegin(1) }),
	"BM":   noSuffix(func() (*Offset, error) { return NewBusinessMonthEnd(1) }),
	"BMS":  noSuffix(func() (*Offset, error) { return NewBusinessMonthBegin(1) }),
	"CBM":  noSuffix(func() (*Offset, error) { return NewCustomBusinessMonthEnd(1) }),
	"CBMS": noSuffix(func() (*Offset, error) { return NewCustomBusinessMonthBegin(1) }),

	"Q":   monthSuffix(func(m int) (*Offset, error) { return NewQuarterEnd(1, m) }, 3),
	"QS":  monthSuffix(func(m int) (*Offset, error) { return NewQuarterBegin(1, m) }, 1),
	"BQ":  monthSuffix(func(m int) (*Offset, error) { return NewBQuarterEnd(1, m) }, 12),
	"BQS": monthSuffix(func(m int) (*Offset, error) { return NewBQuarterBegin(1, m) }, 1),
	"A":   monthSuffix(func(m int) (*Offset, error) { return NewYearEnd(1, m) }, 12),
	"AS":  monthSuffix(func(m int) (*Offset, error) { return NewYearBegin(1, m) }, 1),
	"BA":  monthSuffix(func(m int) (*Offset, error) { return NewBYearEnd(1, m) }, 12),
	"BAS": monthSuffix(func(m int) (*Offset, error) { return NewBYearBegin(1, m) }, 1),

	"SM": func(parts []string) (*Offset, error) {
		day, err := daySuffix(parts)
		if err != nil {
			return nil, err
		}
		return NewSemiMonthEnd(1, day)
	},
	"SMS": func(parts []string) (*Offset, error) {
		day, err := daySuffix(parts)
		if err != nil {
			return nil, err
		}
		return NewSemiMonthBegin(1, day)
	},
	"W": func(parts []string) (*Offset, error) {
		if len(parts) == 0 {
			return NewWeek(1, NoWeekday)
		}
		wd, err := weekdaySuffix(parts)
		if err != nil {
			return nil, err
		}
		return NewWeek(1, wd)
	},
	"WOM": func(parts []string) (*Offset, error) {
		if len(parts) != 1 || len(parts[0]) < 2 {
			return nil, fmt.Errorf("Prefix 'WOM' requires a suffix.")
		}
		week, err := strconv.Atoi(parts[0][:1])
		if err != nil {
			return nil, err
		}
		wd, err := weekdaySuffix([]string{parts[0][1:]})
		if err != nil {
			return nil, err
		}
		return NewWeekOfMonth(1, week-1, wd)
	},
	"LWOM": func(parts []string) (*Offset, error) {
		if len(parts) == 0 {
			return nil, fmt.Errorf("Prefix 'LWOM' requires a suffix.")
		}
		wd, err := weekdaySuffix(parts)
		if err != nil {
			return nil, err
		}
		return NewLastWeekOfMonth(1, wd)
	},
	"RE": func(parts []string) (*Offset, error) {
		wd, month, variation, err := fy5253Suffix(parts)
		if err != nil {
			return nil, err
		}
		return NewFY5253(1, wd, month, variation)
	},
	"REQ": func(parts []string) (*Offset, error) {
		if len(parts) != 4 {
			return nil, fmt.Errorf("expected variation, month, weekday and quarter, got %v", parts)
		}
		wd, month, variation, err := fy5253Suffix(parts[:3])
		if err != nil {
			return nil, err
		}
		qtr, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, err
		}
		return NewFY5253Quarter(1, wd, month, qtr, variation)
	},
}

func daySuffix(parts []string) (int, error) {
	switch len(parts) {
	case 0:
		return DefaultDayOfMonth, nil
	case 1:
		return strconv.Atoi(parts[0])
	}
	return 0, fmt.Errorf("too many suffixes %v", parts)
}

// FreqCache memoizes resolved base offsets by canonical name. It is safe for
// concurrent use.
type FreqCache struct {
	lru *lru.Cache[string, *Offset]
}

// NewFreqCache returns a cache holding at most size names.
func NewFreqCache(size int) (*FreqCache, error) {
	c, err := lru.New[string, *Offset](size)
	if err != nil {
		return nil, fmt.Errorf("unable to create frequency cache: %w", err)
	}
	return &FreqCache{lru: c}, nil
}

func (c *FreqCache) get(name string) (*Offset, bool) { return c.lru.Get(name) }
func (c *FreqCache) add(name string, o *Offset)      { c.lru.Add(name, o) }

// Len returns the number of cached names.
func (c *FreqCache) Len() int { return c.lru.Len() }

// Purge empties the cache.
func (c *FreqCache) Purge() { c.lru.Purge() }

// Registry resolves frequency strings into offsets.
type Registry struct {
	cache  *FreqCache
	logger zerolog.Logger
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithCache injects the cache of resolved names.
func WithCache(c *FreqCache) RegistryOption {
	return func(r *Registry) { r.cache = c }
}

// WithLogger sets the logger of resolution events.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry returns a registry with its own cache unless WithCache is given.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		c, err := NewFreqCache(DefaultCacheSize)
		if err != nil {
			panic(err)
		}
		r.cache = c
	}
	return r
}

// Cache returns the registry cache.
func (r *Registry) Cache() *FreqCache { return r.cache }

// DefaultRegistry backs ToOffset.
var DefaultRegistry = NewRegistry()

// ToOffset resolves freq with DefaultRegistry.
func ToOffset(freq string) (*Offset, error) {
	return DefaultRegistry.Resolve(freq)
}

// Resolve parses a frequency string such as "5min", "W-SUN", "BQS-MAR" or
// "1D 2H". The sign of the first component applies to every component.
func (r *Registry) Resolve(freq string) (*Offset, error) {
	o, err := r.resolve(freq)
	if err != nil {
		r.logger.Debug().Err(err).Str("freq", freq).Msg("unable to resolve frequency")
		return nil, &InvalidFrequencyError{Freq: freq, Err: err}
	}
	return o, nil
}

func (r *Registry) resolve(freq string) (*Offset, error) {
	matches := opattern.FindAllStringSubmatchIndex(freq, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no frequency found")
	}

	var (
		delta *Offset
		sign  = 0
		last  = 0
	)
	for _, m := range matches {
		if sep := freq[last:m[0]]; !isBlank(sep) {
			return nil, fmt.Errorf("separator must be spaces")
		}
		last = m[1]

		stride := freq[m[2]:m[3]]
		name := freq[m[4]:m[5]]

		if sign == 0 {
			sign = 1
			if strings.HasPrefix(stride, "-") {
				sign = -1
			}
		}
		stride = strings.TrimLeft(stride, "+-")
		if stride == "" {
			stride = "1"
		}

		count, name, err := strideOf(stride, name)
		if err != nil {
			return nil, err
		}

		base, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		offset, err := base.Mul(count * sign)
		if err != nil {
			return nil, err
		}

		if delta == nil {
			delta = offset
		} else if delta, err = delta.Plus(offset); err != nil {
			return nil, err
		}
	}
	if rest := freq[last:]; !isBlank(rest) {
		return nil, fmt.Errorf("last element must be blank")
	}
	return delta, nil
}

// strideOf converts a decimal stride on a tick code into an integer stride,
// moving to finer units until the stride is whole.
func strideOf(stride, name string) (int, string, error) {
	code := canonicalName(name)
	if _, ok := bumps[code]; !ok || !strings.Contains(stride, ".") {
		n, err := strconv.Atoi(stride)
		return n, name, err
	}

	value, err := decimal.NewFromString(stride)
	if err != nil {
		return 0, "", err
	}
	for !value.IsInteger() {
		bump := bumps[code]
		if bump.next == "" {
			return 0, "", fmt.Errorf("Could not convert to integer offset at any resolution")
		}
		value = value.Mul(decimal.NewFromInt(bump.mult))
		code = bump.next
	}
	if !value.BigInt().IsInt64() || value.IntPart() > int64(maxInt) {
		return 0, "", fmt.Errorf("stride %v out of range", stride)
	}
	return int(value.IntPart()), code, nil
}

const maxInt = int(^uint(0) >> 1)

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// canonicalName applies case normalization and the alias table. Any casing
// of "ms" is taken as written, so only "MS" and "ms" resolve.
func canonicalName(name string) string {
	if dontUppercase[strings.ToLower(name)] {
		if alias, ok := liteRuleAlias[name]; ok {
			return alias
		}
		return name
	}
	name = strings.ToUpper(name)
	if alias, ok := liteRuleAlias[name]; ok {
		name = alias
	}
	if alias, ok := liteRuleAlias[strings.ToLower(name)]; ok {
		name = alias
	}
	return name
}

// Lookup returns the n=1 offset of a single frequency name such as "BQS-MAR".
func (r *Registry) Lookup(name string) (*Offset, error) {
	name = canonicalName(name)
	if o, ok := r.cache.get(name); ok {
		return o, nil
	}

	parts := strings.Split(name, "-")
	prefix := parts[0]
	if alias, ok := prefixAlias[prefix]; ok {
		prefix = alias
	}
	build, ok := prefixes[prefix]
	if !ok {
		return nil, fmt.Errorf("unknown frequency prefix %q", parts[0])
	}
	o, err := build(parts[1:])
	if err != nil {
		return nil, err
	}

	r.cache.add(name, o)
	r.logger.Debug().Str("name", name).Str("offset", o.String()).Msg("cached frequency")
	return o, nil
}

// Prefixes lists the supported frequency prefixes.
func Prefixes() []string {
	pp := make([]string, 0, len(prefixes))
	for p := range prefixes {
		pp = append(pp, p)
	}
	return pp
}
