package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/savaki/offsets"
	"github.com/spf13/viper"
)

// Config holds all configuration for the offsets tool
type Config struct {
	Log      LogConfig
	Calendar CalendarConfig
	Cache    CacheConfig
	Kernel   KernelConfig
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

type CalendarConfig struct {
	Weekmask    string
	Holidays    []string // YYYY-MM-DD
	Closures    []string // encoded closures, e.g. 1:2021-12-24:2021-12-31:
	HolidayFile string   // .yaml, .yml or .toml
	Rules       string   // named rule calendar: "", us_federal or us_bank
}

type CacheConfig struct {
	Size int // frequency cache entries
}

type KernelConfig struct {
	Workers int // goroutines for array application
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("calendar.weekmask", offsets.DefaultWeekmask)
	v.SetDefault("calendar.holidays", []string{})
	v.SetDefault("calendar.closures", []string{})
	v.SetDefault("calendar.holiday_file", "")
	v.SetDefault("calendar.rules", "")

	v.SetDefault("cache.size", 256)

	v.SetDefault("kernel.workers", runtime.NumCPU())
}

// Load reads configuration from defaults, an optional offsets.toml and
// OFFSETS_ environment variables. A non empty file overrides the search path.
func Load(file string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("OFFSETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("offsets")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/offsets/")
		v.AddConfigPath("$HOME/.offsets/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Calendar: CalendarConfig{
			Weekmask:    v.GetString("calendar.weekmask"),
			Holidays:    v.GetStringSlice("calendar.holidays"),
			Closures:    v.GetStringSlice("calendar.closures"),
			HolidayFile: v.GetString("calendar.holiday_file"),
			Rules:       v.GetString("calendar.rules"),
		},
		Cache: CacheConfig{
			Size: v.GetInt("cache.size"),
		},
		Kernel: KernelConfig{
			Workers: v.GetInt("kernel.workers"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked lazily.
func (c *Config) Validate() error {
	if c.Cache.Size <= 0 {
		return fmt.Errorf("invalid cache.size %d: must be positive", c.Cache.Size)
	}
	if c.Kernel.Workers < 0 {
		return fmt.Errorf("invalid kernel.workers %d: must not be negative", c.Kernel.Workers)
	}
	if _, err := offsets.ParseWeekmask(c.Calendar.Weekmask); err != nil {
		return fmt.Errorf("invalid calendar.weekmask: %w", err)
	}
	switch c.Calendar.Rules {
	case "", "us_federal", "us_bank":
	default:
		return fmt.Errorf("invalid calendar.rules %q: want us_federal, us_bank or empty", c.Calendar.Rules)
	}
	return nil
}

// BusinessDayCalendar builds the configured calendar, merging the holiday
// file, explicit holidays, closures and named rules.
func (c *Config) BusinessDayCalendar() (*offsets.BusinessDayCalendar, error) {
	var (
		weekmask = c.Calendar.Weekmask
		holidays = c.Calendar.Holidays
		closures = c.Calendar.Closures
	)

	if c.Calendar.HolidayFile != "" {
		file, err := LoadHolidayFile(c.Calendar.HolidayFile)
		if err != nil {
			return nil, err
		}
		if file.Weekmask != "" {
			weekmask = file.Weekmask
		}
		holidays = append(append([]string(nil), holidays...), file.Holidays...)
		closures = append(append([]string(nil), closures...), file.Closures...)
	}

	dates, err := parseDates(holidays)
	if err != nil {
		return nil, err
	}

	var calendars multiCalendar
	if len(closures) > 0 {
		cc := make(offsets.Closures, 0, len(closures))
		for _, s := range closures {
			closure, err := offsets.ParseClosure(s)
			if err != nil {
				return nil, err
			}
			cc = append(cc, closure)
		}
		calendars = append(calendars, cc)
	}
	switch c.Calendar.Rules {
	case "us_federal":
		calendars = append(calendars, offsets.USFederalHolidayCalendar())
	case "us_bank":
		calendars = append(calendars, usBankHolidays())
	}

	var external offsets.HolidayCalendar
	if len(calendars) > 0 {
		external = calendars
	}
	return offsets.NewBusinessDayCalendar(weekmask, dates, external)
}

func parseDates(ss []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		d, err := time.Parse(offsets.DateLayout, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid holiday %q: %w", s, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// multiCalendar joins the holidays of several calendars.
type multiCalendar []offsets.HolidayCalendar

func (m multiCalendar) Holidays(from, to time.Time) []time.Time {
	var all []time.Time
	for _, c := range m {
		all = append(all, c.Holidays(from, to)...)
	}
	return all
}
