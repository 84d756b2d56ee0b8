// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/savaki/offsets"
	"github.com/savaki/offsets/internal/config"
	"github.com/savaki/offsets/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string

	// Resolved values
	cfg      *config.Config
	registry *offsets.Registry
	calendar *offsets.BusinessDayCalendar
)

// rootCmd represents the base command
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offsets",
		Short: "Calendar offset arithmetic",
		Long: `offsets resolves frequency strings such as "5T", "BQS-MAR" or "W-FRI"
and applies them to dates.

Custom business offsets (C, CBM, CBMS, CBH) use the business calendar
from the configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger.Setup(cfg.Log.Level, cfg.Log.Format)

			cache, err := offsets.NewFreqCache(cfg.Cache.Size)
			if err != nil {
				return err
			}
			registry = offsets.NewRegistry(
				offsets.WithCache(cache),
				offsets.WithLogger(logger.Get("registry")),
			)

			calendar, err = cfg.BusinessDayCalendar()
			if err != nil {
				return fmt.Errorf("failed to build business calendar: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: offsets.toml in ., /etc/offsets, ~/.offsets)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")

	cmd.AddCommand(
		newResolveCmd(),
		newApplyCmd(),
		newRollCmd(),
		newRangeCmd(),
		newSessionsCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// resolve turns freq into an offset bound to the configured calendar.
func resolve(freq string) (*offsets.Offset, error) {
	o, err := registry.Resolve(freq)
	if err != nil {
		return nil, err
	}
	return o.WithCalendar(calendar)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	offsets.DateLayout,
}

// parseDate accepts RFC 3339 or a naive date and time, taken as UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or RFC 3339", s)
}

func formatDate(t time.Time) string {
	if t.Location() == time.UTC && isMidnight(t) {
		return t.Format(offsets.DateLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
