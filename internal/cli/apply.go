package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/savaki/offsets"
	"github.com/savaki/offsets/internal/logger"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "apply <freq> <date>...",
		Short: "Add an offset to dates",
		Long: `Adds the offset to each date. Dates are shifted together through the
vectorised kernels when the offset has one.

Examples:
  offsets apply B 2021-01-08
  offsets apply --times -2 BQS-MAR 2021-05-17 2021-08-30`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolve(args[0])
			if err != nil {
				return err
			}
			if times != 1 {
				if o, err = o.Mul(times); err != nil {
					return err
				}
			}

			dates := make([]time.Time, 0, len(args)-1)
			for _, arg := range args[1:] {
				d, err := parseDate(arg)
				if err != nil {
					return err
				}
				dates = append(dates, d)
			}

			got, err := applyAll(cmd, o, dates)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, d := range got {
				fmt.Fprintf(out, "%s\t%s\n", formatDate(dates[i]), formatDate(d))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&times, "times", 1, "multiply the offset")
	return cmd
}

// applyAll shifts dates with the array kernels, falling back to the scalar
// path for offsets without one.
func applyAll(cmd *cobra.Command, o *offsets.Offset, dates []time.Time) ([]time.Time, error) {
	log := logger.Get("apply")

	got, err := offsets.ApplyTimes(cmd.Context(), o, dates, cfg.Kernel.Workers)
	switch {
	case err == nil:
		return got, nil
	case !errors.Is(err, offsets.ErrNotImplemented):
		return nil, err
	}

	log.Debug().Str("offset", o.String()).Msg("no array kernel, applying one at a time")
	got = make([]time.Time, len(dates))
	for i, d := range dates {
		v, err := o.Apply(d)
		if err != nil {
			return nil, err
		}
		got[i] = v
	}
	return got, nil
}
