package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRollCmd() *cobra.Command {
	var back bool

	cmd := &cobra.Command{
		Use:   "roll <freq> <date>...",
		Short: "Roll dates onto an offset",
		Long: `Rolls each date forward to the next date on the offset, or back with
--back. Dates already on the offset are unchanged.

Examples:
  offsets roll BM 2021-01-15
  offsets roll --back W-FRI 2021-01-13`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args[1:] {
				d, err := parseDate(arg)
				if err != nil {
					return err
				}

				on := o.IsOnOffset(d)
				rolled := o.Rollforward(d)
				if back {
					rolled = o.Rollback(d)
				}
				fmt.Fprintf(out, "%s\t%s\ton_offset=%v\n", formatDate(d), formatDate(rolled), on)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&back, "back", false, "roll back instead of forward")
	return cmd
}
