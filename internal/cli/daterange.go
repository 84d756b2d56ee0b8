package cli

import (
	"fmt"
	"time"

	"github.com/savaki/offsets"
	"github.com/spf13/cobra"
)

func newRangeCmd() *cobra.Command {
	var (
		start   string
		end     string
		periods int
	)

	cmd := &cobra.Command{
		Use:   "range <freq>",
		Short: "List the dates of an offset",
		Long: `Lists the dates on the offset between --start and --end inclusive. Give
exactly two of --start, --end and --periods.

Examples:
  offsets range BQS-MAR --start 2021-01-01 --end 2021-12-31
  offsets range W-FRI --start 2021-01-01 --periods 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolve(args[0])
			if err != nil {
				return err
			}

			var from, to time.Time
			if start != "" {
				if from, err = parseDate(start); err != nil {
					return err
				}
			}
			if end != "" {
				if to, err = parseDate(end); err != nil {
					return err
				}
			}

			dates, err := offsets.GenerateRange(o, from, to, periods)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range dates {
				fmt.Fprintln(out, formatDate(d))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date")
	cmd.Flags().StringVar(&end, "end", "", "last date")
	cmd.Flags().IntVar(&periods, "periods", 0, "number of dates")
	return cmd
}
