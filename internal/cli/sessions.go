package cli

import (
	"fmt"

	"github.com/savaki/offsets"
	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	var reserve []string

	cmd := &cobra.Command{
		Use:   "sessions <freq> <date>...",
		Short: "List open business hours",
		Long: `Lists the business hour windows of a BH or CBH offset opening on each
date, less any --reserve windows. Days without a session print "closed".

Examples:
  offsets sessions BH 2021-01-08
  offsets sessions CBH --reserve 12:00-13:00 --reserve 16:30-17:00 2021-01-08`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := resolve(args[0])
			if err != nil {
				return err
			}
			if o.Hours() == nil {
				return fmt.Errorf("%v has no business hours", o)
			}

			reserved := make([]offsets.TimeSlot, 0, len(reserve))
			for _, r := range reserve {
				slot, err := offsets.ParseTimeSlot(r)
				if err != nil {
					return err
				}
				reserved = append(reserved, slot)
			}

			out := cmd.OutOrStdout()
			for _, arg := range args[1:] {
				d, err := parseDate(arg)
				if err != nil {
					return err
				}

				if _, ok := o.Sessions(d); !ok {
					fmt.Fprintf(out, "%s\tclosed\n", formatDate(d))
					continue
				}
				free := offsets.Hours(offsets.Availability(o, d, reserved))
				fmt.Fprintf(out, "%s\t%v\n", formatDate(d), free)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&reserve, "reserve", nil, "HH:MM-HH:MM window to take out, repeatable")
	return cmd
}
