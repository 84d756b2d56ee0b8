package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// maxListed bounds the list values printed in full.
const maxListed = 8

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <freq>...",
		Short: "Resolve frequency strings to offsets",
		Long: `Resolves each frequency string and prints its canonical name followed by
the parameters that rebuild it.

Examples:
  offsets resolve 5T
  offsets resolve "1D 2H" BQS-MAR`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, freq := range args {
				o, err := resolve(freq)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\t%v\n", freq, o)
				state := o.State()
				for _, key := range o.StateKeys() {
					if ss, ok := state[key].([]string); ok && len(ss) > maxListed {
						fmt.Fprintf(out, "  %s: %d values, %v ... %v\n", key, len(ss), ss[0], ss[len(ss)-1])
						continue
					}
					fmt.Fprintf(out, "  %s: %v\n", key, state[key])
				}
			}
			return nil
		},
	}
}
