package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAttendCmd() *cobra.Command {
	var absent bool
	cmd := &cobra.Command{
		Use:   "attend NAME MEMBER...",
		Short: "Mark roster members present (default) or absent",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.GetRoster(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if err := store.SetPresent(r.ID, name, !absent); err != nil {
					return err
				}
			}
			state := "present"
			if absent {
				state = "absent"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %d member(s) %s in %s\n", len(args)-1, state, r.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&absent, "absent", false, "mark the members absent instead of present")
	return cmd
}
