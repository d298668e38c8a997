package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage rosters and their members",
	}
	cmd.AddCommand(
		newRosterCreateCmd(),
		newRosterAddCmd(),
		newRosterRemoveCmd(),
		newRosterListCmd(),
		newRosterMembersCmd(),
	)
	return cmd
}

func newRosterCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.CreateRoster(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created roster %s (id %d)\n", args[0], id)
			return nil
		},
	}
}

func newRosterAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME MEMBER...",
		Short: "Add members to a roster",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.GetRoster(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if err := store.AddMember(r.ID, name); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d member(s) to %s\n", len(args)-1, r.Name)
			return nil
		},
	}
}

func newRosterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME MEMBER...",
		Short: "Remove members from a roster",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.GetRoster(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if err := store.RemoveMember(r.ID, name); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d member(s) from %s\n", len(args)-1, r.Name)
			return nil
		},
	}
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rosters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters, err := store.ListRosters()
			if err != nil {
				return err
			}
			for _, r := range rosters {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.Name)
			}
			return nil
		},
	}
}

func newRosterMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members NAME",
		Short: "List a roster's members and their attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.GetRoster(args[0])
			if err != nil {
				return err
			}
			members, err := store.Members(r.ID)
			if err != nil {
				return err
			}
			for _, m := range members {
				mark := "present"
				if !m.Present {
					mark = "absent"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Name, mark)
			}
			return nil
		},
	}
}
