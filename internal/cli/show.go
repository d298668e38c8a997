package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"groupmixer/internal/render"
	"groupmixer/internal/rotation"
	"groupmixer/internal/version"
)

func parsePlanID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid plan id %q", arg)
	}
	return id, nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN_ID",
		Short: "Print a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			p, schedule, err := store.GetPlan(id)
			if err != nil {
				return err
			}
			seed := "none"
			if p.Seed.Valid {
				seed = strconv.FormatInt(p.Seed.Int64, 10)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plan %d: groups=%d rounds=%d restarts=%d seed=%s\n",
				p.ID, p.Groups, p.Rounds, p.Restarts, seed)
			render.Schedule(cmd.OutOrStdout(), schedule)
			return nil
		},
	}
}

func newQualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality PLAN_ID",
		Short: "Print the new-pair percentages of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			_, schedule, err := store.GetPlan(id)
			if err != nil {
				return err
			}
			render.Quality(cmd.OutOrStdout(), rotation.Quality(schedule))
			return nil
		},
	}
}

func newPairsCmd() *cobra.Command {
	var (
		minRepeats int
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "pairs PLAN_ID",
		Short: "Print the most repeated pairs of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			_, schedule, err := store.GetPlan(id)
			if err != nil {
				return err
			}
			render.RepeatedPairs(cmd.OutOrStdout(), rotation.RepeatedPairs(schedule, minRepeats), limit)
			return nil
		},
	}
	cmd.Flags().IntVar(&minRepeats, "min", 2, "only list pairs occurring at least this often")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print (0 for all)")
	return cmd
}

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix PLAN_ID",
		Short: "Print the pair co-location matrix of a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			_, schedule, err := store.GetPlan(id)
			if err != nil {
				return err
			}
			render.Matrix(cmd.OutOrStdout(), schedule)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the groupmixer version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "groupmixer", version.Version)
			return nil
		},
	}
}
