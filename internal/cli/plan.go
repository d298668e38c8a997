package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"groupmixer/internal/render"
	"groupmixer/internal/rotation"
)

func newPlanCmd() *cobra.Command {
	var (
		flagGroups   int
		flagRounds   int
		flagSeed     int64
		flagRestarts int
		withQuality  bool
		withPairs    bool
	)
	cmd := &cobra.Command{
		Use:   "plan NAME",
		Short: "Generate, save and print a rotation plan for the present members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := store.GetRoster(args[0])
			if err != nil {
				return err
			}
			present, err := store.PresentMembers(r.ID)
			if err != nil {
				return err
			}
			cfg := rotation.Config{
				Groups:   flagGroups,
				Rounds:   flagRounds,
				Restarts: flagRestarts,
			}
			if cmd.Flags().Changed("seed") {
				seed := flagSeed
				cfg.Seed = &seed
			}
			plan, err := rotation.Generate(present, cfg)
			if err != nil {
				return err
			}
			planID, err := store.SavePlan(cmd.Context(), r.ID, cfg.Groups, cfg.Rounds, flagRestarts, cfg.Seed, plan)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "plan %d: roster=%s present=%d groups=%d rounds=%d\n",
				planID, r.Name, len(present), cfg.Groups, cfg.Rounds)
			render.Schedule(out, plan)
			if withQuality {
				fmt.Fprintln(out)
				render.Quality(out, rotation.Quality(plan))
			}
			if withPairs {
				fmt.Fprintln(out)
				render.RepeatedPairs(out, rotation.RepeatedPairs(plan, 2), 50)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagGroups, "groups", 4, "number of groups per round")
	cmd.Flags().IntVar(&flagRounds, "rounds", 2, "number of rounds")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed for reproducible plans (omit for a fresh draw)")
	cmd.Flags().IntVar(&flagRestarts, "restarts", 400, "restart budget per round; higher means fewer repeats but slower")
	cmd.Flags().BoolVar(&withQuality, "quality", false, "also print the quality report")
	cmd.Flags().BoolVar(&withPairs, "pairs", false, "also print repeated pairs")
	return cmd
}
