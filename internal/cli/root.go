// Package cli implements the groupmixer command line: roster management,
// attendance, plan generation and plan inspection.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"groupmixer/internal/config"
	"groupmixer/internal/db"
)

var (
	flagDB string

	store *db.Store
)

// NewRootCmd creates the root cobra command for the groupmixer CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "groupmixer",
		Short: "groupmixer — rotate people through groups without repeat pairings",
		Long: "groupmixer plans multi-round group rotations for a roster, keeping\n" +
			"track of who has already been grouped together so repeats stay rare.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			path := flagDB
			if path == "" {
				cfg, err := config.FromEnv()
				if err != nil {
					return err
				}
				path = cfg.DatabasePath
			}
			var err error
			store, err = db.Open(path)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				_ = store.Close()
				store = nil
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "sqlite database path (or DATABASE_PATH env)")

	root.AddCommand(
		newRosterCmd(),
		newAttendCmd(),
		newPlanCmd(),
		newShowCmd(),
		newQualityCmd(),
		newPairsCmd(),
		newMatrixCmd(),
		newVersionCmd(),
	)

	return root
}
