package commands

import (
	"github.com/anhimov/library/src/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default librarian and a sample catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(database)

		return seed.Seed(cmd.Context(), database, cfg, log)
	},
}
