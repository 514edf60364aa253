package main

import (
	"career-match/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		r := migration.Runner{Log: e.log}
		return r.Run(cmd.Context(), e.db.SQLDB())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
