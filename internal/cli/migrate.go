package cli

import (
	"koala-user-service/internal/config/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.RunMigrations(rt.log, rt.config.Database.DSN)
		},
	}
}
