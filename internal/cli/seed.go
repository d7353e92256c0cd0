package cli

import (
	"fmt"

	"koala-user-service/db/seeder"
	app "koala-user-service/internal"
	"koala-user-service/internal/config/database"
	"koala-user-service/internal/config/redis"
	"koala-user-service/internal/config/validation"

	"github.com/spf13/cobra"
)

func newSeedCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the development user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.NewDatabase(rt.log, rt.config)
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			rdb := redis.NewRedis(rt.log, rt.config)
			defer rdb.Close()

			boot := app.NewApp(rt.log, rt.config, db, nil, validation.NewValidation(rt.config), rdb)
			userService, _, _, _ := boot.Services()

			created, err := seeder.Seed(cmd.Context(), rt.log, userService, seeder.DefaultUsers())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", created)
			return nil
		},
	}
}
