package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "koala-user-service/internal"
	"koala-user-service/internal/config/database"
	"koala-user-service/internal/config/monitor"
	"koala-user-service/internal/config/redis"
	"koala-user-service/internal/config/validation"
	"koala-user-service/internal/config/web"

	"github.com/spf13/cobra"
)

const telemetryFlushTimeout = 5 * time.Second

func newServeCmd(rt *runtime) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrate {
				if err := database.RunMigrations(rt.log, rt.config.Database.DSN); err != nil {
					return err
				}
			}

			monitoring := monitor.NewMonitoring(rt.log, rt.config)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
				defer cancel()
				if err := monitoring.Shutdown(ctx); err != nil {
					rt.log.WithError(err).Warn("Failed to flush telemetry")
				}
			}()

			db := database.NewDatabase(rt.log, rt.config)
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			rdb := redis.NewRedis(rt.log, rt.config)
			defer rdb.Close()

			server := app.NewApp(
				rt.log,
				rt.config,
				db,
				web.NewFiber(rt.log, rt.config),
				validation.NewValidation(rt.config),
				rdb,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}
