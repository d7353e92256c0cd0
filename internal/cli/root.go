package cli

import (
	"fmt"
	"os"

	"koala-user-service/internal/config/env"
	"koala-user-service/internal/config/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadConfig is swapped in tests.
var loadConfig = env.NewConfig

// runtime holds what every command needs before it starts.
type runtime struct {
	config *env.Config
	log    *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "koala-user-service",
		Short:         "User registration, lookup and token authentication service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a missing .env is normal outside development
			envErr := godotenv.Load()

			rt.config = loadConfig()
			rt.log = logger.NewLogger(rt.config)
			if envErr != nil {
				rt.log.WithError(envErr).Debug("No .env file loaded")
			}
			return nil
		},
	}

	cmd.AddCommand(newServeCmd(rt))
	cmd.AddCommand(newMigrateCmd(rt))
	cmd.AddCommand(newSeedCmd(rt))

	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
