package cli

import (
	"testing"

	"koala-user-service/internal/config/env"

	"github.com/stretchr/testify/require"
)

func withConfig(t *testing.T, cfg *env.Config) {
	t.Helper()
	orig := loadConfig
	loadConfig = func() *env.Config { return cfg }
	t.Cleanup(func() { loadConfig = orig })
}

func TestNewRootCmd_Commands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"serve", "migrate", "seed"})

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	require.NotNil(t, serve.Flags().Lookup("migrate"))
}

func TestMigrateCmd_InvalidDSN(t *testing.T) {
	cfg := &env.Config{}
	cfg.Database.DSN = "unknown://nowhere"
	withConfig(t, cfg)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate"})
	require.Error(t, cmd.Execute())
}

func TestServeCmd_MigrationFailureStopsStartup(t *testing.T) {
	cfg := &env.Config{}
	cfg.Database.DSN = "unknown://nowhere"
	withConfig(t, cfg)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve", "--migrate"})
	require.Error(t, cmd.Execute())
}
