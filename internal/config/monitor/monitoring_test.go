package monitor

import (
	"context"
	"io"
	"testing"
	"time"

	"koala-user-service/internal/config/env"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func countHooks(logger *logrus.Logger) int {
	added := 0
	for level := logrus.PanicLevel; level <= logrus.TraceLevel; level++ {
		added += len(logger.Hooks[level])
	}
	return added
}

func TestNewMonitoring_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		appName   string
		host      string
		exporting bool
	}{
		{name: "valid host and app", appName: "koala", host: "localhost:4318", exporting: true},
		{name: "empty app name", appName: "", host: "localhost:4318", exporting: true},
		{name: "empty host disables export", appName: "koala", host: "", exporting: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			require.Zero(t, countHooks(logger))

			cfg := &env.Config{}
			cfg.App.Name = tc.appName
			cfg.Monitoring.Otel.Host = tc.host

			m := NewMonitoring(logger, cfg)
			require.NotNil(t, m)

			if tc.exporting {
				require.NotNil(t, m.tracerProvider)
				require.NotNil(t, m.loggerProvider)
				assert.Equal(t, m.tracerProvider, otel.GetTracerProvider())
				assert.Greater(t, countHooks(logger), 0)
			} else {
				require.Nil(t, m.tracerProvider)
				require.Nil(t, m.loggerProvider)
				assert.Zero(t, countHooks(logger))
			}
		})
	}
}

func TestMonitoringShutdown_TableDriven(t *testing.T) {
	cases := []struct {
		name string
		host string
	}{
		{name: "shutdown with valid host", host: "localhost:4318"},
		{name: "shutdown with empty host", host: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			cfg := &env.Config{}
			cfg.App.Name = "koala"
			cfg.Monitoring.Otel.Host = tc.host

			m := NewMonitoring(logger, cfg)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			assert.NoError(t, m.Shutdown(ctx))
		})
	}
}
