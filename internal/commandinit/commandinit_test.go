package commandinit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/artuross/expression-calculator/internal/commandinit"
	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/artuross/expression-calculator/internal/defaults"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("default level", func(t *testing.T) {
		var buf bytes.Buffer

		logger, err := commandinit.NewLogger(&buf, "", "eval")
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

		logger.Debug().Msg("hidden")
		logger.Info().Msg("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "eval")
	})

	t.Run("debug level", func(t *testing.T) {
		logger, err := commandinit.NewLogger(&bytes.Buffer{}, "debug", "eval")
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := commandinit.NewLogger(&bytes.Buffer{}, "loud", "eval")
		assert.Error(t, err)
	})
}

func TestNewOpenTelemetry_Disabled(t *testing.T) {
	ctx := context.Background()

	tracerProvider, shutdown, err := commandinit.NewOpenTelemetry(ctx, "calculator", "")
	require.NoError(t, err)

	assert.Equal(t, defaults.TracerProvider, tracerProvider)
	assert.NoError(t, shutdown(ctx))
}

func TestNew(t *testing.T) {
	t.Run("debug prints config", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := &config.Config{HistoryFile: "./history.json", LogLevel: "debug", Concurrency: 1}

		env, err := commandinit.New(context.Background(), cfg, &buf, "eval")
		require.NoError(t, err)
		defer env.Shutdown(context.Background())

		assert.Contains(t, buf.String(), "Running with config:")
		assert.Equal(t, defaults.TracerProvider, env.TracerProvider)
		assert.NotNil(t, zerolog.Ctx(env.Ctx))
	})

	t.Run("info hides config", func(t *testing.T) {
		var buf bytes.Buffer

		cfg := &config.Config{HistoryFile: "./history.json", LogLevel: "info", Concurrency: 1}

		_, err := commandinit.New(context.Background(), cfg, &buf, "eval")
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})
}
