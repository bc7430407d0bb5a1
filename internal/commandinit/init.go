package commandinit

import (
	"context"
	"fmt"
	"io"

	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "calculator"

type Environment struct {
	Ctx            context.Context
	Logger         zerolog.Logger
	TracerProvider trace.TracerProvider
	Shutdown       ShutdownFunc
}

// New creates the logger and tracer provider shared by all commands. The
// returned context carries the logger.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer, command string) (*Environment, error) {
	logger, err := NewLogger(logOut, cfg.LogLevel, command)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	if logger.GetLevel() <= zerolog.DebugLevel {
		config.Print(logOut, cfg)
	}

	tracerProvider, shutdown, err := NewOpenTelemetry(ctx, serviceName, cfg.OTELEndpoint)
	if err != nil {
		return nil, fmt.Errorf("create OTEL provider: %w", err)
	}

	env := Environment{
		Ctx:            logger.WithContext(ctx),
		Logger:         logger,
		TracerProvider: tracerProvider,
		Shutdown:       shutdown,
	}

	return &env, nil
}
