package commandinit

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger writing to out. Level names are the ones
// understood by zerolog.ParseLevel; an empty level means info.
func NewLogger(out io.Writer, level string, command string) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.LevelInfoValue
	}

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})

	logger := zerolog.New(writer).
		Level(logLevel).
		With().Timestamp().Str("command", command).
		Logger()

	return logger, nil
}
