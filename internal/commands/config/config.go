package config

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

const (
	FlagConcurrency = "concurrency"
	FlagHistoryFile = "history-file"
	FlagLogLevel    = "log-level"
)

type Flagger interface {
	String(name string) string
	Int(name string) int
}

type Config struct {
	Concurrency  int
	HistoryFile  string
	LogLevel     string
	OTELEndpoint string
}

func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	// flags - required
	historyFile := flags.String(FlagHistoryFile)
	if historyFile == "" {
		return nil, fmt.Errorf("flag --%s is required", FlagHistoryFile)
	}

	// flags - optional
	logLevel := flags.String(FlagLogLevel)
	if logLevel != "" {
		if _, err := zerolog.ParseLevel(logLevel); err != nil {
			return nil, fmt.Errorf("flag --%s: %w", FlagLogLevel, err)
		}
	}

	concurrency := flags.Int(FlagConcurrency)
	if concurrency < 0 {
		return nil, fmt.Errorf("flag --%s must not be negative", FlagConcurrency)
	}
	if concurrency == 0 {
		concurrency = 1
	}

	// envs - optional
	otelEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT")

	cfg := Config{
		Concurrency:  concurrency,
		HistoryFile:  historyFile,
		LogLevel:     logLevel,
		OTELEndpoint: otelEndpoint,
	}

	return &cfg, nil
}

func Print(w io.Writer, cfg *Config) {
	fmt.Fprintln(w, "Running with config:")
	fmt.Fprintf(w, "  History File: %s\n", cfg.HistoryFile)
	fmt.Fprintf(w, "  Log Level: %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Concurrency: %d\n", cfg.Concurrency)
	fmt.Fprintf(w, "  Tracing Endpoint: %s\n", cfg.OTELEndpoint)
}
