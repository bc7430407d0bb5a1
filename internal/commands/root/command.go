package root

import (
	"github.com/artuross/expression-calculator/internal/commands/batch"
	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/artuross/expression-calculator/internal/commands/eval"
	"github.com/artuross/expression-calculator/internal/commands/history"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "calculator",
		Usage: "Evaluates infix arithmetic expressions and keeps a history of results.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    config.FlagHistoryFile,
				Usage:   "Path of the JSON file storing calculated expressions.",
				Value:   "./.config/history.json",
				EnvVars: []string{"CALCULATOR_HISTORY_FILE"},
			},
			&cli.StringFlag{
				Name:    config.FlagLogLevel,
				Usage:   "Log level: trace, debug, info, warn, error.",
				Value:   "info",
				EnvVars: []string{"CALCULATOR_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			eval.NewCommand(),
			batch.NewCommand(),
			history.NewCommand(),
		},
	}
}
