package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/artuross/expression-calculator/internal/calculator"
	"github.com/artuross/expression-calculator/internal/commandinit"
	"github.com/artuross/expression-calculator/internal/commands/batch/exec"
	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/artuross/expression-calculator/internal/history"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Calculates one expression per line read from a file or stdin.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "File with expressions. Reads stdin when empty or '-'.",
			},
			&cli.IntFlag{
				Name:    config.FlagConcurrency,
				Usage:   "Number of expressions calculated in parallel.",
				Value:   4,
				EnvVars: []string{"CALCULATOR_CONCURRENCY"},
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store calculated expressions in the history file. Duplicates are skipped.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	env, err := commandinit.New(cliCtx.Context, cfg, cliCtx.App.ErrWriter, "batch")
	if err != nil {
		return err
	}
	defer env.Shutdown(cliCtx.Context)

	ctx := env.Ctx
	logger := env.Logger

	input, closeInput, err := openInput(cliCtx.String("file"), cliCtx.App.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("open batch input")
		return ErrCommandFailed
	}
	defer closeInput()

	lines, err := exec.ReadLines(input)
	if err != nil {
		logger.Error().Err(err).Msg("read batch input")
		return ErrCommandFailed
	}

	executor := exec.NewExecutor(
		calculator.New(calculator.WithTracerProvider(env.TracerProvider)),
		exec.WithConcurrency(cfg.Concurrency),
		exec.WithTracerProvider(env.TracerProvider),
	)

	outcomes, err := executor.Run(ctx, lines)
	if err != nil {
		logger.Error().Err(err).Msg("run batch")
		return ErrCommandFailed
	}

	var store *history.FileStore
	if cliCtx.Bool("save") {
		store = history.NewFileStore(cfg.HistoryFile, history.WithTracerProvider(env.TracerProvider))
	}

	failed := 0
	for _, outcome := range outcomes {
		PrintOutcome(cliCtx.App.Writer, outcome)

		if outcome.Err != nil {
			failed++
			continue
		}

		if store == nil {
			continue
		}

		_, err := store.Insert(ctx, history.NewRecord(outcome.Result))
		if errors.Is(err, history.ErrDuplicateExpression) {
			logger.Info().Int(semconv.Line, outcome.Line.Number).Msg("expression already exists in history")
			continue
		}
		if err != nil {
			logger.Error().Err(err).Str(semconv.HistoryFile, cfg.HistoryFile).Msg("save expression")
			return ErrCommandFailed
		}
	}

	if failed > 0 {
		logger.Error().Int("failed", failed).Int("total", len(outcomes)).Msg("some expressions failed")
		return ErrCommandFailed
	}

	return nil
}

func PrintOutcome(w io.Writer, outcome exec.Outcome) {
	if outcome.Err != nil {
		fmt.Fprintf(w, "%d: %s => error: %v\n", outcome.Line.Number, outcome.Line.Expression, outcome.Err)
		return
	}

	result := outcome.Result
	fmt.Fprintf(w, "%d: %s => %s (binary %s, pre-order %s, post-order %s)\n",
		outcome.Line.Number, result.Inorder, result.Decimal, result.Binary, result.Preorder, result.Postorder)
}

func openInput(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return stdin, func() error { return nil }, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	return file, file.Close, nil
}
