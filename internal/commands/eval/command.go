package eval

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/artuross/expression-calculator/internal/calculator"
	"github.com/artuross/expression-calculator/internal/commandinit"
	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/artuross/expression-calculator/internal/history"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Calculates a single expression, e.g. '2 + 3 * 4'.",
		ArgsUsage: "EXPRESSION...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store the calculated expression in the history file.",
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

	env, err := commandinit.New(cliCtx.Context, cfg, cliCtx.App.ErrWriter, "eval")
	if err != nil {
		return err
	}
	defer env.Shutdown(cliCtx.Context)

	ctx := env.Ctx
	logger := env.Logger

	// arguments are joined so that both `eval 1 + 2` and `eval "1 + 2"` work
	raw := strings.Join(cliCtx.Args().Slice(), " ")

	calc := calculator.New(calculator.WithTracerProvider(env.TracerProvider))

	result, err := calc.Calculate(ctx, raw)
	if errors.Is(err, calculator.ErrInvalidExpression) {
		logger.Error().Str(semconv.Expression, raw).Msg("enter a valid expression, e.g. '1 + 2'")
		return ErrCommandFailed
	}
	if err != nil {
		logger.Error().Err(err).Str(semconv.Expression, raw).Msg("calculate expression")
		return ErrCommandFailed
	}

	PrintResult(cliCtx.App.Writer, result)

	if !cliCtx.Bool("save") {
		return nil
	}

	store := history.NewFileStore(cfg.HistoryFile, history.WithTracerProvider(env.TracerProvider))

	record, err := store.Insert(ctx, history.NewRecord(result))
	if errors.Is(err, history.ErrDuplicateExpression) {
		logger.Warn().Str(semconv.Inorder, result.Inorder).Msg("expression already exists in history")
		return ErrCommandFailed
	}
	if err != nil {
		logger.Error().Err(err).Str(semconv.HistoryFile, cfg.HistoryFile).Msg("save expression")
		return ErrCommandFailed
	}

	logger.Info().Str(semconv.RecordID, record.ID).Msg("expression saved")

	return nil
}

func PrintResult(w io.Writer, result *calculator.Result) {
	fmt.Fprintf(w, "In-order:   %s\n", result.Inorder)
	fmt.Fprintf(w, "Pre-order:  %s\n", result.Preorder)
	fmt.Fprintf(w, "Post-order: %s\n", result.Postorder)
	fmt.Fprintf(w, "Decimal:    %s\n", result.Decimal)
	fmt.Fprintf(w, "Binary:     %s\n", result.Binary)
}
