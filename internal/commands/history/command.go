package history

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/artuross/expression-calculator/internal/commandinit"
	"github.com/artuross/expression-calculator/internal/commands/config"
	"github.com/artuross/expression-calculator/internal/history"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	cli "github.com/urfave/cli/v2"
	"github.com/vjeantet/jodaTime"
)

const timeLayout = "YYYY-MM-dd HH:mm:ss"

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Shows and edits previously saved expressions.",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Lists saved expressions, oldest first.",
				Action: runList,
			},
			{
				Name:   "delete-latest",
				Usage:  "Deletes the most recently saved expression.",
				Action: runDeleteLatest,
			},
		},
	}
}

func runList(cliCtx *cli.Context) error {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	env, err := commandinit.New(cliCtx.Context, cfg, cliCtx.App.ErrWriter, "history list")
	if err != nil {
		return err
	}
	defer env.Shutdown(cliCtx.Context)

	store := history.NewFileStore(cfg.HistoryFile, history.WithTracerProvider(env.TracerProvider))

	records, err := store.List(env.Ctx)
	if err != nil {
		env.Logger.Error().Err(err).Str(semconv.HistoryFile, cfg.HistoryFile).Msg("list history")
		return ErrCommandFailed
	}

	if len(records) == 0 {
		fmt.Fprintln(cliCtx.App.Writer, "No saved expressions.")
		return nil
	}

	for _, record := range records {
		PrintRecord(cliCtx.App.Writer, record)
	}

	return nil
}

func runDeleteLatest(cliCtx *cli.Context) error {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	env, err := commandinit.New(cliCtx.Context, cfg, cliCtx.App.ErrWriter, "history delete-latest")
	if err != nil {
		return err
	}
	defer env.Shutdown(cliCtx.Context)

	store := history.NewFileStore(cfg.HistoryFile, history.WithTracerProvider(env.TracerProvider))

	record, err := store.DeleteLatest(env.Ctx)
	if errors.Is(err, history.ErrEmpty) {
		env.Logger.Warn().Msg("nothing to delete")
		return ErrCommandFailed
	}
	if err != nil {
		env.Logger.Error().Err(err).Str(semconv.HistoryFile, cfg.HistoryFile).Msg("delete latest expression")
		return ErrCommandFailed
	}

	fmt.Fprint(cliCtx.App.Writer, "Deleted: ")
	PrintRecord(cliCtx.App.Writer, *record)

	return nil
}

func PrintRecord(w io.Writer, record history.Record) {
	fmt.Fprintf(w, "[%s] %s = %s (binary %s, pre-order %s, post-order %s)\n",
		jodaTime.Format(timeLayout, record.CreatedAt),
		record.Inorder,
		record.Decimal,
		record.Binary,
		record.Preorder,
		record.Postorder,
	)
}
