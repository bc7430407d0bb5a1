package exec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/artuross/expression-calculator/internal/calculator"
	"github.com/artuross/expression-calculator/internal/defaults"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/artuross/expression-calculator/internal/commands/batch/exec"
)

type Calculator interface {
	Calculate(ctx context.Context, raw string) (*calculator.Result, error)
}

// Line is a single expression read from the batch input.
type Line struct {
	Number     int
	Expression string
}

// Outcome is the result of one line. Exactly one of Result and Err is set.
type Outcome struct {
	Line   Line
	Result *calculator.Result
	Err    error
}

type Executor struct {
	calculator  Calculator
	concurrency int
	tracer      trace.Tracer
}

func NewExecutor(calculator Calculator, options ...func(*Executor)) *Executor {
	executor := Executor{
		calculator:  calculator,
		concurrency: 1,
		tracer:      defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&executor)
	}

	return &executor
}

// ReadLines reads one expression per line. Blank lines and lines starting
// with '#' are skipped.
func ReadLines(r io.Reader) ([]Line, error) {
	lines := make([]Line, 0)

	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		lines = append(lines, Line{
			Number:     number,
			Expression: text,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch input: %w", err)
	}

	return lines, nil
}

// Run calculates every line and returns the outcomes in input order. A failing
// line does not stop the others; only context cancellation aborts the run.
func (e *Executor) Run(ctx context.Context, lines []Line) ([]Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "run", trace.WithAttributes(attribute.Int("line_count", len(lines))))
	defer span.End()

	outcomes := make([]Outcome, len(lines))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)

	for index, line := range lines {
		index, line := index, line

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			logger := zerolog.Ctx(groupCtx).With().Int(semconv.Line, line.Number).Logger()
			lineCtx := logger.WithContext(groupCtx)

			result, err := e.calculator.Calculate(lineCtx, line.Expression)
			if err != nil {
				logger.Debug().Err(err).Msg("line failed")
			}

			// each goroutine owns its own slot
			outcomes[index] = Outcome{
				Line:   line,
				Result: result,
				Err:    err,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run batch: %w", err)
	}

	return outcomes, nil
}

func WithConcurrency(concurrency int) func(*Executor) {
	return func(e *Executor) {
		if concurrency > 0 {
			e.concurrency = concurrency
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) func(*Executor) {
	return func(e *Executor) {
		e.tracer = tp.Tracer(tracerName)
	}
}
