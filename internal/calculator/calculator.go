package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/artuross/expression-calculator/internal/defaults"
	"github.com/artuross/expression-calculator/internal/expression/ast"
	"github.com/artuross/expression-calculator/internal/expression/evaluate"
	"github.com/artuross/expression-calculator/internal/expression/parser"
	"github.com/artuross/expression-calculator/internal/expression/serialize"
	"github.com/artuross/expression-calculator/internal/expression/validate"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/artuross/expression-calculator/internal/calculator"

	// smallest expression the parser accepts: number, operator, number
	minTokens = 3
)

var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrTooFewTokens      = fmt.Errorf("%w: expected at least %d tokens, e.g. '1 + 2'", ErrInvalidExpression, minTokens)
)

// Result holds every representation of a calculated expression.
type Result struct {
	Inorder   string
	Preorder  string
	Postorder string
	Decimal   string
	Binary    string
	Value     float64
	Tree      ast.Node
}

type Calculator struct {
	tracer trace.Tracer
}

func New(options ...func(*Calculator)) *Calculator {
	calculator := Calculator{
		tracer: defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&calculator)
	}

	return &calculator
}

// Calculate validates, parses, evaluates and serializes raw. Each call builds
// its own tree, calls share no state.
func (c *Calculator) Calculate(ctx context.Context, raw string) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, "calculate", trace.WithAttributes(attribute.String(semconv.Expression, raw)))
	defer span.End()

	result, err := c.calculate(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(attribute.String(semconv.Result, result.Decimal))

	return result, nil
}

func (c *Calculator) calculate(ctx context.Context, raw string) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str(semconv.Expression, raw).Logger()

	if !validate.IsValidExpression(raw) {
		logger.Debug().Msg("expression rejected by validator")
		return nil, fmt.Errorf("%q: %w", raw, ErrInvalidExpression)
	}

	tokens := validate.Tokenize(raw)
	if len(tokens) < minTokens {
		logger.Debug().Int(semconv.TokenCount, len(tokens)).Msg("not enough tokens")
		return nil, fmt.Errorf("%q: %w", raw, ErrTooFewTokens)
	}

	tree, err := parser.Build(tokens)
	if err != nil {
		return nil, fmt.Errorf("build expression tree: %w", err)
	}

	value, err := evaluate.Evaluate(tree)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression: %w", err)
	}

	binary, err := serialize.Binary(value)
	if err != nil {
		return nil, fmt.Errorf("convert result to binary: %w", err)
	}

	result := Result{
		Inorder:   serialize.Inorder(tokens),
		Preorder:  serialize.Preorder(tree),
		Postorder: serialize.Postorder(tree),
		Decimal:   serialize.Decimal(value),
		Binary:    binary,
		Value:     value,
		Tree:      tree,
	}

	logger.Debug().
		Int(semconv.TokenCount, len(tokens)).
		Str(semconv.Result, result.Decimal).
		Msg("expression calculated")

	return &result, nil
}

func WithTracerProvider(tp trace.TracerProvider) func(*Calculator) {
	return func(c *Calculator) {
		c.tracer = tp.Tracer(tracerName)
	}
}
