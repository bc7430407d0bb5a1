package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/artuross/expression-calculator/internal/expression/ast"
	"github.com/artuross/expression-calculator/internal/expression/internal/stack"
)

var ErrMalformedExpression = errors.New("malformed expression")

type OperatorPrecedence int

const (
	OperatorPrecedenceUnknown  OperatorPrecedence = 0
	OperatorPrecedenceAdditive OperatorPrecedence = 1 // "+" "-"
	OperatorPrecedenceMultiply OperatorPrecedence = 2 // "*" "/"
)

var precedences = map[ast.Operator]OperatorPrecedence{
	ast.OperatorAdd:      OperatorPrecedenceAdditive,
	ast.OperatorSubtract: OperatorPrecedenceAdditive,
	ast.OperatorMultiply: OperatorPrecedenceMultiply,
	ast.OperatorDivide:   OperatorPrecedenceMultiply,
}

// Precedence returns the binding strength of op. Unsupported operators bind
// the weakest.
func Precedence(op ast.Operator) OperatorPrecedence {
	prec, ok := precedences[op]
	if !ok {
		return OperatorPrecedenceUnknown
	}

	return prec
}

type builder struct {
	values    *stack.Stack[ast.Node]
	operators *stack.Stack[ast.Operator]
}

// Build converts whitespace separated infix tokens into an expression tree.
//
// Operators of equal precedence group to the left, "8 - 3 - 2" is built as
// (8 - 3) - 2. Every token that is not a finite number is treated as an
// operator. Sequences that do not reduce to exactly one tree return
// ErrMalformedExpression.
func Build(tokens []string) (ast.Node, error) {
	b := builder{
		values:    stack.New[ast.Node](len(tokens)/2 + 1),
		operators: stack.New[ast.Operator](len(tokens) / 2),
	}

	for index, token := range tokens {
		if value, ok := parseNumber(token); ok {
			b.values.Push(ast.NewLeaf(value))
			continue
		}

		incoming := ast.Operator(token)

		for {
			top, ok := b.operators.Peek()
			if !ok || Precedence(top) < Precedence(incoming) {
				break
			}

			if err := b.reduce(); err != nil {
				return nil, fmt.Errorf("token %d (%q): %w", index, token, err)
			}
		}

		b.operators.Push(incoming)
	}

	for !b.operators.Empty() {
		if err := b.reduce(); err != nil {
			return nil, fmt.Errorf("end of input: %w", err)
		}
	}

	tree, ok := b.values.Pop()
	if !ok {
		return nil, fmt.Errorf("empty token sequence: %w", ErrMalformedExpression)
	}

	if !b.values.Empty() {
		return nil, fmt.Errorf("%d operands without operator: %w", b.values.Len(), ErrMalformedExpression)
	}

	return tree, nil
}

// reduce pops the top operator and two operands and pushes the combined node.
func (b *builder) reduce() error {
	if b.values.Len() < 2 {
		return fmt.Errorf("operator needs 2 operands, have %d: %w", b.values.Len(), ErrMalformedExpression)
	}

	op, ok := b.operators.Pop()
	if !ok {
		return fmt.Errorf("missing operator: %w", ErrMalformedExpression)
	}

	// checked above
	right, _ := b.values.Pop()
	left, _ := b.values.Pop()

	b.values.Push(ast.NewBinary(op, left, right))

	return nil
}

func parseNumber(token string) (float64, bool) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}

	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}

	return value, true
}
