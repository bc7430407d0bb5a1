package evaluate

import (
	"errors"
	"fmt"

	"github.com/artuross/expression-calculator/internal/expression/ast"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Evaluate reduces the tree to a number. Evaluation stops at the first error,
// no partial result is returned.
func Evaluate(node ast.Node) (float64, error) {
	switch node := node.(type) {
	case *ast.Binary:
		return evaluateBinary(node)

	case *ast.Leaf:
		return node.Value, nil

	default:
		return 0, fmt.Errorf("unsupported node type: %T", node)
	}
}

func evaluateBinary(node *ast.Binary) (float64, error) {
	left, err := Evaluate(node.Left)
	if err != nil {
		return 0, err
	}

	right, err := Evaluate(node.Right)
	if err != nil {
		return 0, err
	}

	switch node.Operator {
	case ast.OperatorAdd:
		return left + right, nil

	case ast.OperatorSubtract:
		return left - right, nil

	case ast.OperatorMultiply:
		return left * right, nil

	case ast.OperatorDivide:
		if right == 0 {
			return 0, fmt.Errorf("%v / %v: %w", left, right, ErrDivisionByZero)
		}

		return left / right, nil
	}

	return 0, fmt.Errorf("%q: %w", node.Operator, ErrUnknownOperator)
}
