package serialize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/artuross/expression-calculator/internal/expression/ast"
)

var ErrResultOutOfRange = errors.New("result out of integer range")

// Preorder renders the tree operator first: "+ 2 * 3 4".
func Preorder(node ast.Node) string {
	switch node := node.(type) {
	case *ast.Binary:
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", node.Operator, Preorder(node.Left), Preorder(node.Right)))

	case *ast.Leaf:
		return Decimal(node.Value)
	}

	return ""
}

// Postorder renders the tree operator last: "2 3 4 * +".
func Postorder(node ast.Node) string {
	switch node := node.(type) {
	case *ast.Binary:
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", Postorder(node.Left), Postorder(node.Right), node.Operator))

	case *ast.Leaf:
		return Decimal(node.Value)
	}

	return ""
}

// Inorder joins tokens with single spaces.
func Inorder(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Decimal formats value in the shortest decimal form without exponent.
func Decimal(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Binary truncates value toward zero and renders it in base 2. Negative
// numbers are prefixed with a minus sign: -5 is "-101".
func Binary(value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%v: %w", value, ErrResultOutOfRange)
	}

	truncated := math.Trunc(value)

	// -2^63 is representable, 2^63 is not
	if truncated < math.MinInt64 || truncated >= math.MaxInt64 {
		return "", fmt.Errorf("%v: %w", value, ErrResultOutOfRange)
	}

	return strconv.FormatInt(int64(truncated), 2), nil
}
