package validate

import (
	"strings"

	"github.com/artuross/expression-calculator/internal/expression/ast"
)

// IsValidExpression performs a lexical sanity check of a raw infix expression.
// Whitespace is ignored; the check does not verify that numbers and operators
// alternate as separate tokens, that is left to the parser.
func IsValidExpression(raw string) bool {
	expr := stripWhitespace(raw)

	// empty or a run of operators only
	if expr == "" || strings.Contains(ast.Operators, expr) {
		return false
	}

	if isOperator(rune(expr[0])) || isOperator(rune(expr[len(expr)-1])) {
		return false
	}

	var prev rune
	for index, r := range expr {
		if index > 0 && isOperator(r) && isOperator(prev) {
			return false
		}

		prev = r
	}

	return strings.ContainsFunc(expr, isDigit)
}

// Tokenize splits raw on whitespace. Empty tokens are never returned.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

func stripWhitespace(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isOperator(r rune) bool {
	return strings.ContainsRune(ast.Operators, r)
}
