package ast

type Operator string

const (
	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
	OperatorMultiply Operator = "*"
	OperatorDivide   Operator = "/"
)

// Operators lists the supported operator characters.
const Operators = "+-*/"

func (o Operator) String() string {
	return string(o)
}
