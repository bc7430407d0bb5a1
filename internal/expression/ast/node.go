package ast

var (
	_ Node = (*Binary)(nil)
	_ Node = (*Leaf)(nil)
)

// Node is a single node of an expression tree. A node is either a *Leaf or a
// *Binary; a *Binary always owns exactly two children.
type Node interface {
	isNode()
}

type (
	Binary struct {
		Left     Node
		Operator Operator
		Right    Node
	}

	Leaf struct {
		Value float64
	}
)

func (n Binary) isNode() {}
func (n Leaf) isNode()   {}

// NewBinary creates an operator node. It panics when either child is nil, a
// tree with one missing child cannot be represented.
func NewBinary(operator Operator, left, right Node) *Binary {
	invariant(left == nil || right == nil, "NewBinary: operator node requires two children")

	return &Binary{
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

func NewLeaf(value float64) *Leaf {
	return &Leaf{
		Value: value,
	}
}

// Count returns the number of operator and leaf nodes in the tree.
func Count(node Node) (operators int, leaves int) {
	switch node := node.(type) {
	case *Binary:
		lo, ll := Count(node.Left)
		ro, rl := Count(node.Right)

		return lo + ro + 1, ll + rl

	case *Leaf:
		return 0, 1
	}

	return 0, 0
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
