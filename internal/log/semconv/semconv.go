package semconv

// Expression
const (
	// Expression exactly as typed by the user.
	Expression = "expression"

	// Whitespace normalized in-order form of the expression. Used as the history key.
	Inorder = "inorder"

	// Number of whitespace separated tokens in the expression.
	TokenCount = "token_count"

	// Decimal result of the evaluation.
	Result = "result"
)

// History
const (
	// Random ID assigned to a history record on insert.
	RecordID = "record_id"

	// Path of the JSON file backing the history store.
	HistoryFile = "history_file"
)

// Batch
const (
	// 1-based line number of an expression within a batch input.
	Line = "line"
)
