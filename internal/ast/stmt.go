package ast

// AssignStmt represents an assignment statement.
// Example: x = 1 + y
type AssignStmt struct {
	BaseStmt
	Target *Ident // Assigned name
	Value  Expr   // Assigned expression
}

// ExprStmt represents an expression used as a statement.
// Example: a + b
type ExprStmt struct {
	BaseStmt
	Expr Expr
}

var (
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
)
