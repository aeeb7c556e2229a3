package ast

import "fmt"

// Visitor defines the generic visitor pattern for AST traversal.
// Type parameter T is the return type of visit methods.
//
// Example usage for code generation:
//
//	type Gen struct{ lines []string }
//	func (g *Gen) VisitNumLit(n *NumLit) string { return n.Value.String() }
type Visitor[T any] interface {
	VisitProgram(*Program) T

	// Statements
	VisitAssignStmt(*AssignStmt) T
	VisitExprStmt(*ExprStmt) T

	// Expressions
	VisitNumLit(*NumLit) T
	VisitIdent(*Ident) T
	VisitBinaryExpr(*BinaryExpr) T
}

// Accept dispatches node to the matching method of v.
// It panics on node types outside this package's closed set.
func Accept[T any](node Node, v Visitor[T]) T {
	switch n := node.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *AssignStmt:
		return v.VisitAssignStmt(n)
	case *ExprStmt:
		return v.VisitExprStmt(n)
	case *NumLit:
		return v.VisitNumLit(n)
	case *Ident:
		return v.VisitIdent(n)
	case *BinaryExpr:
		return v.VisitBinaryExpr(n)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", node))
	}
}

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: Count all identifiers
//
//	count := 0
//	ast.Walk(program, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Ident); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *AssignStmt:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *NumLit, *Ident:
		// no children
	}
}
