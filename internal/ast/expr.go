package ast

import (
	"math/big"

	"github.com/kolkov/plusc/internal/token"
)

// NumLit represents a decimal integer literal.
// Examples: 0, 42, 123456789012345678901234567890
type NumLit struct {
	BaseExpr
	Value *big.Int // Parsed value, never nil for parser-built nodes
	Raw   string   // Original source text (may carry leading zeros)
}

// Ident represents a variable reference or assignment target.
// Examples: x, total, n2
type Ident struct {
	BaseExpr
	Name string
}

// BinaryExpr represents an operator application.
// The parser always recurses to the right, so a + b + c is
// BinaryExpr{a, +, BinaryExpr{b, +, c}}.
type BinaryExpr struct {
	BaseExpr
	Left  Expr        // NumLit or Ident as produced by the parser
	Op    token.Token // Operator token (ADD)
	Right Expr        // Right operand, possibly another BinaryExpr
}

var (
	_ Expr = (*NumLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*BinaryExpr)(nil)
)
