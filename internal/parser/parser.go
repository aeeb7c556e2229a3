package parser

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/kolkov/plusc/internal/ast"
	"github.com/kolkov/plusc/internal/token"
)

// Grammar:
//
//	program    = { statement } .
//	statement  = assignment | expression .
//	assignment = identifier "=" expression .
//	expression = operand [ operator expression ] .
//	operand    = number | identifier .
//	operator   = "+" .
//
// Identifiers and numbers end at whitespace or end of input, so operands
// and operators must be separated by whitespace.

// Options configures a parse.
type Options struct {
	// Filename is recorded in positions and in the Program (optional).
	Filename string

	// Logger receives debug records for abandoned alternatives.
	// Nil disables logging.
	Logger *slog.Logger
}

// parser holds the per-parse configuration. It is never mutated while
// parsing; all progress is carried by cursor values.
type parser struct {
	file   *token.File
	logger *slog.Logger
}

// Parse parses a plusc program from source code.
// On failure the program is nil and the error is a non-empty ErrorList.
func Parse(src string) (*ast.Program, error) {
	return ParseWithOptions(src, Options{})
}

// ParseFile parses src, recording filename in positions.
func ParseFile(filename, src string) (*ast.Program, error) {
	return ParseWithOptions(src, Options{Filename: filename})
}

// ParseWithOptions parses src with the given options.
func ParseWithOptions(src string, opts Options) (*ast.Program, error) {
	p := newParser(src, opts)
	prog, f := p.parseProgram(cursor{src: src})
	if f != nil {
		p.debug("parse failed", slog.Int("diagnostics", len(f.diags)))
		return nil, f.errorList(p.file)
	}
	p.debug("parse complete", slog.Int("statements", len(prog.Stmts)))
	return prog, nil
}

// ParseExpr parses a single expression followed only by whitespace.
func ParseExpr(src string) (ast.Expr, error) {
	p := newParser(src, Options{})
	e, c, f := p.parseExpression(cursor{src: src})
	if f == nil {
		if rest, eof := c.skipSpace(); !eof {
			r, _ := rest.peek()
			f = failf(rest.off, "unexpected %q after expression", r)
		}
	}
	if f != nil {
		return nil, f.errorList(p.file)
	}
	return e, nil
}

func newParser(src string, opts Options) *parser {
	p := &parser{
		file:   token.NewFile(opts.Filename, src),
		logger: opts.Logger,
	}
	if p.logger != nil {
		p.logger = p.logger.With(slog.String("component", "parser"))
		if opts.Filename != "" {
			p.logger = p.logger.With(slog.String("file", opts.Filename))
		}
	}
	return p
}

func (p *parser) debug(msg string, attrs ...slog.Attr) {
	if p.logger == nil {
		return
	}
	p.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// backtrack logs a speculative failure that is being discarded.
func (p *parser) backtrack(production string, c cursor, f *failure) {
	p.debug("backtrack",
		slog.String("production", production),
		slog.Int("offset", c.off),
		slog.String("reason", f.first()))
}

func (p *parser) pos(off int) token.Position {
	return p.file.Position(off)
}

// -----------------------------------------------------------------------------
// Combinators
// -----------------------------------------------------------------------------

type production[T any] struct {
	name  string
	parse func(cursor) (T, cursor, *failure)
}

// try runs fn from c. On failure the diagnostics are discarded and
// ok is false; the caller continues from the cursor it passed in.
func try[T any](p *parser, name string, c cursor, fn func(cursor) (T, cursor, *failure)) (v T, next cursor, ok bool) {
	v, next, f := fn(c)
	if f != nil {
		p.backtrack(name, c, f)
		var zero T
		return zero, c, false
	}
	return v, next, true
}

// choice returns the first alternative that matches from c. If none does,
// it returns the failure of the alternative that got furthest into the
// input (the earliest one on ties), the others being discarded.
func choice[T any](p *parser, c cursor, alts ...production[T]) (T, cursor, *failure) {
	var best *failure
	for _, alt := range alts {
		v, next, f := alt.parse(c)
		if f == nil {
			return v, next, nil
		}
		if f.committed {
			var zero T
			return zero, c, f
		}
		p.backtrack(alt.name, c, f)
		if best == nil || f.reach > best.reach {
			best = f
		}
	}
	var zero T
	return zero, c, best
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// parseProgram parses statements until a clean end of input.
// The first failing statement fails the whole program.
func (p *parser) parseProgram(c cursor) (*ast.Program, *failure) {
	prog := &ast.Program{
		Filename: p.file.Name(),
		StartPos: p.pos(c.off),
	}
	for {
		stmt, next, f := p.parseStatement(c)
		if f != nil {
			return nil, f
		}
		c = next
		if stmt == nil {
			break
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	prog.EndPos = p.pos(c.off)
	return prog, nil
}

// parseStatement parses one statement. It returns a nil statement and a
// nil failure at end of input.
//
// Assignment and bare expression share their first operand, so the
// assignment is attempted speculatively first.
func (p *parser) parseStatement(c cursor) (ast.Stmt, cursor, *failure) {
	c, eof := c.skipSpace()
	if eof {
		return nil, c, nil
	}

	assign, next, f := p.parseAssignment(c)
	if f == nil {
		return assign, next, nil
	}
	if f.committed {
		return nil, c, f.wrap(c.off, msgExpectedStatement)
	}
	p.backtrack("assignment", c, f)

	expr, next, f := p.parseExpression(c)
	if f != nil {
		return nil, c, f.wrap(c.off, msgExpectedStatement)
	}
	return &ast.ExprStmt{
		BaseStmt: ast.MakeBaseStmt(expr.Pos(), expr.End()),
		Expr:     expr,
	}, next, nil
}

// parseAssignment parses: identifier "=" expression.
// Once the "=" is consumed the statement can only be an assignment, so a
// bad right-hand side is a committed failure.
func (p *parser) parseAssignment(c cursor) (*ast.AssignStmt, cursor, *failure) {
	c, _ = c.skipSpace()
	start := c

	target, c, f := p.parseIdent(c)
	if f != nil {
		return nil, start, f.wrap(start.off, msgAssignTarget)
	}

	c, _ = c.skipSpace()
	r, size := c.peek()
	if size == 0 || token.Lookup(r) != token.ASSIGN {
		return nil, start, fail(c.off, msgExpectedAssign)
	}
	c = c.advance(size)

	c, _ = c.skipSpace()
	value, next, f := p.parseExpression(c)
	if f != nil {
		return nil, start, f.wrap(c.off, msgAssignValue).commit()
	}

	return &ast.AssignStmt{
		BaseStmt: ast.MakeBaseStmt(target.Pos(), value.End()),
		Target:   target,
		Value:    value,
	}, next, nil
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseExpression parses: operand [ operator expression ].
// Operator application recurses rightward, so a + b + c is a + (b + c).
func (p *parser) parseExpression(c cursor) (ast.Expr, cursor, *failure) {
	c, eof := c.skipSpace()
	if eof {
		return nil, c, fail(c.off, msgEOFInExpression)
	}

	left, next, f := choice(p, c,
		production[ast.Expr]{"number", p.parseNumberExpr},
		production[ast.Expr]{"identifier", p.parseIdentExpr},
	)
	if f != nil {
		return nil, c, f.wrap(c.off, msgExpectedExpression)
	}
	c = next

	op, afterOp, ok := try(p, "operator", c, p.parseOperator)
	if !ok {
		return left, c, nil
	}

	rhsStart, _ := afterOp.skipSpace()
	right, next, f := p.parseExpression(afterOp)
	if f != nil {
		return nil, c, f.wrap(rhsStart.off, msgOperatorOperand)
	}

	return &ast.BinaryExpr{
		BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
		Left:     left,
		Op:       op,
		Right:    right,
	}, next, nil
}

func (p *parser) parseNumberExpr(c cursor) (ast.Expr, cursor, *failure) {
	n, next, f := p.parseNumber(c)
	if f != nil {
		return nil, c, f
	}
	return n, next, nil
}

func (p *parser) parseIdentExpr(c cursor) (ast.Expr, cursor, *failure) {
	id, next, f := p.parseIdent(c)
	if f != nil {
		return nil, c, f
	}
	return id, next, nil
}

// -----------------------------------------------------------------------------
// Operands and operators
// -----------------------------------------------------------------------------

// parseIdent parses a run of letters and digits that does not start with a
// digit. The run ends at whitespace or end of input; any other character
// inside it fails.
func (p *parser) parseIdent(c cursor) (*ast.Ident, cursor, *failure) {
	c, _ = c.skipSpace()
	start := c

	for {
		r, size := c.peek()
		if size == 0 || isSpace(r) {
			break
		}
		if !isIdentChar(r) {
			return nil, start, fail(c.off, msgInvalidIdent)
		}
		c = c.advance(size)
	}

	name := start.text(c)
	if name == "" {
		return nil, start, fail(start.off, msgExpectedIdent)
	}
	if r, _ := start.peek(); isDigitStart(r) {
		return nil, start, fail(start.off, msgIdentStart).reached(c.off)
	}

	return &ast.Ident{
		BaseExpr: ast.MakeBaseExpr(p.pos(start.off), p.pos(c.off)),
		Name:     name,
	}, c, nil
}

// parseNumber parses a run of decimal digits ending at whitespace or end
// of input.
func (p *parser) parseNumber(c cursor) (*ast.NumLit, cursor, *failure) {
	c, _ = c.skipSpace()
	start := c

	for {
		r, size := c.peek()
		if size == 0 || isSpace(r) {
			break
		}
		if !isDigit(r) {
			return nil, start, fail(c.off, msgNotANumber)
		}
		c = c.advance(size)
	}

	raw := start.text(c)
	if raw == "" {
		return nil, start, fail(start.off, msgExpectedDigit)
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		// unreachable: raw is a non-empty run of ASCII digits
		return nil, start, fail(start.off, msgNotANumber)
	}

	return &ast.NumLit{
		BaseExpr: ast.MakeBaseExpr(p.pos(start.off), p.pos(c.off)),
		Value:    value,
		Raw:      raw,
	}, c, nil
}

// parseOperator reads one operator character.
func (p *parser) parseOperator(c cursor) (token.Token, cursor, *failure) {
	c, _ = c.skipSpace()
	r, size := c.peek()
	if size == 0 {
		return token.ILLEGAL, c, fail(c.off, "end of file is not an operator")
	}
	op := token.LookupOperator(r)
	if op == token.ILLEGAL {
		return token.ILLEGAL, c, failf(c.off, "%q is not an operator", r)
	}
	return op, c.advance(size), nil
}
