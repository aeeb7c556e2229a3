package plusc

import (
	"strings"

	"github.com/kolkov/plusc/internal/ast"
	"github.com/kolkov/plusc/internal/codegen"
)

// Program represents a parsed plusc program ready for generation.
// A Program is immutable; it is safe for concurrent use.
type Program struct {
	ast    *ast.Program
	source string // Original source for debugging
	tmpl   *codegen.Template
}

// Generate returns the complete C text of the program.
// Each call builds its own generator.
func (p *Program) Generate() string {
	return codegen.New(p.tmpl).Generate(p.ast)
}

// Statements returns the rendered line of each statement, in source order.
func (p *Program) Statements() []string {
	return statementsOf(codegen.New(p.tmpl), p.ast)
}

// Len returns the number of statements.
func (p *Program) Len() int {
	return len(p.ast.Stmts)
}

// Variables returns the assigned names in order of first assignment.
func (p *Program) Variables() []string {
	return p.ast.Assigned()
}

// Dump returns an indented tree of the parsed program with positions.
func (p *Program) Dump() string {
	var sb strings.Builder
	_ = ast.Dump(&sb, p.ast)
	return sb.String()
}

// String returns the program in normalized source form, one statement per
// line, with nested operators parenthesized.
func (p *Program) String() string {
	return ast.String(p.ast)
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}
