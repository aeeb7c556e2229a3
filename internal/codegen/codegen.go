// Package codegen renders parsed plusc programs as C source.
//
// Each statement becomes one line of C. The lines are joined with newlines
// and substituted for the placeholder of a Template; no other validation
// or transformation happens here.
package codegen

import (
	"strings"

	"github.com/kolkov/plusc/internal/ast"
)

// DeclType is the C type used for assigned variables.
const DeclType = "int"

// Generator renders statements. It remembers which names have been
// declared so the first assignment to a name declares it.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	tmpl     *Template
	declared map[string]bool
}

// New creates a Generator that fills tmpl. A nil tmpl means Default().
func New(tmpl *Template) *Generator {
	if tmpl == nil {
		tmpl = Default()
	}
	return &Generator{tmpl: tmpl, declared: make(map[string]bool)}
}

// Generate renders prog with the default template.
func Generate(prog *ast.Program) string {
	return New(nil).Generate(prog)
}

// Generate renders every statement of prog and expands the template.
// Declarations start afresh for each program.
func (g *Generator) Generate(prog *ast.Program) string {
	g.Reset()
	return g.tmpl.Expand(ast.Accept[string](prog, g))
}

// Statement renders a single statement as one line of C.
// Declarations made by earlier calls are remembered.
func (g *Generator) Statement(s ast.Stmt) string {
	return ast.Accept[string](s, g)
}

// Reset forgets all declared names.
func (g *Generator) Reset() {
	clear(g.declared)
}

// Declared reports whether name has been declared by an earlier statement.
func (g *Generator) Declared(name string) bool {
	return g.declared[name]
}

func (g *Generator) VisitProgram(prog *ast.Program) string {
	lines := make([]string, len(prog.Stmts))
	for i, s := range prog.Stmts {
		lines[i] = g.Statement(s)
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) VisitAssignStmt(s *ast.AssignStmt) string {
	value := ast.Accept[string](s.Value, g)
	name := s.Target.Name
	if g.declared[name] {
		return name + " = " + value + ";"
	}
	g.declared[name] = true
	return DeclType + " " + name + " = " + value + ";"
}

func (g *Generator) VisitExprStmt(s *ast.ExprStmt) string {
	return ast.Accept[string](s.Expr, g) + ";"
}

// VisitNumLit renders the decimal value; leading zeros are dropped so the
// literal is never read as octal.
func (g *Generator) VisitNumLit(n *ast.NumLit) string {
	if n.Value == nil {
		return n.Raw
	}
	return n.Value.String()
}

func (g *Generator) VisitIdent(id *ast.Ident) string {
	return id.Name
}

func (g *Generator) VisitBinaryExpr(b *ast.BinaryExpr) string {
	return g.operand(b.Left) + " " + b.Op.String() + " " + g.operand(b.Right)
}

func (g *Generator) operand(e ast.Expr) string {
	s := ast.Accept[string](e, g)
	if ast.IsLeaf(e) {
		return s
	}
	return "(" + s + ")"
}

var _ ast.Visitor[string] = (*Generator)(nil)
