package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/plusc/internal/token"
)

// Printer provides pretty-printing for AST nodes.
// It writes nodes back in source form, one statement per line, with the
// right operand of a nested operator parenthesized so the tree shape stays
// visible: a + (b + c).
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			p.printNode(s)
			p.printf("\n")
		}
	case *AssignStmt:
		p.printf("%s %s ", n.Target.Name, token.ASSIGN)
		p.printExpr(n.Value)
	case *ExprStmt:
		p.printExpr(n.Expr)
	case Expr:
		p.printExpr(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case nil:
		p.printf("<nil>")
	case *NumLit:
		if n.Value != nil {
			p.printf("%s", n.Value.String())
		} else {
			p.printf("%s", n.Raw)
		}
	case *Ident:
		p.printf("%s", n.Name)
	case *BinaryExpr:
		p.printOperand(n.Left)
		p.printf(" %s ", n.Op)
		p.printOperand(n.Right)
	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) printOperand(e Expr) {
	if IsLeaf(e) {
		p.printExpr(e)
		return
	}
	p.printf("(")
	p.printExpr(e)
	p.printf(")")
}

// String returns the source form of node.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

// Dump writes an indented tree of node with positions, for debugging.
func Dump(w io.Writer, node Node) error {
	d := &dumper{Printer: Printer{w: w}}
	d.dump(node)
	return d.err
}

type dumper struct {
	Printer
	indent int
}

func (d *dumper) line(node Node, format string, args ...any) {
	d.printf("%s%s", strings.Repeat("  ", d.indent), fmt.Sprintf(format, args...))
	if node != nil && node.Pos().IsValid() {
		d.printf(" @%s", span(node))
	}
	d.printf("\n")
}

func (d *dumper) dump(node Node) {
	switch n := node.(type) {
	case *Program:
		d.line(nil, "Program %q (%d statements)", n.Filename, len(n.Stmts))
		d.children(func() {
			for _, s := range n.Stmts {
				d.dump(s)
			}
		})
	case *AssignStmt:
		d.line(n, "AssignStmt")
		d.children(func() {
			d.dump(n.Target)
			d.dump(n.Value)
		})
	case *ExprStmt:
		d.line(n, "ExprStmt")
		d.children(func() { d.dump(n.Expr) })
	case *NumLit:
		d.line(n, "NumLit %s", n.Raw)
	case *Ident:
		d.line(n, "Ident %s", n.Name)
	case *BinaryExpr:
		d.line(n, "BinaryExpr %s", n.Op)
		d.children(func() {
			d.dump(n.Left)
			d.dump(n.Right)
		})
	default:
		d.line(nil, "<%T>", node)
	}
}

func (d *dumper) children(fn func()) {
	d.indent++
	fn()
	d.indent--
}

// span formats the source range of node, or only its start when the end is
// unknown.
func span(node Node) fmt.Stringer {
	if !node.End().IsValid() {
		return node.Pos()
	}
	return token.Span{Start: node.Pos(), End: node.End()}
}
