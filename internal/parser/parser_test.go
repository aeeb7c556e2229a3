package parser_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/kolkov/plusc/internal/ast"
	"github.com/kolkov/plusc/internal/parser"
	"github.com/kolkov/plusc/internal/token"
)

// messages extracts the diagnostic messages from a parse error.
func messages(t *testing.T, err error) []string {
	t.Helper()
	var el parser.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("error %v (%T) is not an ErrorList", err, err)
	}
	if len(el) == 0 {
		t.Fatal("ErrorList is empty")
	}
	return el.Messages()
}

func contains(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func isNum(e ast.Expr, want int64) bool {
	n, ok := e.(*ast.NumLit)
	return ok && n.Value != nil && n.Value.IsInt64() && n.Value.Int64() == want
}

func isIdent(e ast.Expr, want string) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == want
}

// TestParseWhitespaceOnly tests that empty and blank sources yield no statements.
func TestParseWhitespaceOnly(t *testing.T) {
	for _, src := range []string{"", " ", "\n", "\t \n  \r\n", "\u00a0\u2003"} {
		prog, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if prog == nil {
			t.Fatalf("Parse(%q) returned nil program", src)
		}
		if len(prog.Stmts) != 0 {
			t.Errorf("Parse(%q) statements = %d, want 0", src, len(prog.Stmts))
		}
	}
}

// TestParseStatements tests the shape of successfully parsed programs.
func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(*testing.T, []ast.Stmt)
	}{
		{
			name: "assign number",
			src:  "x = 5",
			check: func(t *testing.T, stmts []ast.Stmt) {
				a, ok := stmts[0].(*ast.AssignStmt)
				if !ok {
					t.Fatalf("stmt = %T, want *ast.AssignStmt", stmts[0])
				}
				if a.Target.Name != "x" {
					t.Errorf("target = %q, want x", a.Target.Name)
				}
				if !isNum(a.Value, 5) {
					t.Errorf("value = %s, want leaf 5", ast.String(a.Value))
				}
			},
		},
		{
			name: "assign sum",
			src:  "x = 1 + 2",
			check: func(t *testing.T, stmts []ast.Stmt) {
				a, ok := stmts[0].(*ast.AssignStmt)
				if !ok {
					t.Fatalf("stmt = %T, want *ast.AssignStmt", stmts[0])
				}
				b, ok := a.Value.(*ast.BinaryExpr)
				if !ok {
					t.Fatalf("value = %T, want *ast.BinaryExpr", a.Value)
				}
				if b.Op != token.ADD || !isNum(b.Left, 1) || !isNum(b.Right, 2) {
					t.Errorf("value = %s, want 1 + 2", ast.String(b))
				}
			},
		},
		{
			name: "right associative",
			src:  "a + b + c",
			check: func(t *testing.T, stmts []ast.Stmt) {
				s, ok := stmts[0].(*ast.ExprStmt)
				if !ok {
					t.Fatalf("stmt = %T, want *ast.ExprStmt", stmts[0])
				}
				outer, ok := s.Expr.(*ast.BinaryExpr)
				if !ok || !isIdent(outer.Left, "a") {
					t.Fatalf("expr = %s, want a + (...)", ast.String(s.Expr))
				}
				inner, ok := outer.Right.(*ast.BinaryExpr)
				if !ok || !isIdent(inner.Left, "b") || !isIdent(inner.Right, "c") {
					t.Errorf("right = %s, want b + c", ast.String(outer.Right))
				}
			},
		},
		{
			name: "bare identifier",
			src:  "  foo  ",
			check: func(t *testing.T, stmts []ast.Stmt) {
				s, ok := stmts[0].(*ast.ExprStmt)
				if !ok || !isIdent(s.Expr, "foo") {
					t.Errorf("stmt = %s, want foo", ast.String(stmts[0]))
				}
			},
		},
		{
			name: "bare number",
			src:  "42",
			check: func(t *testing.T, stmts []ast.Stmt) {
				s, ok := stmts[0].(*ast.ExprStmt)
				if !ok || !isNum(s.Expr, 42) {
					t.Errorf("stmt = %s, want 42", ast.String(stmts[0]))
				}
			},
		},
		{
			name: "identifier with digits",
			src:  "n2 = n1",
			check: func(t *testing.T, stmts []ast.Stmt) {
				a, ok := stmts[0].(*ast.AssignStmt)
				if !ok || a.Target.Name != "n2" || !isIdent(a.Value, "n1") {
					t.Errorf("stmt = %s, want n2 = n1", ast.String(stmts[0]))
				}
			},
		},
		{
			name: "unicode identifier",
			src:  "größe = 3",
			check: func(t *testing.T, stmts []ast.Stmt) {
				a, ok := stmts[0].(*ast.AssignStmt)
				if !ok || a.Target.Name != "größe" {
					t.Errorf("stmt = %s, want größe = 3", ast.String(stmts[0]))
				}
			},
		},
		{
			name: "big integer",
			src:  "x = 123456789012345678901234567890",
			check: func(t *testing.T, stmts []ast.Stmt) {
				a := stmts[0].(*ast.AssignStmt)
				n, ok := a.Value.(*ast.NumLit)
				if !ok || n.Value.String() != "123456789012345678901234567890" {
					t.Errorf("value = %s, want the literal unchanged", ast.String(a.Value))
				}
			},
		},
		{
			name: "leading zeros",
			src:  "007",
			check: func(t *testing.T, stmts []ast.Stmt) {
				n, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.NumLit)
				if !ok || n.Raw != "007" || n.Value.Int64() != 7 {
					t.Errorf("literal = %+v, want raw 007 value 7", n)
				}
			},
		},
		{
			name: "chained assignment stops at second equals",
			src:  "x = y\ny = 2",
			check: func(t *testing.T, stmts []ast.Stmt) {
				if len(stmts) != 2 {
					t.Fatalf("statements = %d, want 2", len(stmts))
				}
				if got := ast.String(stmts[1]); got != "y = 2" {
					t.Errorf("second = %q, want y = 2", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.src, err)
			}
			if len(prog.Stmts) == 0 {
				t.Fatalf("Parse(%q) returned no statements", tt.src)
			}
			tt.check(t, prog.Stmts)
		})
	}
}

// TestParseOrder tests that statements keep source order.
func TestParseOrder(t *testing.T) {
	src := "a = 1\nb = a + 1\n  a\n\nc = b + a + 3\n"
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var got []string
	for _, s := range prog.Stmts {
		got = append(got, ast.String(s))
	}
	want := []string{"a = 1", "b = a + 1", "a", "c = b + (a + 3)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statements = %q, want %q", got, want)
	}
	if assigned := prog.Assigned(); !reflect.DeepEqual(assigned, []string{"a", "b", "c"}) {
		t.Errorf("Assigned() = %q", assigned)
	}
}

// TestParseErrors tests the diagnostics reported for malformed input.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string // exact message list, innermost first
	}{
		{
			name: "identifier starting with digit",
			src:  "1foo",
			want: []string{
				"identifier must begin with a letter",
				"expected expression",
				"expected assignment or expression",
			},
		},
		{
			name: "missing right side",
			src:  "x =",
			want: []string{
				"EOF when expecting expression",
				"right side of assignment must be an expression",
				"expected assignment or expression",
			},
		},
		{
			name: "invalid right side",
			src:  "x = $",
			want: []string{
				"not a number",
				"expected expression",
				"right side of assignment must be an expression",
				"expected assignment or expression",
			},
		},
		{
			name: "missing operand after operator",
			src:  "a +",
			want: []string{
				"EOF when expecting expression",
				"expected expression on right hand side of operator",
				"expected assignment or expression",
			},
		},
		{
			name: "operator without spaces",
			src:  "a+b",
			want: []string{
				"invalid identifier",
				"expected expression",
				"expected assignment or expression",
			},
		},
		{
			name: "assignment without spaces",
			src:  "x=5",
			want: []string{
				"invalid identifier",
				"expected expression",
				"expected assignment or expression",
			},
		},
		{
			name: "number followed by letter in sum",
			src:  "x = 1 + 2a",
			want: []string{
				"identifier must begin with a letter",
				"expected expression",
				"expected expression on right hand side of operator",
				"right side of assignment must be an expression",
				"expected assignment or expression",
			},
		},
		{
			name: "stray equals",
			src:  "= 3",
			want: []string{
				"not a number",
				"expected expression",
				"expected assignment or expression",
			},
		},
		{
			name: "double equals",
			src:  "x == 1",
			want: []string{
				"not a number",
				"expected expression",
				"right side of assignment must be an expression",
				"expected assignment or expression",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got %d statements", tt.src, len(prog.Stmts))
			}
			if prog != nil {
				t.Errorf("Parse(%q) returned a program alongside the error", tt.src)
			}
			got := messages(t, err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) messages =\n  %q\nwant\n  %q", tt.src, got, tt.want)
			}
		})
	}
}

// TestParseAbortsOnFirstBadStatement tests that earlier good statements are
// not returned when a later one fails.
func TestParseAbortsOnFirstBadStatement(t *testing.T) {
	prog, err := parser.Parse("a = 1\nb = 2\nc =\nd = 4")
	if err == nil {
		t.Fatal("expected error")
	}
	if prog != nil {
		t.Errorf("program = %v, want nil", prog)
	}
}

// TestBacktrackDiscardsDiagnostics tests that failed speculative branches do
// not leak into the result of a successful parse or into a later failure.
func TestBacktrackDiscardsDiagnostics(t *testing.T) {
	// "a + b" fails as an assignment ("expected '=' ...") before it
	// succeeds as an expression.
	if _, err := parser.Parse("a + b"); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err := parser.Parse("a + b\n1foo")
	msgs := messages(t, err)
	for _, leaked := range []string{
		"expected '=' for assignment",
		"left side of assignment must be an identifier",
		"not a number",
	} {
		if contains(msgs, leaked) {
			t.Errorf("messages %q contain abandoned diagnostic %q", msgs, leaked)
		}
	}
}

// TestParseErrorPosition tests that error positions are correct.
func TestParseErrorPosition(t *testing.T) {
	_, err := parser.ParseFile("prog.pc", "x = 1\ny = 2 +\n")
	if err == nil {
		t.Fatal("expected error")
	}
	var el parser.ErrorList
	if !errors.As(err, &el) {
		t.Fatalf("error is %T, want ErrorList", err)
	}

	// innermost: EOF at the very end (line 3, column 1)
	if got := el[0].Pos; got.Line != 3 || got.Column != 1 || got.Filename != "prog.pc" {
		t.Errorf("EOF position = %v, want prog.pc:3:1", got)
	}
	// operand missing after "+": reported where the operand should start
	if got := el[1].Pos; got.Line != 3 || got.Column != 1 {
		t.Errorf("operand position = %v, want 3:1", got)
	}
	// the assignment value starts after "="
	value := el[len(el)-2]
	if value.Message != "right side of assignment must be an expression" {
		t.Fatalf("assignment message = %q", value.Message)
	}
	if value.Pos.Line != 2 || value.Pos.Column != 5 {
		t.Errorf("assignment value position = %v, want 2:5", value.Pos)
	}
	// the statement starts at "y"
	last := el[len(el)-1]
	if last.Message != "expected assignment or expression" {
		t.Fatalf("last message = %q", last.Message)
	}
	if last.Pos.Line != 2 || last.Pos.Column != 1 {
		t.Errorf("statement position = %v, want 2:1", last.Pos)
	}
	if !strings.HasPrefix(err.Error(), "prog.pc:3:1: EOF when expecting expression") {
		t.Errorf("Error() = %q", err.Error())
	}
}

// TestNodePositions tests the spans recorded on nodes.
func TestNodePositions(t *testing.T) {
	prog, err := parser.Parse("\n  total = a + 10\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := prog.Stmts[0].(*ast.AssignStmt)
	if p := a.Pos(); p.Line != 2 || p.Column != 3 {
		t.Errorf("statement pos = %v, want 2:3", p)
	}
	if e := a.End(); e.Line != 2 || e.Column != 17 {
		t.Errorf("statement end = %v, want 2:17", e)
	}
	b := a.Value.(*ast.BinaryExpr)
	if p := b.Right.Pos(); p.Column != 15 {
		t.Errorf("right operand pos = %v, want column 15", p)
	}
}

// TestParseExpr tests parsing individual expressions.
func TestParseExpr(t *testing.T) {
	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{src: "42", want: "42"},
		{src: "x", want: "x"},
		{src: "1 + x", want: "1 + x"},
		{src: " a + b + c ", want: "a + (b + c)"},
		{src: "", wantErr: true},
		{src: "x = 1", wantErr: true},
		{src: "+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := parser.ParseExpr(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpr(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := ast.String(e); got != tt.want {
				t.Errorf("ParseExpr(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// TestParseLogging tests that abandoned alternatives are traced at debug level.
func TestParseLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := parser.ParseWithOptions("a + b", parser.Options{Filename: "t.pc", Logger: logger})
	if err != nil {
		t.Fatalf("ParseWithOptions() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"component=parser", "file=t.pc", "production=assignment", "parse complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

// TestDeepNesting tests long operator chains.
func TestDeepNesting(t *testing.T) {
	src := "x = 1" + strings.Repeat(" + 1", 5000)
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	depth := 0
	ast.Walk(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.BinaryExpr); ok {
			depth++
		}
		return true
	})
	if depth != 5000 {
		t.Errorf("operators = %d, want 5000", depth)
	}
}
