package plusc

import (
	"errors"

	"github.com/kolkov/plusc/internal/ast"
	"github.com/kolkov/plusc/internal/codegen"
	"github.com/kolkov/plusc/internal/parser"
)

// Version is the plusc version string.
const Version = "0.1.0"

// DefaultTemplate is the template used when Config.Template is empty.
const DefaultTemplate = codegen.DefaultTemplate

// Placeholder marks where generated statements go in a template.
const Placeholder = codegen.Placeholder

// ErrTemplate is wrapped by the CompileError returned for a template
// without exactly one placeholder.
var ErrTemplate = codegen.ErrTemplate

// Translate parses source and returns the generated C text.
// This is a convenience function for one-off translation.
//
// Example:
//
//	out, err := plusc.Translate("x = 1 + 2", nil)
//	// out: "\nint main() {\n    int x = 1 + 2;\n}\n"
func Translate(source string, config *Config) (string, error) {
	prog, err := CompileWithConfig(source, config)
	if err != nil {
		return "", err
	}
	return prog.Generate(), nil
}

// Compile parses source with the default configuration.
//
// Example:
//
//	prog, err := plusc.Compile("total = a + b")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Generate())
func Compile(source string) (*Program, error) {
	return CompileWithConfig(source, nil)
}

// CompileWithConfig parses source and prepares its template.
// A nil config means defaults.
//
// Syntax errors are returned as an ErrorList; template errors as a
// CompileError.
func CompileWithConfig(source string, config *Config) (*Program, error) {
	cfg := config.withDefaults()

	tmpl, err := codegen.ParseTemplate(cfg.Template)
	if err != nil {
		return nil, &CompileError{Message: err.Error(), Err: err}
	}

	astProg, err := parser.ParseWithOptions(source, parser.Options{
		Filename: cfg.Filename,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, convertParseError(err)
	}

	return &Program{
		ast:    astProg,
		source: source,
		tmpl:   tmpl,
	}, nil
}

// MustCompile is like Compile but panics if the source cannot be compiled.
// It simplifies initialization of global program variables.
func MustCompile(source string) *Program {
	prog, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return prog
}

// convertParseError converts parser errors to public types.
func convertParseError(err error) error {
	var el parser.ErrorList
	if errors.As(err, &el) {
		out := make(ErrorList, len(el))
		for i, pe := range el {
			out[i] = &ParseError{
				Filename: pe.Pos.Filename,
				Line:     pe.Pos.Line,
				Column:   pe.Pos.Column,
				Message:  pe.Message,
			}
		}
		return out
	}
	return &ParseError{Message: err.Error()}
}

// statementsOf is shared by Program and Session.
func statementsOf(g *codegen.Generator, prog *ast.Program) []string {
	lines := make([]string, len(prog.Stmts))
	for i, s := range prog.Stmts {
		lines[i] = g.Statement(s)
	}
	return lines
}
