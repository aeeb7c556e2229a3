package plusc

import (
	"github.com/kolkov/plusc/internal/codegen"
	"github.com/kolkov/plusc/internal/parser"
)

// Session translates source incrementally, one chunk at a time, the way an
// interactive prompt does. Names assigned in earlier chunks stay declared.
//
// A Session is not safe for concurrent use.
type Session struct {
	cfg Config
	gen *codegen.Generator
}

// NewSession creates a Session. A nil config means defaults; the
// template is not used.
func NewSession(config *Config) *Session {
	return &Session{
		cfg: config.withDefaults(),
		gen: codegen.New(nil),
	}
}

// Eval parses chunk and returns the rendered line of each statement.
// On a syntax error nothing is declared and the error is an ErrorList.
func (s *Session) Eval(chunk string) ([]string, *Program, error) {
	astProg, err := parser.ParseWithOptions(chunk, parser.Options{
		Filename: s.cfg.Filename,
		Logger:   s.cfg.Logger,
	})
	if err != nil {
		return nil, nil, convertParseError(err)
	}
	prog := &Program{ast: astProg, source: chunk, tmpl: codegen.Default()}
	return statementsOf(s.gen, astProg), prog, nil
}

// Declared reports whether name has been assigned in an earlier chunk.
func (s *Session) Declared(name string) bool {
	return s.gen.Declared(name)
}

// Reset forgets all declarations.
func (s *Session) Reset() {
	s.gen.Reset()
}
