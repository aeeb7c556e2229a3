package ast

import "github.com/kolkov/plusc/internal/token"

// Program represents a complete parsed source text.
type Program struct {
	// Source file name (for error messages)
	Filename string

	// Stmts holds the top-level statements in source order.
	Stmts []Stmt

	// Position information for the entire program.
	StartPos token.Position
	EndPos   token.Position
}

// Pos returns the position of the start of the source.
func (p *Program) Pos() token.Position { return p.StartPos }

// End returns the position of the end of the source.
func (p *Program) End() token.Position { return p.EndPos }

// Assigned returns the distinct assignment targets in order of first assignment.
func (p *Program) Assigned() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range p.Stmts {
		if a, ok := s.(*AssignStmt); ok && !seen[a.Target.Name] {
			seen[a.Target.Name] = true
			names = append(names, a.Target.Name)
		}
	}
	return names
}

var _ Node = (*Program)(nil)
