// Package parser provides the plusc recursive descent parser.
package parser

import (
	"fmt"

	"github.com/kolkov/plusc/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Unwrap returns nil as ParseError doesn't wrap other errors.
func (e *ParseError) Unwrap() error {
	return nil
}

// ErrorList is a list of parse errors.
//
// The list of a failed parse is ordered from the innermost failure to the
// outermost production that gave up: for "x =" it holds
// "EOF when expecting expression",
// "right side of assignment must be an expression" and
// "expected assignment or expression".
type ErrorList []*ParseError

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(pos token.Position, msg string) {
	*el = append(*el, &ParseError{Pos: pos, Message: msg})
}

// Messages returns the bare messages without positions.
func (el ErrorList) Messages() []string {
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Message
	}
	return msgs
}

// Diagnostic messages. Each names the expectation that was violated.
const (
	msgExpectedStatement  = "expected assignment or expression"
	msgAssignTarget       = "left side of assignment must be an identifier"
	msgExpectedAssign     = "expected '=' for assignment"
	msgAssignValue        = "right side of assignment must be an expression"
	msgEOFInExpression    = "EOF when expecting expression"
	msgExpectedExpression = "expected expression"
	msgOperatorOperand    = "expected expression on right hand side of operator"
	msgInvalidIdent       = "invalid identifier"
	msgExpectedIdent      = "expected identifier"
	msgIdentStart         = "identifier must begin with a letter"
	msgNotANumber         = "not a number"
	msgExpectedDigit      = "expected digit"
)

// diag is a diagnostic message at a byte offset.
type diag struct {
	off int
	msg string
}

// failure is the result of a production that did not match.
// Sub-parsers return it instead of recording errors on shared state,
// so an abandoned alternative is discarded by dropping its failure.
type failure struct {
	diags     []diag // innermost first
	reach     int    // furthest byte offset examined before giving up
	committed bool   // no other alternative may be tried
}

// fail creates a failure with one diagnostic at off.
func fail(off int, msg string) *failure {
	return &failure{diags: []diag{{off, msg}}, reach: off}
}

// failf is fail with a formatted message.
func failf(off int, format string, args ...any) *failure {
	return fail(off, fmt.Sprintf(format, args...))
}

// wrap appends the diagnostic of an enclosing production.
func (f *failure) wrap(off int, msg string) *failure {
	f.diags = append(f.diags, diag{off, msg})
	return f
}

// reached records that the production examined input up to off.
func (f *failure) reached(off int) *failure {
	f.reach = max(f.reach, off)
	return f
}

// commit marks f as final; callers must not try another alternative.
func (f *failure) commit() *failure {
	f.committed = true
	return f
}

// first returns the innermost message, for logging.
func (f *failure) first() string {
	if len(f.diags) == 0 {
		return ""
	}
	return f.diags[0].msg
}

// errorList resolves the diagnostics of f against file.
func (f *failure) errorList(file *token.File) ErrorList {
	var el ErrorList
	for _, d := range f.diags {
		el.Add(file.Position(d.off), d.msg)
	}
	return el
}
