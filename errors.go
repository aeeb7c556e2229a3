package plusc

import (
	"fmt"
	"strings"
)

// ParseError represents a syntax error in plusc source code.
type ParseError struct {
	Filename string // Source file name (may be empty)
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Message  string // Error description
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	if e.Filename != "" {
		return fmt.Sprintf("parse error at %s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ErrorList holds the diagnostics of a failed parse, innermost first.
// The last entry names the outermost construct that could not be parsed.
type ErrorList []*ParseError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		msgs := make([]string, len(el))
		for i, e := range el {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "\n")
	}
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// Messages returns the diagnostic messages without positions.
func (el ErrorList) Messages() []string {
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Message
	}
	return msgs
}

// CompileError represents an error preparing generation, such as an
// invalid template.
type CompileError struct {
	Message string // Error description
	Err     error  // Underlying error (may be nil)
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
