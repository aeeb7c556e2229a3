// Package token defines the source positions and operator tokens of the
// plusc expression language.
package token

// Token represents an operator or punctuation token.
//
// The parser reads characters directly and never produces a token stream;
// Token only names the operators that end up in the AST.
type Token uint8

const (
	ILLEGAL Token = iota // <illegal>

	ADD    // +
	ASSIGN // =
)

var tokens = [...]string{
	ILLEGAL: "<illegal>",
	ADD:     "+",
	ASSIGN:  "=",
}

// String returns the source spelling of the token.
func (t Token) String() string {
	if int(t) < len(tokens) {
		return tokens[t]
	}
	return tokens[ILLEGAL]
}

// Lookup returns the token spelled by r, or ILLEGAL.
func Lookup(r rune) Token {
	switch r {
	case '+':
		return ADD
	case '=':
		return ASSIGN
	}
	return ILLEGAL
}

// IsOperator reports whether t is a binary operator.
func (t Token) IsOperator() bool {
	return t == ADD
}

// LookupOperator returns the binary operator token spelled by r,
// or ILLEGAL if r is not an operator.
func LookupOperator(r rune) Token {
	if t := Lookup(r); t.IsOperator() {
		return t
	}
	return ILLEGAL
}
