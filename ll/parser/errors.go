package parser

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
)

// SyntaxError is implemented by all errors the parser reports for an input.
type SyntaxError interface {
	error
	Position() lltab.Position
}

// UnexpectedTokenError is reported if the terminal on top of the stack does
// not match the lookahead.
type UnexpectedTokenError struct {
	Expected *ll.Symbol
	Found    lltab.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%v: expected %q, found %s", e.Position(), e.Expected.Name, tokenString(e.Found))
}

// Position returns the location of the offending token.
func (e *UnexpectedTokenError) Position() lltab.Position {
	return e.Found.Pos()
}

// NoProductionError is reported if the table has no entry for the non-terminal
// on top of the stack and the lookahead.
type NoProductionError struct {
	NonTerminal *ll.Symbol
	Found       lltab.Token
	Expected    []*ll.Symbol // terminals for which the table holds an entry
}

func (e *NoProductionError) Error() string {
	names := make([]string, len(e.Expected))
	for i, a := range e.Expected {
		names[i] = a.Name
	}
	return fmt.Sprintf("%v: unexpected %s while parsing %s, expected one of: %s",
		e.Position(), tokenString(e.Found), e.NonTerminal, strings.Join(names, ", "))
}

// Position returns the location of the offending token.
func (e *NoProductionError) Position() lltab.Position {
	return e.Found.Pos()
}

// InternalError is reported if the stack holds a symbol which is neither a
// terminal nor a non-terminal. This indicates a bug, not a syntax error.
type InternalError struct {
	Symbol *ll.Symbol
	Found  lltab.Token
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%v: internal error: unknown symbol %q on parser stack", e.Position(), e.Symbol.Name)
}

// Position returns the location of the lookahead at the time of the error.
func (e *InternalError) Position() lltab.Position {
	return e.Found.Pos()
}

func tokenString(t lltab.Token) string {
	if lltab.IsEOF(t) {
		return "end of input"
	}
	return fmt.Sprintf("%q (%s)", t.Lexeme(), t.TokType())
}
