package lltab

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Token types are named after the
// terminal symbols of a grammar, e.g. "id", "num" or "+". Scanners are
// responsible for mapping lexemes to terminal names.
type TokType string

// EndOfInput is the token type of the sentinel token every token stream
// delivers when the input is exhausted. It corresponds to the end marker '$'
// of a grammar.
const EndOfInput TokType = "$"

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = "num"       // name of the terminal symbol for this kind of tokens
//    Lexeme  = "3.1416"    // lexeme how it appreared in the input stream
//    Value   = 3.1416      // is a float64 value, if the scanner converted it
//    Pos     = 4:12        // occured in line 4, column 12 of the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Pos() Position
}

// IsEOF is a predicate: does token t signal the end of input?
// A nil token is treated as the end of input.
func IsEOF(t Token) bool {
	return t == nil || t.TokType() == EndOfInput
}

// --- Positions --------------------------------------------------------

// Position is a small type for capturing the location of a token in the input.
// Lines start at 1, columns start at 0. The zero value denotes an unknown
// position.
type Position struct {
	Line   int
	Column int
}

// IsNull returns true for unknown positions.
func (p Position) IsNull() bool {
	return p.Line == 0
}

func (p Position) String() string {
	if p.IsNull() {
		return "?:?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
