/*
Package scanner defines an interface for scanners to be used with the LL(1)
parser of package ll/parser.

The parser pulls tokens one at a time. Once the input is exhausted, a
tokenizer returns a token of type lltab.EndOfInput, and keeps doing so on
every subsequent call.

Three tokenizer implementations are provided: (1) a thin wrapper over the Go
std lib 'text/scanner', (2) a tokenizer replaying a fixed sequence of tokens,
and (3) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.scanner")
}

// Default token types of the Go tokenizer.
const (
	IdentType   lltab.TokType = "id"
	NumberType  lltab.TokType = "num"
	StringType  lltab.TokType = "string"
	CommentType lltab.TokType = "comment"
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lltab.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
//
// Identifiers are reported as tokens of type "id", numbers as "num", strings
// and character literals as "string". Every other character c is reported as
// a token of type string(c).
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken rune        // last token this scanner has produced
	Error     func(error) // error handler
	identType lltab.TokType
	numType   lltab.TokType
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		identType: IdentType,
		numType:   NumberType,
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lltab.Token {
	t.lastToken = t.Scan()
	pos := lltab.Position{Line: t.Position.Line, Column: t.Position.Column - 1}
	if pos.Column < 0 {
		pos.Column = 0
	}
	var kind lltab.TokType
	switch t.lastToken {
	case scanner.EOF:
		tracer().Debugf("DefaultTokenizer reached end of input")
		return EOFToken(lltab.Position{Line: t.Pos().Line, Column: t.Pos().Column - 1})
	case scanner.Ident:
		kind = t.identType
	case scanner.Int, scanner.Float:
		kind = t.numType
	case scanner.String, scanner.RawString, scanner.Char:
		kind = StringType
	case scanner.Comment:
		kind = CommentType
	default:
		kind = lltab.TokType(string(t.lastToken))
	}
	return MakeDefaultToken(kind, t.TokenText(), pos)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lltab.TokType
	lexeme string
	Val    interface{}
	pos    lltab.Position
}

var _ lltab.Token = DefaultToken{}

// MakeDefaultToken creates a token from a type, a lexeme and a position.
func MakeDefaultToken(typ lltab.TokType, lexeme string, pos lltab.Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		pos:    pos,
	}
}

// EOFToken creates the end-of-input token, located at pos.
func EOFToken(pos lltab.Position) DefaultToken {
	if pos.Column < 0 {
		pos.Column = 0
	}
	return MakeDefaultToken(lltab.EndOfInput, "", pos)
}

func (t DefaultToken) TokType() lltab.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Pos() lltab.Position {
	return t.pos
}

func (t DefaultToken) String() string {
	if t.kind == lltab.EndOfInput {
		return fmt.Sprintf("<$>@%v", t.pos)
	}
	return fmt.Sprintf("<%s|%q>@%v", t.kind, t.lexeme, t.pos)
}

// --- Token replay ----------------------------------------------------------

// SliceTokenizer replays a fixed sequence of tokens. Create one with FromTokens.
type SliceTokenizer struct {
	tokens []lltab.Token
	next   int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// FromTokens creates a tokenizer which replays tokens. A trailing end-of-input
// token may be included, but is not required.
func FromTokens(tokens ...lltab.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// FromTypes creates a tokenizer which replays tokens of the given types, with
// each type doubling as the lexeme. Tokens are positioned on line 1, in
// columns 0, 1, 2, ….
func FromTypes(types ...string) *SliceTokenizer {
	tokens := make([]lltab.Token, len(types))
	for i, typ := range types {
		tokens[i] = MakeDefaultToken(lltab.TokType(typ), typ, lltab.Position{Line: 1, Column: i})
	}
	return FromTokens(tokens...)
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() lltab.Token {
	if st.next >= len(st.tokens) {
		pos := lltab.Position{}
		if n := len(st.tokens); n > 0 && st.tokens[n-1] != nil {
			pos = st.tokens[n-1].Pos()
			if !lltab.IsEOF(st.tokens[n-1]) {
				pos.Column++
			}
		}
		return EOFToken(pos)
	}
	tok := st.tokens[st.next]
	st.next++
	if tok == nil {
		return EOFToken(lltab.Position{})
	}
	return tok
}

// SetErrorHandler is part of the Tokenizer interface. Replaying tokens never fails.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments. If cleared, comments
// are reported as tokens of type "comment".
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// IdentAs sets the token type for identifiers (default "id").
func IdentAs(typ lltab.TokType) Option {
	return func(t *DefaultTokenizer) {
		t.identType = typ
	}
}

// NumberAs sets the token type for integer and float literals (default "num").
func NumberAs(typ lltab.TokType) Option {
	return func(t *DefaultTokenizer) {
		t.numType = typ
	}
}
