package lexmach

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lltab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
//
// Lexmachine identifies token types by integer IDs, whereas grammars name
// their terminals. The adapter assigns an ID to every token type it is told
// about and translates IDs back to token types when scanning.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	types []lltab.TokType       // token types, indexed by lexmachine token ID
	ids   map[lltab.TokType]int // lexmachine token IDs by token type
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …) and a list of keywords ("if", "for", …). Literals and
// keywords are registered as token types named after themselves. They take
// precedence over patterns added by init for matches of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*LMAdapter), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{
		Lexer: lexmachine.NewLexer(),
		ids:   make(map[lltab.TokType]int),
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), adapter.MakeToken(lltab.TokType(lit)))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), adapter.MakeToken(lltab.TokType(name)))
	}
	if init != nil {
		init(adapter)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Add adds a pattern to the lexer.
func (lm *LMAdapter) Add(pattern string, action lexmachine.Action) {
	lm.Lexer.Add([]byte(pattern), action)
}

// TokenID returns the lexmachine token ID for a token type, registering the
// type if necessary.
func (lm *LMAdapter) TokenID(typ lltab.TokType) int {
	if id, ok := lm.ids[typ]; ok {
		return id
	}
	id := len(lm.types)
	lm.types = append(lm.types, typ)
	lm.ids[typ] = id
	return id
}

// TokenType returns the token type for a lexmachine token ID.
func (lm *LMAdapter) TokenType(id int) lltab.TokType {
	if id < 0 || id >= len(lm.types) {
		return ""
	}
	return lm.types[id]
}

// MakeToken is an action which wraps a scanned match into a token of type typ.
// The token's value is the matched text.
func (lm *LMAdapter) MakeToken(typ lltab.TokType) lexmachine.Action {
	id := lm.TokenID(typ)
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// MakeValueToken is an action which wraps a scanned match into a token of type
// typ, converting the matched text into the token's value.
func (lm *LMAdapter) MakeValueToken(typ lltab.TokType, conv func(string) (interface{}, error)) lexmachine.Action {
	id := lm.TokenID(typ)
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		v, err := conv(string(m.Bytes))
		if err != nil {
			return nil, err
		}
		return s.Token(id, v, m), nil
	}
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, adapter: lm, Error: logError, eof: endOfInput(s.Text)}, nil
}

// endOfInput is the position after the last character of text, including
// trailing blanks and newlines.
func endOfInput(text []byte) lltab.Position {
	pos := lltab.Position{Line: 1 + bytes.Count(text, []byte{'\n'})}
	pos.Column = len(text) - (bytes.LastIndexByte(text, '\n') + 1)
	return pos
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	adapter *LMAdapter
	Error   func(error)
	eof     lltab.Position // position of the end-of-input token
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
//
// Input which does not match any pattern is reported to the error handler
// and skipped. After the end of input, NextToken returns an end-of-input token
// on every call.
func (lms *LMScanner) NextToken() lltab.Token {
	if lms.scanner == nil {
		return scanner.EOFToken(lltab.Position{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		var ui *machines.UnconsumedInput
		if errors.As(err, &ui) {
			next := ui.FailTC
			if next <= ui.StartTC {
				next = ui.StartTC + 1
			}
			if next > len(ui.Text) {
				next = len(ui.Text)
			}
			lms.Error(&UnmatchedInputError{
				Pos:  lltab.Position{Line: ui.StartLine, Column: zeroBased(ui.StartColumn)},
				Text: string(ui.Text[ui.StartTC:next]),
				err:  err,
			})
			lms.scanner.TC = next
		} else {
			lms.Error(err)
			lms.scanner.TC++ // action failed, skip a byte
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.EOFToken(lms.eof)
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	t := scanner.MakeDefaultToken(
		lms.adapter.TokenType(token.Type),
		string(token.Lexeme),
		lltab.Position{Line: token.StartLine, Column: zeroBased(token.StartColumn)},
	)
	t.Val = token.Value
	return t
}

// UnmatchedInputError reports input which does not match any token pattern.
// The input is skipped.
type UnmatchedInputError struct {
	Pos  lltab.Position // 0-based column, as for tokens
	Text string         // the skipped input
	err  error
}

func (e *UnmatchedInputError) Error() string {
	return fmt.Sprintf("%v: no token matches %q", e.Pos, e.Text)
}

// Unwrap returns the lexmachine error.
func (e *UnmatchedInputError) Unwrap() error {
	return e.err
}

// lexmachine counts columns starting at 1.
func zeroBased(col int) int {
	if col > 0 {
		return col - 1
	}
	return 0
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// --- Expression language ---------------------------------------------------

// Token types of the expression language.
const (
	NumType lltab.TokType = "num"
	IDType  lltab.TokType = "id"
)

// ExpressionLexer creates a lexer for arithmetic expressions over identifiers
// and numbers, with operators + - * / % and parentheses. Blanks, tabs and
// newlines separate tokens. The value of a number token is a float64.
func ExpressionLexer() (*LMAdapter, error) {
	literals := []string{"+", "-", "*", "/", "%", "(", ")"}
	init := func(lm *LMAdapter) {
		lm.Add(`[0-9]+(\.[0-9]*)?`, lm.MakeValueToken(NumType, func(s string) (interface{}, error) {
			return strconv.ParseFloat(s, 64)
		}))
		lm.Add(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`, lm.MakeToken(IDType))
		lm.Add(`( |\t|\n|\r)+`, Skip)
	}
	return NewLMAdapter(init, literals, nil)
}
