package lexmach

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.scanner")
	defer teardown()
	//
	literals := []string{"'", "(", ")", "[", "]", "=", "+", "-", "*", "/"}
	keywords := []string{"nil", "t"}
	init := func(lm *LMAdapter) {
		lm.Add(`//[^\n]*\n?`, Skip)
		lm.Add(`\"[^"]*\"`, lm.MakeToken("STRING"))
		lm.Add(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`, lm.MakeToken("ID"))
		lm.Add(`[1-9][0-9]*`, lm.MakeToken("NUM"))
		lm.Add(`( |\,|\t|\n|\r)+`, Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for !lltab.IsEOF(token) {
			t.Logf(" %6s | %15s | @%5v", token.TokType(), token.Lexeme(), token.Pos())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestKeywordPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.scanner")
	defer teardown()
	//
	init := func(lm *LMAdapter) {
		lm.Add(`([a-z])+`, lm.MakeToken("ID"))
		lm.Add(` +`, Skip)
	}
	LM, err := NewLMAdapter(init, nil, []string{"nil"})
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("nil nils")
	if tok := sc.NextToken(); tok.TokType() != "nil" {
		t.Errorf("expected keyword nil, got %v", tok)
	}
	if tok := sc.NextToken(); tok.TokType() != "ID" || tok.Lexeme() != "nils" {
		t.Errorf("expected identifier nils, got %v", tok)
	}
}

func TestExpressionLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.scanner")
	defer teardown()
	//
	LM, err := ExpressionLexer()
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("(a + 12.5)\n  % b_2")
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		typ  lltab.TokType
		line int
		col  int
	}{
		{"(", 1, 0}, {"id", 1, 1}, {"+", 1, 3}, {"num", 1, 5}, {")", 1, 9},
		{"%", 2, 2}, {"id", 2, 4}, {"$", 2, 7},
	}
	for i, exp := range expected {
		tok := sc.NextToken()
		if tok.TokType() != exp.typ {
			t.Errorf("expected token #%d to be %q, is %q", i, exp.typ, tok.TokType())
		}
		if tok.Pos().Line != exp.line || tok.Pos().Column != exp.col {
			t.Errorf("expected token #%d at %d:%d, is at %v", i, exp.line, exp.col, tok.Pos())
		}
		if exp.typ == "num" {
			if v, ok := tok.Value().(float64); !ok || v != 12.5 {
				t.Errorf("expected number value 12.5, is %v", tok.Value())
			}
		}
	}
	if tok := sc.NextToken(); !lltab.IsEOF(tok) {
		t.Errorf("expected scanner to keep returning end of input, got %v", tok)
	}
}

func TestUnmatchedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.scanner")
	defer teardown()
	//
	LM, err := ExpressionLexer()
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("a ? b")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	var types []lltab.TokType
	for tok := sc.NextToken(); !lltab.IsEOF(tok); tok = sc.NextToken() {
		types = append(types, tok.TokType())
	}
	if len(types) != 2 || types[0] != "id" || types[1] != "id" {
		t.Errorf("expected unmatched input to be skipped, got %v", types)
	}
	if len(errs) != 1 {
		t.Fatalf("expected unmatched input to be reported once, got %v", errs)
	}
	var uerr *UnmatchedInputError
	if !errors.As(errs[0], &uerr) {
		t.Fatalf("expected an unmatched-input error, got %T", errs[0])
	}
	if uerr.Pos.Line != 1 || uerr.Pos.Column != 2 || !strings.HasPrefix(uerr.Text, "?") {
		t.Errorf("expected '?' to be reported at 1:2, got %q at %v", uerr.Text, uerr.Pos)
	}
	if !strings.HasPrefix(uerr.Error(), "1:2:") {
		t.Errorf("expected error message to start with 0-based position 1:2, is %q", uerr.Error())
	}
}

func TestEndOfInputPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.scanner")
	defer teardown()
	//
	LM, err := ExpressionLexer()
	if err != nil {
		t.Fatal(err)
	}
	inputs := []struct {
		text string
		line int
		col  int
	}{
		{"", 1, 0},
		{"  \n  ", 2, 2},
		{"a\n", 2, 0},
		{"a + b  ", 1, 7},
		{"(a)\n\n", 3, 0},
	}
	for _, in := range inputs {
		sc, err := LM.Scanner(in.text)
		if err != nil {
			t.Fatal(err)
		}
		tok := sc.NextToken()
		for !lltab.IsEOF(tok) {
			tok = sc.NextToken()
		}
		if tok.Pos().Line != in.line || tok.Pos().Column != in.col {
			t.Errorf("expected end of input for %q at %d:%d, is at %v", in.text, in.line, in.col, tok.Pos())
		}
	}
}
