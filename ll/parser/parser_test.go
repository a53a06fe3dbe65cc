package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/lltab/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use the expression grammar of the ll package, free of left recursion:
//
//     E  = T EP
//     EP = + T EP | - T EP | % T EP | ε
//     T  = F TP
//     TP = * F TP | / F TP | ε
//     F  = ( E ) | id | num
//
func makeTable(t *testing.T) *ll.Table {
	level := tracing.Select("lltab.ll").GetTraceLevel()
	tracing.Select("lltab.ll").SetTraceLevel(tracing.LevelError)
	defer tracing.Select("lltab.ll").SetTraceLevel(level)
	b := ll.NewGrammarBuilder("Expressions")
	b.LHS("E").N("T").N("EP").End()
	b.LHS("EP").T("+").N("T").N("EP").End()
	b.LHS("EP").T("-").N("T").N("EP").End()
	b.LHS("EP").T("%").N("T").N("EP").End()
	b.LHS("EP").Epsilon()
	b.LHS("T").N("F").N("TP").End()
	b.LHS("TP").T("*").N("F").N("TP").End()
	b.LHS("TP").T("/").N("F").N("TP").End()
	b.LHS("TP").Epsilon()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	b.LHS("F").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := ll.BuildTable(ll.Analysis(g))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

var validInputs = []string{
	"id", "num", "id + id * id", "( id )", "id * ( num - id ) % num", "( ( id ) )", "id / id / id",
}

// --- the Tests -------------------------------------------------------------

func TestParserAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	for n, input := range validInputs {
		tracer().Infof("=== '%s' ========================", input)
		accept, err := p.Parse(scanner.FromTypes(strings.Fields(input)...), nil)
		if err != nil {
			t.Error(err)
		}
		if !accept {
			t.Errorf("Valid input string #%d not accepted: '%s'", n+1, input)
		}
	}
}

func TestParseGoTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	input := "a + 1.5 * (b - 2)"
	accept, err := p.Parse(scanner.GoTokenizer("go", strings.NewReader(input)), nil)
	if err != nil || !accept {
		t.Errorf("Valid input string not accepted: '%s', error = %v", input, err)
	}
}

func TestParseLexmachineTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	LM, err := lexmach.ExpressionLexer()
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(makeTable(t))
	input := "x1 % (3 +\n y) / 4"
	sc, err := LM.Scanner(input)
	if err != nil {
		t.Fatal(err)
	}
	accept, err := p.Parse(sc, nil)
	if err != nil || !accept {
		t.Errorf("Valid input string not accepted: %q, error = %v", input, err)
	}
}

func TestNoProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	accept, err := p.Parse(scanner.FromTypes("id", "+"), nil)
	if accept {
		t.Fatalf("expected 'id +' to be rejected")
	}
	var nperr *NoProductionError
	if !errors.As(err, &nperr) {
		t.Fatalf("expected a NoProductionError, got %v", err)
	}
	if nperr.NonTerminal.Name != "T" || !lltab.IsEOF(nperr.Found) {
		t.Errorf("expected missing production for T at end of input, got %v", nperr)
	}
	if symbolNames(nperr.Expected) != "( id num" {
		t.Errorf("expected one of ( id num, got %s", symbolNames(nperr.Expected))
	}
	if nperr.Position() != (lltab.Position{Line: 1, Column: 2}) {
		t.Errorf("expected error at 1:2, is at %v", nperr.Position())
	}
}

func TestUnexpectedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	accept, err := p.Parse(scanner.FromTypes("(", "id", "+", "id"), nil)
	if accept {
		t.Fatalf("expected '( id + id' to be rejected")
	}
	var uterr *UnexpectedTokenError
	if !errors.As(err, &uterr) {
		t.Fatalf("expected an UnexpectedTokenError, got %v", err)
	}
	if uterr.Expected.Name != ")" || !lltab.IsEOF(uterr.Found) {
		t.Errorf("expected ')' to be missing at end of input, got %v", uterr)
	}
	//
	accept, err = p.Parse(scanner.FromTypes("id", ")"), nil)
	if accept || !errors.As(err, &uterr) {
		t.Fatalf("expected 'id )' to be rejected with an UnexpectedTokenError, got %v", err)
	}
	if !uterr.Expected.IsEOF() || uterr.Found.TokType() != ")" {
		t.Errorf("expected end of input, got %v", uterr)
	}
}

func TestUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	_, err := p.Parse(scanner.FromTypes("id", "+", "?"), nil)
	var nperr *NoProductionError
	if !errors.As(err, &nperr) || nperr.Found.TokType() != "?" {
		t.Errorf("expected token '?' to be reported, got %v", err)
	}
}

func TestTraceEvents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	verdict, rec := p.Run(scanner.FromTypes("id"))
	if !verdict.Accepted {
		t.Fatalf("expected 'id' to be accepted, got %v", verdict)
	}
	expected := []string{
		"  1: [$ E] expand E → T EP",
		"  2: [$ EP T] expand T → F TP",
		"  3: [$ EP TP F] expand F → id",
		"  4: [$ EP TP id] match \"id\"",
		"  5: [$ EP TP] expand TP → ε",
		"  6: [$ EP] expand EP → ε",
		"  7: [$] accept",
	}
	events := rec.Events()
	if len(events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(events))
	}
	for i, e := range events {
		if e.String() != expected[i] {
			t.Errorf("expected event %q, got %q", expected[i], e.String())
		}
	}
	last, ok := rec.Last()
	if !ok || last.Action != Accept {
		t.Errorf("expected last event to be accept")
	}
}

func TestRejectEvent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	var last Event
	_, err := p.Parse(scanner.FromTypes("id", "+"), ObserverFunc(func(e Event) {
		last = e
	}))
	if last.Action != Reject || last.Err != err || last.StackString() != "$ EP T" {
		t.Errorf("expected final reject event with stack [$ EP T], got %v", last)
	}
}

func TestNestedParentheses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	for depth := 1; depth <= 4; depth++ {
		var types []string
		for i := 0; i < depth; i++ {
			types = append(types, "(")
		}
		types = append(types, "id", "*", "num")
		for i := 0; i < depth; i++ {
			types = append(types, ")")
		}
		verdict, rec := p.Run(scanner.FromTypes(types...))
		if !verdict.Accepted {
			t.Errorf("expected %v to be accepted, got %v", types, verdict)
			continue
		}
		matches := 0
		for _, e := range rec.Events() {
			if e.Action == Match {
				matches++
			}
		}
		if matches != len(types) {
			t.Errorf("expected %d matches for %v, got %d", len(types), types, matches)
		}
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	p := NewParser(makeTable(t))
	for _, input := range []string{"id + id * id", "id * ( num - id ) % num", "( ( id ) )", "( id + id"} {
		v1, rec1 := p.Run(scanner.FromTypes(strings.Fields(input)...))
		v2, rec2 := p.Run(scanner.FromTypes(strings.Fields(input)...))
		if v1.Accepted != v2.Accepted || v1.String() != v2.String() {
			t.Errorf("verdicts differ for %q: %v vs. %v", input, v1, v2)
		}
		e1, e2 := rec1.Events(), rec2.Events()
		if len(e1) != len(e2) {
			t.Fatalf("event counts differ for %q: %d vs. %d", input, len(e1), len(e2))
		}
		for i := range e1 {
			if e1[i].String() != e2[i].String() {
				t.Errorf("event #%d differs for %q: %v vs. %v", i, input, e1[i], e2[i])
			}
		}
	}
}

func TestConcurrentParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelError)
	p := NewParser(makeTable(t))
	var wg sync.WaitGroup
	results := make([]bool, 2*len(validInputs))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := validInputs[i%len(validInputs)]
			results[i], _ = p.Parse(scanner.FromTypes(strings.Fields(input)...), nil)
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		if !ok {
			t.Errorf("concurrent parse #%d of %q failed", i, validInputs[i%len(validInputs)])
		}
	}
}

func TestUninitializedParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.parser")
	defer teardown()
	//
	if _, err := NewParser(nil).Parse(scanner.FromTypes("id"), nil); err == nil {
		t.Errorf("expected parser without table to fail")
	}
}
