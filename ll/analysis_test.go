package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	ga := Analysis(g)
	ga.Dump()
	expected := map[string]string{
		"E":  "{(, id, num}",
		"EP": "{ε, %, +, -}",
		"T":  "{(, id, num}",
		"TP": "{ε, *, /}",
		"F":  "{(, id, num}",
	}
	for A, first := range expected {
		if s := ga.First(g.NonTerminal(A)).String(); s != first {
			t.Errorf("expected FIRST(%s) = %s, is %s", A, first, s)
		}
	}
	if !ga.Nullable(g.NonTerminal("EP")) || ga.Nullable(g.NonTerminal("E")) {
		t.Errorf("expected EP to be nullable and E not to be")
	}
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	ga := Analysis(g)
	expected := map[string]string{
		"E":  "{), $}",
		"EP": "{), $}",
		"T":  "{%, ), +, -, $}",
		"TP": "{%, ), +, -, $}",
		"F":  "{%, ), *, +, -, /, $}",
	}
	for A, follow := range expected {
		if s := ga.Follow(g.NonTerminal(A)).String(); s != follow {
			t.Errorf("expected FOLLOW(%s) = %s, is %s", A, follow, s)
		}
	}
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	ga := Analysis(g)
	EP, TP, F := g.NonTerminal("EP"), g.NonTerminal("TP"), g.NonTerminal("F")
	tests := []struct {
		seq   []*Symbol
		first string
	}{
		{nil, "{ε}"},
		{[]*Symbol{g.Epsilon()}, "{ε}"},
		{[]*Symbol{TP, EP}, "{ε, %, *, +, -, /}"},
		{[]*Symbol{TP, F}, "{(, *, /, id, num}"},
		{[]*Symbol{g.Terminal("id"), EP}, "{id}"},
		{[]*Symbol{EP, g.EOF()}, "{%, +, -, $}"},
	}
	for i, test := range tests {
		if s := ga.FirstOfSequence(test.seq).String(); s != test.first {
			t.Errorf("test #%d: expected FIRST(%v) = %s, is %s", i, test.seq, test.first, s)
		}
	}
}

func TestMutualRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	// A and B are mutually recursive, and both are nullable via C.
	b := NewGrammarBuilder("Mutual")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").N("B").T("a").End()
	b.LHS("A").N("C").End()
	b.LHS("B").N("A").T("b").End()
	b.LHS("B").T("c").End()
	b.LHS("C").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	if s := ga.First(g.NonTerminal("A")).String(); s != "{ε, b, c}" {
		t.Errorf("expected FIRST(A) = {ε, b, c}, is %s", s)
	}
	if s := ga.First(g.NonTerminal("B")).String(); s != "{b, c}" {
		t.Errorf("expected FIRST(B) = {b, c}, is %s", s)
	}
	if s := ga.First(g.NonTerminal("S")).String(); s != "{b, c, x}" {
		t.Errorf("expected FIRST(S) = {b, c, x}, is %s", s)
	}
	if s := ga.Follow(g.NonTerminal("A")).String(); s != "{b, x}" {
		t.Errorf("expected FOLLOW(A) = {b, x}, is %s", s)
	}
	if s := ga.Follow(g.NonTerminal("C")).String(); s != "{b, x}" {
		t.Errorf("expected FOLLOW(C) = FOLLOW(A), is %s", s)
	}
	if ga.FirstSets().Passes() < 2 || ga.FollowSets().Passes() < 2 {
		t.Errorf("expected fixed point iteration to take more than one pass")
	}
}

func TestAnalysisIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	ga1, ga2 := Analysis(g), Analysis(g)
	g.EachNonTerminal(func(A *Symbol) {
		if !ga1.First(A).Equals(ga2.First(A)) {
			t.Errorf("FIRST(%s) differs between runs: %v vs. %v", A, ga1.First(A), ga2.First(A))
		}
		if !ga1.Follow(A).Equals(ga2.Follow(A)) {
			t.Errorf("FOLLOW(%s) differs between runs: %v vs. %v", A, ga1.Follow(A), ga2.Follow(A))
		}
	})
	// recomputing FOLLOW from the final FIRST-sets does not change anything
	follow := ComputeFollowSets(g, ga1.FirstSets())
	g.EachNonTerminal(func(A *Symbol) {
		if !follow.Of(A).Equals(ga1.Follow(A)) {
			t.Errorf("FOLLOW(%s) is not stable", A)
		}
	})
}

func TestQueriesReturnCopies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lltab.ll")
	defer teardown()
	//
	g := makeExpressionGrammar(t)
	ga := Analysis(g)
	F := g.NonTerminal("F")
	ga.First(F).Add(g.EOF())
	if ga.First(F).Contains(g.EOF()) {
		t.Errorf("expected FIRST(F) to be unaffected by changes of a query result")
	}
	if !ga.First(g.Terminal("id")).Empty() {
		t.Errorf("expected FIRST of a terminal to be empty")
	}
}
