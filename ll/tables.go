package ll

import (
	"fmt"
	"html"
	"io"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll/sparse"
)

// === Table Construction ====================================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 5.4 Constructing LL(1) Parsers.

// Table is an LL(1) parsing table. Rows are indexed by non-terminals, columns
// by terminals (including the end marker). Each cell holds at most one rule.
// An empty cell denotes a syntax error at that position.
//
// A table is never changed after construction and may be shared by any number
// of parsers, running concurrently.
type Table struct {
	g      *Grammar
	matrix *sparse.IntMatrix // holds rule serials
	hash   string            // fingerprint of the grammar this table is built for
}

// BuildTable constructs the LL(1) parsing table for an analysed grammar.
// If the grammar is not LL(1), a *ConflictError is returned, describing the
// first cell claimed by two different rules. No partial table is returned.
func BuildTable(ga *LLAnalysis) (*Table, error) {
	return BuildTableFrom(ga.g, ga.first, ga.follow)
}

// BuildTableFrom constructs the LL(1) parsing table for grammar g, given its
// FIRST- and FOLLOW-sets.
//
// For every rule A → α, we compute S = FIRST(α). For every terminal a in S
// we enter the rule into cell [A, a]. If α is nullable, the rule is entered
// into cell [A, b] for every b in FOLLOW(A), including the end marker.
func BuildTableFrom(g *Grammar, first *FirstSets, follow *FollowSets) (*Table, error) {
	tracer().Debugf("=== build LL(1) table ============================================")
	t := &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(len(g.nonterminals), len(g.lookaheads), sparse.DefaultNullValue),
		hash:   g.hash,
	}
	for _, r := range g.rules {
		S := first.Sequence(r.rhs)
		tracer().Debugf("FIRST(%s) = %v", r.Body(), S)
		for _, a := range S.Terminals() {
			if err := t.enter(r.LHS, a, r); err != nil {
				return nil, err
			}
		}
		if S.HasEpsilon() {
			for _, b := range follow.sets[r.LHS.Value].Terminals() {
				if err := t.enter(r.LHS, b, r); err != nil {
					return nil, err
				}
			}
		}
	}
	tracer().Infof("LL(1) table for %s: %d x %d, %d entries", g.Name,
		t.matrix.M(), t.matrix.N(), t.matrix.ValueCount())
	return t, nil
}

// enter writes rule r into cell [A, a], checking for conflicts first.
func (t *Table) enter(A, a *Symbol, r *Rule) error {
	if v := t.matrix.Value(A.Value, a.Value); v != t.matrix.NullValue() {
		if int(v) == r.Serial {
			return nil
		}
		existing := t.g.rules[v]
		tracer().Errorf("conflict in table[%s, %s]: %s vs. %s", A, a, existing, r)
		return &ConflictError{
			NonTerminal: A,
			Terminal:    a,
			Existing:    existing,
			Incoming:    r,
		}
	}
	tracer().Debugf("table[%s, %s] = %s", A, a, r)
	t.matrix.Set(A.Value, a.Value, int32(r.Serial))
	return nil
}

// === Table Queries =========================================================

// Grammar returns the grammar this table is built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Cell returns the rule in cell [A, a], or nil if the cell is empty.
func (t *Table) Cell(A, a *Symbol) *Rule {
	if A == nil || a == nil || !A.IsNonTerminal() || !a.IsTerminal() {
		return nil
	}
	if A.Value >= t.matrix.M() || a.Value >= t.matrix.N() {
		return nil
	}
	v := t.matrix.Value(A.Value, a.Value)
	if v == t.matrix.NullValue() {
		return nil
	}
	return t.g.rules[v]
}

// Lookup returns the rule to expand non-terminal A with, given a lookahead
// token type. It returns nil if there is no such rule, including the case of
// a token type unknown to the grammar.
func (t *Table) Lookup(A *Symbol, tt lltab.TokType) *Rule {
	return t.Cell(A, t.g.Terminal(string(tt)))
}

// Expected returns the terminals for which row A of the table holds an entry,
// in order of symbol value.
func (t *Table) Expected(A *Symbol) []*Symbol {
	if A == nil || !A.IsNonTerminal() || A.Value >= t.matrix.M() {
		return nil
	}
	var exp []*Symbol
	t.matrix.Row(A.Value, func(j int, v int32) {
		exp = append(exp, t.g.lookaheads[j])
	})
	return exp
}

// EntryCount returns the number of non-empty cells.
func (t *Table) EntryCount() int {
	return t.matrix.ValueCount()
}

// GrammarHash returns the fingerprint of the grammar the table has been built for.
func (t *Table) GrammarHash() string {
	return t.hash
}

// EachCell calls f for every non-empty cell, row by row.
func (t *Table) EachCell(f func(A, a *Symbol, r *Rule)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(t.g.nonterminals[i], t.g.lookaheads[j], t.g.rules[v])
	})
}

// Dump is a debugging helper, listing all non-empty cells to the trace.
func (t *Table) Dump() {
	tracer().Debugf("--- LL(1) table for %s -------------------------", t.g.Name)
	t.EachCell(func(A, a *Symbol, r *Rule) {
		tracer().Debugf("[%s, %s] = %s", A, a, r)
	})
	tracer().Debugf("-------------------------------------------------------")
}

// === Export ================================================================

// TableAsHTML exports a parsing table in HTML-format. Rows are non-terminals,
// columns are terminals plus the end marker.
func TableAsHTML(t *Table, w io.Writer) error {
	ew := &errWriter{w: w}
	ew.print("<html><body>\n")
	ew.print(fmt.Sprintf("<p>LL(1) table for %s, %d entries</p>\n", t.g.Name, t.EntryCount()))
	ew.print("<table border=1 cellspacing=0 cellpadding=5>\n")
	ew.print("<tr bgcolor=#cccccc><td></td>")
	for _, a := range t.g.lookaheads {
		ew.print(fmt.Sprintf("<td>%s</td>", html.EscapeString(a.Name)))
	}
	ew.print("</tr>\n")
	var td string // table cell
	for _, A := range t.g.nonterminals {
		ew.print(fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(A.Name)))
		for _, a := range t.g.lookaheads {
			if r := t.Cell(A, a); r == nil {
				td = "&nbsp;"
			} else {
				td = html.EscapeString(r.Body())
			}
			ew.print("<td>")
			ew.print(td)
			ew.print("</td>\n")
		}
		ew.print("</tr>\n")
	}
	ew.print("</table></body></html>\n")
	return ew.err
}

// errWriter remembers the first write error and skips subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
