/*
Package ll implements prerequisites for LL(1) parsing: a grammar model,
static grammar analysis and the construction of LL(1) parsing tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S → A a
   1: A → B D
   2: B → b
   3: B → ε
   4: D → d
   5: D → ε

Alternatively, a grammar may be created from a list of definitions, mapping
non-terminal names to productions. Every name not defined as a non-terminal
denotes a terminal, and "lambda" denotes the empty word:

    g, err := ll.FromDefinition("G", "S", []ll.NonTermDef{
        {Name: "S", Productions: [][]string{{"A", "a"}}},
        {Name: "A", Productions: [][]string{{"b"}, {"lambda"}}},
    })

Malformed definitions (undefined symbols, orphan non-terminals, use of the
reserved end marker "$", …) are rejected with a *GrammarError, listing every
issue found.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which computes FIRST and
FOLLOW sets for the grammar. Both are computed as least fixed points, so
mutually recursive non-terminals need no special care.

    ga := ll.Analysis(g)  // analyser for grammar above
    g.EachNonTerminal(func(A *ll.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    })

    // Output:
    FIRST(S) = {a, b, d}
    FIRST(A) = {ε, b, d}
    FIRST(B) = {ε, b}
    FIRST(D) = {ε, d}

Parser Construction

Using grammar analysis as input, the LL(1) parsing table is constructed.
If two rules compete for the same cell of the table, the grammar is not
LL(1) and a *ConflictError is returned.

    table, err := ll.BuildTable(ga)

The table drives the parser of package ll/parser.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}
