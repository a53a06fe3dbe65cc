/*
Package parser provides a table-driven LL(1)-parser. Clients have to use the
tools of package ll to prepare the parsing table. The parser utilizes this
table to create a leftmost derivation for a given input, provided through a
scanner interface.

The parser is a deterministic stack automaton. It never backtracks and never
looks further ahead than one token. It halts on the first syntax error; no
error recovery is attempted.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := ll.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("id").End()  // Var  --> Sign id
	b.LHS("Sign").T("+").End()            // Sign --> +
	b.LHS("Sign").T("-").End()            // Sign --> -
	b.LHS("Sign").Epsilon()               // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	table, err := ll.BuildTable(ll.Analysis(g))
	if err != nil { ... }  // grammar is not LL(1)

Finally parse some input:

	p := parser.NewParser(table)
	scan := scanner.GoTokenizer("input", strings.NewReader("+a"))
	accepted, err := p.Parse(scan, nil)

The second argument to Parse is an Observer, which receives an event for
every step of the automaton. Observers are used for tracing, testing and
for presenting a parse to users.

	rec := parser.NewRecorder()
	accepted, err := p.Parse(scan, rec)
	for _, e := range rec.Events() { … }

A parser holds no state between runs. It is safe to use a single parser
(and the table it wraps) from multiple goroutines concurrently, as long as
every run gets its own tokenizer and observer.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.parser")
}
