/*
Package gramfile reads and writes grammar definitions in TOML format.

A grammar file names the grammar, optionally its start symbol and its
terminals, and lists the productions of every non-terminal:

    name  = "Signed Variables"
    start = "Var"

    [[nonterminal]]
    name        = "Var"
    productions = [ "Sign id" ]

    [[nonterminal]]
    name        = "Sign"
    productions = [ "+", "-", "lambda" ]

Every production is a whitespace-separated list of symbol names. Names which
are not defined as non-terminals denote terminals; "lambda" denotes the empty
word. If no start symbol is given, the first non-terminal is the start symbol.
If terminals are given, every terminal used in a production has to be listed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gramfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lltab.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lltab.ll")
}

// Definition is the TOML representation of a grammar.
type Definition struct {
	Name         string        `toml:"name"`
	Start        string        `toml:"start,omitempty"`
	Terminals    []string      `toml:"terminals,omitempty"`
	NonTerminals []NonTerminal `toml:"nonterminal"`
}

// NonTerminal is the TOML representation of the productions of a non-terminal.
type NonTerminal struct {
	Name        string   `toml:"name"`
	Productions []string `toml:"productions"`
}

// Load reads a grammar from a TOML file.
func Load(path string) (*ll.Grammar, error) {
	var def Definition
	meta, err := toml.DecodeFile(path, &def)
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar file %s: %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		return nil, fmt.Errorf("unknown keys in grammar file %s: %v", path, meta.Undecoded())
	}
	if def.Name == "" {
		def.Name = path
	}
	tracer().Infof("loaded grammar definition %q from %s", def.Name, path)
	return def.Grammar()
}

// Parse reads a grammar from a string in TOML format.
func Parse(text string) (*ll.Grammar, error) {
	return Decode(strings.NewReader(text))
}

// Decode reads a grammar in TOML format from r.
func Decode(r io.Reader) (*ll.Grammar, error) {
	var def Definition
	meta, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, fmt.Errorf("cannot decode grammar: %w", err)
	}
	if len(meta.Undecoded()) > 0 {
		return nil, fmt.Errorf("unknown keys in grammar definition: %v", meta.Undecoded())
	}
	return def.Grammar()
}

// Grammar creates a grammar from a definition.
func (def *Definition) Grammar() (*ll.Grammar, error) {
	defs := make([]ll.NonTermDef, len(def.NonTerminals))
	for i, nt := range def.NonTerminals {
		defs[i].Name = nt.Name
		for _, p := range nt.Productions {
			defs[i].Productions = append(defs[i].Productions, strings.Fields(p))
		}
	}
	g, err := ll.FromDefinition(def.Name, def.Start, defs, def.Terminals...)
	if err != nil {
		return nil, fmt.Errorf("grammar definition %q: %w", def.Name, err)
	}
	return g, nil
}

// FromGrammar creates the definition of a grammar, suitable for Encode.
func FromGrammar(g *ll.Grammar) *Definition {
	def := &Definition{
		Name:  g.Name,
		Start: g.Start().Name,
	}
	for _, a := range g.Terminals() {
		def.Terminals = append(def.Terminals, a.Name)
	}
	g.EachNonTerminal(func(A *ll.Symbol) {
		nt := NonTerminal{Name: A.Name}
		for _, r := range g.RulesFor(A) {
			if r.IsEpsilon() {
				nt.Productions = append(nt.Productions, ll.LambdaName)
			} else {
				nt.Productions = append(nt.Productions, r.Body())
			}
		}
		def.NonTerminals = append(def.NonTerminals, nt)
	})
	return def
}

// Encode writes a grammar to w in TOML format.
func Encode(g *ll.Grammar, w io.Writer) error {
	return toml.NewEncoder(w).Encode(FromGrammar(g))
}

// --- Built-in grammars -----------------------------------------------------

// Expressions is the definition of a grammar for arithmetic expressions over
// identifiers and numbers. It is free of left recursion and LL(1).
const Expressions = `
name  = "Expressions"
start = "E"

[[nonterminal]]
name        = "E"
productions = [ "T EP" ]

[[nonterminal]]
name        = "EP"
productions = [ "+ T EP", "- T EP", "% T EP", "lambda" ]

[[nonterminal]]
name        = "T"
productions = [ "F TP" ]

[[nonterminal]]
name        = "TP"
productions = [ "* F TP", "/ F TP", "lambda" ]

[[nonterminal]]
name        = "F"
productions = [ "( E )", "id", "num" ]
`

// ExpressionGrammar returns the grammar of Expressions.
func ExpressionGrammar() *ll.Grammar {
	g, err := Parse(Expressions)
	if err != nil {
		panic(fmt.Sprintf("built-in expression grammar is malformed: %v", err))
	}
	return g
}
