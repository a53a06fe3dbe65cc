package ll

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lltab"
)

// Reserved symbol names.
const (
	EndMarkerName = "$"      // end of input; must not appear in rule bodies
	EpsilonName   = "ε"      // denotes the empty word
	LambdaName    = "lambda" // alternative spelling for ε in grammar definitions
)

// --- Symbols ---------------------------------------------------------------

// SymbolKind tags a grammar symbol.
type SymbolKind uint8

// Kinds of grammar symbols.
const (
	TerminalSymbol SymbolKind = iota + 1
	NonTerminalSymbol
	EpsilonSymbol
	EndMarkerSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalSymbol:
		return "terminal"
	case NonTerminalSymbol:
		return "non-terminal"
	case EpsilonSymbol:
		return "epsilon"
	case EndMarkerSymbol:
		return "end-marker"
	}
	return "<unknown symbol kind>"
}

// Symbol is a symbol of a grammar. Symbols are interned by a grammar, i.e.
// there is exactly one instance per name and clients may compare symbols
// by pointer.
//
// Value is a dense index within the symbol's category: terminals are numbered
// in lexical order of their names, followed by the end marker; non-terminals
// are numbered in order of declaration. Epsilon has value -1.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value int
}

// IsTerminal returns true for terminals and for the end marker, which behaves like
// a terminal for parsing purposes.
func (A *Symbol) IsTerminal() bool {
	return A.Kind == TerminalSymbol || A.Kind == EndMarkerSymbol
}

// IsNonTerminal is a predicate.
func (A *Symbol) IsNonTerminal() bool {
	return A.Kind == NonTerminalSymbol
}

// IsEpsilon is a predicate.
func (A *Symbol) IsEpsilon() bool {
	return A.Kind == EpsilonSymbol
}

// IsEOF is a predicate: is A the end marker '$'?
func (A *Symbol) IsEOF() bool {
	return A.Kind == EndMarkerSymbol
}

// TokenType returns the token type matching a terminal symbol.
func (A *Symbol) TokenType() lltab.TokType {
	return lltab.TokType(A.Name)
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a production of a grammar. An epsilon-production has an empty RHS.
type Rule struct {
	Serial int     // ordinal number of this rule in the grammar
	LHS    *Symbol // the non-terminal this rule belongs to
	rhs    []*Symbol
}

// RHS returns the body of a rule. Clients must not modify the returned slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of symbols in the body of a rule.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon is a predicate: is r an epsilon-production?
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// Body returns the RHS of a rule as a string, with epsilon printed as 'ε'.
func (r *Rule) Body() string {
	if r.IsEpsilon() {
		return EpsilonName
	}
	names := make([]string, len(r.rhs))
	for i, A := range r.rhs {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s → %s", r.LHS.Name, r.Body())
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an immutable context-free grammar. Construct grammars with a
// GrammarBuilder or from a definition (see FromDefinition).
// A grammar is never changed after construction and may be shared freely.
type Grammar struct {
	Name         string
	start        *Symbol
	rules        []*Rule
	terminals    []*Symbol // terminals, sorted by name
	lookaheads   []*Symbol // terminals plus end marker, indexed by symbol value
	nonterminals []*Symbol // non-terminals, in order of declaration
	byLHS        [][]*Rule // rules indexed by LHS value
	symbols      map[string]*Symbol
	eof          *Symbol
	epsilon      *Symbol
	hash         string
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// EOF returns the end marker '$'.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Epsilon returns the epsilon symbol of the grammar.
func (g *Grammar) Epsilon() *Symbol {
	return g.epsilon
}

// Rule returns rule no. i, or nil.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rules returns all rules in order of definition.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// RulesFor returns the alternatives of non-terminal A, in order of definition.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	if A == nil || !A.IsNonTerminal() || A.Value >= len(g.byLHS) {
		return nil
	}
	return append([]*Rule(nil), g.byLHS[A.Value]...)
}

// Terminals returns all terminals of the grammar, sorted by name. The end marker
// is not included.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// Lookaheads returns all symbols which may occur as a lookahead, i.e. all
// terminals plus the end marker. The slice is indexed by symbol value.
func (g *Grammar) Lookaheads() []*Symbol {
	return append([]*Symbol(nil), g.lookaheads...)
}

// NonTerminals returns all non-terminals in order of declaration.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// SymbolByName returns the symbol for a name, or nil. "$" returns the end marker,
// "ε" and "lambda" return epsilon.
func (g *Grammar) SymbolByName(name string) *Symbol {
	if name == LambdaName {
		return g.epsilon
	}
	return g.symbols[name]
}

// Terminal returns the terminal (or end marker) for a name, or nil.
func (g *Grammar) Terminal(name string) *Symbol {
	if A := g.symbols[name]; A != nil && A.IsTerminal() {
		return A
	}
	return nil
}

// NonTerminal returns the non-terminal for a name, or nil.
func (g *Grammar) NonTerminal(name string) *Symbol {
	if A := g.symbols[name]; A != nil && A.IsNonTerminal() {
		return A
	}
	return nil
}

// EachNonTerminal calls f for every non-terminal, in order of declaration.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.nonterminals {
		f(A)
	}
}

// EachTerminal calls f for every terminal, in order of symbol value.
// The end marker is not included.
func (g *Grammar) EachTerminal(f func(a *Symbol)) {
	for _, a := range g.terminals {
		f(a)
	}
}

// Hash returns a fingerprint of the grammar. Two grammars with identical start
// symbol, terminals and rules have identical fingerprints.
func (g *Grammar) Hash() string {
	return g.hash
}

// Dump is a debugging helper, listing all rules to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol = %s, fingerprint = %s", g.start, g.hash)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return b.String()
}

// grammarDigest is the structure fingerprinted by structhash.
type grammarDigest struct {
	Start     string
	Terminals []string
	Rules     []string
}

func fingerprint(g *Grammar) string {
	d := grammarDigest{Start: g.start.Name}
	for _, a := range g.terminals {
		d.Terminals = append(d.Terminals, a.Name)
	}
	for _, r := range g.rules {
		d.Rules = append(d.Rules, r.String())
	}
	h, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint grammar %s: %v", g.Name, err)
		return ""
	}
	return h
}
