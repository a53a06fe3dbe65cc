package ll

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// GrammarBuilder is a builder type for grammars. Clients add rules, consisting
// of non-terminal symbols and terminals. Grammars may contain epsilon-productions.
//
//    b := ll.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()  // S  ->  A a
//    b.LHS("A").T("b").End()         // A  ->  b
//    b.LHS("A").Epsilon()            // A  ->
//    g, err := b.Grammar()
//
// The start symbol is the LHS of the first rule, unless set explicitly.
// If terminals are declared with Terminals(…), every terminal used in a rule
// has to be declared.
type GrammarBuilder struct {
	name     string
	start    string
	drafts   []*draft
	declared []string
	hollow   []string // non-terminals defined without any production
}

type draft struct {
	lhs string
	rhs []symRef
}

// symRef is an unresolved reference to a symbol. Kind 0 means 'infer from
// context', i.e. a non-terminal if the name occurs as a LHS, a terminal otherwise.
type symRef struct {
	name string
	kind SymbolKind
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// StartSymbol sets the start symbol of the grammar.
func (b *GrammarBuilder) StartSymbol(name string) *GrammarBuilder {
	b.start = name
	return b
}

// Terminals declares terminal symbols. Declared terminals are part of the
// grammar's alphabet even if no rule uses them.
func (b *GrammarBuilder) Terminals(names ...string) *GrammarBuilder {
	b.declared = append(b.declared, names...)
	return b
}

// LHS starts a new rule for non-terminal name.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, d: &draft{lhs: name}}
}

// RuleBuilder is a builder type for a single rule, created by GrammarBuilder.LHS.
type RuleBuilder struct {
	b *GrammarBuilder
	d *draft
}

// N appends a non-terminal to the RHS of a rule.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.d.rhs = append(rb.d.rhs, symRef{name: name, kind: NonTerminalSymbol})
	return rb
}

// T appends a terminal to the RHS of a rule.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.d.rhs = append(rb.d.rhs, symRef{name: name, kind: TerminalSymbol})
	return rb
}

// sym appends a symbol whose category will be inferred.
func (rb *RuleBuilder) sym(name string) *RuleBuilder {
	rb.d.rhs = append(rb.d.rhs, symRef{name: name})
	return rb
}

// End closes a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.b.drafts = append(rb.b.drafts, rb.d)
	return rb.b
}

// Epsilon closes a rule as an epsilon-production. It is an error to call
// Epsilon after symbols have been appended to the rule.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.d.rhs = append(rb.d.rhs, symRef{name: EpsilonName, kind: EpsilonSymbol})
	return rb.End()
}

// NonTermDef defines the productions of a non-terminal. Every production is a
// list of symbol names. Names which are not defined as non-terminals denote
// terminals. "lambda" (or "ε") denotes an epsilon-production, as does an empty list.
type NonTermDef struct {
	Name        string
	Productions [][]string
}

// FromDefinition creates a grammar from a list of non-terminal definitions.
// If start is empty, the first non-terminal defined is the start symbol.
// If terminals are given, every terminal used in a production has to be one of them.
func FromDefinition(name, start string, defs []NonTermDef, terminals ...string) (*Grammar, error) {
	b := NewGrammarBuilder(name)
	b.StartSymbol(start)
	b.Terminals(terminals...)
	for _, def := range defs {
		if len(def.Productions) == 0 {
			b.hollow = append(b.hollow, def.Name)
			continue
		}
		for _, p := range def.Productions {
			rb := b.LHS(def.Name)
			for _, s := range p {
				rb.sym(s)
			}
			rb.End()
		}
	}
	return b.Grammar()
}

// Grammar returns the grammar built so far. If the rules do not form a valid
// grammar, a *GrammarError is returned, listing all problems found.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	v := &validator{name: b.name, seen: make(map[Issue]bool)}
	if len(b.drafts) == 0 {
		v.report(EmptyGrammar, "", nil, "grammar has no rules")
		return nil, v.err()
	}
	// collect non-terminals in order of first appearance as a LHS
	ntIndex := make(map[string]int)
	var ntNames []string
	for _, d := range b.drafts {
		if d.lhs == "" {
			v.report(EmptyName, "", d, "rule without a LHS")
			continue
		}
		if isReserved(d.lhs) {
			v.report(ReservedSymbol, d.lhs, d, "reserved symbol %q used as a non-terminal", d.lhs)
			continue
		}
		if _, ok := ntIndex[d.lhs]; !ok {
			ntIndex[d.lhs] = len(ntNames)
			ntNames = append(ntNames, d.lhs)
		}
	}
	for _, n := range b.hollow {
		v.report(NoProductions, n, nil, "non-terminal %s has no productions", n)
	}
	declared := make(map[string]bool)
	for _, n := range b.declared {
		if isReserved(n) {
			v.report(ReservedSymbol, n, nil, "reserved symbol %q declared as a terminal", n)
		} else if _, ok := ntIndex[n]; ok {
			v.report(SymbolClash, n, nil, "%s declared as a terminal, but defined as a non-terminal", n)
		}
		declared[n] = true
	}
	strict := len(b.declared) > 0
	// resolve the bodies of the rules
	termNames := make(map[string]bool)
	for n := range declared {
		if _, ok := ntIndex[n]; !ok && !isReserved(n) {
			termNames[n] = true
		}
	}
	bodies := make([][]symRef, len(b.drafts))
	for i, d := range b.drafts {
		eps := false
		for _, ref := range d.rhs {
			_, isNT := ntIndex[ref.name]
			switch {
			case ref.kind == EpsilonSymbol || ref.kind == 0 && isEpsilonName(ref.name):
				eps = true
				continue
			case ref.name == "":
				v.report(EmptyName, "", d, "empty symbol name in rule for %s", d.lhs)
				continue
			case isReserved(ref.name):
				v.report(ReservedSymbol, ref.name, d, "reserved symbol %q used in rule for %s", ref.name, d.lhs)
				continue
			case ref.kind == NonTerminalSymbol && !isNT:
				v.report(UndefinedNonTerminal, ref.name, d, "non-terminal %s is used, but has no productions", ref.name)
				continue
			case ref.kind == TerminalSymbol && isNT:
				v.report(SymbolClash, ref.name, d, "%s used as a terminal, but defined as a non-terminal", ref.name)
				continue
			case isNT:
				ref.kind = NonTerminalSymbol
			default:
				ref.kind = TerminalSymbol
				if strict && !declared[ref.name] {
					v.report(UndeclaredTerminal, ref.name, d, "terminal %s is not declared", ref.name)
					continue
				}
				termNames[ref.name] = true
			}
			bodies[i] = append(bodies[i], ref)
		}
		if eps && len(d.rhs) > 1 {
			v.report(MisplacedEpsilon, EpsilonName, d, "epsilon mixed with other symbols in rule for %s", d.lhs)
		}
	}
	start := b.start
	if start == "" {
		start = b.drafts[0].lhs
	}
	if _, ok := ntIndex[start]; !ok {
		v.report(UndefinedStart, start, nil, "start symbol %s has no productions", start)
	}
	if v.failed() {
		return nil, v.err()
	}
	g := makeGrammar(b.name, ntNames, termNames)
	g.start = g.symbols[start]
	for i, d := range b.drafts {
		r := &Rule{Serial: i, LHS: g.symbols[d.lhs]}
		for _, ref := range bodies[i] {
			r.rhs = append(r.rhs, g.symbols[ref.name])
		}
		g.rules = append(g.rules, r)
		g.byLHS[r.LHS.Value] = append(g.byLHS[r.LHS.Value], r)
	}
	v.checkDuplicates(g)
	v.checkReachability(g)
	if v.failed() {
		return nil, v.err()
	}
	g.hash = fingerprint(g)
	tracer().Infof("grammar %s: %d rules, %d non-terminals, %d terminals",
		g.Name, len(g.rules), len(g.nonterminals), len(g.terminals))
	return g, nil
}

// makeGrammar creates an empty grammar with all symbols interned.
func makeGrammar(name string, ntNames []string, termNames map[string]bool) *Grammar {
	g := &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
	}
	names := make([]string, 0, len(termNames))
	for n := range termNames {
		names = append(names, n)
	}
	slices.Sort(names)
	for i, n := range names {
		a := &Symbol{Name: n, Kind: TerminalSymbol, Value: i}
		g.terminals = append(g.terminals, a)
		g.symbols[n] = a
	}
	g.eof = &Symbol{Name: EndMarkerName, Kind: EndMarkerSymbol, Value: len(names)}
	g.symbols[EndMarkerName] = g.eof
	g.lookaheads = append(append(g.lookaheads, g.terminals...), g.eof)
	g.epsilon = &Symbol{Name: EpsilonName, Kind: EpsilonSymbol, Value: -1}
	g.symbols[EpsilonName] = g.epsilon
	for i, n := range ntNames {
		A := &Symbol{Name: n, Kind: NonTerminalSymbol, Value: i}
		g.nonterminals = append(g.nonterminals, A)
		g.symbols[n] = A
	}
	g.byLHS = make([][]*Rule, len(ntNames))
	return g
}

func isEpsilonName(name string) bool {
	return name == LambdaName || name == EpsilonName
}

func isReserved(name string) bool {
	return name == EndMarkerName || isEpsilonName(name)
}

// --- Validation ------------------------------------------------------------

type validator struct {
	name   string
	issues []Issue
	seen   map[Issue]bool
}

func (v *validator) report(kind IssueKind, sym string, d *draft, format string, args ...interface{}) {
	issue := Issue{Kind: kind, Symbol: sym}
	if d != nil {
		issue.Rule = d.lhs
	}
	if v.seen[issue] {
		return
	}
	v.seen[issue] = true
	issue.Message = fmt.Sprintf(format, args...)
	tracer().Debugf("grammar %s: %s", v.name, issue.Message)
	v.issues = append(v.issues, issue)
}

func (v *validator) failed() bool {
	return len(v.issues) > 0
}

func (v *validator) err() error {
	return &GrammarError{Grammar: v.name, Issues: v.issues}
}

func (v *validator) checkDuplicates(g *Grammar) {
	bodies := make(map[string]bool)
	for _, r := range g.rules {
		key := r.String()
		if bodies[key] {
			v.report(DuplicateRule, r.LHS.Name, &draft{lhs: r.LHS.Name},
				"rule %s defined more than once", r)
		}
		bodies[key] = true
	}
}

// checkReachability reports non-terminals which cannot be reached from the
// start symbol. Their productions would never take part in a derivation.
func (v *validator) checkReachability(g *Grammar) {
	reached := make([]bool, len(g.nonterminals))
	reached[g.start.Value] = true
	worklist := []*Symbol{g.start}
	for len(worklist) > 0 {
		A := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, r := range g.byLHS[A.Value] {
			for _, B := range r.rhs {
				if B.IsNonTerminal() && !reached[B.Value] {
					reached[B.Value] = true
					worklist = append(worklist, B)
				}
			}
		}
	}
	for _, A := range g.nonterminals {
		if !reached[A.Value] {
			v.report(UnreachableNonTerminal, A.Name, nil,
				"non-terminal %s is unreachable from start symbol %s", A, g.start)
		}
	}
}
