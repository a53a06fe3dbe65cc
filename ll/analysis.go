package ll

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 5.5 LL(1) Parsing: First and Follow Sets.
//
// Both sets are computed as least fixed points: every set starts empty and
// only ever grows, bounded by the finite set of terminals (plus epsilon resp.
// the end marker). We therefore iterate full passes over all rules until a
// pass leaves every set unchanged. No ordering of non-terminals is assumed,
// so mutual and indirect recursion need no special treatment.

// === FIRST =================================================================

// FirstSets holds FIRST(A) for every non-terminal A of a grammar.
type FirstSets struct {
	g      *Grammar
	sets   []*TerminalSet // indexed by non-terminal value
	passes int
}

// ComputeFirstSets computes the FIRST-sets of all non-terminals of g.
func ComputeFirstSets(g *Grammar) *FirstSets {
	F := &FirstSets{
		g:    g,
		sets: make([]*TerminalSet, len(g.nonterminals)),
	}
	for i := range F.sets {
		F.sets[i] = newTerminalSet()
	}
	changed := true
	for changed {
		changed = false
		F.passes++
		for _, r := range g.rules {
			S := F.Sequence(r.rhs)
			if F.sets[r.LHS.Value].Union(S) {
				tracer().Debugf("FIRST(%s) += %v from %s", r.LHS, S, r)
				changed = true
			}
		}
	}
	tracer().Infof("FIRST-sets of %s stable after %d passes", g.Name, F.passes)
	return F
}

// Of returns FIRST(A). It includes the epsilon marker if A is nullable.
func (F *FirstSets) Of(A *Symbol) *TerminalSet {
	if A == nil || !A.IsNonTerminal() || A.Value >= len(F.sets) {
		return newTerminalSet()
	}
	return F.sets[A.Value].Copy()
}

// Passes returns the number of full passes it took to reach the fixed point.
func (F *FirstSets) Passes() int {
	return F.passes
}

// Sequence returns FIRST(seq) for a sequence of symbols: the set of terminals
// which may start a string derived from seq, plus the epsilon marker if seq
// can derive the empty string. The sequence is scanned from left to right:
// a terminal contributes itself and stops the scan; a non-terminal contributes
// its FIRST-set without epsilon and stops the scan unless it is nullable.
// If the scan runs off the end of seq, epsilon is included.
func (F *FirstSets) Sequence(seq []*Symbol) *TerminalSet {
	S := newTerminalSet()
	for _, A := range seq {
		switch A.Kind {
		case TerminalSymbol, EndMarkerSymbol:
			S.Add(A)
			return S
		case NonTerminalSymbol:
			fa := F.sets[A.Value]
			S.UnionWithoutEpsilon(fa)
			if !fa.HasEpsilon() {
				return S
			}
		}
	}
	S.Add(F.g.epsilon)
	return S
}

// === FOLLOW ================================================================

// FollowSets holds FOLLOW(A) for every non-terminal A of a grammar.
type FollowSets struct {
	g      *Grammar
	sets   []*TerminalSet // indexed by non-terminal value
	passes int
}

// ComputeFollowSets computes the FOLLOW-sets of all non-terminals of g,
// given the FIRST-sets for g. FOLLOW(start) contains the end marker.
//
// For every rule A → α and every non-terminal B at position i of α,
// with β being the remainder of α after B:
//
//    FOLLOW(B) ⊇ FIRST(β) \ {ε}
//    FOLLOW(B) ⊇ FOLLOW(A),  if β is empty or nullable
//
func ComputeFollowSets(g *Grammar, first *FirstSets) *FollowSets {
	FW := &FollowSets{
		g:    g,
		sets: make([]*TerminalSet, len(g.nonterminals)),
	}
	for i := range FW.sets {
		FW.sets[i] = newTerminalSet()
	}
	FW.sets[g.start.Value].Add(g.eof)
	changed := true
	for changed {
		changed = false
		FW.passes++
		for _, r := range g.rules {
			followA := FW.sets[r.LHS.Value]
			for i, B := range r.rhs {
				if !B.IsNonTerminal() {
					continue
				}
				followB := FW.sets[B.Value]
				beta := r.rhs[i+1:]
				inheritsA := len(beta) == 0
				if !inheritsA {
					fb := first.Sequence(beta)
					if followB.UnionWithoutEpsilon(fb) {
						tracer().Debugf("FOLLOW(%s) += FIRST(%v) from %s", B, beta, r)
						changed = true
					}
					inheritsA = fb.HasEpsilon()
				}
				if inheritsA && followB.Union(followA) {
					tracer().Debugf("FOLLOW(%s) += FOLLOW(%s) from %s", B, r.LHS, r)
					changed = true
				}
			}
		}
	}
	tracer().Infof("FOLLOW-sets of %s stable after %d passes", g.Name, FW.passes)
	return FW
}

// Of returns FOLLOW(A). It may include the end marker.
func (FW *FollowSets) Of(A *Symbol) *TerminalSet {
	if A == nil || !A.IsNonTerminal() || A.Value >= len(FW.sets) {
		return newTerminalSet()
	}
	return FW.sets[A.Value].Copy()
}

// Passes returns the number of full passes it took to reach the fixed point.
func (FW *FollowSets) Passes() int {
	return FW.passes
}

// === Grammar Analysis ======================================================

// LLAnalysis is the result of the static analysis of a grammar, i.e. its
// FIRST- and FOLLOW-sets. An analysis is immutable and may be shared.
type LLAnalysis struct {
	g      *Grammar
	first  *FirstSets
	follow *FollowSets
}

// Analysis computes FIRST- and FOLLOW-sets for grammar g.
func Analysis(g *Grammar) *LLAnalysis {
	ga := &LLAnalysis{g: g}
	ga.first = ComputeFirstSets(g)
	ga.follow = ComputeFollowSets(g, ga.first)
	return ga
}

// Grammar returns the grammar this analysis is about.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A) for a non-terminal A.
func (ga *LLAnalysis) First(A *Symbol) *TerminalSet {
	return ga.first.Of(A)
}

// Follow returns FOLLOW(A) for a non-terminal A.
func (ga *LLAnalysis) Follow(A *Symbol) *TerminalSet {
	return ga.follow.Of(A)
}

// FirstOfSequence returns FIRST(seq) for a sequence of symbols.
func (ga *LLAnalysis) FirstOfSequence(seq []*Symbol) *TerminalSet {
	return ga.first.Sequence(seq)
}

// Nullable is a predicate: may non-terminal A derive the empty string?
func (ga *LLAnalysis) Nullable(A *Symbol) bool {
	return A != nil && A.IsNonTerminal() && ga.first.sets[A.Value].HasEpsilon()
}

// FirstSets returns the FIRST-sets of the analysis.
func (ga *LLAnalysis) FirstSets() *FirstSets {
	return ga.first
}

// FollowSets returns the FOLLOW-sets of the analysis.
func (ga *LLAnalysis) FollowSets() *FollowSets {
	return ga.follow
}

// Dump is a debugging helper, listing FIRST- and FOLLOW-sets to the trace.
func (ga *LLAnalysis) Dump() {
	ga.g.EachNonTerminal(func(A *Symbol) {
		tracer().Debugf("FIRST(%s) = %v, FOLLOW(%s) = %v", A, ga.First(A), A, ga.Follow(A))
	})
}
