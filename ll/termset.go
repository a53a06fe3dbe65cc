package ll

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// TerminalSet is a set of terminals, possibly including the end marker and
// the epsilon marker. FIRST- and FOLLOW-sets are terminal sets.
//
// Sets are ordered by symbol value, i.e. epsilon comes first, then terminals
// in lexical order and finally the end marker. Iteration order is therefore
// reproducible, which we rely upon for stable diagnostics.
type TerminalSet struct {
	set *treeset.Set
}

// We need this for the set of terminals. It sorts symbols by value.
func symbolComparator(s1, s2 interface{}) int {
	A := s1.(*Symbol)
	B := s2.(*Symbol)
	return utils.IntComparator(A.Value, B.Value)
}

func newTerminalSet() *TerminalSet {
	return &TerminalSet{set: treeset.NewWith(symbolComparator)}
}

// Add adds symbols to the set. Non-terminals are ignored.
func (S *TerminalSet) Add(syms ...*Symbol) {
	for _, A := range syms {
		if A != nil && !A.IsNonTerminal() {
			S.set.Add(A)
		}
	}
}

// Contains is a predicate.
func (S *TerminalSet) Contains(A *Symbol) bool {
	if A == nil || S == nil {
		return false
	}
	return S.set.Contains(A)
}

// HasEpsilon is a predicate: does S contain the epsilon marker?
func (S *TerminalSet) HasEpsilon() bool {
	if S == nil {
		return false
	}
	it := S.set.Iterator()
	if it.Next() { // epsilon sorts first
		return it.Value().(*Symbol).IsEpsilon()
	}
	return false
}

// Size returns the number of symbols in S, including the epsilon marker.
func (S *TerminalSet) Size() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Empty is a predicate.
func (S *TerminalSet) Empty() bool {
	return S.Size() == 0
}

// Symbols returns all symbols of S in order, including the epsilon marker.
func (S *TerminalSet) Symbols() []*Symbol {
	if S == nil {
		return nil
	}
	syms := make([]*Symbol, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(*Symbol))
	}
	return syms
}

// Terminals returns all symbols of S in order, except the epsilon marker.
func (S *TerminalSet) Terminals() []*Symbol {
	syms := S.Symbols()
	if len(syms) > 0 && syms[0].IsEpsilon() {
		return syms[1:]
	}
	return syms
}

// Names returns the names of all symbols in S, in order.
func (S *TerminalSet) Names() []string {
	syms := S.Symbols()
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return names
}

// Union adds all symbols of T to S. It returns true if S changed.
func (S *TerminalSet) Union(T *TerminalSet) bool {
	return S.union(T, true)
}

// UnionWithoutEpsilon adds all symbols of T, except epsilon, to S.
// It returns true if S changed.
func (S *TerminalSet) UnionWithoutEpsilon(T *TerminalSet) bool {
	return S.union(T, false)
}

func (S *TerminalSet) union(T *TerminalSet, withEpsilon bool) bool {
	if T == nil {
		return false
	}
	changed := false
	it := T.set.Iterator()
	for it.Next() {
		A := it.Value().(*Symbol)
		if A.IsEpsilon() && !withEpsilon {
			continue
		}
		if !S.set.Contains(A) {
			S.set.Add(A)
			changed = true
		}
	}
	return changed
}

// Copy returns a copy of S.
func (S *TerminalSet) Copy() *TerminalSet {
	C := newTerminalSet()
	C.union(S, true)
	return C
}

// Equals is a predicate: do S and T contain the same symbols?
func (S *TerminalSet) Equals(T *TerminalSet) bool {
	if S.Size() != T.Size() {
		return false
	}
	s, t := S.Symbols(), T.Symbols()
	for i := range s {
		if s[i].Value != t[i].Value {
			return false
		}
	}
	return true
}

// String returns a set representation like "{(, id, num}".
func (S *TerminalSet) String() string {
	return "{" + strings.Join(S.Names(), ", ") + "}"
}
