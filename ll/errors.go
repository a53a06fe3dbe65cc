package ll

import (
	"fmt"
	"strings"
)

// --- Grammar validation ----------------------------------------------------

// IssueKind categorizes problems found while validating a grammar.
type IssueKind uint8

// Kinds of grammar issues.
const (
	EmptyGrammar           IssueKind = iota + 1 // no rules at all
	EmptyName                                   // symbol without a name
	ReservedSymbol                              // '$' or epsilon used as an ordinary symbol
	UndefinedStart                              // start symbol has no productions
	UndefinedNonTerminal                        // non-terminal referenced, but never defined
	NoProductions                               // non-terminal defined with an empty list of productions
	UndeclaredTerminal                          // terminal not in the declared alphabet
	SymbolClash                                 // name used as terminal and non-terminal
	MisplacedEpsilon                            // epsilon mixed with other symbols
	DuplicateRule                               // identical production defined twice
	UnreachableNonTerminal                      // orphan non-terminal, not reachable from start
)

// Issue is a single problem found in a grammar definition.
type Issue struct {
	Kind    IssueKind
	Symbol  string // offending symbol, if any
	Rule    string // LHS of the offending rule, if any
	Message string
}

func (i Issue) String() string {
	return i.Message
}

// GrammarError is returned when a grammar definition is malformed. It lists
// every issue found, in order of definition.
type GrammarError struct {
	Grammar string
	Issues  []Issue
}

func (e *GrammarError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("grammar %q is malformed: %s", e.Grammar, strings.Join(msgs, "; "))
}

// Has is a predicate: does the error contain an issue of kind k?
func (e *GrammarError) Has(k IssueKind) bool {
	for _, issue := range e.Issues {
		if issue.Kind == k {
			return true
		}
	}
	return false
}

// --- Table conflicts -------------------------------------------------------

// ConflictError is returned by the table builder if two different rules claim
// the same cell of the parsing table. It proves the grammar is not LL(1).
type ConflictError struct {
	NonTerminal *Symbol
	Terminal    *Symbol
	Existing    *Rule // rule already entered into the cell
	Incoming    *Rule // rule which would overwrite it
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar is not LL(1): conflict in table[%s, %s] between %s and %s",
		e.NonTerminal, e.Terminal, e.Existing, e.Incoming)
}
