package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
)

// Action is the kind of step the parser performs.
type Action uint8

// Actions of the parser.
const (
	Match  Action = iota + 1 // terminal on top of stack matches lookahead
	Expand                   // non-terminal on top of stack is replaced by a rule's RHS
	Accept                   // end of input reached with empty stack
	Reject                   // syntax error
)

func (a Action) String() string {
	switch a {
	case Match:
		return "match"
	case Expand:
		return "expand"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	}
	return "<unknown action>"
}

// Event is a trace event, emitted for every step of the parser.
type Event struct {
	Step      int          // step number, starting at 1
	Stack     []*ll.Symbol // stack before the step, bottom first
	Lookahead lltab.Token  // current lookahead token
	Action    Action
	Rule      *ll.Rule // rule used for Expand
	Err       error    // syntax error for Reject
}

// StackString returns the stack as a space-separated list of symbols, bottom first.
func (e Event) StackString() string {
	return symbolNames(e.Stack)
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d: [%s] %s", e.Step, e.StackString(), e.Action)
	switch e.Action {
	case Match:
		fmt.Fprintf(&b, " %q", e.Lookahead.Lexeme())
	case Expand:
		fmt.Fprintf(&b, " %v", e.Rule)
	case Reject:
		fmt.Fprintf(&b, " %v", e.Err)
	}
	return b.String()
}

// Observer receives trace events from a parser.
type Observer interface {
	Step(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Step is part of the Observer interface.
func (f ObserverFunc) Step(e Event) {
	f(e)
}

// Recorder is an observer collecting all events of a parse.
type Recorder struct {
	events *arraylist.List
}

var _ Observer = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{events: arraylist.New()}
}

// Step is part of the Observer interface.
func (rec *Recorder) Step(e Event) {
	rec.events.Add(e)
}

// Size returns the number of events recorded.
func (rec *Recorder) Size() int {
	return rec.events.Size()
}

// Events returns all recorded events in order.
func (rec *Recorder) Events() []Event {
	events := make([]Event, 0, rec.events.Size())
	it := rec.events.Iterator()
	for it.Next() {
		events = append(events, it.Value().(Event))
	}
	return events
}

// Last returns the last event recorded. If no event has been recorded,
// the second return value is false.
func (rec *Recorder) Last() (Event, bool) {
	v, ok := rec.events.Get(rec.events.Size() - 1)
	if !ok {
		return Event{}, false
	}
	return v.(Event), true
}

// Reset clears the recorder.
func (rec *Recorder) Reset() {
	rec.events.Clear()
}

func symbolNames(syms []*ll.Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}
