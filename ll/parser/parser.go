package parser

import (
	"fmt"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/scanner"
)

// Parser is an LL(1)-parser type. Create and initialize one with parser.NewParser(...)
type Parser struct {
	G     *ll.Grammar
	table *ll.Table
}

// NewParser creates an LL(1) parser for a parsing table.
func NewParser(table *ll.Table) *Parser {
	p := &Parser{table: table}
	if table != nil {
		p.G = table.Grammar()
	}
	return p
}

// Table returns the parsing table of the parser.
func (p *Parser) Table() *ll.Table {
	return p.table
}

// run holds the state of a single parse. The stack is owned exclusively by
// one invocation of Parse.
type run struct {
	p     *Parser
	stack []*ll.Symbol // parser stack, TOS is last
	scan  scanner.Tokenizer
	obs   Observer
	la    lltab.Token // current lookahead
	step  int
}

// Parse starts a new parse, given a scanner tokenizing the input and an
// optional observer receiving trace events.
//
// The parser returns true if the input string has been accepted. Otherwise
// the error describes the first syntax error found; it is one of
// *UnexpectedTokenError, *NoProductionError or *InternalError.
func (p *Parser) Parse(scan scanner.Tokenizer, obs Observer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		tracer().Errorf("LL(1)-parser not initialized")
		return false, fmt.Errorf("LL(1)-parser not initialized")
	}
	if scan == nil {
		return false, fmt.Errorf("LL(1)-parser needs a tokenizer")
	}
	r := &run{
		p:     p,
		stack: make([]*ll.Symbol, 0, 64),
		scan:  scan,
		obs:   obs,
	}
	r.stack = append(r.stack, p.G.EOF(), p.G.Start()) // push $ S
	r.advance()
	for {
		r.step++
		tos := r.stack[len(r.stack)-1]
		tracer().Debugf("stack = %v, lookahead = %v", symbolNames(r.stack), r.la)
		switch {
		case tos.IsEOF() && r.isEOF():
			tracer().Infof("input accepted after %d steps", r.step)
			r.emit(Accept, nil, nil)
			return true, nil
		case tos.IsTerminal():
			if string(r.la.TokType()) != tos.Name {
				return r.reject(&UnexpectedTokenError{Expected: tos, Found: r.la})
			}
			r.emit(Match, nil, nil)
			r.pop()
			r.advance()
		case tos.IsNonTerminal():
			rule := p.table.Lookup(tos, r.la.TokType())
			if rule == nil {
				return r.reject(&NoProductionError{
					NonTerminal: tos,
					Found:       r.la,
					Expected:    p.table.Expected(tos),
				})
			}
			tracer().Debugf("expand %v", rule)
			r.emit(Expand, rule, nil)
			r.pop()
			rhs := rule.RHS()
			for i := len(rhs) - 1; i >= 0; i-- { // push RHS reversed
				r.stack = append(r.stack, rhs[i])
			}
		default:
			return r.reject(&InternalError{Symbol: tos, Found: r.la})
		}
	}
}

// advance reads the next lookahead token. A nil token is treated as the end
// of input.
func (r *run) advance() {
	r.la = r.scan.NextToken()
	if r.la == nil {
		r.la = scanner.EOFToken(lltab.Position{})
	}
	tracer().Debugf("got token %v from scanner", r.la)
}

func (r *run) isEOF() bool {
	return lltab.IsEOF(r.la)
}

func (r *run) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *run) reject(err error) (bool, error) {
	tracer().Infof("syntax error: %v", err)
	r.emit(Reject, nil, err)
	return false, err
}

// emit sends an event to the observer, if any. The stack snapshot is taken
// before the action is performed.
func (r *run) emit(action Action, rule *ll.Rule, err error) {
	if r.obs == nil {
		return
	}
	snapshot := make([]*ll.Symbol, len(r.stack))
	copy(snapshot, r.stack)
	r.obs.Step(Event{
		Step:      r.step,
		Stack:     snapshot,
		Lookahead: r.la,
		Action:    action,
		Rule:      rule,
		Err:       err,
	})
}

// Run parses the input delivered by scan and returns the verdict together with
// a recording of all the steps.
func (p *Parser) Run(scan scanner.Tokenizer) (Verdict, *Recorder) {
	rec := NewRecorder()
	accepted, err := p.Parse(scan, rec)
	return Verdict{Accepted: accepted, Err: err}, rec
}

// Verdict is the final record of a parse.
type Verdict struct {
	Accepted bool
	Err      error // nil if Accepted
}

func (v Verdict) String() string {
	if v.Accepted {
		return "accepted"
	}
	return fmt.Sprintf("rejected: %v", v.Err)
}
