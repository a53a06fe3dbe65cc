package main

import (
	"fmt"

	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/parser"
	"github.com/pterm/pterm"
)

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Success.Prefix = pterm.Prefix{
		Text:  "  OK",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
}

// --- Grammar ---------------------------------------------------------------

func grammarData(g *ll.Grammar) pterm.TableData {
	data := pterm.TableData{{"#", "LHS", "", "RHS"}}
	for _, r := range g.Rules() {
		data = append(data, []string{fmt.Sprintf("%d", r.Serial), r.LHS.Name, "→", r.Body()})
	}
	return data
}

func showGrammar(g *ll.Grammar) {
	pterm.Info.Println(fmt.Sprintf("Grammar %s, start symbol %s", g.Name, g.Start()))
	pterm.DefaultTable.WithHasHeader().WithData(grammarData(g)).Render()
	pterm.Info.Println("Fingerprint " + g.Hash())
}

// --- FIRST and FOLLOW ------------------------------------------------------

func setsData(ga *ll.LLAnalysis) pterm.TableData {
	data := pterm.TableData{{"Non-terminal", "Nullable", "FIRST", "FOLLOW"}}
	ga.Grammar().EachNonTerminal(func(A *ll.Symbol) {
		nullable := ""
		if ga.Nullable(A) {
			nullable = "yes"
		}
		data = append(data, []string{A.Name, nullable, ga.First(A).String(), ga.Follow(A).String()})
	})
	return data
}

func showSets(ga *ll.LLAnalysis) {
	pterm.DefaultTable.WithHasHeader().WithData(setsData(ga)).Render()
}

// --- Parsing table ---------------------------------------------------------

func tableData(t *ll.Table) pterm.TableData {
	g := t.Grammar()
	lookaheads := g.Lookaheads()
	header := []string{""}
	for _, a := range lookaheads {
		header = append(header, a.Name)
	}
	data := pterm.TableData{header}
	g.EachNonTerminal(func(A *ll.Symbol) {
		row := []string{A.Name}
		for _, a := range lookaheads {
			if r := t.Cell(A, a); r != nil {
				row = append(row, r.Body())
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	})
	return data
}

func showTable(t *ll.Table) {
	pterm.DefaultTable.WithHasHeader().WithData(tableData(t)).Render()
	pterm.Info.Println(fmt.Sprintf("%d entries", t.EntryCount()))
}

// --- Parser runs -----------------------------------------------------------

func traceData(events []parser.Event) pterm.TableData {
	data := pterm.TableData{{"Step", "Stack", "Lookahead", "Action"}}
	for _, e := range events {
		la := string(e.Lookahead.TokType())
		if lx := e.Lookahead.Lexeme(); lx != "" && lx != la {
			la = fmt.Sprintf("%s %q", la, lx)
		}
		var action string
		switch e.Action {
		case parser.Expand:
			action = e.Rule.String()
		case parser.Reject:
			action = "reject"
		default:
			action = e.Action.String()
		}
		data = append(data, []string{fmt.Sprintf("%d", e.Step), e.StackString(), la, action})
	}
	return data
}

func showTrace(events []parser.Event) {
	pterm.DefaultTable.WithHasHeader().WithData(traceData(events)).Render()
}

func showVerdict(name string, v parser.Verdict) {
	if v.Accepted {
		pterm.Success.Println(fmt.Sprintf("%s: input accepted", name))
		return
	}
	pterm.Error.Println(fmt.Sprintf("%s: %v", name, v.Err))
}

// derivationTree creates the leftmost derivation of a parse as a leveled
// list: every expansion is followed by the expansions and matches of the
// symbols of its RHS, one level deeper.
func derivationTree(events []parser.Event) pterm.LeveledList {
	var list pterm.LeveledList
	levels := []int{0, 0} // levels of the symbols on the parse stack: $ S
	for _, e := range events {
		if len(levels) == 0 {
			break
		}
		level := levels[len(levels)-1]
		switch e.Action {
		case parser.Expand:
			list = append(list, pterm.LeveledListItem{Level: level, Text: e.Rule.String()})
			levels = levels[:len(levels)-1]
			for range e.Rule.RHS() {
				levels = append(levels, level+1)
			}
		case parser.Match:
			list = append(list, pterm.LeveledListItem{Level: level, Text: e.Lookahead.Lexeme()})
			levels = levels[:len(levels)-1]
		}
	}
	return list
}

func showTree(events []parser.Event) {
	list := derivationTree(events)
	if len(list) == 0 {
		pterm.Info.Println("no derivation")
		return
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(list)).Render()
}
