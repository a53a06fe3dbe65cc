package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lltab/ll/parser"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object for interactive mode.
type Intp struct {
	session    *session
	repl       *readline.Instance
	lastEvents []parser.Event
}

func newIntp(s *session) (*Intp, error) {
	repl, err := readline.New("lltab> ")
	if err != nil {
		return nil, err
	}
	return &Intp{session: s, repl: repl}, nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line of input.
// Commands start with a colon. Eval returns true if the user asked to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.parse("input", line)
	}
	args := strings.Fields(line)
	s := intp.session
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":grammar":
		showGrammar(s.g)
	case ":sets":
		showSets(s.ga)
	case ":table":
		showTable(s.table)
	case ":tree":
		if intp.lastEvents == nil {
			return false, errors.New("nothing parsed yet")
		}
		showTree(intp.lastEvents)
	case ":file":
		if len(args) != 2 {
			return false, errors.New("usage: :file NAME")
		}
		path, err := findInputFile(args[1])
		if err != nil {
			return false, err
		}
		input, err := os.ReadFile(path)
		if err != nil {
			return false, err
		}
		return false, intp.parse(path, string(input))
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

// parse parses input and remembers the trace for command :tree. A rejected
// input is not an error of the REPL; the parser error has been shown already.
func (intp *Intp) parse(name, input string) error {
	verdict, events, err := intp.session.parse(name, input)
	if err != nil {
		return err
	}
	intp.lastEvents = events
	if !verdict.Accepted && !strings.Contains(input, "\n") {
		if pos := errorPosition(verdict.Err); !pos.IsNull() {
			pterm.Println(marker(input, pos.Column))
		}
	}
	return nil
}

// marker returns input with a second line pointing to column col.
func marker(input string, col int) string {
	if col < 0 {
		col = 0
	}
	if col > len(input) {
		col = len(input)
	}
	return "    " + input + "\n    " + strings.Repeat(" ", col) + "^"
}

// findInputFile locates an input file. If name has no extension and does not
// exist, ".java" is tried as an extension.
func findInputFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if filepath.Ext(name) == "" {
		alt := name + ".java"
		if _, err := os.Stat(alt); err == nil {
			tracer().Debugf("using input file %s", alt)
			return alt, nil
		}
	}
	return "", fmt.Errorf("input file not found: %s", name)
}
