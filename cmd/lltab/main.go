package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/lltab"
	"github.com/npillmayer/lltab/ll"
	"github.com/npillmayer/lltab/ll/gramfile"
	"github.com/npillmayer/lltab/ll/parser"
	"github.com/npillmayer/lltab/ll/scanner"
	"github.com/npillmayer/lltab/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// main() starts the lltab command. Sub-commands show the analysis of a
// grammar or parse input with an LL(1) parser for it.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			pterm.Error.Println(err.Error())
		}
		os.Exit(1)
	}
}

// errRejected signals that some input has not been accepted by the parser.
// The syntax errors have already been reported.
var errRejected = errors.New("input rejected")

// options holds the persistent flags of the root command.
type options struct {
	grammarFile string
	traceLevel  string
	lexer       string
}

// Names of the tokenizers to choose from.
const (
	lexMachine = "lexmachine"
	lexGo      = "go"
)

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "lltab",
		Short:         "lltab analyzes LL(1) grammars and parses input with them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.grammarFile, "grammar", "g", "",
		"grammar file in TOML format (default: built-in expression grammar)")
	rootCmd.PersistentFlags().StringVar(&opts.traceLevel, "trace", "Error",
		"trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().StringVar(&opts.lexer, "lexer", lexMachine,
		"tokenizer for input [lexmachine|go]")
	rootCmd.AddCommand(
		newGrammarCommand(opts),
		newSetsCommand(opts),
		newTableCommand(opts),
		newParseCommand(opts),
		newReplCommand(opts),
	)
	return rootCmd
}

func (opts *options) validate() error {
	if opts.lexer != lexMachine && opts.lexer != lexGo {
		return fmt.Errorf("unknown lexer %q, use %q or %q", opts.lexer, lexMachine, lexGo)
	}
	level := tracing.TraceLevelFromString(opts.traceLevel)
	for _, key := range []string{"lltab.cli", "lltab.ll", "lltab.parser", "lltab.scanner"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", opts.traceLevel)
	return nil
}

// --- Session ---------------------------------------------------------------

// session holds a grammar together with its analysis and, if the grammar is
// LL(1), its parsing table and a parser.
type session struct {
	opts   *options
	g      *ll.Grammar
	ga     *ll.LLAnalysis
	table  *ll.Table
	tabErr error // reason why there is no table
	parser *parser.Parser
	lm     *lexmach.LMAdapter
}

// loadSession loads the grammar and analyses it. A grammar which is not LL(1)
// is not an error at this point; the table error is kept for commands which
// need a parser.
func loadSession(opts *options) (*session, error) {
	s := &session{opts: opts}
	if opts.grammarFile == "" {
		s.g = gramfile.ExpressionGrammar()
	} else {
		g, err := gramfile.Load(opts.grammarFile)
		if err != nil {
			return nil, err
		}
		s.g = g
	}
	s.g.Dump() // only visible in debug mode
	s.ga = ll.Analysis(s.g)
	s.table, s.tabErr = ll.BuildTable(s.ga)
	if s.tabErr == nil {
		s.parser = parser.NewParser(s.table)
	}
	return s, nil
}

// requireParser returns an error if the grammar is not LL(1).
func (s *session) requireParser() error {
	if s.tabErr != nil {
		return fmt.Errorf("cannot create parser: %w", s.tabErr)
	}
	return nil
}

// tokenizer creates a tokenizer for input, as selected by flag --lexer.
func (s *session) tokenizer(name, input string) (scanner.Tokenizer, error) {
	var tok scanner.Tokenizer
	if s.opts.lexer == lexGo {
		tok = scanner.GoTokenizer(name, strings.NewReader(input))
	} else {
		if s.lm == nil {
			lm, err := lexmach.ExpressionLexer()
			if err != nil {
				return nil, err
			}
			s.lm = lm
		}
		sc, err := s.lm.Scanner(input)
		if err != nil {
			return nil, err
		}
		tok = sc
	}
	tok.SetErrorHandler(func(err error) {
		pterm.Warning.Println(fmt.Sprintf("%s: %v (skipped)", name, err))
	})
	return tok, nil
}

// parse parses input and shows the trace of the parser run and the verdict.
func (s *session) parse(name, input string) (parser.Verdict, []parser.Event, error) {
	if err := s.requireParser(); err != nil {
		return parser.Verdict{}, nil, err
	}
	tok, err := s.tokenizer(name, input)
	if err != nil {
		return parser.Verdict{}, nil, err
	}
	verdict, rec := s.parser.Run(tok)
	events := rec.Events()
	showTrace(events)
	showVerdict(name, verdict)
	if !verdict.Accepted {
		tracer().Infof("syntax error at %v", errorPosition(verdict.Err))
	}
	return verdict, events, nil
}

// errorPosition extracts the input position from a syntax error.
func errorPosition(err error) lltab.Position {
	var serr parser.SyntaxError
	if errors.As(err, &serr) {
		return serr.Position()
	}
	return lltab.Position{}
}
