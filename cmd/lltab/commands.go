package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/lltab/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newGrammarCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "List the rules of the grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			showGrammar(s.g)
			return nil
		},
	}
}

func newSetsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "Show FIRST and FOLLOW sets of the non-terminals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			showSets(s.ga)
			pterm.Info.Println(fmt.Sprintf("FIRST sets stable after %d passes, FOLLOW sets after %d passes",
				s.ga.FirstSets().Passes(), s.ga.FollowSets().Passes()))
			return nil
		},
	}
}

func newTableCommand(opts *options) *cobra.Command {
	var htmlFile string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the LL(1) parsing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			if err = s.requireParser(); err != nil {
				return err
			}
			showTable(s.table)
			if htmlFile == "" {
				return nil
			}
			return writeHTML(s.table, htmlFile)
		},
	}
	cmd.Flags().StringVar(&htmlFile, "html", "", "write the table to an HTML file")
	return cmd
}

func writeHTML(t *ll.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = ll.TableAsHTML(t, f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	pterm.Info.Println("Table written to " + path)
	return nil
}

func newParseCommand(opts *options) *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse input files, showing every step of the parser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			rejected := 0
			for _, path := range args {
				input, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				verdict, events, err := s.parse(path, string(input))
				if err != nil {
					return err
				}
				if !verdict.Accepted {
					rejected++
				} else if tree {
					showTree(events)
				}
			}
			if rejected > 0 {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "show the derivation tree of accepted input")
	return cmd
}

func newReplCommand(opts *options) *cobra.Command {
	var initFile string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			if err = s.requireParser(); err != nil {
				return err
			}
			intp, err := newIntp(s)
			if err != nil {
				return err
			}
			defer intp.repl.Close()
			pterm.Info.Println("Welcome to lltab") // colored welcome message
			tracer().Infof("Quit with <ctrl>D or :quit")
			intp.loadInitFile(initFile)
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&initFile, "init", "", "file with lines to execute before going interactive")
	return cmd
}
