// Package main provides the compiler entry point: a small cobra-based CLI
// that drives the lexer, the parser, and the semantic analysis core over a
// source file and reports the outcome.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hassan/cc-semant/internal/config"
	"github.com/hassan/cc-semant/internal/lexer"
	"github.com/hassan/cc-semant/internal/parser"
	"github.com/hassan/cc-semant/internal/semantic"
)

var log = logrus.StandardLogger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "compiler",
		Short: "Run the semantic analysis core over a C source file",
	}
	root.AddCommand(newCheckCmd(), newDumpSymbolsCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and semantically analyze a source file, reporting the first error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := analyzeFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("OK: %s (run %s, %d symbols)\n", args[0], analyzer.RunID(), analyzer.Symbols.Len())
			return nil
		},
	}
}

func newDumpSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-symbols <file>",
		Short: "Analyze a source file and print its global symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := analyzeFile(args[0])
			if err != nil {
				return err
			}
			for _, name := range analyzer.Symbols.SortedNames() {
				sym, _ := analyzer.Symbols.Get(name)
				fmt.Printf("%s: %s %s\n", name, sym.Type, sym.Attrs)
			}
			return nil
		},
	}
}

// analyzeFile runs the full lexer -> parser -> semantic.Analyze pipeline
// over filename, configured from the process environment
// (internal/config).
func analyzeFile(filename string) (*semantic.Analyzer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	lex := lexer.New(string(source), filename)
	p := parser.New(lex)
	program, parseErrs := p.ParseProgram()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			log.WithError(e).Error("parse error")
		}
		return nil, fmt.Errorf("%d parse error(s) in %s", len(parseErrs), filename)
	}

	analyzer := semantic.New(cfg)
	if err := analyzer.Analyze(program); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return analyzer, nil
}
