package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"nilan/interpreter"
	"nilan/lexer"
	"nilan/parser"
)

// runCmd executes a source file through the reference tree-walking
// interpreter. For anything beyond the diagnostic subset it supports
// (functions, structs, vectors, pointers), use runCompiledCmd instead.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute Nilan code from a source file (reference interpreter)" }
func (*runCmd) Usage() string {
	return `run:
  Execute Nilan code through the tree-walking reference interpreter.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "synapse: usage: file not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "synapse: usage: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}

	statements, errors := parser.Make(tokens).Parse()
	if len(errors) > 0 {
		for _, parseErr := range errors {
			reportError(parseErr)
		}
		return subcommands.ExitFailure
	}

	interpreter.Make().Interpret(statements)
	return subcommands.ExitSuccess
}
