package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/lexer"
	"nilan/parser"
	"nilan/vm"

	"github.com/google/subcommands"
)

// runCompiledCmd implements the runC command: it runs a source file through
// the lexer, parser, compiler and VM.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string     { return "runC" }
func (*runCompiledCmd) Synopsis() string { return "Execute Nilan code from a source file" }
func (*runCompiledCmd) Usage() string {
	return `runC:
  Execute Nilan code.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	astCompiler := compiler.NewASTCompiler()
	machine := vm.New()
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
	bytecode, err := astCompiler.CompileAST(statements)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}

	err = machine.Run(bytecode)
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
