package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"nilan/interpreter"
	"nilan/lexer"
	"nilan/parser"
)

// replCmd implements a line-at-a-time REPL over the reference
// tree-walking interpreter, kept as a quick diagnostic tool alongside the
// compiled pipeline's own "cRepl".
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start a REPL session (reference interpreter)" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session against the tree-walking reference
  interpreter.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func repl(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	treeWalker := interpreter.Make()

	for {
		fmt.Fprintf(out, ">>> ")
		scanned := scanner.Scan()
		if !scanned {
			return
		}
		line := scanner.Text()
		if line == "exit" {
			os.Exit(0)
		}

		tokens, err := lexer.New(line).Scan()
		if err != nil {
			reportError(err)
			continue
		}

		statements, errors := parser.Make(tokens).Parse()
		if len(errors) > 0 {
			for _, parseErr := range errors {
				reportError(parseErr)
			}
			continue
		}

		treeWalker.Interpret(statements)
	}
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\n\nWelcome to Nilan!")
	repl(os.Stdin, os.Stdout)
	return subcommands.ExitSuccess
}
