package main

import (
	"context"
	"flag"
	"fmt"
	"nilan/compiler"
	"nilan/lexer"
	"nilan/parser"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type emitBytecodeCmd struct {
	diassemble   bool
	dumpBytecode bool
	filePath     string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation from a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `nilan emit <file>`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.diassemble, "diassemble", true, "diassemble the bytecode and dump it to a text file.")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "Writes the disassembled bytecode to a .dnic file")
	f.StringVar(&cmd.filePath, "file path", "/", "The file path (without the .dnic extension) to write the diassembled bytecode to. If no file path is provided the file is named after the source file, with its extension replaced by .dnic.")
}

func (r *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "synapse: usage: file not provided\n")
		return subcommands.ExitUsageError
	}
	nilanFile := args[0]
	data, err := os.ReadFile(nilanFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "synapse: usage: failed to read file: %v\n", err.Error())
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	if err != nil {
		reportError(err)
		return subcommands.ExitFailure
	}

	statements, parseErrs := parser.Make(tokens).Parse()
	if len(parseErrs) > 0 {
		for _, pErr := range parseErrs {
			reportError(pErr)
		}
		return subcommands.ExitFailure
	}

	astCompiler := compiler.NewASTCompiler()
	bytecode, cErr := astCompiler.CompileAST(statements)
	if cErr != nil {
		reportError(cErr)
		return subcommands.ExitFailure
	}

	fileName := strings.Split(nilanFile, ".")[0]
	if r.filePath != "/" {
		fileName = r.filePath
	}

	if r.diassemble {
		if dErr := compiler.DumpBytecode(bytecode, fileName); dErr != nil {
			fmt.Fprintf(os.Stderr, "synapse: usage: bytecode disassemble error: %s\n", dErr.Error())
			return subcommands.ExitFailure
		}
	}

	if r.dumpBytecode {
		if err := compiler.DumpBytecode(bytecode, fileName); err != nil {
			fmt.Fprintf(os.Stderr, "synapse: usage: dump bytecode error: %s\n", err.Error())
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess

}
