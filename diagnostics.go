package main

import (
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/parser"
	"nilan/vm"
)

// reportError prints err in the "synapse: <kind>: <message>" form every
// driver command uses, so a lexing failure, a parse error, a compile-time
// SemanticError, and a vm.RuntimeError all surface through one format no
// matter which stage of the pipeline raised them.
func reportError(err error) {
	fmt.Fprintf(os.Stderr, "synapse: %s: %s\n", kindOf(err), messageOf(err))
}

func kindOf(err error) string {
	switch err.(type) {
	case compiler.SemanticError, compiler.DeveloperError:
		return "compiler"
	case vm.RuntimeError, vm.DeveloperError:
		return "vm"
	case parser.SyntaxError:
		return "parser"
	default:
		return "tokenizer"
	}
}

// messageOf strips each error type's own decorated Error() prefix (the
// emoji, the "SemanticError:"/"RuntimeError:" label) since reportError
// already supplies a uniform "synapse: <kind>:" prefix of its own.
func messageOf(err error) string {
	switch e := err.(type) {
	case compiler.SemanticError:
		return e.Message
	case compiler.DeveloperError:
		return e.Message
	case vm.RuntimeError:
		return e.Message
	case vm.DeveloperError:
		return e.Message
	case parser.SyntaxError:
		return e.Message
	default:
		return err.Error()
	}
}
