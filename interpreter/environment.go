package interpreter

import (
	"fmt"
	"nilan/token"
)

// Environment binds variable names to values, with an optional parent for
// block scoping: VisitBlockStmt nests one of these per '{ }' the same way
// the compiler nests a locals scope per block.
type Environment struct {
	values map[string]any
	parent *Environment
}

func MakeEnvironment() *Environment {
	return &Environment{
		values: make(map[string]any),
	}
}

func MakeNestedEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]any),
		parent: parent,
	}
}

// set rebinds name in the nearest enclosing scope that already holds it,
// declaring it in this scope if none does — mirroring the compiler's
// implicit-declare-on-assign semantics rather than requiring a separate
// declaration statement.
func (env *Environment) set(name string, value any) {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name]; ok {
			e.values[name] = value
			return
		}
	}
	env.values[name] = value
}

// get resolves name by walking outward through enclosing scopes.
func (env *Environment) get(name token.Token) (any, error) {
	for e := env; e != nil; e = e.parent {
		if value, ok := e.values[name.Lexeme]; ok {
			return value, nil
		}
	}
	msg := fmt.Sprintf("undefined variable: %s", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}
