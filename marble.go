// Package marble is the embeddable entry point to the language: compile
// source into an expression tree, or compile and run it end to end.
package marble

import (
	"io"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/compiler"
	"github.com/skx/marble/env"
	"github.com/skx/marble/interpreter"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/source"
	"github.com/skx/marble/value"
)

// Compile parses source into a closed, de Bruijn-indexed expression
// tree, with the standard prelude bindings already wrapped around it.
func Compile(src []byte) (ast.Expr, *merr.Error) {
	return compiler.Compile(source.New(src))
}

// Execute compiles and runs source to a fully forced final value.
// Import lookups first try resolver, falling back to the embedded
// prelude library (see Library); resolver may be nil, in which case only
// the embedded library is consulted. Imports from a directory go through
// a DirResolver passed as resolver.
func Execute(src []byte, stdout io.Writer, resolver interpreter.ImportResolver) (*value.Value, *merr.Error) {
	program, err := Compile(src)
	if err != nil {
		return nil, err
	}

	resolved := chainResolver{first: resolver, second: Library()}

	var run func([]byte, *interpreter.Interpreter) (*value.Value, *merr.Error)
	run = func(innerSrc []byte, interp *interpreter.Interpreter) (*value.Value, *merr.Error) {
		innerProgram, err := Compile(innerSrc)
		if err != nil {
			return nil, err
		}
		return interp.Run(innerProgram, env.Root[*value.Value]())
	}

	interp := interpreter.New(stdout, resolved, run)
	return interp.Run(program, env.Root[*value.Value]())
}
