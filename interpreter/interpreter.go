// Package interpreter implements Marble's call-by-need evaluator: a
// non-forcing evaluate over the expression tree, and a strict force that
// drives thunks to a memoised result.
package interpreter

import (
	"fmt"
	"io"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/env"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/value"
)

// ImportResolver resolves a logical import name to Marble source bytes,
// for the optional Import builtin. DirResolver and the embedded prelude
// library (see package marble) are the two concrete implementations.
type ImportResolver interface {
	Resolve(name string) ([]byte, bool)
}

// Interpreter walks a compiled expression tree, writing Print/PrintLn
// output to Stdout and resolving Import calls through Resolver.
type Interpreter struct {
	Stdout   io.Writer
	Resolver ImportResolver

	// run is set by the root package so Import can recompile and
	// re-execute an imported file without this package importing the
	// compiler.
	run func(src []byte, interp *Interpreter) (*value.Value, *merr.Error)
}

// New returns an Interpreter writing to stdout and resolving imports via
// resolver. run is invoked for Import: it must compile and execute src
// with a *fresh* Interpreter sharing stdout and resolver.
func New(stdout io.Writer, resolver ImportResolver, run func([]byte, *Interpreter) (*value.Value, *merr.Error)) *Interpreter {
	return &Interpreter{Stdout: stdout, Resolver: resolver, run: run}
}

// Run evaluates program to a fully forced value: evaluate(program, root) then force.
func (in *Interpreter) Run(program ast.Expr, root *value.Env) (*value.Value, *merr.Error) {
	v, err := in.evaluate(program, root)
	if err != nil {
		return nil, err
	}
	return in.force(v)
}

// evaluate never forces: Call defers both callee and argument behind a
// Lazy thunk, Let defers its initialiser behind a self-referential Lazy
// thunk, and everything else has an immediate value.
func (in *Interpreter) evaluate(expr ast.Expr, env *value.Env) (*value.Value, *merr.Error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return env.Find(e.Depth), nil

	case *ast.Value:
		payload, ok := e.Payload.(*value.Value)
		if !ok {
			panic("interpreter: ast.Value payload is not a *value.Value")
		}
		return payload, nil

	case *ast.Fn:
		return value.NewFn(e.Body, env), nil

	case *ast.Call:
		return value.NewLazy(value.NewThunk(e, env)), nil

	case *ast.Let:
		cell := &value.Value{Kind: value.Lazy}
		letEnv := extend(env, cell)
		cell.Thunk = value.NewThunk(e.Value, letEnv)
		return in.evaluate(e.Body, letEnv)

	default:
		panic(fmt.Sprintf("interpreter: unhandled expr node %T", expr))
	}
}

func extend(parent *value.Env, v *value.Value) *value.Env {
	return env.Extend(parent, v)
}

// force drives a value to a non-Lazy result, memoising as it goes.
// Forcing a value that is already forced (or was never Lazy) is the
// identity, by construction: only Call/Let evaluation ever produces a
// Lazy value, and Install/the self-reference guard ensure each thunk
// commits to exactly one result.
func (in *Interpreter) force(v *value.Value) (*value.Value, *merr.Error) {
	if v.Kind != value.Lazy {
		return v, nil
	}

	thunk := v.Thunk
	computed, selfReferencing := thunk.BeginForce()
	if selfReferencing {
		deferredExpr, _ := thunk.Expr()
		return nil, merr.New(merr.Runtime, merr.ValueDependsOnItself, deferredExpr.Origin())
	}
	if computed != nil {
		return computed, nil
	}

	result, err := in.resolveThunk(thunk)
	if err != nil {
		return nil, err
	}
	thunk.Install(result)
	return result, nil
}

// resolveThunk performs the actual work a Lazy value defers: application
// for a Call-shaped thunk (the five-step rule from the interpreter's
// spec), or a plain evaluate+force for any other deferred expression
// (currently only a Let's self-referential initialiser).
func (in *Interpreter) resolveThunk(thunk *value.Thunk) (*value.Value, *merr.Error) {
	expr, env := thunk.Expr()

	call, isCall := expr.(*ast.Call)
	if !isCall {
		v, err := in.evaluate(expr, env)
		if err != nil {
			return nil, err
		}
		return in.force(v)
	}

	calleeV, err := in.evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	calleeV, err = in.force(calleeV)
	if err != nil {
		return nil, err
	}

	argV, err := in.evaluate(call.Arg, env)
	if err != nil {
		return nil, err
	}

	switch calleeV.Kind {
	case value.Fn:
		bodyEnv := extend(calleeV.FnEnv, argV)
		result, err := in.evaluate(calleeV.FnBody, bodyEnv)
		if err != nil {
			return nil, err
		}
		return in.force(result)

	case value.Builtin:
		forcedArg, err := in.force(argV)
		if err != nil {
			return nil, err
		}
		result, err := in.applyBuiltin(calleeV.Prim, forcedArg, call.Origin())
		if err != nil {
			return nil, err
		}
		return in.force(result)

	default:
		return nil, merr.New(merr.Runtime, merr.ValueNotCallable, call.Callee.Origin(), calleeV.TypeName())
	}
}
