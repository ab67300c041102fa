// Package builtin constructs Marble's closed set of primitive operations
// and the Church-encoded prelude values built from them, ready to be
// spliced into a compiled program by the binding wrapper in package
// compiler.
package builtin

import (
	"sync"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/env"
	"github.com/skx/marble/token"
	"github.com/skx/marble/value"
)

// Binding pairs a prelude identifier with the value it resolves to.
type Binding struct {
	Name  string
	Value *value.Value
}

func synth() token.Token { return token.Synthetic() }

func ident(depth int) ast.Expr { return ast.NewIdentifier(depth, synth()) }
func fn(body ast.Expr) ast.Expr { return ast.NewFn(body, synth()) }
func call(callee, arg ast.Expr) ast.Expr { return ast.NewCall(callee, arg, synth()) }
func lit(v *value.Value) ast.Expr { return ast.NewValue(v, synth()) }

func rootEnv() *value.Env { return env.Root[*value.Value]() }

// closure builds a Value.Fn whose body is the given Expr, closing over the
// (empty) root environment — the shape every prelude primitive takes.
func closure(body ast.Expr) *value.Value {
	return value.NewFn(body, rootEnv())
}

var (
	preludeOnce sync.Once
	preludeVals struct {
		True, False, And, Or, Not, If *value.Value
		Unit                          *value.Value
		PrintLn, Print                *value.Value
		Is, IsNot                     *value.Value
		Add, Sub, Mul, Div            *value.Value
		Tuple, TFirst, TSecond        *value.Value
		Import                       *value.Value
	}
)

// initPrelude lazily builds the prelude constants once, matching the
// original implementation's process-wide lazy statics (spec.md §9: "cache
// them once at process start").
func initPrelude() {
	preludeOnce.Do(func() {
		p := &preludeVals

		// True = λa.λb.a ; False = λa.λb.b
		p.True = closure(fn(ident(1)))
		p.False = closure(fn(ident(0)))

		// Not p = λa.λb. p b a
		p.Not = closure(fn(fn(call(call(ident(2), ident(0)), ident(1)))))

		// If p a b = p a b
		p.If = closure(fn(fn(call(call(ident(2), ident(1)), ident(0)))))

		// Or a b = a a b
		p.Or = closure(fn(call(call(ident(1), ident(1)), ident(0))))

		// And a b = a b a
		p.And = closure(fn(call(call(ident(1), ident(0)), ident(1))))

		p.Unit = value.NewUnit()

		p.Print = value.NewBuiltin(value.BuiltIn{Kind: value.Print})
		p.PrintLn = value.NewBuiltin(value.BuiltIn{Kind: value.PrintLn})
		p.Is = value.NewBuiltin(value.BuiltIn{Kind: value.Is})
		p.IsNot = value.NewBuiltin(value.BuiltIn{Kind: value.IsNot})
		p.Add = value.NewBuiltin(value.BuiltIn{Kind: value.Add})
		p.Sub = value.NewBuiltin(value.BuiltIn{Kind: value.Sub})
		p.Mul = value.NewBuiltin(value.BuiltIn{Kind: value.Mul})
		p.Div = value.NewBuiltin(value.BuiltIn{Kind: value.Div})
		p.Import = value.NewBuiltin(value.BuiltIn{Kind: value.Import})

		// Tuple a b s = s a b ; the standard Church pair.
		p.Tuple = closure(fn(fn(call(call(ident(0), ident(2)), ident(1)))))
		p.TFirst = closure(call(ident(0), lit(p.True)))
		p.TSecond = closure(call(ident(0), lit(p.False)))
	})
}

// True returns the canonical Church-encoded True value, shared with the
// interpreter's Is/IsNot comparison results so that every Church boolean
// in a running program is the very same closure.
func True() *value.Value {
	initPrelude()
	return preludeVals.True
}

// False returns the canonical Church-encoded False value.
func False() *value.Value {
	initPrelude()
	return preludeVals.False
}

// PreludeBindings returns the ordered list of identifiers the built-in
// binding wrapper (package compiler) pushes into scope before compiling a
// program's body, outermost-first.
func PreludeBindings() []Binding {
	initPrelude()
	p := &preludeVals

	return []Binding{
		{"True", p.True},
		{"False", p.False},
		{"And", p.And},
		{"Or", p.Or},
		{"Not", p.Not},
		{"If", p.If},
		{"Unit", p.Unit},
		{"PrintLn", p.PrintLn},
		{"Print", p.Print},
		{"Is", p.Is},
		{"IsNot", p.IsNot},
		{"Add", p.Add},
		{"Sub", p.Sub},
		{"Mul", p.Mul},
		{"Div", p.Div},
		{"Tuple", p.Tuple},
		{"TFirst", p.TFirst},
		{"TSecond", p.TSecond},
		{"Import", p.Import},
	}
}
