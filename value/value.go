// Package value implements Marble's runtime values: numbers, strings,
// unit, function closures, built-in primitives, and memoising lazy
// thunks. Value is a closed tagged union, matched on Kind rather than
// dispatched through interface subtyping, so that every switch over it
// stays exhaustive.
package value

import (
	"strconv"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/env"
)

// Kind tags which variant of Value is populated.
type Kind int

const (
	Number Kind = iota
	String
	Unit
	Fn
	Builtin
	Lazy
)

// Env is the environment type closures and thunks capture: a chain of
// bound Values indexed by de Bruijn depth.
type Env = env.Env[*Value]

// Value is the closed set of runtime values a Marble program can produce.
// Only the field(s) matching Kind are meaningful.
type Value struct {
	Kind Kind

	Num float64 // Kind == Number
	Str string  // Kind == String

	FnBody ast.Expr // Kind == Fn
	FnEnv  *Env     // Kind == Fn

	Prim BuiltIn // Kind == Builtin

	Thunk *Thunk // Kind == Lazy
}

// Literal lets *Value sit inside an ast.Value node as a pre-materialized
// literal (see ast.Literal).
func (*Value) Literal() {}

// NewNumber constructs a Number value.
func NewNumber(n float64) *Value { return &Value{Kind: Number, Num: n} }

// NewString constructs a String value.
func NewString(s string) *Value { return &Value{Kind: String, Str: s} }

// NewUnit constructs the Unit value.
func NewUnit() *Value { return &Value{Kind: Unit} }

// NewFn constructs a function closure over body in the given environment.
func NewFn(body ast.Expr, closureEnv *Env) *Value {
	return &Value{Kind: Fn, FnBody: body, FnEnv: closureEnv}
}

// NewBuiltin constructs a built-in primitive value.
func NewBuiltin(b BuiltIn) *Value {
	return &Value{Kind: Builtin, Prim: b}
}

// NewLazy constructs an unforced thunk wrapping a Call expression.
func NewLazy(t *Thunk) *Value {
	return &Value{Kind: Lazy, Thunk: t}
}

// TypeName returns the human-readable type name used in error messages
// ("Number value is not callable", etc).
func (v *Value) TypeName() string {
	switch v.Kind {
	case Number:
		return "Number"
	case String:
		return "String"
	case Unit:
		return "Unit"
	case Fn:
		return "Function"
	case Builtin:
		return "Builtin"
	case Lazy:
		return "Lazy"
	default:
		return "Unknown"
	}
}

// String renders a forced value the way Print/PrintLn do: numbers and
// strings render as their content, Unit as "Unit", functions as
// "Function" and builtins as "Builtin Function". Printing an unforced Lazy value is a host bug (the
// interpreter always forces before printing) — it renders defensively
// instead of panicking here, since String is also used by %v in tests.
func (v *Value) String() string {
	switch v.Kind {
	case Number:
		return formatNumber(v.Num)
	case String:
		return v.Str
	case Unit:
		return "Unit"
	case Fn:
		return "Function"
	case Builtin:
		return "Builtin Function"
	case Lazy:
		return "Lazy"
	default:
		return "?"
	}
}

// formatNumber mirrors Rust's default f64 Display: shortest round-trip
// decimal, never in exponent form, and no trailing ".0" on whole numbers.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
