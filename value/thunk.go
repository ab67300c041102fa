package value

import "github.com/skx/marble/ast"

// thunkState is the single-slot state machine a Thunk passes through at
// most once: Uncomputed -> Forcing -> Computed. Re-entering Forcing while
// already Forcing means the value depends on itself.
type thunkState int

const (
	thunkUncomputed thunkState = iota
	thunkForcing
	thunkComputed
)

// Thunk is a suspended call-by-need computation. It is created for Call
// expressions (ordinary application: evaluating a Call never evaluates
// its callee or argument eagerly) and for the initialiser of a Let node
// (so a self-referential binding can close over its own cell). In both
// cases the deferred expression is only evaluated, at most once, the
// first time the thunk is forced.
type Thunk struct {
	state  thunkState
	expr   ast.Expr // the deferred expression (almost always *ast.Call)
	env    *Env     // the environment it closed over
	result *Value   // populated once state == thunkComputed
}

// NewThunk wraps expr/env as an unforced, memoising computation.
func NewThunk(expr ast.Expr, closureEnv *Env) *Thunk {
	return &Thunk{state: thunkUncomputed, expr: expr, env: closureEnv}
}

// Expr returns the deferred expression and its captured environment.
func (t *Thunk) Expr() (ast.Expr, *Env) {
	return t.expr, t.env
}

// Computed reports whether this thunk has already produced a value.
func (t *Thunk) Computed() (*Value, bool) {
	if t.state == thunkComputed {
		return t.result, true
	}
	return nil, false
}

// BeginForce transitions Uncomputed -> Forcing and returns (nil, false).
// If the thunk is already Forcing (the self-reference condition) it
// reports selfReferencing=true — the caller should surface
// ValueDependsOnItself in that case. If it is already Computed it returns
// the stored result as alreadyComputed, for the caller to use directly.
func (t *Thunk) BeginForce() (alreadyComputed *Value, selfReferencing bool) {
	switch t.state {
	case thunkComputed:
		return t.result, false
	case thunkForcing:
		return nil, true
	default:
		t.state = thunkForcing
		return nil, false
	}
}

// Install records the single successful Uncomputed->Computed transition.
func (t *Thunk) Install(result *Value) {
	t.state = thunkComputed
	t.result = result
}
