// Package ast defines Marble's expression tree: the de Bruijn-indexed,
// closure-converted form the compiler produces and the interpreter walks.
package ast

import "github.com/skx/marble/token"

// Expr is a node in the expression tree. Every concrete form below
// implements it; the set is closed by design (spec: "Number, String, Unit,
// functions" only, no user-defined algebraic types).
type Expr interface {
	// Origin returns the token that produced this node, for error
	// attribution. Desugared/synthesized nodes carry token.Synthetic().
	Origin() token.Token
	exprNode()
}

// base carries the origin token shared by every concrete Expr.
type base struct {
	origin token.Token
}

// Origin returns the token that produced this node.
func (b base) Origin() token.Token { return b.origin }

// Identifier is a de Bruijn-indexed variable reference: Depth counts
// enclosing binders, 0 being the innermost.
type Identifier struct {
	base
	Depth int
}

func (Identifier) exprNode() {}

// NewIdentifier builds an Identifier node annotated with origin.
func NewIdentifier(depth int, origin token.Token) *Identifier {
	return &Identifier{base{origin}, depth}
}

// Call applies Callee to Arg. Arguments are never evaluated eagerly; the
// interpreter defers them as thunks (call-by-need).
type Call struct {
	base
	Callee Expr
	Arg    Expr
}

func (Call) exprNode() {}

// NewCall builds a Call node annotated with origin.
func NewCall(callee, arg Expr, origin token.Token) *Call {
	return &Call{base{origin}, callee, arg}
}

// Literal is implemented by package value's *Value so that pre-materialized
// runtime values (numbers, strings, built-ins, unit) can sit directly in
// the tree as literals, without ast importing value (value imports ast, for
// Fn closures' Body field — the reverse import would cycle).
type Literal interface {
	// Literal is a marker method; its only purpose is to let *value.Value
	// satisfy this interface from the other side of the package boundary.
	Literal()
}

// Value wraps an already-materialized runtime value directly into the
// tree as a literal.
type Value struct {
	base
	Payload Literal
}

func (Value) exprNode() {}

// NewValue builds a Value node annotated with origin.
func NewValue(payload Literal, origin token.Token) *Value {
	return &Value{base{origin}, payload}
}

// Fn is a single-argument abstraction; the surface `fn a b c do ... end` is
// curried into nested Fn nodes during compilation.
type Fn struct {
	base
	Body Expr
}

func (Fn) exprNode() {}

// NewFn builds an Fn node annotated with origin.
func NewFn(body Expr, origin token.Token) *Fn {
	return &Fn{base{origin}, body}
}

// Let binds the result of Value to a single new frame visible to both
// Value and Body, then evaluates Body in that extended scope. Value is
// compiled with its own name already pushed, so a function literal bound
// by `let` can refer to itself recursively — the one respect in which
// `let` is not simply sugar for `Call(Fn(body), value)`: a plain
// application's argument is evaluated in the *outer* scope, which would
// leave a self-referential binding unable to see itself.
type Let struct {
	base
	Value Expr
	Body  Expr
}

func (Let) exprNode() {}

// NewLet builds a Let node annotated with origin.
func NewLet(value, body Expr, origin token.Token) *Let {
	return &Let{base{origin}, value, body}
}
