package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/source"
	"github.com/skx/marble/value"
)

// valueComparer compares literal payloads structurally for Number,
// String and Unit (the only literal kinds user source can produce
// directly) and falls back to pointer identity for Fn/Builtin/Lazy,
// which the prelude always supplies as cached singletons.
var valueComparer = cmp.Comparer(func(a, b *value.Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.Number:
		return a.Num == b.Num
	case value.String:
		return a.Str == b.Str
	case value.Unit:
		return true
	default:
		return a == b
	}
})

// exprCmpOpts ignores origin tokens (irrelevant to structural identity,
// reachable only via the unexported `base` embedding) and compares
// literal payloads with valueComparer rather than reflecting into their
// (unexported-field-bearing) environment pointers.
var exprCmpOpts = cmp.Options{
	cmpopts.IgnoreUnexported(ast.Identifier{}, ast.Call{}, ast.Fn{}, ast.Value{}, ast.Let{}),
	valueComparer,
}

func compile(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := Compile(source.New([]byte(src)))
	require.Nil(t, err, "unexpected compile error")
	return expr
}

// TestCompilerIsPure checks property 5: identical source compiles to
// identical expression trees (up to node identity / origin tokens).
func TestCompilerIsPure(t *testing.T) {
	src := "let x be One in Add of x of Two"
	a := compile(t, src)
	b := compile(t, src)
	if diff := cmp.Diff(a, b, exprCmpOpts); diff != "" {
		t.Fatalf("compiling identical source twice produced different trees (-a +b):\n%s", diff)
	}
}

func TestSimpleApplication(t *testing.T) {
	expr := compile(t, "Add of One of Two")
	_, ok := expr.(*ast.Call)
	assert.True(t, ok, "expected top of tree (under prelude wrapping) to resolve to a Call chain")
}

func TestUndefinedIdentifierFails(t *testing.T) {
	_, err := Compile(source.New([]byte("Add of Y of Two")))
	require.NotNil(t, err)
	assert.Equal(t, merr.IdentifierIsNotDefined, err.Kind)
}

func TestUndefinedIdentifierSuggestsClosestMatch(t *testing.T) {
	// "Prnt" is one dropped letter away from the in-scope prelude name
	// "Print"; of the names that contain its letters in order ("Print",
	// "PrintLn"), "Print" is the closest.
	_, err := Compile(source.New([]byte("Prnt of One")))
	require.NotNil(t, err)
	require.Equal(t, merr.IdentifierIsNotDefined, err.Kind)
	require.Len(t, err.Args, 2)
	assert.Equal(t, "Print", err.Args[1])
}

func TestTrailingTokensFail(t *testing.T) {
	_, err := Compile(source.New([]byte("One Two")))
	require.NotNil(t, err)
	assert.Equal(t, merr.ExpectedEofAfterExpression, err.Kind)
}

func TestMissingBeFails(t *testing.T) {
	_, err := Compile(source.New([]byte("let x One in x")))
	require.NotNil(t, err)
	assert.Equal(t, merr.ExpectedBeInAssignment, err.Kind)
}

func TestStringContentExtraction(t *testing.T) {
	expr := compile(t, "str Hello World ing")
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	// Unwind the prelude-binding wrapper to the innermost user body.
	var body ast.Expr = call
	for {
		c, ok := body.(*ast.Call)
		if !ok {
			break
		}
		fn, ok := c.Callee.(*ast.Fn)
		if !ok {
			break
		}
		body = fn.Body
	}
	val, ok := body.(*ast.Value)
	require.True(t, ok, "expected innermost body to be a Value literal")
	str, ok := val.Payload.(interface{ String() string })
	require.True(t, ok)
	assert.Equal(t, "Hello World", str.String())
}

func TestEmptyStringLiteral(t *testing.T) {
	content := stringContent("string", true)
	assert.Equal(t, "", content)
}

func TestUnterminatedStringContent(t *testing.T) {
	content := stringContent("str Hello", false)
	assert.Equal(t, "Hello", content)
}

func TestLetSelfReferenceCompiles(t *testing.T) {
	// A recursive function bound via `let` must be able to name itself
	// inside its own body without a compile error.
	src := `let fact be fn n do If of do Is of n of Zero end of fn u do One end of fn u do Mul of n of do fact of do Sub of n of One end end end of Unit end in fact of Five`
	expr := compile(t, src)
	_, ok := expr.(*ast.Call)
	assert.True(t, ok)
}
