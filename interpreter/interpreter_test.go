package interpreter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/marble/compiler"
	"github.com/skx/marble/env"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/source"
	"github.com/skx/marble/value"
)

type noResolver struct{}

func (noResolver) Resolve(string) ([]byte, bool) { return nil, false }

func runSrc(t *testing.T, src string) (*value.Value, string, *merr.Error) {
	t.Helper()
	program, cerr := compiler.Compile(source.New([]byte(src)))
	require.Nil(t, cerr, "unexpected compile error: %v", cerr)

	var out strings.Builder
	run := func(innerSrc []byte, interp *Interpreter) (*value.Value, *merr.Error) {
		innerProgram, err := compiler.Compile(source.New(innerSrc))
		if err != nil {
			return nil, err
		}
		return interp.Run(innerProgram, env.Root[*value.Value]())
	}
	interp := New(&out, noResolver{}, run)
	v, err := interp.Run(program, env.Root[*value.Value]())
	return v, out.String(), err
}

func TestArithmetic(t *testing.T) {
	v, _, err := runSrc(t, "Add of One of Two")
	require.Nil(t, err)
	assert.Equal(t, "3", v.String())
}

// factorialSrc recurses through `fact`, bound by letrec; each branch of
// the If is forced with a trailing `of Unit`, and the recursive
// multiplication's two sub-calls are grouped with `do ... end` since `of`
// is left-associative and would otherwise flatten them into one call chain.
const factorialSrc = `let fact be fn n do If of do Is of n of Zero end of fn u do One end of fn u do Mul of n of do fact of do Sub of n of One end end end of Unit end in fact of Five`

const countdownSrc = `let loop be fn n do If of do Is of n of Zero end of fn u do One end of fn u do loop of do Sub of n of One end end of Unit end in loop of Ten`

func TestFactorialRecursion(t *testing.T) {
	v, _, err := runSrc(t, factorialSrc)
	require.Nil(t, err)
	assert.Equal(t, "120", v.String())
}

func TestLoopCountdown(t *testing.T) {
	v, _, err := runSrc(t, countdownSrc)
	require.Nil(t, err)
	assert.Equal(t, "1", v.String())
}

func TestStringLiteral(t *testing.T) {
	v, _, err := runSrc(t, "str Hello World ing")
	require.Nil(t, err)
	assert.Equal(t, "Hello World", v.String())
}

func TestPrintLnCapturesStdoutAndReturnsContinuation(t *testing.T) {
	v, out, err := runSrc(t, "PrintLn of str Hello World ing")
	require.Nil(t, err)
	assert.Equal(t, "Hello World\n", out)
	assert.Equal(t, "Function", v.String())
}

func TestArgumentToOperatorMustBeNumber(t *testing.T) {
	_, _, err := runSrc(t, "Add of str nope ing of One")
	require.NotNil(t, err)
	assert.Equal(t, merr.ArgumentToOperatorMustBeANumber, err.Kind)
}

func TestValueNotCallable(t *testing.T) {
	_, _, err := runSrc(t, "One of Two")
	require.NotNil(t, err)
	assert.Equal(t, merr.ValueNotCallable, err.Kind)
}

// TestSelfReferenceDetection checks property 8: forcing a thunk that
// synchronously recurses into itself fails ValueDependsOnItself.
func TestSelfReferenceDetection(t *testing.T) {
	// x's own initialiser calls x before x could ever produce a value.
	_, _, err := runSrc(t, "let x be x of One in x")
	require.NotNil(t, err)
	assert.Equal(t, merr.ValueDependsOnItself, err.Kind)
}

// TestForceIsIdempotent checks property 6: forcing an already-forced
// value returns the identical value.
func TestForceIsIdempotent(t *testing.T) {
	program, cerr := compiler.Compile(source.New([]byte("Add of One of Two")))
	require.Nil(t, cerr)

	interp := New(&strings.Builder{}, noResolver{}, nil)
	root := env.Root[*value.Value]()

	lazy, err := interp.evaluate(program, root)
	require.Nil(t, err)

	first, err := interp.force(lazy)
	require.Nil(t, err)

	second, err := interp.force(first)
	require.Nil(t, err)

	assert.Same(t, first, second)
}

// TestMemoisationExactlyOnce checks property 7: a thunk's body is
// evaluated at most once. `shared` is referenced twice (both operands
// of Add); its initialiser prints a marker as a side effect, so the
// marker appearing only once in stdout proves the initialiser ran once
// despite being forced twice.
func TestMemoisationExactlyOnce(t *testing.T) {
	src := "let shared be do PrintLn of str once ing then Five end in Add of shared of shared"
	v, out, err := runSrc(t, src)
	require.Nil(t, err)
	assert.Equal(t, "once\n", out)
	assert.Equal(t, "10", v.String())
}
