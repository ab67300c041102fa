package interpreter

import (
	"fmt"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/builtin"
	"github.com/skx/marble/env"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/source"
	"github.com/skx/marble/token"
	"github.com/skx/marble/value"
)

// printContinuation is Fn(Call(Identifier(0), Unit)): the Church-style
// value Print/PrintLn hand back, which applies its own argument to Unit
// when called. It closes over nothing, so the root environment suffices.
func printContinuation() *value.Value {
	synth := token.Synthetic()
	body := ast.NewCall(ast.NewIdentifier(0, synth), ast.NewValue(value.NewUnit(), synth), synth)
	return value.NewFn(body, env.Root[*value.Value]())
}

func churchBool(b bool) *value.Value {
	if b {
		return builtin.True()
	}
	return builtin.False()
}

// applyBuiltin implements the full apply_builtin dispatch table: Print
// and PrintLn write and hand back the thread-through continuation; the
// comparison and arithmetic primitives curry via the *Of variants;
// Import resolves and recursively executes another source file.
func (in *Interpreter) applyBuiltin(b value.BuiltIn, arg *value.Value, callOrigin token.Token) (*value.Value, *merr.Error) {
	switch b.Kind {
	case value.Print:
		if _, werr := fmt.Fprint(in.Stdout, arg.String()); werr != nil {
			return nil, merr.New(merr.Runtime, merr.OutputNotWritable, callOrigin)
		}
		return printContinuation(), nil

	case value.PrintLn:
		if _, werr := fmt.Fprintln(in.Stdout, arg.String()); werr != nil {
			return nil, merr.New(merr.Runtime, merr.OutputNotWritable, callOrigin)
		}
		return printContinuation(), nil

	case value.Is:
		return value.NewBuiltin(value.BuiltIn{Kind: value.IsOf, Captured: arg}), nil

	case value.IsNot:
		return value.NewBuiltin(value.BuiltIn{Kind: value.IsNotOf, Captured: arg}), nil

	case value.IsOf:
		return churchBool(value.ValuesEqual(b.Captured, arg)), nil

	case value.IsNotOf:
		return churchBool(!value.ValuesEqual(b.Captured, arg)), nil

	case value.Add, value.Sub, value.Mul, value.Div:
		n, ok := numberOperand(arg)
		if !ok {
			return nil, merr.New(merr.Runtime, merr.ArgumentToOperatorMustBeANumber, callOrigin, b.Kind.Name())
		}
		return value.NewBuiltin(value.BuiltIn{Kind: curriedKind(b.Kind), Operand: n}), nil

	case value.AddOf, value.SubOf, value.MulOf, value.DivOf:
		n, ok := numberOperand(arg)
		if !ok {
			return nil, merr.New(merr.Runtime, merr.ArgumentToOperatorMustBeANumber, callOrigin, b.Kind.Name())
		}
		return value.NewNumber(arithmetic(b.Kind, b.Operand, n)), nil

	case value.Import:
		return in.doImport(arg, callOrigin)

	default:
		panic(fmt.Sprintf("interpreter: unhandled builtin kind %v", b.Kind))
	}
}

func numberOperand(v *value.Value) (float64, bool) {
	if v.Kind != value.Number {
		return 0, false
	}
	return v.Num, true
}

func curriedKind(k value.BuiltInKind) value.BuiltInKind {
	switch k {
	case value.Add:
		return value.AddOf
	case value.Sub:
		return value.SubOf
	case value.Mul:
		return value.MulOf
	case value.Div:
		return value.DivOf
	default:
		panic("interpreter: curriedKind on non-arithmetic kind")
	}
}

func arithmetic(k value.BuiltInKind, l, r float64) float64 {
	switch k {
	case value.AddOf:
		return l + r
	case value.SubOf:
		return l - r
	case value.MulOf:
		return l * r
	case value.DivOf:
		return l / r
	default:
		panic("interpreter: arithmetic on non-arithmetic kind")
	}
}

// doImport resolves arg (which must be a String) via the Interpreter's
// Resolver, compiles and executes the resulting source with a sibling
// Interpreter sharing Stdout and Resolver, and wraps any inner error as
// ErrorInImportedFile.
func (in *Interpreter) doImport(arg *value.Value, callOrigin token.Token) (*value.Value, *merr.Error) {
	if arg.Kind != value.String {
		return nil, merr.New(merr.Runtime, merr.ArgumentToImportMustBeAString, callOrigin)
	}
	name := arg.Str

	src, ok := in.Resolver.Resolve(name)
	if !ok {
		return nil, merr.New(merr.Runtime, merr.ImportCouldNotBeResolved, callOrigin, name)
	}

	if in.run == nil {
		return nil, merr.New(merr.Runtime, merr.ImportCouldNotBeResolved, callOrigin, name)
	}

	sibling := New(in.Stdout, in.Resolver, in.run)
	result, err := in.run(src, sibling)
	if err != nil {
		rendered := err.Render(source.New(src))
		return nil, merr.New(merr.Runtime, merr.ErrorInImportedFile, callOrigin, name, rendered)
	}
	return result, nil
}
