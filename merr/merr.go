// Package merr implements Marble's error model: a closed set of
// compile-time and runtime error kinds, each carrying the source token
// responsible for it, rendered in the host-facing
// "⟨Compile|Runtime⟩ Error at L:C => 'lexeme'\nmessage" format.
package merr

import (
	"fmt"

	"github.com/skx/marble/source"
	"github.com/skx/marble/token"
)

// Kind is the closed set of error conditions spec.md §7 enumerates.
type Kind int

const (
	// Compile-time kinds.
	ExpectedIdentifierAsVariableName Kind = iota
	ExpectedIdentifierAsFunctionArgument
	ExpectedBeInAssignment
	ExpectedInAfterAssignment
	ExpectedEofAfterExpression
	ExpectedExpressionFound
	ExpectedEndAfterDoBlock
	ExpectedDoAsFunctionBody
	IdentifierIsNotDefined
	// Kept constructible for host tooling (debuggers offering a shadowing
	// warning) but never raised by this compiler: shadowing is permitted,
	// see spec.md §4.3.
	IdentifierIsAlreadyDefined

	// Runtime kinds.
	ValueNotCallable
	ArgumentToOperatorMustBeANumber
	ValueDependsOnItself
	OutputNotWritable
	ArgumentToImportMustBeAString
	ImportCouldNotBeResolved
	ErrorInImportedFile
)

// Phase distinguishes compile-time from runtime errors for rendering.
type Phase int

const (
	Compile Phase = iota
	Runtime
)

// Error is an annotated Marble error: its Kind, the offending token, and
// any kind-specific detail strings (identifier names, operator names,
// found-token text, nested-import rendering).
type Error struct {
	Kind  Kind
	Phase Phase
	Token token.Token
	Args  []string
}

// New builds an Error of the given kind, attributed to tok, with optional
// format arguments (identifier names, operator names, ...).
func New(phase Phase, kind Kind, tok token.Token, args ...string) *Error {
	return &Error{Kind: kind, Phase: phase, Token: tok, Args: args}
}

// Error implements the standard error interface with the bare message
// (no position/lexeme — use Render for the host-facing form).
func (e *Error) Error() string {
	return e.message()
}

func (e *Error) message() string {
	arg := func(i int) string {
		if i < len(e.Args) {
			return e.Args[i]
		}
		return ""
	}

	switch e.Kind {
	case ExpectedIdentifierAsVariableName:
		return "Expected identifier as variable name."
	case ExpectedIdentifierAsFunctionArgument:
		return "Expected identifier as function argument."
	case ExpectedBeInAssignment:
		return "Expected 'be' in assignment."
	case ExpectedInAfterAssignment:
		return "Expected 'in' after assignment."
	case ExpectedEofAfterExpression:
		return "Expected Eof after expression."
	case ExpectedExpressionFound:
		return fmt.Sprintf("Expected expression, found %s", arg(0))
	case ExpectedEndAfterDoBlock:
		return "Expected 'end' after do block."
	case ExpectedDoAsFunctionBody:
		return "Expected 'do' to start function body."
	case IdentifierIsNotDefined:
		msg := fmt.Sprintf("Identifier %s is not defined", arg(0))
		if hint := arg(1); hint != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", hint)
		}
		return msg
	case IdentifierIsAlreadyDefined:
		return fmt.Sprintf("Identifier %s is already defined", arg(0))
	case ValueNotCallable:
		return fmt.Sprintf("%s value is not callable", arg(0))
	case ArgumentToOperatorMustBeANumber:
		return fmt.Sprintf("Argument to %s must be a number!", arg(0))
	case ValueDependsOnItself:
		return "Calculation on value depends on itself"
	case OutputNotWritable:
		return "Output is not writable"
	case ArgumentToImportMustBeAString:
		return "Argument to Import must be a string"
	case ImportCouldNotBeResolved:
		return fmt.Sprintf("Import %q could not be resolved", arg(0))
	case ErrorInImportedFile:
		return fmt.Sprintf("Error in imported file %q:\n%s", arg(0), arg(1))
	default:
		return "Unknown error"
	}
}

// Render implements spec.md §6's host-facing error format:
//
//	⟨Compile|Runtime⟩ Error at ⟨line⟩:⟨col⟩ => '⟨lexeme⟩'
//	⟨message⟩
func (e *Error) Render(src *source.Source) string {
	phase := "Compile"
	if e.Phase == Runtime {
		phase = "Runtime"
	}
	pos := src.Start(e.Token)
	lexeme := src.Lexeme(e.Token)
	return fmt.Sprintf("%s Error at %d:%d => '%s'\n%s", phase, pos.Line, pos.Column, lexeme, e.message())
}
