// Package token defines the lexical tokens produced by the scanner when
// it walks a Marble source file.
package token

// Kind identifies the lexical category of a Token.
type Kind int

// The complete, closed set of token kinds. String and Number tokens carry
// extra payload (see Token.Terminated and Token.Number).
const (
	EOF Kind = iota
	SYNTHETIC // used to annotate compiler-synthesized nodes (no source origin)

	STRING
	NUMBER
	IDENTIFIER

	FN
	OF
	DO
	END
	LET
	BE
	IN
	THEN

	COMMENT
)

// Keywords maps exact-match words to their reserved token kind.
var Keywords = map[string]Kind{
	"fn":   FN,
	"of":   OF,
	"do":   DO,
	"end":  END,
	"let":  LET,
	"be":   BE,
	"in":   IN,
	"then": THEN,
}

// String renders a Kind for debugging and error messages.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "Eof"
	case SYNTHETIC:
		return "Synthetic"
	case STRING:
		return "String"
	case NUMBER:
		return "Number"
	case IDENTIFIER:
		return "Identifier"
	case FN:
		return "fn"
	case OF:
		return "of"
	case DO:
		return "do"
	case END:
		return "end"
	case LET:
		return "let"
	case BE:
		return "be"
	case IN:
		return "in"
	case THEN:
		return "then"
	case COMMENT:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Range is a half-open byte range [Start, End) into the source.
type Range struct {
	Start int
	End   int
}

// Token is a cheap, copyable lexical unit with a precise byte range.
//
// Number and Terminated are only meaningful when Kind is NUMBER or STRING
// respectively; they ride along on the token instead of requiring a second
// lookup against the source text.
type Token struct {
	Kind       Kind
	Range      Range
	Number     float64 // valid when Kind == NUMBER
	Terminated bool    // valid when Kind == STRING: whether the closing "ing" was found
}

// Synthetic returns a Token with no real source origin, used when the
// compiler desugars surface syntax into nodes that were never literally
// written (e.g. the prelude-binding wrapper).
func Synthetic() Token {
	return Token{Kind: SYNTHETIC}
}
