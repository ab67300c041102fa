package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skx/marble/source"
	"github.com/skx/marble/token"
)

func scanAll(t *testing.T, text string) []token.Token {
	t.Helper()
	src := source.New([]byte(text))
	sc := New(src)
	var out []token.Token
	for {
		tok := sc.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestEmptyStringLiteral(t *testing.T) {
	toks := scanAll(t, "string")
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.True(t, toks[0].Terminated)
}

func TestStrIngLiteral(t *testing.T) {
	toks := scanAll(t, "str Hello World ing")
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.True(t, toks[0].Terminated)
}

func TestUnterminatedStrLiteral(t *testing.T) {
	toks := scanAll(t, "str Hello World")
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.False(t, toks[0].Terminated)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestComComment(t *testing.T) {
	toks := scanAll(t, "com this is discarded ment One")
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, float64(1), toks[0].Number)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestLineComment(t *testing.T) {
	toks := scanAll(t, "comment rest of the line is gone\nOne")
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, float64(1), toks[0].Number)
}

func TestKeywords(t *testing.T) {
	toks := scanAll(t, "fn of do end let be in then")
	kinds := []token.Kind{token.FN, token.OF, token.DO, token.END, token.LET, token.BE, token.IN, token.THEN, token.EOF}
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestNumberAndIdentifier(t *testing.T) {
	toks := scanAll(t, "FortyTwo notANumber")
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, float64(42), toks[0].Number)
	assert.Equal(t, token.IDENTIFIER, toks[1].Kind)
}

// TestEofIsSticky checks property 4 from the design: once Eof is
// reached, further calls keep returning Eof.
func TestEofIsSticky(t *testing.T) {
	src := source.New([]byte("One"))
	sc := New(src)
	first := sc.NextToken()
	assert.Equal(t, token.NUMBER, first.Kind)
	for i := 0; i < 5; i++ {
		assert.Equal(t, token.EOF, sc.NextToken().Kind)
	}
}

// TestScannerIsTotal checks that every prefix of a handful of programs
// eventually terminates in Eof without panicking, for arbitrary byte
// truncation points — including mid-word and mid-"str...ing".
func TestScannerIsTotal(t *testing.T) {
	programs := []string{
		"let x be One in x",
		"str Hello World ing",
		"com unterminated",
		"fn a do a end of Two",
	}
	for _, p := range programs {
		for cut := 0; cut <= len(p); cut++ {
			prefix := p[:cut]
			assert.NotPanics(t, func() {
				src := source.New([]byte(prefix))
				sc := New(src)
				reachedEOF := false
				for i := 0; i < len(prefix)+2; i++ {
					if sc.NextToken().Kind == token.EOF {
						reachedEOF = true
						break
					}
				}
				assert.True(t, reachedEOF, "no Eof for prefix %q", prefix)
			})
		}
	}
}
