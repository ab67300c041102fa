// Package scanner turns a source file into Marble's whitespace-delimited
// word stream. Unlike a conventional lexer it never classifies single
// characters: the unit of classification is a whole ASCII-whitespace
// delimited word, with string and comment literals spanning several words.
package scanner

import (
	"github.com/skx/marble/numword"
	"github.com/skx/marble/source"
	"github.com/skx/marble/token"
)

// Scanner walks a Source's bytes, handing out one Token per call to
// NextToken. It never fails: malformed input always degrades to some
// Token (an unterminated String, or a plain Identifier) rather than
// raising an error at this layer.
type Scanner struct {
	src *source.Source
	buf []byte
	pos int // byte offset of the next unread byte
}

// New returns a Scanner positioned at the start of src.
func New(src *source.Source) *Scanner {
	return &Scanner{src: src, buf: src.Bytes()}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// skipSpace advances pos past any run of ASCII whitespace.
func (s *Scanner) skipSpace() {
	for s.pos < len(s.buf) && isSpace(s.buf[s.pos]) {
		s.pos++
	}
}

// readWord consumes and returns the next whitespace-delimited word
// starting at pos, along with its byte range. Returns ok=false at Eof.
func (s *Scanner) readWord() (word string, rng token.Range, ok bool) {
	s.skipSpace()
	if s.pos >= len(s.buf) {
		return "", token.Range{}, false
	}
	start := s.pos
	for s.pos < len(s.buf) && !isSpace(s.buf[s.pos]) {
		s.pos++
	}
	return string(s.buf[start:s.pos]), token.Range{Start: start, End: s.pos}, true
}

// peekPos reports the byte offset NextToken would start reading from,
// were whitespace skipped first — used to record an Eof token's Range.
func (s *Scanner) peekPos() int {
	save := s.pos
	s.skipSpace()
	p := s.pos
	s.pos = save
	return p
}

// NextToken returns the next token in the stream. Once Eof is reached it
// keeps returning Eof on every subsequent call (property: totality).
func (s *Scanner) NextToken() token.Token {
	word, rng, ok := s.readWord()
	if !ok {
		p := s.peekPos()
		return token.Token{Kind: token.EOF, Range: token.Range{Start: p, End: p}}
	}

	switch word {
	case "string":
		return token.Token{Kind: token.STRING, Range: rng, Terminated: true}
	case "str":
		return s.scanString(rng)
	case "com":
		s.skipUntilWord("ment")
		return s.NextToken()
	case "comment":
		s.skipLine()
		return s.NextToken()
	}

	if kind, isKeyword := token.Keywords[word]; isKeyword {
		return token.Token{Kind: kind, Range: rng}
	}

	if n, isNumber := numword.ParseFraction(word); isNumber {
		return token.Token{Kind: token.NUMBER, Range: rng, Number: n}
	}

	return token.Token{Kind: token.IDENTIFIER, Range: rng}
}

// scanString consumes words until one equal to "ing" is found, producing
// a String token whose Range covers the whole str…ing span. If Eof is hit
// first the token is unterminated and its Range extends to Eof.
func (s *Scanner) scanString(strRange token.Range) token.Token {
	end := strRange.End
	for {
		word, rng, ok := s.readWord()
		if !ok {
			return token.Token{Kind: token.STRING, Range: token.Range{Start: strRange.Start, End: end}, Terminated: false}
		}
		end = rng.End
		if word == "ing" {
			return token.Token{Kind: token.STRING, Range: token.Range{Start: strRange.Start, End: end}, Terminated: true}
		}
	}
}

// skipUntilWord discards words until one equal to target is consumed, or
// Eof is reached.
func (s *Scanner) skipUntilWord(target string) {
	for {
		word, _, ok := s.readWord()
		if !ok || word == target {
			return
		}
	}
}

// skipLine discards bytes up to and including the next '\n', or to Eof.
func (s *Scanner) skipLine() {
	for s.pos < len(s.buf) && s.buf[s.pos] != '\n' {
		s.pos++
	}
	if s.pos < len(s.buf) {
		s.pos++ // consume the newline itself
	}
}
