// Package compiler implements Marble's single-pass recursive-descent
// compiler: it turns a peekable token stream into a de Bruijn-indexed,
// closure-converted expression tree, resolving every identifier to a
// depth as it goes.
package compiler

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/skx/marble/ast"
	"github.com/skx/marble/builtin"
	"github.com/skx/marble/merr"
	"github.com/skx/marble/scanner"
	"github.com/skx/marble/source"
	"github.com/skx/marble/token"
	"github.com/skx/marble/value"
)

// Compiler holds the state needed for one top-to-bottom parse.
type Compiler struct {
	src *source.Source
	sc  *scanner.Scanner
	ids *source.IdentifierTable

	cur token.Token
}

// New returns a Compiler ready to parse src.
func New(src *source.Source) *Compiler {
	c := &Compiler{
		src: src,
		sc:  scanner.New(src),
		ids: source.NewIdentifierTable(),
	}
	c.cur = c.sc.NextToken()
	return c
}

// Compile parses the full program, wraps it in the built-in binding
// wrapper, and requires the token stream to end at Eof.
func Compile(src *source.Source) (ast.Expr, *merr.Error) {
	c := New(src)

	bindings := builtin.PreludeBindings()
	for _, b := range bindings {
		c.ids.Push(b.Name)
	}

	expr, err := c.expression()
	if err != nil {
		return nil, err
	}

	for i := len(bindings) - 1; i >= 0; i-- {
		origin := token.Synthetic()
		fn := ast.NewFn(expr, origin)
		provider := ast.NewValue(bindings[i].Value, origin)
		expr = ast.NewCall(fn, provider, origin)
	}

	if _, err := c.expect(token.EOF, merr.ExpectedEofAfterExpression); err != nil {
		return nil, err
	}

	return expr, nil
}

func (c *Compiler) advance() token.Token {
	prev := c.cur
	c.cur = c.sc.NextToken()
	return prev
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.cur.Kind == kind
}

// match consumes cur and returns it if its Kind matches, else reports ok=false.
func (c *Compiler) match(kind token.Kind) (token.Token, bool) {
	if c.check(kind) {
		return c.advance(), true
	}
	return token.Token{}, false
}

func (c *Compiler) expect(kind token.Kind, onFail merr.Kind) (token.Token, *merr.Error) {
	if tok, ok := c.match(kind); ok {
		return tok, nil
	}
	return token.Token{}, merr.New(merr.Compile, onFail, c.cur)
}

// expression = then_expr
func (c *Compiler) expression() (ast.Expr, *merr.Error) {
	return c.thenExpr()
}

// then_expr = let_expr {"then" let_expr}
func (c *Compiler) thenExpr() (ast.Expr, *merr.Error) {
	lhs, err := c.letExpr()
	if err != nil {
		return nil, err
	}

	for {
		thenTok, ok := c.match(token.THEN)
		if !ok {
			return lhs, nil
		}

		// "then" is a reserved word, never user-visible; the dummy push
		// keeps downstream de Bruijn indices consistent with the extra
		// Fn wrapper the desugaring introduces.
		c.ids.Push("then")
		rhs, err := c.letExpr()
		c.ids.Pop()
		if err != nil {
			return nil, err
		}

		rhsFn := ast.NewFn(rhs, thenTok)
		lhs = ast.NewCall(lhs, rhsFn, thenTok)
	}
}

// let_expr = "let" Ident "be" then_expr "in" then_expr | call
//
// The bound name is pushed before the initialiser is compiled, not
// after: a `let f be fn n do ... f ... end in ...` definition can only
// refer to itself if its own name is already visible while its value is
// being parsed. See ast.Let's doc comment for the runtime half of this.
func (c *Compiler) letExpr() (ast.Expr, *merr.Error) {
	letTok, ok := c.match(token.LET)
	if !ok {
		return c.call()
	}

	nameTok, err := c.expect(token.IDENTIFIER, merr.ExpectedIdentifierAsVariableName)
	if err != nil {
		return nil, err
	}
	name := c.src.Lexeme(nameTok)

	if _, err := c.expect(token.BE, merr.ExpectedBeInAssignment); err != nil {
		return nil, err
	}

	c.ids.Push(name)

	value, err := c.thenExpr()
	if err != nil {
		c.ids.Pop()
		return nil, err
	}

	if _, err := c.expect(token.IN, merr.ExpectedInAfterAssignment); err != nil {
		c.ids.Pop()
		return nil, err
	}

	body, err := c.thenExpr()
	c.ids.Pop()
	if err != nil {
		return nil, err
	}

	return ast.NewLet(value, body, letTok), nil
}

// call = value {"of" value}
func (c *Compiler) call() (ast.Expr, *merr.Error) {
	lhs, err := c.value()
	if err != nil {
		return nil, err
	}

	for {
		ofTok, ok := c.match(token.OF)
		if !ok {
			return lhs, nil
		}
		rhs, err := c.value()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewCall(lhs, rhs, ofTok)
	}
}

// value = "do" expression "end"
//       | "fn" Ident {Ident} "do" expression "end"
//       | String | Number | Ident
func (c *Compiler) value() (ast.Expr, *merr.Error) {
	tok := c.advance()

	switch tok.Kind {
	case token.DO:
		return c.block()
	case token.FN:
		return c.function(tok)
	case token.STRING:
		return c.stringLiteral(tok), nil
	case token.NUMBER:
		return ast.NewValue(value.NewNumber(tok.Number), tok), nil
	case token.IDENTIFIER:
		return c.identifier(tok)
	default:
		found := fmt.Sprintf("%s '%s'", tok.Kind, c.src.Lexeme(tok))
		return nil, merr.New(merr.Compile, merr.ExpectedExpressionFound, tok, found)
	}
}

func (c *Compiler) block() (ast.Expr, *merr.Error) {
	expr, err := c.expression()
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(token.END, merr.ExpectedEndAfterDoBlock); err != nil {
		return nil, err
	}
	return expr, nil
}

// function parses the curried `fn a b c do E end` form: pushes match
// one argument name at a time, left to right, then wraps the compiled
// body in matching Fn nodes right to left, popping as it goes.
func (c *Compiler) function(fnTok token.Token) (ast.Expr, *merr.Error) {
	first, err := c.expect(token.IDENTIFIER, merr.ExpectedIdentifierAsFunctionArgument)
	if err != nil {
		return nil, err
	}
	args := []string{c.src.Lexeme(first)}

	for c.check(token.IDENTIFIER) {
		args = append(args, c.src.Lexeme(c.advance()))
	}

	for _, a := range args {
		c.ids.Push(a)
	}

	if _, err := c.expect(token.DO, merr.ExpectedDoAsFunctionBody); err != nil {
		for range args {
			c.ids.Pop()
		}
		return nil, err
	}

	body, err := c.block()
	if err != nil {
		for range args {
			c.ids.Pop()
		}
		return nil, err
	}

	expr := body
	for range args {
		expr = ast.NewFn(expr, fnTok)
		c.ids.Pop()
	}

	return expr, nil
}

// stringLiteral extracts the content between "str" and "ing" from the
// token's own lexeme, mirroring the teacher's practice of deriving
// literal content directly from source text at the point of use.
func (c *Compiler) stringLiteral(tok token.Token) ast.Expr {
	lexeme := c.src.Lexeme(tok)
	content := stringContent(lexeme, tok.Terminated)
	return ast.NewValue(value.NewString(content), tok)
}

// stringContent recovers the words between the opening "str" and the
// closing "ing" of a string literal's raw lexeme, rejoined with single
// spaces. The exact word "string" is the empty-content special case;
// an unterminated literal has no closing "ing" word to strip.
func stringContent(lexeme string, terminated bool) string {
	if lexeme == "string" {
		return ""
	}
	words := strings.Fields(lexeme)
	if len(words) == 0 {
		return ""
	}
	words = words[1:] // drop leading "str"
	if terminated && len(words) > 0 {
		words = words[:len(words)-1] // drop trailing "ing"
	}
	return strings.Join(words, " ")
}

func (c *Compiler) identifier(tok token.Token) (ast.Expr, *merr.Error) {
	name := c.src.Lexeme(tok)
	depth, ok := c.ids.DistanceFromTop(name)
	if !ok {
		if suggestion, found := suggest(name, c.ids.Names()); found {
			return nil, merr.New(merr.Compile, merr.IdentifierIsNotDefined, tok, name, suggestion)
		}
		return nil, merr.New(merr.Compile, merr.IdentifierIsNotDefined, tok, name)
	}
	return ast.NewIdentifier(depth, tok), nil
}

// suggest finds the closest in-scope identifier to name, for the
// "did you mean X?" hint on an undefined reference. Only identifiers
// that contain name's characters in order are candidates; among those
// the one with the smallest Levenshtein distance wins. It is pure
// diagnostic sugar: it never changes whether compilation succeeds.
func suggest(name string, inScope []string) (string, bool) {
	ranks := fuzzy.RankFindNormalized(name, inScope)
	if len(ranks) == 0 {
		return "", false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target, true
}
