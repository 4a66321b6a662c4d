package engine

import (
	"strings"

	"github.com/hlmerscher/jackc/tokenizer"
	"golang.org/x/exp/slices"
)

// cursor walks the token sequence of one unit. It never mutates the
// sequence; only position moves.
type cursor struct {
	tokens []tokenizer.Token
	pos    int
}

// current returns the token under the cursor. Past the end it returns an
// Invalid token carrying the last line seen.
func (c *cursor) current() tokenizer.Token {
	return c.peek(0)
}

func (c *cursor) peek(offset int) tokenizer.Token {
	if i := c.pos + offset; i < len(c.tokens) {
		return c.tokens[i]
	}

	line := 0
	if n := len(c.tokens); n > 0 {
		line = c.tokens[n-1].Line()
	}
	return tokenizer.Invalid{Lexeme: "end of input", LineNr: line}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

// matcher reports whether a token fits, and describes what it expects for
// diagnostics.
type matcher func(tokenizer.Token) (string, bool)

// is matches a keyword or symbol by its text.
func is(raw string) matcher {
	return func(t tokenizer.Token) (string, bool) {
		switch t.(type) {
		case tokenizer.Keyword, tokenizer.Symbol:
			return "'" + raw + "'", t.Raw() == raw
		}
		return "'" + raw + "'", false
	}
}

func or(matchers ...matcher) matcher {
	return func(t tokenizer.Token) (string, bool) {
		expected := make([]string, 0, len(matchers))
		for _, m := range matchers {
			desc, ok := m(t)
			if ok {
				return desc, true
			}
			expected = append(expected, desc)
		}
		return strings.Join(expected, " or "), false
	}
}

func isIdentifier() matcher {
	return func(t tokenizer.Token) (string, bool) {
		_, ok := t.(tokenizer.Identifier)
		return "identifier", ok
	}
}

func isType() matcher {
	m := or(is("int"), is("char"), is("boolean"), isIdentifier())
	return func(t tokenizer.Token) (string, bool) {
		_, ok := m(t)
		return "type", ok
	}
}

func isSymbolIn(desc string, set ...rune) matcher {
	return func(t tokenizer.Token) (string, bool) {
		s, ok := t.(tokenizer.Symbol)
		return desc, ok && slices.Contains(set, s.Value)
	}
}

func isOp() matcher {
	return isSymbolIn("operator", '+', '-', '*', '/', '&', '|', '<', '>', '=')
}

func isUnaryOp() matcher {
	return isSymbolIn("unary operator", '-', '~')
}

func isKeywordConstant() matcher {
	return or(is("true"), is("false"), is("null"), is("this"))
}

// recognizer tries one production. It reports false without consuming
// anything when the current token cannot start it; once it has consumed its
// leading token any failure is returned as an error.
type recognizer func() (bool, error)

// snapshot is a cursor position plus the amount of code emitted so far.
type snapshot struct {
	pos int
	out int
}

func (c *Compiler) save() snapshot {
	return snapshot{pos: c.tk.pos, out: c.vmw.Len()}
}

func (c *Compiler) restore(s snapshot) {
	c.tk.pos = s.pos
	c.vmw.Truncate(s.out)
}

// attempt runs r and restores the cursor and the emitted code when r does
// not match.
func (c *Compiler) attempt(r recognizer) (bool, error) {
	s := c.save()
	ok, err := r()
	if err != nil {
		return false, err
	}
	if !ok {
		c.restore(s)
	}
	return ok, nil
}

// oneOf commits to the first alternative that matches, in order.
func (c *Compiler) oneOf(alternatives ...recognizer) (bool, error) {
	for _, r := range alternatives {
		ok, err := c.attempt(r)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func (c *Compiler) zeroOrOne(r recognizer) error {
	_, err := c.attempt(r)
	return err
}

func (c *Compiler) zeroOrMore(r recognizer) error {
	for {
		ok, err := c.attempt(r)
		if err != nil || !ok {
			return err
		}
	}
}

// accept consumes the current token if it matches.
func (c *Compiler) accept(m matcher) (tokenizer.Token, bool) {
	token := c.tk.current()
	if _, ok := m(token); !ok {
		return nil, false
	}
	c.tk.pos++
	return token, true
}

// expect consumes the current token or fails with a SyntaxError.
func (c *Compiler) expect(m matcher) (tokenizer.Token, error) {
	token := c.tk.current()
	expected, ok := m(token)
	if !ok {
		return nil, c.syntaxError(expected)
	}
	c.tk.pos++
	return token, nil
}

// require expects each keyword or symbol in turn.
func (c *Compiler) require(raws ...string) error {
	for _, raw := range raws {
		if _, err := c.expect(is(raw)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) syntaxError(expected string) error {
	token := c.tk.current()
	return &SyntaxError{Line: token.Line(), Expected: expected, Actual: token.Raw()}
}
