package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MaxInt is the largest integer constant the language accepts.
const MaxInt = 32767

// LexicalError reports a lexeme that cannot become a token.
type LexicalError struct {
	Line   int
	Lexeme string
	Reason string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("l%d: %s, received '%s'", e.Line, e.Reason, e.Lexeme)
}

func New(input io.Reader) Tokenizer {
	return Tokenizer{
		input: bufio.NewReader(input),
	}
}

type Tokenizer struct {
	input          *bufio.Reader
	inBlockComment bool
	pending        []Token
	LineNr         int
	Current        Token
}

// Tokenize reads the whole input and returns its tokens in source order.
// It stops at the first lexical error.
func Tokenize(input io.Reader) ([]Token, error) {
	tk := New(input)

	tokens := make([]Token, 0)
	for {
		token, err := tk.Advance()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
}

// Advance returns the next token, or io.EOF once the input is exhausted.
func (tk *Tokenizer) Advance() (Token, error) {
	for len(tk.pending) == 0 {
		line, err := tk.ReadLine()
		if err != nil {
			return nil, err
		}

		tk.pending, err = tk.tokenizeLine(line)
		if err != nil {
			return nil, err
		}
	}

	tk.Current = tk.pending[0]
	tk.pending = tk.pending[1:]

	return tk.Current, nil
}

func (tk *Tokenizer) ReadLine() (string, error) {
	line, err := tk.input.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		if tk.inBlockComment {
			return "", &LexicalError{Line: tk.LineNr, Lexeme: "/*", Reason: "unterminated block comment"}
		}
		return "", io.EOF
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrapf(err, "reading line %d", tk.LineNr+1)
	}
	tk.LineNr++

	line = strings.TrimRight(line, "\r\n")
	return line, nil
}

func (tk *Tokenizer) tokenizeLine(line string) ([]Token, error) {
	tokens := make([]Token, 0)

	i := 0
	for i < len(line) {
		if tk.inBlockComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return tokens, nil
			}
			tk.inBlockComment = false
			i += end + 2
			continue
		}

		var lexeme string
		rest := line[i:]
		first, size := utf8.DecodeRuneInString(rest)
		switch {
		case unicode.IsSpace(first):
			i += size
			continue
		case strings.HasPrefix(rest, "//"):
			return tokens, nil
		case strings.HasPrefix(rest, "/*"):
			tk.inBlockComment = true
			i += 2
			continue
		case rest[0] == '"':
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, &LexicalError{Line: tk.LineNr, Lexeme: rest, Reason: "unterminated string constant"}
			}
			lexeme = rest[:end+2]
		case isSymbol(rest[:1]):
			lexeme = rest[:1]
		default:
			end := strings.IndexFunc(rest, func(r rune) bool {
				return unicode.IsSpace(r) || r == '"' || isSymbol(string(r))
			})
			if end < 0 {
				end = len(rest)
			}
			lexeme = rest[:end]
		}
		i += len(lexeme)

		token := Classify(lexeme, tk.LineNr)
		if invalid, ok := token.(Invalid); ok {
			return nil, invalidTokenError(invalid)
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func invalidTokenError(token Invalid) error {
	reason := "expected token"
	switch {
	case isDigits(token.Lexeme):
		reason = fmt.Sprintf("expected integer constant in 0..%d", MaxInt)
	case strings.HasPrefix(token.Lexeme, "\""):
		reason = fmt.Sprintf("expected characters in 0..%d", MaxInt)
	}
	return &LexicalError{Line: token.LineNr, Lexeme: token.Lexeme, Reason: reason}
}

// Classify turns one lexeme into a token, trying keyword, symbol, integer,
// string and identifier in that order. Anything else is Invalid.
func Classify(value string, line int) Token {
	switch {
	case isKeyword(value):
		return Keyword{Value: value, LineNr: line}
	case isSymbol(value):
		return Symbol{Value: rune(value[0]), LineNr: line}
	case isInteger(value):
		n, _ := strconv.Atoi(value)
		return IntConstant{Value: n, LineNr: line}
	case isString(value):
		return StringConstant{Value: value[1 : len(value)-1], LineNr: line}
	case isIdentifier(value):
		return Identifier{Value: value, LineNr: line}
	}
	return Invalid{Lexeme: value, LineNr: line}
}

var keywords = []string{
	"class",
	"constructor",
	"function",
	"method",
	"field",
	"static",
	"var",
	"int",
	"char",
	"boolean",
	"void",
	"true",
	"false",
	"null",
	"this",
	"let",
	"do",
	"if",
	"else",
	"while",
	"return",
}

func isKeyword(value string) bool {
	return slices.Contains(keywords, value)
}

var symbols = []string{
	"{", "}",
	"(", ")",
	"[", "]",
	".", ",", ";",
	"+", "-", "*", "/",
	"&", "|",
	"<", ">",
	"=", "~",
}

func isSymbol(value string) bool {
	return slices.Contains(symbols, value)
}

func isDigits(value string) bool {
	return value != "" && strings.Trim(value, "0123456789") == ""
}

func isInteger(value string) bool {
	if !isDigits(value) {
		return false
	}
	n, err := strconv.Atoi(value)
	return err == nil && n <= MaxInt
}

func isString(value string) bool {
	return len(value) >= 2 &&
		strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") &&
		!strings.ContainsAny(value[1:len(value)-1], "\"\n") &&
		strings.IndexFunc(value, func(r rune) bool { return r > MaxInt }) < 0
}

var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isIdentifier(value string) bool {
	return identifierRegex.MatchString(value)
}
