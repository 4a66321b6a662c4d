package tokenizer

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return tokens
}

func raws(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Raw()
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Token
	}{
		{"class", Keyword{Value: "class", LineNr: 1}},
		{"this", Keyword{Value: "this", LineNr: 1}},
		{"{", Symbol{Value: '{', LineNr: 1}},
		{"~", Symbol{Value: '~', LineNr: 1}},
		{"0", IntConstant{Value: 0, LineNr: 1}},
		{"32767", IntConstant{Value: 32767, LineNr: 1}},
		{`"hello world"`, StringConstant{Value: "hello world", LineNr: 1}},
		{`""`, StringConstant{Value: "", LineNr: 1}},
		{"x", Identifier{Value: "x", LineNr: 1}},
		{"_tmp1", Identifier{Value: "_tmp1", LineNr: 1}},
		{"classy", Identifier{Value: "classy", LineNr: 1}},
		{"32768", Invalid{Lexeme: "32768", LineNr: 1}},
		{"1abc", Invalid{Lexeme: "1abc", LineNr: 1}},
		{"#", Invalid{Lexeme: "#", LineNr: 1}},
		{"==", Invalid{Lexeme: "==", LineNr: 1}},
		{"\"caf\u00e9\"", StringConstant{Value: "caf\u00e9", LineNr: 1}},
		{"\"\U0001F600\"", Invalid{Lexeme: "\"\U0001F600\"", LineNr: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			got := Classify(tt.lexeme, 1)
			if got != tt.want {
				t.Errorf("Classify(%q) = %#v, want %#v", tt.lexeme, got, tt.want)
			}
		})
	}
}

func TestTokenizeStatement(t *testing.T) {
	tokens := tokenize(t, `let a[i] = Keyboard.readInt("HOW MANY NUMBERS? ");`)

	want := []string{"let", "a", "[", "i", "]", "=", "Keyboard", ".", "readInt", "(", "HOW MANY NUMBERS? ", ")", ";"}
	got := raws(tokens)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}

	wantTypes := []TokenType{KEYWORD, IDENTIFIER, SYMBOL, IDENTIFIER, SYMBOL, SYMBOL, IDENTIFIER, SYMBOL, IDENTIFIER, SYMBOL, STRING_CONST, SYMBOL, SYMBOL}
	for i, tok := range tokens {
		if tok.Type() != wantTypes[i] {
			t.Errorf("token %d %q: type %s, want %s", i, tok.Raw(), tok.Type(), wantTypes[i])
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "line comment drops rest of line",
			src:  "let x = 1; // let y = 2;\nreturn;",
			want: []string{"let", "x", "=", "1", ";", "return", ";"},
		},
		{
			name: "whole line comment",
			src:  "// class Main {\nclass",
			want: []string{"class"},
		},
		{
			name: "block comment on one line",
			src:  "do /* not */ f();",
			want: []string{"do", "f", "(", ")", ";"},
		},
		{
			name: "block comment across lines",
			src:  "var int a; /* start\n still comment; \n end */ var int b;",
			want: []string{"var", "int", "a", ";", "var", "int", "b", ";"},
		},
		{
			name: "api comment",
			src:  "/** Returns the sum.\n * @param x\n */\nfunction",
			want: []string{"function"},
		},
		{
			name: "comment marker inside string",
			src:  `do Output.printString("http://x"); // trailing`,
			want: []string{"do", "Output", ".", "printString", "(", "http://x", ")", ";"},
		},
		{
			name: "division is not a comment",
			src:  "x/y",
			want: []string{"x", "/", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := raws(tokenize(t, tt.src))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenizeLineNumbers(t *testing.T) {
	src := "class Main {\r\n\n  /* a\n  b */\n\tfield int x;\n}"
	tokens := tokenize(t, src)

	want := map[string]int{"class": 1, "Main": 1, "field": 5, "x": 5, "}": 6}
	for _, tok := range tokens {
		if line, ok := want[tok.Raw()]; ok && tok.Line() != line {
			t.Errorf("%q on line %d, want %d", tok.Raw(), tok.Line(), line)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"integer out of range", "let x = 40000;", 1, "l1: expected integer constant in 0..32767, received '40000'"},
		{"unknown character", "let x = 1;\nlet y = #;", 2, "l2: expected token, received '#'"},
		{"bad identifier", "var int 9lives;", 1, "l1: expected token, received '9lives'"},
		{"unterminated string", `do f("abc);`, 1, `l1: unterminated string constant, received '"abc);'`},
		{"character out of range", "do f(\"\u00e9\U0001F600\");", 1, "l1: expected characters in 0..32767, received '\"\u00e9\U0001F600\"'"},
		{"unterminated block comment", "class /* never\nends", 2, "l2: unterminated block comment, received '/*'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(strings.NewReader(tt.src))
			var lexErr *LexicalError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexicalError, got %v", err)
			}
			if lexErr.Line != tt.line {
				t.Errorf("line %d, want %d", lexErr.Line, tt.line)
			}
			if err.Error() != tt.msg {
				t.Errorf("message %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tokens := tokenize(t, "  \n// nothing here\n/* or here */\n")
	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %q", raws(tokens))
	}
}

func TestAdvance(t *testing.T) {
	tk := New(strings.NewReader("return 7;"))

	for _, want := range []string{"return", "7", ";"} {
		tok, err := tk.Advance()
		if err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
		if tok.Raw() != want || tk.Current.Raw() != want {
			t.Errorf("got %q (current %q), want %q", tok.Raw(), tk.Current.Raw(), want)
		}
	}

	if _, err := tk.Advance(); err == nil {
		t.Error("expected io.EOF after last token")
	}
}

func TestStreamMarshalXML(t *testing.T) {
	tokens := tokenize(t, `if (x < "a")`)

	out, err := xml.Marshal(Stream(tokens))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := "<tokens><keyword> if </keyword><symbol> ( </symbol><identifier> x </identifier>" +
		"<symbol> &lt; </symbol><stringConstant> a </stringConstant><symbol> ) </symbol></tokens>"
	if string(out) != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}
