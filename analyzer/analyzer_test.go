package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/hlmerscher/jackc/engine"
	"github.com/hlmerscher/jackc/symbols"
	"github.com/hlmerscher/jackc/tokenizer"
)

const seven = `// Computes 1 + (2 * 3) and prints it.
class Main {
   function void main() {
      do Output.printInt(1 + (2 * 3));
      return;
   }
}
`

func TestCompile(t *testing.T) {
	var out strings.Builder
	class, err := Compile(strings.NewReader(seven), &out)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if class != "Main" {
		t.Errorf("class %q, want Main", class)
	}

	want := `function Main.main 0
push constant 1
push constant 2
push constant 3
call Math.multiply 2
add
call Output.printInt 1
pop temp 0
push constant 0
return
`
	if out.String() != want {
		t.Errorf("got\n%s\nwant\n%s", out.String(), want)
	}
}

func TestCompileWritesNothingOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{
			name: "lexical",
			src:  "class Main { function void main() { return 99999; } }",
			check: func(err error) bool {
				var lexErr *tokenizer.LexicalError
				return errors.As(err, &lexErr)
			},
		},
		{
			name: "syntax after emitted code",
			src:  "class Main { function void main() { return; } function void f() { return } }",
			check: func(err error) bool {
				var syntaxErr *engine.SyntaxError
				return errors.As(err, &syntaxErr)
			},
		},
		{
			name: "semantic after emitted code",
			src:  "class Main { function void main() { return; } function int f() { return y; } }",
			check: func(err error) bool {
				return errors.Is(err, symbols.ErrUndefinedSymbol)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			_, err := Compile(strings.NewReader(tt.src), &out)
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("wrote output for a failing unit:\n%s", out.String())
			}
		})
	}
}

func TestDumpTokens(t *testing.T) {
	tokens, err := tokenizer.Tokenize(strings.NewReader("class Main { }"))
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	var out strings.Builder
	if err := DumpTokens(tokens, &out); err != nil {
		t.Fatalf("DumpTokens failed: %v", err)
	}

	want := `<tokens>
 <keyword> class </keyword>
 <identifier> Main </identifier>
 <symbol> { </symbol>
 <symbol> } </symbol>
</tokens>
`
	if out.String() != want {
		t.Errorf("got\n%s\nwant\n%s", out.String(), want)
	}
}
