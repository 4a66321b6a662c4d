package analyzer

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hlmerscher/jackc/engine"
	"github.com/hlmerscher/jackc/symbols"
	"github.com/hlmerscher/jackc/tokenizer"
	"github.com/hlmerscher/jackc/vm"
	"github.com/hlmerscher/jackc/writer"
)

// Compile compiles the class read from in and writes its VM code to out.
// Nothing reaches out unless the whole class compiles. The class name is
// returned as far as it was read.
func Compile(in io.Reader, out io.Writer) (string, error) {
	tokens, err := tokenizer.Tokenize(in)
	if err != nil {
		return "", err
	}
	return CompileTokens(tokens, out)
}

func CompileTokens(tokens []tokenizer.Token, out io.Writer) (string, error) {
	vmw := vm.New()
	compiler := engine.New(tokens, symbols.New(), vmw)
	if err := compiler.Compile(); err != nil {
		return compiler.ClassName(), err
	}

	_, err := vmw.WriteTo(out)
	return compiler.ClassName(), errors.Wrap(err, "writing vm code")
}

// DumpTokens writes the token stream as <tokens> markup.
func DumpTokens(tokens []tokenizer.Token, out io.Writer) error {
	return writer.XML(out, tokenizer.Stream(tokens))
}
