package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/hlmerscher/jackc/analyzer"
	"github.com/hlmerscher/jackc/logger"
)

const (
	primaryPrompt = "jack> "
	contPrompt    = "  ... "
)

// interactive compiles standard input to standard output when it is piped,
// and otherwise reads classes from a prompt: a blank line compiles what has
// been typed so far.
func interactive() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		_, err := analyzer.Compile(os.Stdin, os.Stdout)
		return err
	}

	rl, err := readline.New(primaryPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	var source strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			source.Reset()
			rl.SetPrompt(primaryPrompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			source.WriteString(line + "\n")
			rl.SetPrompt(contPrompt)
			continue
		}
		if source.Len() == 0 {
			continue
		}

		compileSnippet(source.String(), rl.Stdout())
		source.Reset()
		rl.SetPrompt(primaryPrompt)
	}
}

func compileSnippet(src string, out io.Writer) {
	compiled := new(bytes.Buffer)
	if _, err := analyzer.Compile(strings.NewReader(src), compiled); err != nil {
		logger.Errorf("%v\n", err)
		return
	}
	fmt.Fprint(out, compiled.String())
}
