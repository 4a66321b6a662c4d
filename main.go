package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hlmerscher/jackc/analyzer"
	"github.com/hlmerscher/jackc/logger"
	"github.com/hlmerscher/jackc/onerror"
	"github.com/hlmerscher/jackc/tokenizer"
	"github.com/hlmerscher/jackc/writer"
)

type options struct {
	outDir     string
	dumpTokens bool
}

func main() {
	var filename, dirname string
	var verbose bool
	var jobs int
	var opts options
	flag.StringVar(&filename, "f", "", "the filename of the jack source file")
	flag.StringVar(&dirname, "d", "", "the directory of the jack source files")
	flag.StringVar(&opts.outDir, "o", "", "the directory for generated files (default: next to each source)")
	flag.BoolVar(&opts.dumpTokens, "tokens", false, "also write the token stream of each file as <Name>T.xml")
	flag.BoolVar(&verbose, "v", false, "log progress")
	flag.IntVar(&jobs, "j", runtime.GOMAXPROCS(0), "files compiled in parallel")
	flag.Parse()

	logger.Toggle(verbose)

	if filename == "" && dirname == "" {
		onerror.Log(interactive())
		return
	}

	filenames, err := inputFilenames(filename, dirname)
	onerror.Logf("error reading directory\n", err)

	if err := compileAll(filenames, jobs, opts); err != nil {
		os.Exit(1)
	}
}

// compileAll compiles every file, each with its own tokenizer, symbol table
// and compiler. Failures are reported as they happen; the first one is
// returned.
func compileAll(filenames []string, jobs int, opts options) error {
	g := new(errgroup.Group)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for _, filename := range filenames {
		filename := filename
		g.Go(func() error {
			err := compileFile(filename, opts)
			if err != nil {
				logger.Errorf("%s: %v\n", filename, err)
			}
			return err
		})
	}

	return g.Wait()
}

func compileFile(filename string, opts options) error {
	logger.Printf("input:\t%s\n", filename)

	sourceFile, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "error opening file")
	}
	defer sourceFile.Close()

	tokens, err := tokenizer.Tokenize(sourceFile)
	if err != nil {
		return err
	}

	out := new(bytes.Buffer)
	class, err := analyzer.CompileTokens(tokens, out)
	if err != nil {
		return err
	}

	if opts.dumpTokens {
		dump := new(bytes.Buffer)
		if err := analyzer.DumpTokens(tokens, dump); err != nil {
			return err
		}
		if err := writer.ToFile(writer.OutputPath(filename, opts.outDir, "T.xml"), dump.Bytes()); err != nil {
			return err
		}
	}

	if base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)); class != base {
		logger.Warnf("%s declares class %s\n", filename, class)
	}

	outputFilename := writer.OutputPath(filename, opts.outDir, ".vm")
	logger.Printf("output:\t%s\n", outputFilename)
	return writer.ToFile(outputFilename, out.Bytes())
}

// inputFilenames lists the -f file followed by the .jack files of the -d
// directory.
func inputFilenames(filename, dirname string) ([]string, error) {
	filenames := make([]string, 0)
	if filename != "" {
		filenames = append(filenames, filename)
	}
	if dirname != "" {
		names, err := dirFilenames(dirname)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			logger.Warnf("no .jack files in %s\n", dirname)
		}
		filenames = append(filenames, names...)
	}
	return filenames, nil
}

func dirFilenames(dirname string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".jack" {
			filenames = append(filenames, filepath.Join(dirname, entry.Name()))
		}
	}

	return filenames, nil
}
