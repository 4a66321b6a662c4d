package logger

import (
	"fmt"

	"github.com/fatih/color"
)

var verbose = false

var (
	warn = color.New(color.FgYellow)
	fail = color.New(color.FgRed, color.Bold)
)

func Toggle(flag bool) {
	verbose = flag
}

// Verbose reports whether progress output is on.
func Verbose() bool {
	return verbose
}

func Print(values ...any) {
	if !verbose {
		return
	}

	fmt.Print(values...)
}

func Printf(format string, values ...any) {
	if !verbose {
		return
	}

	fmt.Printf(format, values...)
}

func Println(values ...any) {
	if !verbose {
		return
	}

	fmt.Println(values...)
}

// Warnf prints to stderr regardless of verbosity.
func Warnf(format string, values ...any) {
	warn.Fprintf(color.Error, "WARNING: "+format, values...)
}

// Errorf prints to stderr regardless of verbosity.
func Errorf(format string, values ...any) {
	fail.Fprintf(color.Error, format, values...)
}
