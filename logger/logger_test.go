package logger

import (
	"io"
	"os"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}

	stdout := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = stdout
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return string(out)
}

func TestToggle(t *testing.T) {
	defer Toggle(false)

	Toggle(false)
	quiet := captureStdout(t, func() {
		Print("a")
		Printf("%s", "b")
		Println("c")
	})
	if quiet != "" {
		t.Errorf("printed %q while quiet", quiet)
	}
	if Verbose() {
		t.Errorf("Verbose() = true after Toggle(false)")
	}

	Toggle(true)
	loud := captureStdout(t, func() {
		Print("a")
		Printf("%s", "b")
		Println("c")
	})
	if !Verbose() {
		t.Errorf("Verbose() = false after Toggle(true)")
	}
	if loud != "abc\n" {
		t.Errorf("printed %q, want %q", loud, "abc\n")
	}
}
