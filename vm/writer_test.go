package vm

import (
	"strings"
	"testing"
)

func TestWriterInstructions(t *testing.T) {
	w := New()

	w.WriteFunction("Main.main", 2)
	w.WritePush(Constant, 7)
	w.WritePush(Argument, 0)
	w.WritePop(Pointer, 0)
	w.WriteArithmetic(Add)
	w.WriteArithmetic(Not)
	w.WriteLabel("WHILE_EXP_0")
	w.WriteIf("WHILE_END_0")
	w.WriteGoto("WHILE_EXP_0")
	w.WriteCall("Math.multiply", 2)
	w.WritePop(Temp, 0)
	w.WritePush(That, 0)
	w.WriteReturn()

	want := strings.Join([]string{
		"function Main.main 2",
		"push constant 7",
		"push argument 0",
		"pop pointer 0",
		"add",
		"not",
		"label WHILE_EXP_0",
		"if-goto WHILE_END_0",
		"goto WHILE_EXP_0",
		"call Math.multiply 2",
		"pop temp 0",
		"push that 0",
		"return",
	}, "\n") + "\n"

	if got := w.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestWriterTruncate(t *testing.T) {
	w := New()
	w.WritePush(Local, 1)

	mark := w.Len()
	w.WritePush(Static, 3)
	w.WriteArithmetic(Neg)
	w.Truncate(mark)

	w.WriteReturn()

	if got, want := w.String(), "push local 1\nreturn\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriterWriteTo(t *testing.T) {
	w := New()
	w.WriteReturn()

	var out strings.Builder
	n, err := w.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(len("return\n")) || out.String() != "return\n" {
		t.Errorf("wrote %d bytes %q", n, out.String())
	}
}
