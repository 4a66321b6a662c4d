package vm

import (
	"bytes"
	"fmt"
	"io"
)

// Writer formats VM instructions into an in-memory buffer. It does not
// validate them.
type Writer struct {
	out bytes.Buffer
}

func (b *Writer) WritePush(segment Segment, index int) {
	fmt.Fprintf(&b.out, "push %s %d\n", segment, index)
}

func (b *Writer) WritePop(segment Segment, index int) {
	fmt.Fprintf(&b.out, "pop %s %d\n", segment, index)
}

func (b *Writer) WriteArithmetic(cmd Command) {
	b.out.WriteString(string(cmd) + "\n")
}

func (b *Writer) WriteLabel(label string) {
	b.out.WriteString("label " + label + "\n")
}

func (b *Writer) WriteGoto(label string) {
	b.out.WriteString("goto " + label + "\n")
}

func (b *Writer) WriteIf(label string) {
	b.out.WriteString("if-goto " + label + "\n")
}

func (b *Writer) WriteCall(name string, nArgs int) {
	fmt.Fprintf(&b.out, "call %s %d\n", name, nArgs)
}

func (b *Writer) WriteFunction(name string, nLocals int) {
	fmt.Fprintf(&b.out, "function %s %d\n", name, nLocals)
}

func (b *Writer) WriteReturn() {
	b.out.WriteString("return\n")
}

// Len is a mark that Truncate can later rewind to.
func (b *Writer) Len() int {
	return b.out.Len()
}

// Truncate drops every instruction written after mark.
func (b *Writer) Truncate(mark int) {
	b.out.Truncate(mark)
}

func (b *Writer) String() string {
	return b.out.String()
}

func (b *Writer) WriteTo(w io.Writer) (int64, error) {
	return b.out.WriteTo(w)
}

func New() *Writer {
	return &Writer{}
}
