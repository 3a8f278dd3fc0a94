// Package writer builds indented source text line by line
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates lines, prefixing each with the current indentation
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	lines        int
}

// NewWriter creates a writer indenting with indentString, starting at level
func NewWriter(indentString string, level int) *Writer {
	return &Writer{
		indentString: indentString,
		indentLevel:  level,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteLine writes one indented line. Lines are separated, not terminated,
// by newlines.
func (w *Writer) WriteLine(s string) {
	if w.lines > 0 {
		w.sb.WriteString("\n")
	}
	if s != "" {
		w.sb.WriteString(strings.Repeat(w.indentString, w.indentLevel))
	}
	w.sb.WriteString(s)
	w.lines++
}

// WriteLinef writes one formatted, indented line
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

// WriteBlock writes content one level deeper between opener and closer
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// String returns the text written so far
func (w *Writer) String() string {
	return w.sb.String()
}
