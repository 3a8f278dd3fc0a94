package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Block(t *testing.T) {
	w := NewWriter("  ", 1)
	w.WriteBlock("{", "},", func() {
		w.WriteLinef("path: '%s',", "x")
		w.WriteLine("")
		w.WriteLine("pathMatch: 'full',")
	})

	assert.Equal(t, "  {\n    path: 'x',\n\n    pathMatch: 'full',\n  },", w.String())
}

func TestWriter_DedentStopsAtZero(t *testing.T) {
	w := NewWriter("\t", 0)
	w.Dedent()
	w.WriteLine("a")
	w.Indent()
	w.WriteLine("b")

	assert.Equal(t, "a\n\tb", w.String())
}

func TestWriter_Empty(t *testing.T) {
	assert.Equal(t, "", NewWriter("  ", 2).String())
}
