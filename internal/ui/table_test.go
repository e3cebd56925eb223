package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_RenderNoColor(t *testing.T) {
	var buf bytes.Buffer
	tb := NewTable(&buf, true, "NAME", "TYPE")
	tb.AddRow("x", "int")
	tb.AddRow("label", "string")
	tb.AddRow("short")
	tb.Render()

	want := "NAME   TYPE\n" +
		"-----  ------\n" +
		"x      int\n" +
		"label  string\n" +
		"short  \n"
	assert.Equal(t, want, buf.String())
}

func TestTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, true).Render()
	assert.Empty(t, buf.String())
}

func TestKeyValue_Render(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValue(&buf, true)
	kv.AddRow("class", "Point")
	kv.AddRow("immutable", "false")
	kv.Render()
	assert.Equal(t, "class:     Point\nimmutable: false\n", buf.String())
}
