package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_StatusMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Success("preflight passed")
	w.Warning("credentials.json missing")
	w.Error("python not found")
	w.Status("", "indented detail")

	out := buf.String()
	assert.Contains(t, out, "OK preflight passed")
	assert.Contains(t, out, "WARN credentials.json missing")
	assert.Contains(t, out, "FAIL python not found")
	assert.Contains(t, out, "   indented detail")
}

func TestWriter_Formatted(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Successf("found %s", "Python 3.11.4")
	w.Warningf("missing %d files", 2)
	w.Errorf("exit code %d", 1)

	out := buf.String()
	assert.Contains(t, out, "found Python 3.11.4")
	assert.Contains(t, out, "missing 2 files")
	assert.Contains(t, out, "exit code 1")
}

func TestWriter_CodeBlockIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Code("line one\nline two")

	assert.Contains(t, buf.String(), "  line one\n  line two\n")
}

func TestGetStyles(t *testing.T) {
	// Both variants must be constructible; plain styles render verbatim.
	plain := GetStyles(true)
	assert.Equal(t, "OK", plain.Success.Render("OK"))
	_ = GetStyles(false)
}
