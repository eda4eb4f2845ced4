package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Answer
	}{
		{"lowercase y", "y\n", AnswerYes},
		{"yes word", "yes\n", AnswerYes},
		{"uppercase Y", "Y\n", AnswerYes},
		{"mixed case Yes", "Yes\n", AnswerYes},
		{"surrounding spaces", "  y  \n", AnswerYes},
		{"lowercase n", "n\n", AnswerNo},
		{"no word", "no\n", AnswerNo},
		{"uppercase NO", "NO\n", AnswerNo},
		{"empty line", "\n", AnswerUnrecognized},
		{"garbage", "maybe\n", AnswerUnrecognized},
		{"numeric", "1\n", AnswerUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			answer, err := AskYesNo(out, strings.NewReader(tt.input), "Continue anyway?")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, answer)
			assert.Contains(t, out.String(), "Continue anyway? [y/N]: ")
		})
	}
}

func TestAskYesNo_EOF(t *testing.T) {
	out := &bytes.Buffer{}
	answer, err := AskYesNo(out, strings.NewReader(""), "Continue anyway?")

	assert.Error(t, err)
	assert.Equal(t, AnswerUnrecognized, answer)
	assert.True(t, answer.Declined())
}

func TestAskYesNo_SequentialPromptsShareReader(t *testing.T) {
	// Each prompt must consume exactly its own line, so later prompts
	// on the same reader still see their answers.
	r := strings.NewReader("y\nno\n")
	out := &bytes.Buffer{}

	first, err := AskYesNo(out, r, "First?")
	require.NoError(t, err)
	assert.Equal(t, AnswerYes, first)

	second, err := AskYesNo(out, r, "Second?")
	require.NoError(t, err)
	assert.Equal(t, AnswerNo, second)
}

func TestPause_AfterPromptOnSameReader(t *testing.T) {
	r := strings.NewReader("yes\n\n")
	out := &bytes.Buffer{}

	answer, err := AskYesNo(out, r, "Continue anyway?")
	require.NoError(t, err)
	assert.Equal(t, AnswerYes, answer)

	// The pause still has its Enter keypress left to read.
	Pause(out, r)
	assert.Contains(t, out.String(), "Press Enter to exit...")
}

func TestAnswer_Declined(t *testing.T) {
	assert.False(t, AnswerYes.Declined())
	assert.True(t, AnswerNo.Declined())
	assert.True(t, AnswerUnrecognized.Declined())
}

func TestAnswer_String(t *testing.T) {
	assert.Equal(t, "yes", AnswerYes.String())
	assert.Equal(t, "no", AnswerNo.String())
	assert.Equal(t, "unrecognized", AnswerUnrecognized.String())
}

func TestPause(t *testing.T) {
	out := &bytes.Buffer{}
	Pause(out, strings.NewReader("\n"))
	assert.Contains(t, out.String(), "Press Enter to exit...")
}
