// Package prompt provides interactive operator prompts for the launcher.
// Prompts read whole lines and recognize a small fixed set of answers;
// anything unrecognized is treated as a decline.
package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Answer represents the operator's response to a yes/no prompt.
type Answer int

const (
	// AnswerYes is an affirmative response (y/yes).
	AnswerYes Answer = iota
	// AnswerNo is a recognized negative response (n/no).
	AnswerNo
	// AnswerUnrecognized is any other input, including empty lines.
	// Callers treat it the same as AnswerNo.
	AnswerUnrecognized
)

// Declined reports whether the answer is anything other than yes.
// Empty input, garbled input, and an explicit "no" all decline.
func (a Answer) Declined() bool {
	return a != AnswerYes
}

// String returns the string representation of an Answer.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "unrecognized"
	}
}

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// AskYesNo prints a yes/no question and reads one line of input.
// A read failure (including EOF) is reported as AnswerUnrecognized so
// that non-interactive runs fall through to the declined branch.
func AskYesNo(w io.Writer, r io.Reader, question string) (Answer, error) {
	fmt.Fprintf(w, "%s [y/N]: ", question)

	input, err := readLine(r)
	if err != nil && input == "" {
		return AnswerUnrecognized, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return AnswerYes, nil
	case "n", "no":
		return AnswerNo, nil
	default:
		return AnswerUnrecognized, nil
	}
}

// Pause blocks until the operator presses Enter.
func Pause(w io.Writer, r io.Reader) {
	fmt.Fprint(w, "Press Enter to exit...")
	_, _ = readLine(r)
	fmt.Fprintln(w)
}

// readLine reads up to the next newline, one byte at a time. Nothing
// beyond the answered line is consumed, so several prompts (and the
// final pause) can share the same reader.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}
