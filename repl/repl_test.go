package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jaydenmilne/tib/context"
)

// session runs lines through a REPL (each line is what the user would
// type, not including the trailing newline the scanner strips) and returns
// the non-prompt output lines, one per executed chunk.
func session(t *testing.T, lines ...string) []string {
	t.Helper()
	var out bytes.Buffer
	r := New(context.New(), &out, ":")
	if err := r.Run(strings.NewReader(strings.Join(lines, "\n") + "\n")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var results []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line != "" && line != ":" {
			results = append(results, line)
		}
	}
	return results
}

func TestImmediateExecutionOfPlainLine(t *testing.T) {
	got := session(t, "2+2")
	if len(got) != 1 || got[0] != "4.0" {
		t.Fatalf("got %v, want [4.0]", got)
	}
}

func TestPausesOnOpenBlockUntilBlankLine(t *testing.T) {
	got := session(t, "2+2", "If 1", "Then", "3+3", "End", "")
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 results", got)
	}
	if got[0] != "4.0" {
		t.Errorf("first result = %q, want 4.0", got[0])
	}
	if got[1] != "6.0" {
		t.Errorf("second result = %q, want 6.0", got[1])
	}
}

func TestSingleLineIfAlsoPausesUntilBlankLine(t *testing.T) {
	// Paused mode is triggered by any If token, so even the single-line
	// form "If 0" (no Then) pauses: "9+9" is buffered rather than run, and
	// with no blank line to end the pause nothing is executed or printed.
	got := session(t, "If 0", "9+9")
	if len(got) != 0 {
		t.Fatalf("got %v, want no results (input still buffered in paused mode)", got)
	}
}

func TestUnrecoverableErrorResetsBuffer(t *testing.T) {
	got := session(t, "Else", "2+2")
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 results (error line, then a clean 4.0)", got)
	}
	if got[1] != "4.0" {
		t.Errorf("second result = %q, want 4.0 (buffer reset after the UnexpectedElse)", got[1])
	}
}
