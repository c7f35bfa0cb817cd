package conformance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/executor"
	"github.com/jaydenmilne/tib/parser"
)

// TestResult is the outcome of running a single LoadedTest, mirroring
// barn's conformance.TestResult shape.
type TestResult struct {
	Test    LoadedTest
	Passed  bool
	Skipped bool
	Reason  string
	Err     error
}

// Runner executes TestCases against a fresh parser/executor/context each
// time — tib's programs are cheap enough that, unlike barn's shared
// database-backed evaluator, no setup caching is worth keeping.
type Runner struct{}

func NewRunner() *Runner { return &Runner{} }

// Run parses and executes test.Test.Program to completion and checks it
// against test.Test.Expect.
func (r *Runner) Run(test LoadedTest) TestResult {
	if skip, reason := test.Test.IsSkipped(); skip {
		return TestResult{Test: test, Skipped: true, Reason: reason}
	}

	prog, err := parser.ParseProgram(test.Test.Program)
	if err != nil {
		return r.checkError(test, err)
	}

	var out bytes.Buffer
	ctx := context.New()
	p := executor.New(prog, ctx, &out)
	if err := p.Run(); err != nil {
		return r.checkError(test, err)
	}

	expect := test.Test.Expect
	if expect.Error != "" {
		return TestResult{Test: test, Passed: false,
			Err: fmt.Errorf("expected error %s, run succeeded with Ans=%s", expect.Error, ctx.Ans())}
	}

	if expect.Ans != nil {
		got := ctx.Ans().String()
		want := formatFloat(*expect.Ans)
		if got != want {
			return TestResult{Test: test, Passed: false,
				Err: fmt.Errorf("Ans = %s, want %s", got, want)}
		}
	}

	if gotOut := strings.TrimRight(out.String(), "\n"); expect.Output != "" && gotOut != expect.Output {
		return TestResult{Test: test, Passed: false,
			Err: fmt.Errorf("output = %q, want %q", gotOut, expect.Output)}
	}

	return TestResult{Test: test, Passed: true}
}

// checkError handles a run (or parse) that failed, comparing the failure
// against an expected error kind if the case names one.
func (r *Runner) checkError(test LoadedTest, err error) TestResult {
	expect := test.Test.Expect
	if expect.Error == "" {
		return TestResult{Test: test, Passed: false, Err: fmt.Errorf("unexpected error: %w", err)}
	}
	kind, ok := errorNameToKind(expect.Error)
	if !ok {
		return TestResult{Test: test, Passed: false, Err: fmt.Errorf("unknown expected error kind: %s", expect.Error)}
	}
	if !errs.Is(err, kind) {
		return TestResult{Test: test, Passed: false,
			Err: fmt.Errorf("got error %v, want kind %s", err, expect.Error)}
	}
	return TestResult{Test: test, Passed: true}
}

// RunAll runs every test and returns one result per test, in order.
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, t := range tests {
		results[i] = r.Run(t)
	}
	return results
}

// formatFloat renders a float64 the same way value.Number.String() does,
// so fixture authors can write plain YAML numbers (4, 192, -2) without
// worrying about the trailing ".0" tib's language prints for whole numbers.
func formatFloat(f float64) string {
	n := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(n, ".eE") {
		n += ".0"
	}
	return n
}

func errorNameToKind(name string) (errs.Kind, bool) {
	switch name {
	case "TypeMismatch":
		return errs.TypeMismatch, true
	case "DivideByZero":
		return errs.DivideByZero, true
	case "DimensionMismatch":
		return errs.DimensionMismatch, true
	case "NonNumericInList":
		return errs.NonNumericInList, true
	case "ImmutableVariable":
		return errs.ImmutableVariable, true
	case "UnexpectedThen":
		return errs.UnexpectedThen, true
	case "UnexpectedElse":
		return errs.UnexpectedElse, true
	case "UnexpectedEnd":
		return errs.UnexpectedEnd, true
	case "UnexpectedEof":
		return errs.UnexpectedEof, true
	case "SyntaxError":
		return errs.SyntaxError, true
	case "UnknownLabel":
		return errs.UnknownLabel, true
	case "NotYetImplemented":
		return errs.NotYetImplemented, true
	case "MissingToken":
		return errs.MissingToken, true
	case "UnexpectedToken":
		return errs.UnexpectedToken, true
	default:
		return 0, false
	}
}
