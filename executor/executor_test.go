package executor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/parser"
	"github.com/jaydenmilne/tib/value"
)

// run parses and executes src against a fresh context, returning the final
// Ans and whatever Disp wrote.
func run(t *testing.T, src string) (value.Value, string) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	var out bytes.Buffer
	ctx := context.New()
	p := New(prog, ctx, &out)
	if err := p.Run(); err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return ctx.Ans(), out.String()
}

func wantAns(t *testing.T, src string, want float64) {
	t.Helper()
	ans, _ := run(t, src)
	n, ok := ans.(value.Number)
	if !ok {
		t.Fatalf("%q: Ans = %v (%T), want Number", src, ans, ans)
	}
	if n.Val != want {
		t.Errorf("%q: Ans = %v, want %v", src, n.Val, want)
	}
}

func TestBareExpression(t *testing.T) {
	wantAns(t, "2+2\n", 4)
}

func TestSingleLineIfFalseSkipsNextStatement(t *testing.T) {
	wantAns(t, "If 0\n1+1\n", 0)
}

func TestBlockIfTrueRunsBody(t *testing.T) {
	wantAns(t, "If 1\nThen\n1+1\nEnd\n", 2)
}

func TestBlockIfFalseTakesElse(t *testing.T) {
	wantAns(t, "If 0\nThen\n1+1\nElse\n3+3\nEnd\n", 6)
}

func TestForLoopRunsBodyOncePerInductionStep(t *testing.T) {
	// B doubles once per iteration of A from 0 to 5 inclusive: 6 doublings.
	wantAns(t, "3->B\nFor(A,0,5)\n2*B->B\nEnd\nB\n", 3*64)
}

func TestForLoopZeroIterationsWhenStartExceedsStop(t *testing.T) {
	wantAns(t, "3->B\nFor(A,5,0)\n2*B->B\nEnd\nB\n", 3)
}

func TestWhileLoopRunsUntilConditionFalse(t *testing.T) {
	wantAns(t, "0->B\nWhile B<5\nB+1->B\nEnd\nB\n", 5)
}

func TestRepeatLoopRunsBodyAtLeastOnce(t *testing.T) {
	// Condition true immediately after the first body run: one iteration.
	wantAns(t, "0->B\nRepeat B>0\nB+1->B\nEnd\nB\n", 1)
}

func TestRepeatLoopKeepsGoingUntilConditionTrue(t *testing.T) {
	wantAns(t, "0->B\nRepeat B>3\nB+1->B\nEnd\nB\n", 4)
}

func TestGotoLblLoop(t *testing.T) {
	wantAns(t, "0->A\nLbl A\nA+1->A\nIf A<5\nGoto A\nA\n", 5)
}

func TestDecrementSkipBranches(t *testing.T) {
	// newVal (4) < bound (6): the skip fires, so "0->A" never executes.
	wantAns(t, "5->A\nDS<(A,6)\n0->A\nA\n", 4)
	// newVal (6) < bound (6) is false: no skip, "0->A" runs normally.
	wantAns(t, "7->A\nDS<(A,6)\n0->A\nA\n", 0)
}

func TestIncrementSkipBranches(t *testing.T) {
	wantAns(t, "5->A\nIS>(A,4)\n0->A\nA\n", 6)
	wantAns(t, "3->A\nIS>(A,4)\n0->A\nA\n", 0)
}

func TestImplicitMultiplicationInProgram(t *testing.T) {
	wantAns(t, "2(3-4)\n", -2)
}

func TestDispWritesToOutputChannel(t *testing.T) {
	_, out := run(t, "Disp 1+1\n")
	if strings.TrimRight(out, "\n") != "2.0" {
		t.Errorf("Disp output = %q, want \"2.0\"", out)
	}
}

func TestDeepNestedParensDoesNotOverflow(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("(")
	}
	b.WriteString("1")
	for i := 0; i < 100; i++ {
		b.WriteString(")")
	}
	b.WriteByte('\n')
	wantAns(t, b.String(), 1)
}

func TestNestedIfInsideWhile(t *testing.T) {
	src := "0->B\n0->C\nWhile B<4\nIf B=2\nThen\nC+1->C\nEnd\nB+1->B\nEnd\nC\n"
	wantAns(t, src, 1)
}

func TestUnterminatedBlockParsesButFailsAtRuntime(t *testing.T) {
	// The condition is false, so the executor must scan forward looking
	// for the matching End — and runs off the end of the program doing it.
	prog, err := parser.ParseProgram("If 0\nThen\nDisp 1\n")
	if err != nil {
		t.Fatalf("ParseProgram should accept an unterminated block: %v", err)
	}
	var out bytes.Buffer
	p := New(prog, context.New(), &out)
	err = p.Run()
	if !errs.Is(err, errs.UnexpectedEof) {
		t.Fatalf("Run() = %v, want UnexpectedEof", err)
	}
}

func TestElseWithoutMatchingIfIsUnexpectedElse(t *testing.T) {
	prog, err := parser.ParseProgram("Else\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	p := New(prog, context.New(), &bytes.Buffer{})
	err = p.Run()
	if !errs.Is(err, errs.UnexpectedElse) {
		t.Fatalf("Run() = %v, want UnexpectedElse", err)
	}
}

func TestEndWithEmptyBlockStackIsUnexpectedEnd(t *testing.T) {
	prog, err := parser.ParseProgram("End\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	p := New(prog, context.New(), &bytes.Buffer{})
	err = p.Run()
	if !errs.Is(err, errs.UnexpectedEnd) {
		t.Fatalf("Run() = %v, want UnexpectedEnd", err)
	}
}

func TestGotoUnknownLabel(t *testing.T) {
	prog, err := parser.ParseProgram("Goto Z\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	p := New(prog, context.New(), &bytes.Buffer{})
	err = p.Run()
	if !errs.Is(err, errs.UnknownLabel) {
		t.Fatalf("Run() = %v, want UnknownLabel", err)
	}
}

func TestPCSaveRestoreAcrossRuns(t *testing.T) {
	// Mirrors the REPL's pause/resume contract (spec.md §5): a partial
	// block that runs off the end while scanning fails with
	// UnexpectedEof, leaving pc at the header so the same source can be
	// extended and re-run from there instead of from scratch.
	prog, err := parser.ParseProgram("If 0\nThen\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	ctx := context.New()
	p := New(prog, ctx, &bytes.Buffer{})
	if err := p.Run(); !errs.Is(err, errs.UnexpectedEof) {
		t.Fatalf("first Run() = %v, want UnexpectedEof", err)
	}
	savedPC := p.PC()

	more, err := parser.ParseProgram("If 0\nThen\nDisp 9\nEnd\n")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	var out bytes.Buffer
	p2 := New(more, ctx, &out)
	p2.SetPC(savedPC)
	if err := p2.Run(); err != nil {
		t.Fatalf("resumed Run(): %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("resumed Run() Disp output = %q, want none (condition was false)", out.String())
	}
}
