package parser

import (
	"testing"

	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/value"
)

func evalExpr(t *testing.T, src string) value.Value {
	t.Helper()
	p, err := New(src)
	if err != nil {
		t.Fatalf("New(%q): %v", src, err)
	}
	e, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parseExpr(%q): %v", src, err)
	}
	v, err := e.Eval(context.New())
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func TestPrecedenceAddBeforeCompare(t *testing.T) {
	// 1+2=3 should parse as (1+2)=3, not 1+(2=3).
	got := evalExpr(t, "1+2=3")
	if !got.Equal(value.NewNumber(1)) {
		t.Errorf("1+2=3 = %v, want 1 (true)", got)
	}
}

func TestImplicitMultiplicationOfParenGroups(t *testing.T) {
	got := evalExpr(t, "2(3+4)")
	if !got.Equal(value.NewNumber(14)) {
		t.Errorf("2(3+4) = %v, want 14", got)
	}
}

func TestImplicitMultiplicationChained(t *testing.T) {
	got := evalExpr(t, "2(3)(4)")
	if !got.Equal(value.NewNumber(24)) {
		t.Errorf("2(3)(4) = %v, want 24", got)
	}
}

func TestPowerBindsTighterThanUnaryNegate(t *testing.T) {
	got := evalExpr(t, "--2^2")
	if !got.Equal(value.NewNumber(-4)) {
		t.Errorf("--2^2 = %v, want -4 (power binds before negate)", got)
	}
}

func TestPowerLeftAssociative(t *testing.T) {
	got := evalExpr(t, "2^3^2")
	if !got.Equal(value.NewNumber(64)) {
		t.Errorf("2^3^2 = %v, want 64 ((2^3)^2)", got)
	}
}

func TestScientificLiteralStandalone(t *testing.T) {
	got := evalExpr(t, "1e2")
	if !got.Equal(value.NewNumber(100)) {
		t.Errorf("1e2 = %v, want 100", got)
	}
}

func TestNotPrefixWithElidedCloseParen(t *testing.T) {
	got := evalExpr(t, "not(0")
	if !got.Equal(value.NewNumber(1)) {
		t.Errorf("not(0 = %v, want 1 (true)", got)
	}
}

func TestOrXorRightAssociative(t *testing.T) {
	// 1 xor 0 xor 0 should still reduce to true regardless of grouping.
	got := evalExpr(t, "1 xor 0 xor 0")
	if !got.Equal(value.NewNumber(1)) {
		t.Errorf("1 xor 0 xor 0 = %v, want 1", got)
	}
}

func TestStoreToVariable(t *testing.T) {
	p, err := New("5->A")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parseExpr: %v", err)
	}
	store, ok := e.(*ast.Store)
	if !ok {
		t.Fatalf("parsed %T, want *ast.Store", e)
	}
	if store.Var != value.RealVar('A') {
		t.Errorf("Store.Var = %v, want A", store.Var)
	}
}

func TestParseProgramFlatStatements(t *testing.T) {
	src := "If 1\nThen\nDisp 2\nEnd\n"
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Stmts) != 4 {
		t.Fatalf("got %d statements, want 4: %#v", len(prog.Stmts), prog.Stmts)
	}
	if _, ok := prog.Stmts[0].(*ast.IfCmd); !ok {
		t.Errorf("Stmts[0] = %T, want *ast.IfCmd", prog.Stmts[0])
	}
	if _, ok := prog.Stmts[1].(*ast.ThenCmd); !ok {
		t.Errorf("Stmts[1] = %T, want *ast.ThenCmd", prog.Stmts[1])
	}
	if _, ok := prog.Stmts[2].(*ast.DispCmd); !ok {
		t.Errorf("Stmts[2] = %T, want *ast.DispCmd", prog.Stmts[2])
	}
	if _, ok := prog.Stmts[3].(*ast.EndCmd); !ok {
		t.Errorf("Stmts[3] = %T, want *ast.EndCmd", prog.Stmts[3])
	}
}

func TestParseProgramLabelCache(t *testing.T) {
	src := "Lbl A\n1+1\nGoto A\n"
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	pc, ok := prog.Labels["A"]
	if !ok {
		t.Fatalf("label A not found in %v", prog.Labels)
	}
	if pc != 0 {
		t.Errorf("label A resolves to pc %d, want 0", pc)
	}
}

func TestParseProgramFirstLabelWins(t *testing.T) {
	src := "Lbl A\nLbl A\n"
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if prog.Labels["A"] != 0 {
		t.Errorf("label A resolves to pc %d, want 0 (first occurrence)", prog.Labels["A"])
	}
}

func TestParseProgramAllowsUnterminatedBlock(t *testing.T) {
	src := "If 1\nThen\nDisp 1\n"
	if _, err := ParseProgram(src); err != nil {
		t.Fatalf("ParseProgram should accept an unterminated block at parse time: %v", err)
	}
}

func TestParseForLoopHeader(t *testing.T) {
	p, err := New("For(A,1,10,2)\n")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		t.Fatalf("parseStatement: %v", err)
	}
	forCmd, ok := stmt.(*ast.ForCmd)
	if !ok {
		t.Fatalf("parsed %T, want *ast.ForCmd", stmt)
	}
	if forCmd.Var != value.RealVar('A') {
		t.Errorf("For var = %v, want A", forCmd.Var)
	}
	if forCmd.Inc == nil {
		t.Errorf("For inc = nil, want explicit step expression")
	}
}

func TestParseDecrementSkip(t *testing.T) {
	p, err := New("DS<(A,0)\n")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		t.Fatalf("parseStatement: %v", err)
	}
	if _, ok := stmt.(*ast.DecrementSkipCmd); !ok {
		t.Fatalf("parsed %T, want *ast.DecrementSkipCmd", stmt)
	}
}
