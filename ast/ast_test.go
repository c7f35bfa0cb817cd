package ast

import (
	"testing"

	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/value"
)

func num(v float64) *NumberLit { return &NumberLit{Val: v} }

func TestBinaryAdd(t *testing.T) {
	ctx := context.New()
	e := &Binary{Op: OpAdd, Left: num(2), Right: num(2)}
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(value.NewNumber(4)) {
		t.Errorf("2+2 = %v, want 4.0", got)
	}
}

func TestDivideByZero(t *testing.T) {
	ctx := context.New()
	e := &Binary{Op: OpDiv, Left: num(1), Right: num(0)}
	_, err := e.Eval(ctx)
	if !errs.Is(err, errs.DivideByZero) {
		t.Fatalf("expected DivideByZero, got %v", err)
	}
}

func TestListMinusNumberOrderMatters(t *testing.T) {
	ctx := context.New()
	list := &ListLit{Elements: []Expr{num(5), num(10)}}

	listMinusNum := &Binary{Op: OpSub, Left: list, Right: num(1)}
	got, err := listMinusNum.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotList := got.(value.NumberList)
	if gotList.At(0).Val != 4 || gotList.At(1).Val != 9 {
		t.Errorf("List-1 = %v, want {4,9}", got)
	}

	numMinusList := &Binary{Op: OpSub, Left: num(1), Right: list}
	got2, err := numMinusList.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotList2 := got2.(value.NumberList)
	if gotList2.At(0).Val != -4 || gotList2.At(1).Val != -9 {
		t.Errorf("1-List = %v, want {-4,-9}", got2)
	}
}

func TestDimensionMismatch(t *testing.T) {
	ctx := context.New()
	a := &ListLit{Elements: []Expr{num(1), num(2)}}
	b := &ListLit{Elements: []Expr{num(1)}}
	e := &Binary{Op: OpAdd, Left: a, Right: b}
	_, err := e.Eval(ctx)
	if !errs.Is(err, errs.DimensionMismatch) {
		t.Fatalf("expected DimensionMismatch, got %v", err)
	}
}

func TestUnaryMinusOnListIsTypeError(t *testing.T) {
	ctx := context.New()
	list := &ListLit{Elements: []Expr{num(1)}}
	e := &Unary{Op: OpNegate, Operand: list}
	_, err := e.Eval(ctx)
	if !errs.Is(err, errs.TypeMismatch) {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestStoreToAnsFails(t *testing.T) {
	ctx := context.New()
	e := &Store{Value: num(1), Var: value.AnsVar}
	_, err := e.Eval(ctx)
	if !errs.Is(err, errs.ImmutableVariable) {
		t.Fatalf("expected ImmutableVariable, got %v", err)
	}
}

func TestStoreToRealVar(t *testing.T) {
	ctx := context.New()
	e := &Store{Value: num(7), Var: value.RealVar('A')}
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(value.NewNumber(7)) {
		t.Errorf("Store result = %v, want 7.0", got)
	}
	if read := ctx.Get(value.RealVar('A')); !read.Equal(value.NewNumber(7)) {
		t.Errorf("A after store = %v, want 7.0", read)
	}
}

func TestBinaryPower(t *testing.T) {
	ctx := context.New()
	e := &Binary{Op: OpPow, Left: num(2), Right: num(3)}
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(value.NewNumber(8)) {
		t.Errorf("2^3 = %v, want 8.0", got)
	}
}

func TestLogicalXor(t *testing.T) {
	ctx := context.New()
	e := &Binary{Op: OpXor, Left: num(1), Right: num(0)}
	got, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(value.NewNumber(1)) {
		t.Errorf("1 xor 0 = %v, want 1.0", got)
	}
}
