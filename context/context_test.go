package context

import (
	"testing"

	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/value"
)

func TestSetThenGet(t *testing.T) {
	c := New()
	if _, err := c.Set(value.RealVar('B'), value.NewNumber(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.Get(value.RealVar('B'))
	if n, ok := got.(value.Number); !ok || n.Val != 3 {
		t.Errorf("Get(B) = %v, want 3.0", got)
	}
}

func TestSetAnsImmutable(t *testing.T) {
	c := New()
	_, err := c.Set(value.AnsVar, value.NewNumber(1))
	if !errs.Is(err, errs.ImmutableVariable) {
		t.Fatalf("expected ImmutableVariable, got %v", err)
	}
}

func TestAnsDefaultsToZero(t *testing.T) {
	c := New()
	got := c.Get(value.AnsVar)
	if n, ok := got.(value.Number); !ok || n.Val != 0 {
		t.Errorf("default Ans = %v, want 0.0", got)
	}
}

func TestUnsetRealReadIsWithinBound(t *testing.T) {
	c := NewSeeded(42)
	got := c.Get(value.RealVar('Z'))
	n, ok := got.(value.Number)
	if !ok {
		t.Fatalf("expected a Number, got %v", got)
	}
	if n.Val < -1e20 || n.Val >= 1e20 {
		t.Errorf("unset read %v out of documented bound", n.Val)
	}
}

func TestSeededContextIsReproducible(t *testing.T) {
	a := NewSeeded(7).Get(value.RealVar('A'))
	b := NewSeeded(7).Get(value.RealVar('A'))
	if !a.Equal(b) {
		t.Errorf("same seed produced different unset reads: %v vs %v", a, b)
	}
}

func TestSetAnsAfterExpression(t *testing.T) {
	c := New()
	c.SetAns(value.NewNumber(4))
	if ans := c.Ans(); !ans.Equal(value.NewNumber(4)) {
		t.Errorf("Ans = %v, want 4.0", ans)
	}
}
