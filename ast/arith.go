package ast

import (
	"math"

	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/value"
)

// arith implements +, -, *, ^ across every Value/Value shape combination
// spec.md §4.1 requires: Number-Number, Number-List, List-Number, and
// List-List (elementwise, equal length required). fn is applied left,right
// in that order so list-scalar broadcasts preserve operand order (spec.md:
// "List − Number != Number − List").
//
// Grounded on the broadcast rule described in spec.md §4.1; the teacher's
// vm/operators.go has no analogous broadcast (MOO arithmetic is strictly
// scalar), so this is adapted from the spec's own description rather than
// copied from a single teacher function — see DESIGN.md.
func arith(op BinOp, l, r value.Value, fn func(a, b float64) float64) (value.Value, error) {
	switch lv := l.(type) {
	case value.Number:
		switch rv := r.(type) {
		case value.Number:
			return value.NewNumber(fn(lv.Val, rv.Val)), nil
		case value.NumberList:
			return broadcastScalarLeft(lv, rv, fn), nil
		}
	case value.NumberList:
		switch rv := r.(type) {
		case value.Number:
			return broadcastScalarRight(lv, rv, fn), nil
		case value.NumberList:
			return elementwise(lv, rv, fn)
		}
	}
	return nil, errs.New(errs.TypeMismatch, "unsupported operand types for %v", op)
}

func broadcastScalarLeft(scalar value.Number, list value.NumberList, fn func(a, b float64) float64) value.NumberList {
	out := make([]value.Number, list.Len())
	for i := 0; i < list.Len(); i++ {
		out[i] = value.NewNumber(fn(scalar.Val, list.At(i).Val))
	}
	return value.NewNumberListFromNumbers(out)
}

func broadcastScalarRight(list value.NumberList, scalar value.Number, fn func(a, b float64) float64) value.NumberList {
	out := make([]value.Number, list.Len())
	for i := 0; i < list.Len(); i++ {
		out[i] = value.NewNumber(fn(list.At(i).Val, scalar.Val))
	}
	return value.NewNumberListFromNumbers(out)
}

func elementwise(l, r value.NumberList, fn func(a, b float64) float64) (value.Value, error) {
	if l.Len() != r.Len() {
		return nil, errs.New(errs.DimensionMismatch, "list lengths %d and %d differ", l.Len(), r.Len())
	}
	out := make([]value.Number, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = value.NewNumber(fn(l.At(i).Val, r.At(i).Val))
	}
	return value.NewNumberListFromNumbers(out), nil
}

// divide is arith's sibling for "/": it needs a DivideByZero check that
// applies per-element, so it can't reuse the single-float fn signature.
func divide(l, r value.Value) (value.Value, error) {
	switch lv := l.(type) {
	case value.Number:
		switch rv := r.(type) {
		case value.Number:
			if rv.Val == 0 {
				return nil, errs.New(errs.DivideByZero, "division by zero")
			}
			return value.NewNumber(lv.Val / rv.Val), nil
		case value.NumberList:
			out := make([]value.Number, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				d := rv.At(i).Val
				if d == 0 {
					return nil, errs.New(errs.DivideByZero, "division by zero")
				}
				out[i] = value.NewNumber(lv.Val / d)
			}
			return value.NewNumberListFromNumbers(out), nil
		}
	case value.NumberList:
		switch rv := r.(type) {
		case value.Number:
			if rv.Val == 0 {
				return nil, errs.New(errs.DivideByZero, "division by zero")
			}
			out := make([]value.Number, lv.Len())
			for i := 0; i < lv.Len(); i++ {
				out[i] = value.NewNumber(lv.At(i).Val / rv.Val)
			}
			return value.NewNumberListFromNumbers(out), nil
		case value.NumberList:
			if lv.Len() != rv.Len() {
				return nil, errs.New(errs.DimensionMismatch, "list lengths %d and %d differ", lv.Len(), rv.Len())
			}
			out := make([]value.Number, lv.Len())
			for i := 0; i < lv.Len(); i++ {
				d := rv.At(i).Val
				if d == 0 {
					return nil, errs.New(errs.DivideByZero, "division by zero")
				}
				out[i] = value.NewNumber(lv.At(i).Val / d)
			}
			return value.NewNumberListFromNumbers(out), nil
		}
	}
	return nil, errs.New(errs.TypeMismatch, "unsupported operand types for /")
}

// powFloat uses IEEE pow with no special-casing, per spec.md §4.1: "no
// special handling of negative bases with non-integer exponents beyond
// what the floating-point library returns."
func powFloat(a, b float64) float64 {
	return math.Pow(a, b)
}
