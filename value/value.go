// Package value implements tib's tagged-union Value model: a scalar Number
// or a homogeneous NumberList, plus the Variable addressing used by Context.
//
// Grounded on MongooseMoo-barn's types package: the Value interface mirrors
// types.Value (Type/String/Equal/Truthy), Number mirrors types.FloatValue,
// and NumberList mirrors types.ListValue backed by a private slice-based
// list (types/list.go's sliceList).
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jaydenmilne/tib/errs"
)

// Kind tags which case of the Value union a given Value holds.
type Kind int

const (
	KindNumber Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindList {
		return "LIST"
	}
	return "NUMBER"
}

// Value is the tagged union: either a Number or a NumberList.
type Value interface {
	Kind() Kind
	String() string
	Equal(Value) bool
	// Truthy reports truthiness per spec.md §3. Only valid for Number;
	// callers must check Kind() first — calling Truthy on a NumberList
	// is a programmer error in this package, not a language-level one
	// (the language-level TypeMismatch is raised by the caller, e.g.
	// ast's logical operators, before Truthy is ever invoked on a list).
	Truthy() bool
}

// Number is a scalar double-precision value.
type Number struct {
	Val float64
}

func NewNumber(v float64) Number { return Number{Val: v} }

func (n Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	s := strconv.FormatFloat(n.Val, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (n Number) Equal(other Value) bool {
	o, ok := other.(Number)
	return ok && o.Val == n.Val
}

func (n Number) Truthy() bool { return n.Val != 0 }

// NumberList is a finite ordered sequence of Numbers.
type NumberList struct {
	elements []Number
}

// NewNumberList builds a NumberList, validating that every input Value is a
// Number. A non-Number element aborts with NonNumericInList per spec.md §3.
func NewNumberList(elements []Value) (NumberList, error) {
	nums := make([]Number, len(elements))
	for i, v := range elements {
		n, ok := v.(Number)
		if !ok {
			return NumberList{}, errs.New(errs.NonNumericInList,
				"list element %d is a %s, not a number", i, v.Kind())
		}
		nums[i] = n
	}
	return NumberList{elements: nums}, nil
}

// NewNumberListFromNumbers builds a NumberList directly from Numbers; used
// internally (e.g. by arithmetic broadcasts) where every element is already
// known to be a Number.
func NewNumberListFromNumbers(nums []Number) NumberList {
	return NumberList{elements: nums}
}

func (l NumberList) Kind() Kind { return KindList }

func (l NumberList) Len() int { return len(l.elements) }

// At returns the i'th element (0-based).
func (l NumberList) At(i int) Number { return l.elements[i] }

func (l NumberList) Elements() []Number {
	out := make([]Number, len(l.elements))
	copy(out, l.elements)
	return out
}

func (l NumberList) String() string {
	parts := make([]string, len(l.elements))
	for i, e := range l.elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (l NumberList) Equal(other Value) bool {
	o, ok := other.(NumberList)
	if !ok || len(o.elements) != len(l.elements) {
		return false
	}
	for i := range l.elements {
		if !l.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// Truthy panics: NumberList has no truthiness (spec.md §3). Callers must
// guard with Kind() and raise errs.TypeMismatch before reaching here.
func (l NumberList) Truthy() bool {
	panic(fmt.Sprintf("value: Truthy() called on a %s", l.Kind()))
}

// BoolNumber converts a Go bool to the Number tib uses for booleans in the
// source language (1.0 / 0.0), per spec.md §3.
func BoolNumber(b bool) Number {
	if b {
		return Number{Val: 1}
	}
	return Number{Val: 0}
}
