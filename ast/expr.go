// Package ast defines tib's expression and statement tree, plus the
// recursive evaluate() operation spec.md §4.1 assigns to each expression
// node.
//
// Grounded on MongooseMoo-barn's parser.Node/Expr/Stmt marker-interface
// scheme (parser/ast.go): Node carries a Position, Expr/Stmt narrow it with
// a private marker method. tib adds an Eval method directly to Expr (the
// teacher instead dispatches via a separate vm/eval.go switch — tib folds
// that dispatch into the interface itself since, per spec.md §4.1, "each
// AST node implements an evaluate(context) -> Value | error operation").
package ast

import (
	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/token"
	"github.com/jaydenmilne/tib/value"
)

// Node is the base of every AST node: AST nodes and statements alike carry
// a source Position for diagnostics.
type Node interface {
	Position() token.Position
}

// Expr is an evaluable expression node (spec.md §4.1).
type Expr interface {
	Node
	Eval(ctx *context.Context) (value.Value, error)
	exprNode()
}

// BinOp enumerates tib's binary operators (spec.md §4.1 precedence levels
// 3-7, 10).
type BinOp int

const (
	OpOr BinOp = iota
	OpXor
	OpAnd
	OpEq
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

// UnOp enumerates tib's unary operators (spec.md §4.1 level 9, and "not(").
type UnOp int

const (
	OpNegate UnOp = iota
	OpNot
)

// NumberLit is a numeric literal leaf (spec.md §4.1 level 14), already
// folded from its source digits (and any scientific-notation suffix) by
// the parser.
type NumberLit struct {
	Pos token.Position
	Val float64
}

func (e *NumberLit) Position() token.Position { return e.Pos }
func (*NumberLit) exprNode()                  {}

func (e *NumberLit) Eval(*context.Context) (value.Value, error) {
	return value.NewNumber(e.Val), nil
}

// VarRef reads a Variable (spec.md §4.1 level 14).
type VarRef struct {
	Pos token.Position
	Var value.Variable
}

func (e *VarRef) Position() token.Position { return e.Pos }
func (*VarRef) exprNode()                  {}

func (e *VarRef) Eval(ctx *context.Context) (value.Value, error) {
	return ctx.Get(e.Var), nil
}

// ListLit constructs a NumberList from its elements, left to right
// (spec.md §4.1: "List literal").
type ListLit struct {
	Pos      token.Position
	Elements []Expr
}

func (e *ListLit) Position() token.Position { return e.Pos }
func (*ListLit) exprNode()                  {}

func (e *ListLit) Eval(ctx *context.Context) (value.Value, error) {
	vals := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := el.Eval(ctx)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	list, err := value.NewNumberList(vals)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Unary applies a unary operator to its operand (spec.md §4.1).
type Unary struct {
	Pos     token.Position
	Op      UnOp
	Operand Expr
}

func (e *Unary) Position() token.Position { return e.Pos }
func (*Unary) exprNode()                  {}

func (e *Unary) Eval(ctx *context.Context) (value.Value, error) {
	v, err := e.Operand.Eval(ctx)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case OpNegate:
		return negate(v)
	case OpNot:
		return logicalNot(v)
	default:
		return nil, errs.New(errs.TypeMismatch, "unknown unary operator")
	}
}

// negate implements unary minus. Lists have no unary minus (spec.md §4.1:
// "Unary minus on a list is a type error").
func negate(v value.Value) (value.Value, error) {
	n, ok := v.(value.Number)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "unary minus on a %s", v.Kind())
	}
	return value.NewNumber(-n.Val), nil
}

func logicalNot(v value.Value) (value.Value, error) {
	b, err := truthy(v)
	if err != nil {
		return nil, err
	}
	return value.BoolNumber(!b), nil
}

// truthy coerces v to a bool per spec.md §3: only Number has truthiness.
func truthy(v value.Value) (bool, error) {
	n, ok := v.(value.Number)
	if !ok {
		return false, errs.New(errs.TypeMismatch, "expected a number, got a %s", v.Kind())
	}
	return n.Truthy(), nil
}

// Binary applies a binary operator to two operands (spec.md §4.1).
type Binary struct {
	Pos   token.Position
	Op    BinOp
	Left  Expr
	Right Expr
}

func (e *Binary) Position() token.Position { return e.Pos }
func (*Binary) exprNode()                  {}

func (e *Binary) Eval(ctx *context.Context) (value.Value, error) {
	l, err := e.Left.Eval(ctx)
	if err != nil {
		return nil, err
	}

	// Logical operators short-circuit nothing (spec.md doesn't specify
	// short-circuiting; both operands are always evaluated, matching the
	// source's single-pass evaluator) but do need both sides up front.
	r, err := e.Right.Eval(ctx)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case OpOr, OpXor, OpAnd:
		return logicalBinary(e.Op, l, r)
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return compare(e.Op, l, r)
	case OpAdd:
		return arith(e.Op, l, r, func(a, b float64) float64 { return a + b })
	case OpSub:
		return arith(e.Op, l, r, func(a, b float64) float64 { return a - b })
	case OpMul:
		return arith(e.Op, l, r, func(a, b float64) float64 { return a * b })
	case OpDiv:
		return divide(l, r)
	case OpPow:
		return arith(e.Op, l, r, powFloat)
	default:
		return nil, errs.New(errs.TypeMismatch, "unknown binary operator")
	}
}

func logicalBinary(op BinOp, l, r value.Value) (value.Value, error) {
	lb, err := truthy(l)
	if err != nil {
		return nil, err
	}
	rb, err := truthy(r)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpOr:
		return value.BoolNumber(lb || rb), nil
	case OpXor:
		return value.BoolNumber(lb != rb), nil
	case OpAnd:
		return value.BoolNumber(lb && rb), nil
	}
	panic("unreachable")
}

func compare(op BinOp, l, r value.Value) (value.Value, error) {
	ln, ok := l.(value.Number)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "comparison operand is a %s", l.Kind())
	}
	rn, ok := r.(value.Number)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "comparison operand is a %s", r.Kind())
	}
	var result bool
	switch op {
	case OpEq:
		result = ln.Val == rn.Val
	case OpNe:
		result = ln.Val != rn.Val
	case OpGt:
		result = ln.Val > rn.Val
	case OpGe:
		result = ln.Val >= rn.Val
	case OpLt:
		result = ln.Val < rn.Val
	case OpLe:
		result = ln.Val <= rn.Val
	}
	return value.BoolNumber(result), nil
}
