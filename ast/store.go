package ast

import (
	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/token"
	"github.com/jaydenmilne/tib/value"
)

// Store evaluates Value and writes it to Var, yielding the stored value
// (spec.md §4.1: "Store (value -> var) writes to the named variable and
// yields the stored value; storing to Ans fails").
type Store struct {
	Pos   token.Position
	Value Expr
	Var   value.Variable
}

func (e *Store) Position() token.Position { return e.Pos }
func (*Store) exprNode()                  {}

func (e *Store) Eval(ctx *context.Context) (value.Value, error) {
	v, err := e.Value.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return ctx.Set(e.Var, v)
}
