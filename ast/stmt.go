package ast

import (
	"github.com/jaydenmilne/tib/token"
	"github.com/jaydenmilne/tib/value"
)

// Stmt is one parsed unit the executor's program counter steps over:
// either an expression or a command (spec.md §3).
//
// Grounded on parser.Stmt's marker-interface scheme; unlike the teacher's
// structured Stmt tree (bodies nested as []Stmt slices per if/while/for),
// tib's Stmt list is FLAT — a command like If or For carries no body; the
// executor's block stack and forward scan (spec.md §4.3-§4.4) are what
// give it structure at run time, matching spec.md's "no pre-computed basic
// blocks" design.
type Stmt interface {
	Position() token.Position
	stmtNode()
}

// ExprStmt is a value-producing expression statement (spec.md §3).
type ExprStmt struct {
	Pos  token.Position
	Expr Expr
}

func (s *ExprStmt) Position() token.Position { return s.Pos }
func (*ExprStmt) stmtNode()                  {}

// IfCmd is the header of an If/[Then]/[Else]/End structure. Whether it is
// block-form or single-line-form is decided at run time by what statement
// immediately follows it (spec.md §4.3).
type IfCmd struct {
	Pos  token.Position
	Cond Expr
}

func (s *IfCmd) Position() token.Position { return s.Pos }
func (*IfCmd) stmtNode()                  {}

// ThenCmd marks the boundary between an If's condition and its true-branch
// body.
type ThenCmd struct{ Pos token.Position }

func (s *ThenCmd) Position() token.Position { return s.Pos }
func (*ThenCmd) stmtNode()                  {}

// ElseCmd marks the boundary between an If's true-branch body and its
// false-branch body.
type ElseCmd struct{ Pos token.Position }

func (s *ElseCmd) Position() token.Position { return s.Pos }
func (*ElseCmd) stmtNode()                  {}

// EndCmd closes the innermost open block structure (spec.md §4.3).
type EndCmd struct{ Pos token.Position }

func (s *EndCmd) Position() token.Position { return s.Pos }
func (*EndCmd) stmtNode()                  {}

// ForCmd is a For(var,start,stop,inc) loop header (spec.md §3, §4.3).
type ForCmd struct {
	Pos   token.Position
	Var   value.Variable
	Start Expr
	Stop  Expr
	Inc   Expr // nil means the default step of 1, per common TI-BASIC usage
}

func (s *ForCmd) Position() token.Position { return s.Pos }
func (*ForCmd) stmtNode()                  {}

// WhileCmd is a While(cond) loop header (spec.md §3, §4.3).
type WhileCmd struct {
	Pos  token.Position
	Cond Expr
}

func (s *WhileCmd) Position() token.Position { return s.Pos }
func (*WhileCmd) stmtNode()                  {}

// RepeatCmd is a Repeat(cond) loop header; the body always runs at least
// once (spec.md §4.3).
type RepeatCmd struct {
	Pos  token.Position
	Cond Expr
}

func (s *RepeatCmd) Position() token.Position { return s.Pos }
func (*RepeatCmd) stmtNode()                  {}

// LblCmd declares a jump target; it is a no-op at run time (spec.md §4.3) —
// its pc is resolved into the label cache during parsing (spec.md §4.5).
type LblCmd struct {
	Pos  token.Position
	Name string
}

func (s *LblCmd) Position() token.Position { return s.Pos }
func (*LblCmd) stmtNode()                  {}

// GotoCmd transfers control to the pc recorded for Name in the label cache
// (spec.md §4.3).
type GotoCmd struct {
	Pos  token.Position
	Name string
}

func (s *GotoCmd) Position() token.Position { return s.Pos }
func (*GotoCmd) stmtNode()                  {}

// DecrementSkipCmd is DS<(var, bound): decrement var, then skip the next
// statement if var < bound (spec.md §4.3).
type DecrementSkipCmd struct {
	Pos   token.Position
	Var   value.Variable
	Bound Expr
}

func (s *DecrementSkipCmd) Position() token.Position { return s.Pos }
func (*DecrementSkipCmd) stmtNode()                  {}

// IncrementSkipCmd is IS>(var, bound): increment var, then skip the next
// statement if var > bound (spec.md §4.3).
type IncrementSkipCmd struct {
	Pos   token.Position
	Var   value.Variable
	Bound Expr
}

func (s *IncrementSkipCmd) Position() token.Position { return s.Pos }
func (*IncrementSkipCmd) stmtNode()                  {}

// DispCmd evaluates Expr and emits it on the display channel (spec.md §4.3,
// §6).
type DispCmd struct {
	Pos  token.Position
	Expr Expr
}

func (s *DispCmd) Position() token.Position { return s.Pos }
func (*DispCmd) stmtNode()                  {}
