// Package executor owns the program counter, block stack, and label cache
// that drive a parsed tib program (spec.md §2, §4.3) — the core of this
// repository.
//
// Grounded on MongooseMoo-barn's vm.VM/vm.StackFrame (vm/vm.go): an explicit
// instruction pointer walking a flat instruction stream, with a LoopStack
// for nested loop state and a Step/Execute split between "advance one unit"
// and "dispatch on what's there." tib's Program plays the same role one
// level up — its "instructions" are ast.Stmt values rather than bytecode,
// and its LoopStack equivalent (the block stack) also has to represent
// If/Then/Else, which MOO's VM never needed since MOO compiles conditionals
// to straight-line jumps instead of interpreting structured headers at run
// time.
package executor

import (
	"fmt"
	"io"

	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/parser"
	"github.com/jaydenmilne/tib/value"
)

// Program is a parsed tib program bound to a Context and ready to run. It
// owns the mutable pc and block stack spec.md §3 assigns to "Program":
// the statement vector itself is immutable (owned by *parser.Program).
type Program struct {
	prog   *parser.Program
	ctx    *context.Context
	out    io.Writer
	pc     int
	blocks []blockFrame
}

// New binds a parsed program to a Context and an output writer for Disp.
func New(prog *parser.Program, ctx *context.Context, out io.Writer) *Program {
	return &Program{prog: prog, ctx: ctx, out: out}
}

// PC returns the current program counter. After Run fails with
// UnexpectedEof, pc still names the statement that raised it; the REPL
// driver reads it then and passes it to SetPC on its next run (spec.md §5),
// so a partial program can be extended and re-run from where it left off.
func (p *Program) PC() int { return p.pc }

// SetPC overrides the program counter; see PC.
func (p *Program) SetPC(pc int) { p.pc = pc }

// Context returns the bound variable store, e.g. for the REPL to print Ans
// after a run.
func (p *Program) Context() *context.Context { return p.ctx }

// Run advances pc from its current position until it reaches the end of
// the statement vector or a statement raises an error (spec.md §4.3: "its
// public contract is run(program) -> () | ExecError"). It does not reset pc
// to 0 — callers that want a fresh run construct a fresh Program (or
// explicitly SetPC(0)).
func (p *Program) Run() error {
	for p.pc < len(p.prog.Stmts) {
		if err := p.step(); err != nil {
			return err
		}
	}
	return nil
}

// step executes exactly one statement, per the dispatch table in spec.md
// §4.3.
func (p *Program) step() error {
	switch stmt := p.prog.Stmts[p.pc].(type) {
	case *ast.ExprStmt:
		return p.execExprStmt(stmt)
	case *ast.IfCmd:
		return p.execIf(stmt)
	case *ast.ThenCmd:
		return errs.New(errs.UnexpectedThen, "Then reached outside the If-true path at pc %d", p.pc)
	case *ast.ElseCmd:
		return p.execElse(stmt)
	case *ast.EndCmd:
		return p.execEnd(stmt)
	case *ast.ForCmd:
		return p.execFor(stmt)
	case *ast.WhileCmd:
		return p.execWhile(stmt)
	case *ast.RepeatCmd:
		return p.execRepeat(stmt)
	case *ast.LblCmd:
		p.pc++
		return nil
	case *ast.GotoCmd:
		return p.execGoto(stmt)
	case *ast.DecrementSkipCmd:
		return p.execDecrementSkip(stmt)
	case *ast.IncrementSkipCmd:
		return p.execIncrementSkip(stmt)
	case *ast.DispCmd:
		return p.execDisp(stmt)
	default:
		return errs.New(errs.NotYetImplemented, "no executor dispatch for statement type %T", stmt)
	}
}

func (p *Program) execExprStmt(stmt *ast.ExprStmt) error {
	v, err := stmt.Expr.Eval(p.ctx)
	if err != nil {
		return err
	}
	p.ctx.SetAns(v)
	p.pc++
	return nil
}

// execIf implements spec.md §4.3's If dispatch, both block and single-line
// forms.
func (p *Program) execIf(stmt *ast.IfCmd) error {
	condVal, err := stmt.Cond.Eval(p.ctx)
	if err != nil {
		return err
	}
	condTrue, err := truthy(condVal)
	if err != nil {
		return err
	}

	ifPC := p.pc
	if isBlockFormIf(p.prog.Stmts, ifPC) {
		p.pushBlock(BlockIf, ifPC)
		top := p.peekBlock()
		if condTrue {
			top.tookTrueBranch = true
			p.pc = ifPC + 2 // skip If and Then; body starts executing
			return nil
		}
		top.tookTrueBranch = false
		foundPC, foundElse, err := p.scanForward(ifPC, scanStopAtElseOrEnd)
		if err != nil {
			return err
		}
		if foundElse {
			p.pc = foundPC + 1 // consume Else; else arm executes next
		} else {
			p.pc = foundPC // land on End; next step pops this IfBlock
		}
		return nil
	}

	// Single-line form: no block is pushed.
	if condTrue {
		p.pc = ifPC + 1 // next statement executes normally
	} else {
		p.pc = ifPC + 2 // skip the guarded statement
	}
	return nil
}

// execElse implements spec.md §4.3's Else dispatch: only reachable when the
// true-arm's body falls through into the Else statement during ordinary
// sequential execution (the false-arm path never dispatches here — it
// jumps past Else via scanForward).
func (p *Program) execElse(stmt *ast.ElseCmd) error {
	top := p.peekBlock()
	if top == nil || top.kind != BlockIf || !top.tookTrueBranch {
		return errs.New(errs.UnexpectedElse, "Else with no matching true-branch If at pc %d", p.pc)
	}
	endPC, _, err := p.scanForward(p.pc, scanNoElseExpected)
	if err != nil {
		return err
	}
	p.pc = endPC // land on End; next step pops this IfBlock
	return nil
}

// execEnd implements spec.md §4.3's End dispatch: examine (don't pop) the
// block-stack top and act per its kind.
func (p *Program) execEnd(stmt *ast.EndCmd) error {
	top := p.peekBlock()
	if top == nil {
		return errs.New(errs.UnexpectedEnd, "End with an empty block stack at pc %d", p.pc)
	}

	switch top.kind {
	case BlockIf:
		if _, err := p.popBlock(); err != nil {
			return err
		}
		p.pc++
		return nil

	case BlockFor:
		forStmt, ok := p.prog.Stmts[top.headerPC].(*ast.ForCmd)
		if !ok {
			return errs.New(errs.SyntaxError, "For block header at pc %d is not a For", top.headerPC)
		}
		newVal, stopVal, err := p.advanceForInduction(forStmt)
		if err != nil {
			return err
		}
		if newVal.Val <= stopVal.Val {
			// Jump straight to the body (not the header): the header
			// statement itself only ever runs once, at initial entry. If
			// pc landed back on it here, the next step() would dispatch
			// execFor again and re-evaluate Start, stomping the induction
			// variable this End just advanced.
			p.pc = top.headerPC + 1
		} else {
			if _, err := p.popBlock(); err != nil {
				return err
			}
			p.pc++
		}
		return nil

	case BlockWhile:
		whileStmt, ok := p.prog.Stmts[top.headerPC].(*ast.WhileCmd)
		if !ok {
			return errs.New(errs.SyntaxError, "While block header at pc %d is not a While", top.headerPC)
		}
		condVal, err := whileStmt.Cond.Eval(p.ctx)
		if err != nil {
			return err
		}
		condTrue, err := truthy(condVal)
		if err != nil {
			return err
		}
		if condTrue {
			// Same reasoning as BlockFor above: land on the body, not the
			// While header, so the header is never re-dispatched.
			p.pc = top.headerPC + 1
		} else {
			if _, err := p.popBlock(); err != nil {
				return err
			}
			p.pc++
		}
		return nil

	case BlockRepeat:
		repeatStmt, ok := p.prog.Stmts[top.headerPC].(*ast.RepeatCmd)
		if !ok {
			return errs.New(errs.SyntaxError, "Repeat block header at pc %d is not a Repeat", top.headerPC)
		}
		condVal, err := repeatStmt.Cond.Eval(p.ctx)
		if err != nil {
			return err
		}
		// Repeat loops UNTIL the condition is true: true means stop.
		condTrue, err := truthy(condVal)
		if err != nil {
			return err
		}
		if condTrue {
			if _, err := p.popBlock(); err != nil {
				return err
			}
			p.pc++
		} else {
			// Same reasoning as BlockFor above: re-enter the body, not the
			// Repeat header.
			p.pc = top.headerPC + 1
		}
		return nil

	default:
		return errs.New(errs.SyntaxError, "unknown block kind %v at pc %d", top.kind, p.pc)
	}
}

// advanceForInduction adds the loop's step to its induction variable and
// returns the new value alongside the (re-evaluated) stop bound.
func (p *Program) advanceForInduction(forStmt *ast.ForCmd) (value.Number, value.Number, error) {
	cur, err := numberOf(p.ctx.Get(forStmt.Var))
	if err != nil {
		return value.Number{}, value.Number{}, err
	}
	step := value.NewNumber(1)
	if forStmt.Inc != nil {
		stepVal, err := forStmt.Inc.Eval(p.ctx)
		if err != nil {
			return value.Number{}, value.Number{}, err
		}
		step, err = numberOf(stepVal)
		if err != nil {
			return value.Number{}, value.Number{}, err
		}
	}
	newVal := value.NewNumber(cur.Val + step.Val)
	if _, err := p.ctx.Set(forStmt.Var, newVal); err != nil {
		return value.Number{}, value.Number{}, err
	}
	stopVal, err := forStmt.Stop.Eval(p.ctx)
	if err != nil {
		return value.Number{}, value.Number{}, err
	}
	stopNum, err := numberOf(stopVal)
	if err != nil {
		return value.Number{}, value.Number{}, err
	}
	return newVal, stopNum, nil
}

// execFor implements spec.md §4.3's For dispatch: assign start, push the
// block, and — if the condition doesn't hold from the very first iteration
// — scan past the body entirely.
func (p *Program) execFor(stmt *ast.ForCmd) error {
	forPC := p.pc
	startVal, err := stmt.Start.Eval(p.ctx)
	if err != nil {
		return err
	}
	startNum, err := numberOf(startVal)
	if err != nil {
		return err
	}
	if _, err := p.ctx.Set(stmt.Var, startNum); err != nil {
		return err
	}
	p.pushBlock(BlockFor, forPC)

	stopVal, err := stmt.Stop.Eval(p.ctx)
	if err != nil {
		return err
	}
	stopNum, err := numberOf(stopVal)
	if err != nil {
		return err
	}

	if startNum.Val <= stopNum.Val {
		p.pc = forPC + 1 // body executes
		return nil
	}
	endPC, _, err := p.scanForward(forPC, scanNoElseExpected)
	if err != nil {
		return err
	}
	p.pc = endPC // land on End, which re-drives induction/condition normally
	return nil
}

// execWhile implements spec.md §4.3's While dispatch.
func (p *Program) execWhile(stmt *ast.WhileCmd) error {
	whilePC := p.pc
	p.pushBlock(BlockWhile, whilePC)

	condVal, err := stmt.Cond.Eval(p.ctx)
	if err != nil {
		return err
	}
	condTrue, err := truthy(condVal)
	if err != nil {
		return err
	}
	if condTrue {
		p.pc = whilePC + 1
		return nil
	}
	endPC, _, err := p.scanForward(whilePC, scanNoElseExpected)
	if err != nil {
		return err
	}
	p.pc = endPC
	return nil
}

// execRepeat implements spec.md §4.3's Repeat dispatch: the body always
// runs at least once; the condition is checked only at End.
func (p *Program) execRepeat(stmt *ast.RepeatCmd) error {
	p.pushBlock(BlockRepeat, p.pc)
	p.pc++
	return nil
}

func (p *Program) execGoto(stmt *ast.GotoCmd) error {
	target, ok := p.prog.Labels[stmt.Name]
	if !ok {
		return errs.New(errs.UnknownLabel, "no Lbl %s in this program", stmt.Name)
	}
	// Goto does NOT unwind the block stack (spec.md §4.3, §9): jumping out
	// of a structure leaves its frame(s) on the stack, by design.
	p.pc = target
	return nil
}

func (p *Program) execDecrementSkip(stmt *ast.DecrementSkipCmd) error {
	cur, err := numberOf(p.ctx.Get(stmt.Var))
	if err != nil {
		return err
	}
	newVal := value.NewNumber(cur.Val - 1)
	if _, err := p.ctx.Set(stmt.Var, newVal); err != nil {
		return err
	}
	boundVal, err := stmt.Bound.Eval(p.ctx)
	if err != nil {
		return err
	}
	boundNum, err := numberOf(boundVal)
	if err != nil {
		return err
	}
	if newVal.Val < boundNum.Val {
		p.pc += 2 // skip the next statement
	} else {
		p.pc++
	}
	return nil
}

func (p *Program) execIncrementSkip(stmt *ast.IncrementSkipCmd) error {
	cur, err := numberOf(p.ctx.Get(stmt.Var))
	if err != nil {
		return err
	}
	newVal := value.NewNumber(cur.Val + 1)
	if _, err := p.ctx.Set(stmt.Var, newVal); err != nil {
		return err
	}
	boundVal, err := stmt.Bound.Eval(p.ctx)
	if err != nil {
		return err
	}
	boundNum, err := numberOf(boundVal)
	if err != nil {
		return err
	}
	if newVal.Val > boundNum.Val {
		p.pc += 2 // skip the next statement
	} else {
		p.pc++
	}
	return nil
}

func (p *Program) execDisp(stmt *ast.DispCmd) error {
	v, err := stmt.Expr.Eval(p.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, v.String())
	p.pc++
	return nil
}

// headerMatchesKind checks the spec.md §3 invariant that a block-stack
// entry's header pc names a statement of the matching kind.
func (p *Program) headerMatchesKind(f blockFrame) bool {
	stmt := p.prog.Stmts[f.headerPC]
	switch f.kind {
	case BlockIf:
		_, ok := stmt.(*ast.IfCmd)
		return ok
	case BlockFor:
		_, ok := stmt.(*ast.ForCmd)
		return ok
	case BlockWhile:
		_, ok := stmt.(*ast.WhileCmd)
		return ok
	case BlockRepeat:
		_, ok := stmt.(*ast.RepeatCmd)
		return ok
	}
	return false
}

// truthy coerces v to a bool, per spec.md §3: only Number has truthiness.
func truthy(v value.Value) (bool, error) {
	n, ok := v.(value.Number)
	if !ok {
		return false, errs.New(errs.TypeMismatch, "expected a number, got a %s", v.Kind())
	}
	return n.Truthy(), nil
}

// numberOf asserts v is a Number, for the places spec.md treats as
// inherently scalar (loop induction variables, skip bounds).
func numberOf(v value.Value) (value.Number, error) {
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, errs.New(errs.TypeMismatch, "expected a number, got a %s", v.Kind())
	}
	return n, nil
}
