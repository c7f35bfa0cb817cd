package executor

import (
	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/errs"
)

// scanMode selects what a forward scan does when it meets an Else at its
// own nesting level, per spec.md §4.4 step 3.
type scanMode int

const (
	// scanStopAtElseOrEnd stops at the first Else or End — used only for an
	// If's own initial false-branch scan.
	scanStopAtElseOrEnd scanMode = iota
	// scanSkipElseToEnd ignores an Else and keeps walking to End — used
	// when recursively consuming a nested If-block in full, to reach its
	// End without being fooled by its own Else.
	scanSkipElseToEnd
	// scanNoElseExpected means an Else at this level is malformed: used for
	// an Else statement's own scan to its structure's End, and for
	// While/For/Repeat's false-branch scan and nested consumption (none of
	// which can legitimately contain a loose Else at their own level — any
	// Else belonging to a nested If is consumed inside that If's own
	// scanSkipElseToEnd recursion before it's ever seen here).
	scanNoElseExpected
)

// scanForward walks forward from fromPC looking for the Else or End that
// closes the block structure headed at fromPC, per spec.md §4.4
// ("scan_and_advance"). It never crosses into a sibling block: any nested
// command header (If+Then, While, For, Repeat) encountered along the way is
// itself fully consumed via a recursive nested scan before the walk
// continues, so an inner structure's End can never be mistaken for the
// outer one.
//
// It returns the absolute pc of the Else or End found, and whether it was
// an Else. Running off the end of the program is errs.UnexpectedEof.
func (p *Program) scanForward(fromPC int, mode scanMode) (int, bool, error) {
	stmts := p.prog.Stmts
	pos := fromPC
	for {
		pos++
		if pos >= len(stmts) {
			return 0, false, errs.New(errs.UnexpectedEof, "unexpected end of program while scanning for End")
		}

		switch stmts[pos].(type) {
		case *ast.IfCmd:
			if isBlockFormIf(stmts, pos) {
				endPC, _, err := p.scanForward(pos, scanSkipElseToEnd)
				if err != nil {
					return 0, false, err
				}
				pos = endPC
			}
			// A single-line If opens no block; nothing to skip.

		case *ast.WhileCmd, *ast.ForCmd, *ast.RepeatCmd:
			endPC, _, err := p.scanForward(pos, scanNoElseExpected)
			if err != nil {
				return 0, false, err
			}
			pos = endPC

		case *ast.ElseCmd:
			switch mode {
			case scanStopAtElseOrEnd:
				return pos, true, nil
			case scanSkipElseToEnd:
				// Belongs to the If-block we're skipping in full; ignore
				// it and keep walking to that block's own End.
			case scanNoElseExpected:
				return 0, false, errs.New(errs.UnexpectedElse, "unexpected Else while scanning at pc %d", pos)
			}

		case *ast.EndCmd:
			return pos, false, nil
		}
	}
}

// isBlockFormIf reports whether the If at pos is immediately followed by a
// Then, which is what makes it a block structure with its own End (spec.md
// §4.3: "Next is Then (block form)").
func isBlockFormIf(stmts []ast.Stmt, pos int) bool {
	if pos+1 >= len(stmts) {
		return false
	}
	_, ok := stmts[pos+1].(*ast.ThenCmd)
	return ok
}
