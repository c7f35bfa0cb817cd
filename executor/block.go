package executor

import "github.com/jaydenmilne/tib/errs"

// BlockKind identifies which of the four structured control forms a block
// stack entry belongs to (spec.md §3: "Block stack entry").
type BlockKind int

const (
	BlockIf BlockKind = iota
	BlockFor
	BlockWhile
	BlockRepeat
)

func (k BlockKind) String() string {
	switch k {
	case BlockIf:
		return "If"
	case BlockFor:
		return "For"
	case BlockWhile:
		return "While"
	case BlockRepeat:
		return "Repeat"
	}
	return "?"
}

// blockFrame is one entry of the block stack: {kind, pc_of_header,
// took_true_branch?} per spec.md §3. tookTrueBranch is only meaningful for
// BlockIf.
type blockFrame struct {
	kind           BlockKind
	headerPC       int
	tookTrueBranch bool
}

// pushBlock opens a new block structure.
func (p *Program) pushBlock(kind BlockKind, headerPC int) {
	p.blocks = append(p.blocks, blockFrame{kind: kind, headerPC: headerPC})
}

// peekBlock returns the top of the block stack without removing it, or nil
// if the stack is empty (spec.md §4.3: "End: examine (do not pop) the
// block-stack top").
func (p *Program) peekBlock() *blockFrame {
	if len(p.blocks) == 0 {
		return nil
	}
	return &p.blocks[len(p.blocks)-1]
}

// popBlock removes and returns the top of the block stack. It is a defensive
// bug to call this on an empty stack or when the frame's header no longer
// names a statement of the matching kind — spec.md §7's SyntaxError exists
// for exactly this bookkeeping mismatch.
func (p *Program) popBlock() (blockFrame, error) {
	top := p.peekBlock()
	if top == nil {
		return blockFrame{}, errs.New(errs.UnexpectedEnd, "End with an empty block stack")
	}
	if !p.headerMatchesKind(*top) {
		return blockFrame{}, errs.New(errs.SyntaxError, "block-stack header at pc %d does not match its %s frame", top.headerPC, top.kind)
	}
	frame := *top
	p.blocks = p.blocks[:len(p.blocks)-1]
	return frame, nil
}
