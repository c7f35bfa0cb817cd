// Package repl implements the interactive driver described in spec.md §6:
// read a line, tokenize+parse+execute, print Ans — except while an open
// block (If/For/While/Repeat) is being typed, where input is buffered until
// a blank line closes it.
//
// Grounded on MongooseMoo-barn's cmd/barn's "eval a MOO expression, print a
// formatted result" pattern (evalExpression in cmd/barn/main.go): parse,
// run against a shared evaluator/context, report success or the error
// verbatim. tib's REPL additionally has to persist pc and Context across
// lines — barn's one-shot -eval flag never needed that.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jaydenmilne/tib/context"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/executor"
	"github.com/jaydenmilne/tib/lexer"
	"github.com/jaydenmilne/tib/parser"
	"github.com/jaydenmilne/tib/token"
)

// REPL is one interactive session: a growing source buffer, a Context that
// survives across lines, and the pc the next run resumes from — one past
// the last statement that completed (spec.md §5: "the driver saves the pc
// before invoking run; on UnexpectedEof it restores the pc").
type REPL struct {
	ctx    *context.Context
	out    io.Writer
	prompt string

	buf    strings.Builder
	pc     int
	paused bool
}

// New creates a REPL bound to ctx (so a caller can pre-seed variables or a
// deterministic RNG via context.NewSeeded) writing to out with the given
// prompt string (config.DefaultPrompt absent an override).
func New(ctx *context.Context, out io.Writer, prompt string) *REPL {
	return &REPL{ctx: ctx, out: out, prompt: prompt}
}

// Run reads lines from in until it is exhausted, driving one prompt/read/
// execute cycle per spec.md §6. It returns the underlying scanner error, if
// any; a clean EOF on in ends the session with a nil error.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(r.out, r.prompt)
		if f, ok := r.out.(interface{ Flush() error }); ok {
			f.Flush()
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		r.feed(scanner.Text())
	}
}

// feed appends one line to the buffer and, unless it leaves the session in
// paused mode, executes everything accumulated so far.
func (r *REPL) feed(line string) {
	r.buf.WriteString(line)
	r.buf.WriteByte('\n')

	if r.paused {
		if strings.TrimSpace(line) != "" {
			return // still buffering the open block
		}
		r.paused = false
	} else if opensBlock(line) {
		r.paused = true
		return
	}

	r.execute()
}

// opensBlock reports whether line's tokenization contains an If, For,
// While, or Repeat keyword — the trigger for paused mode (spec.md §6). A
// lex error just means "no block-opening keyword found"; the real error
// surfaces again, more usefully, when execute() re-tokenizes the whole
// buffer through the parser.
func opensBlock(line string) bool {
	l := lexer.New(line)
	for {
		tok, err := l.Next()
		if err != nil || tok.Kind == token.EOF {
			return false
		}
		switch tok.Kind {
		case token.IF, token.FOR, token.WHILE, token.REPEAT:
			return true
		}
	}
}

// execute re-parses the entire accumulated buffer (the parser has no
// incremental mode) and resumes execution from r.pc, the end of the
// previously-consumed prefix.
func (r *REPL) execute() {
	prog, err := parser.ParseProgram(r.buf.String())
	if err != nil {
		fmt.Fprintln(r.out, err)
		r.reset()
		return
	}

	p := executor.New(prog, r.ctx, r.out)
	p.SetPC(r.pc)
	if err := p.Run(); err != nil {
		if errs.Is(err, errs.UnexpectedEof) {
			// Benign: the buffer ends mid-structure. Keep it and the
			// Context as-is; more input will extend the same program.
			r.pc = p.PC()
			return
		}
		fmt.Fprintln(r.out, err)
		r.reset()
		return
	}

	r.pc = len(prog.Stmts)
	fmt.Fprintln(r.out, r.ctx.Ans().String())
}

// reset discards the buffer after an unrecoverable error — spec.md §5 only
// documents UnexpectedEof as recoverable, so any other error abandons the
// partial program rather than re-offering it to the user forever.
func (r *REPL) reset() {
	r.buf.Reset()
	r.pc = 0
}
