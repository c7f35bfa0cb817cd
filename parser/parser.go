// Package parser turns a tib token stream into the flat statement list (and
// its accompanying label cache) the executor consumes, per spec.md §4.5.
//
// Grounded on MongooseMoo-barn's recursive-descent parser.Parser
// (parser/parser.go, parser/parser_stmt.go): a buffered current/peek token
// pair advanced by nextToken(). tib buffers the entire token stream up
// front instead, because spec.md §4.1's implicit-multiplication rule is
// explicitly speculative ("parse the right-hand side; if it fails, roll
// back the token index") — an index into a slice makes that rollback a
// single field assignment instead of a re-lex.
package parser

import (
	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/lexer"
	"github.com/jaydenmilne/tib/token"
)

// Parser holds the full token buffer for one source text and a cursor into
// it.
type Parser struct {
	toks []token.Token
	pos  int
}

// New tokenizes src in full and returns a Parser ready to produce
// statements. Tokenizing eagerly (rather than lazily, as the lexer itself
// supports) is what makes the speculative backtracking in parseMul
// (implicit multiplication) cheap: it is "try, and rollback p.pos on
// failure."
func New(src string) (*Parser, error) {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &Parser{toks: toks}, nil
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// mark/reset implement the speculative backtracking spec.md §4.1
// describes for implicit multiplication.
func (p *Parser) mark() int        { return p.pos }
func (p *Parser) reset(mark int)   { p.pos = mark }

// skipSeparators consumes NEWLINE/COLON tokens, which spec.md §4.5 treats
// as interchangeable statement boundaries that may be skipped wherever a
// statement or expression is expected.
func (p *Parser) skipSeparators() {
	for p.cur().Kind == token.NEWLINE || p.cur().Kind == token.COLON {
		p.advance()
	}
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.cur().Kind != kind {
		return token.Token{}, errs.New(errs.MissingToken, "expected %v, got %v at %d:%d",
			kind, p.cur().Kind, p.cur().Pos.Line, p.cur().Pos.Column)
	}
	return p.advance(), nil
}

// Program is the parser's contract to the executor (spec.md §4.5): a flat,
// source-ordered statement list plus a label cache mapping each Lbl name to
// the statement index of its (first) Lbl statement.
type Program struct {
	Stmts  []ast.Stmt
	Labels map[string]int
}

// ParseProgram consumes the entire token buffer and produces a Program.
// Block structures need not be balanced — an unterminated If/For/While/
// Repeat at end of input is not a parse error (spec.md §8: "the parser must
// accept programs whose block structures are not terminated"); the
// executor discovers the missing End itself, as UnexpectedEof, when it
// tries to scan forward (spec.md §4.4).
func ParseProgram(src string) (*Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}

	prog := &Program{Labels: make(map[string]int)}
	for {
		p.skipSeparators()
		if p.cur().Kind == token.EOF {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if lbl, ok := stmt.(*ast.LblCmd); ok {
			if _, exists := prog.Labels[lbl.Name]; !exists {
				prog.Labels[lbl.Name] = len(prog.Stmts)
			}
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}
