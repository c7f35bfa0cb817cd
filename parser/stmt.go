package parser

import (
	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/token"
	"github.com/jaydenmilne/tib/value"
)

// parseStatement parses exactly one Stmt (spec.md §3: "either Expression(expr)
// or Command(cmd)"). Grounded on parser.parseStatement's dispatch-by-keyword
// shape (parser/parser_stmt.go), narrowed to tib's command set.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.IF:
		return p.parseIf()
	case token.THEN:
		p.advance()
		return &ast.ThenCmd{Pos: tok.Pos}, nil
	case token.ELSE:
		p.advance()
		return &ast.ElseCmd{Pos: tok.Pos}, nil
	case token.END:
		p.advance()
		return &ast.EndCmd{Pos: tok.Pos}, nil
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.WhileCmd{Pos: tok.Pos, Cond: cond}, nil
	case token.REPEAT:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.RepeatCmd{Pos: tok.Pos, Cond: cond}, nil
	case token.LBL:
		p.advance()
		name, err := p.expect(token.LABELNAME)
		if err != nil {
			return nil, err
		}
		return &ast.LblCmd{Pos: tok.Pos, Name: name.Text}, nil
	case token.GOTO:
		p.advance()
		name, err := p.expect(token.LABELNAME)
		if err != nil {
			return nil, err
		}
		return &ast.GotoCmd{Pos: tok.Pos, Name: name.Text}, nil
	case token.DS:
		return p.parseSkip(tok, true)
	case token.IS:
		return p.parseSkip(tok, false)
	case token.DISP:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.DispCmd{Pos: tok.Pos, Expr: expr}, nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Pos: tok.Pos, Expr: expr}, nil
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.advance().Pos // consume 'If'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.IfCmd{Pos: pos, Cond: cond}, nil
}

// parseFor parses "For(" var "," start "," stop ["," inc] [")"]. The
// trailing close paren is optional at end of line (spec.md §4.1 level 12).
func (p *Parser) parseFor() (ast.Stmt, error) {
	pos := p.advance().Pos // consume 'For('
	v, err := p.parseRealVarToken()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	stop, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var inc ast.Expr
	if p.cur().Kind == token.COMMA {
		p.advance()
		inc, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	p.consumeOptionalCloseParen()
	return &ast.ForCmd{Pos: pos, Var: v, Start: start, Stop: stop, Inc: inc}, nil
}

// parseSkip parses "DS<(" or "IS>(" var "," bound [")"].
func (p *Parser) parseSkip(tok token.Token, isDecrement bool) (ast.Stmt, error) {
	p.advance()
	v, err := p.parseRealVarToken()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	bound, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.consumeOptionalCloseParen()
	if isDecrement {
		return &ast.DecrementSkipCmd{Pos: tok.Pos, Var: v, Bound: bound}, nil
	}
	return &ast.IncrementSkipCmd{Pos: tok.Pos, Var: v, Bound: bound}, nil
}

func (p *Parser) parseRealVarToken() (value.Variable, error) {
	tok, err := p.expect(token.IDENT)
	if err != nil {
		return value.Variable{}, err
	}
	return identToVariable(tok), nil
}

func identToVariable(tok token.Token) value.Variable {
	if tok.Text == "θ" {
		return value.ThetaVar
	}
	return value.RealVar(rune(tok.Text[0]))
}

// consumeOptionalCloseParen eats a trailing ')' if present. Per spec.md
// §4.1 level 12/13, a close paren may be elided at end of line — tib treats
// "not present" as simply nothing to do, rather than an error.
func (p *Parser) consumeOptionalCloseParen() {
	if p.cur().Kind == token.RPAREN {
		p.advance()
	}
}

// errUnexpectedEOF is returned when a statement or expression runs off the
// end of the token buffer — the parser's own analogue of the executor's
// UnexpectedEof (spec.md §7), raised here for malformed expressions rather
// than for unterminated blocks (those are legal at parse time, per
// ParseProgram's doc comment).
func errUnexpectedEOF(tok token.Token) error {
	return errs.New(errs.UnexpectedEof, "unexpected end of input at %d:%d", tok.Pos.Line, tok.Pos.Column)
}
