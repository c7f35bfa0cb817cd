package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/jaydenmilne/tib/ast"
	"github.com/jaydenmilne/tib/errs"
	"github.com/jaydenmilne/tib/token"
)

// parseExpr is the entry point for expression parsing: spec.md §4.1's
// 13-level precedence ladder, implemented as recursive-descent precedence
// climbing (the shape MongooseMoo-barn itself doesn't need — MOO's grammar
// has no implicit multiplication or elidable close-parens — so the ladder
// below is adapted directly from spec.md §4.1's level table; see
// DESIGN.md).
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseStore()
}

// parseStore is level 1: "expr -> var".
func (p *Parser) parseStore() (ast.Expr, error) {
	left, err := p.parseOrXor()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == token.ARROW {
		pos := p.advance().Pos
		varTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.Store{Pos: pos, Value: left, Var: identToVariable(varTok)}, nil
	}
	return left, nil
}

// parseOrXor is level 3: or/xor, right-associative chaining (spec.md §4.1).
func (p *Parser) parseOrXor() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case token.OR, token.XOR:
		opTok := p.advance()
		right, err := p.parseOrXor()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Pos: opTok.Pos, Op: orXorOp(opTok.Kind), Left: left, Right: right}, nil
	}
	return left, nil
}

func orXorOp(k token.Kind) ast.BinOp {
	if k == token.XOR {
		return ast.OpXor
	}
	return ast.OpOr
}

// parseAnd is level 4.
func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.AND {
		opTok := p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Pos: opTok.Pos, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

var relOps = map[token.Kind]ast.BinOp{
	token.EQ: ast.OpEq, token.NE: ast.OpNe,
	token.GT: ast.OpGt, token.GE: ast.OpGe,
	token.LT: ast.OpLt, token.LE: ast.OpLe,
}

// parseRel is level 5: relational operators.
func (p *Parser) parseRel() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relOps[p.cur().Kind]
		if !ok {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Pos: opTok.Pos, Op: op, Left: left, Right: right}
	}
}

// parseAdd is level 6: + and -.
func (p *Parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.PLUS || p.cur().Kind == token.MINUS {
		opTok := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if opTok.Kind == token.MINUS {
			op = ast.OpSub
		}
		left = &ast.Binary{Pos: opTok.Pos, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// canStartFactor reports whether kind can begin a unary-level operand, used
// to detect implicit multiplication (spec.md §4.1 level 7).
func canStartFactor(kind token.Kind) bool {
	switch kind {
	case token.NUMBER, token.SCIEXP, token.IDENT, token.LPAREN, token.NOT, token.DBLMINUS:
		return true
	}
	return false
}

// parseMul is level 7: *, /, and implicit multiplication. Implicit
// multiplication is speculative (spec.md §4.1): attempt to parse another
// unary-level operand, and roll back if that fails.
func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.STAR, token.SLASH:
			opTok := p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			op := ast.OpMul
			if opTok.Kind == token.SLASH {
				op = ast.OpDiv
			}
			left = &ast.Binary{Pos: opTok.Pos, Op: op, Left: left, Right: right}
		default:
			if !canStartFactor(p.cur().Kind) {
				return left, nil
			}
			mark := p.mark()
			right, err := p.parseUnary()
			if err != nil {
				p.reset(mark)
				return left, nil
			}
			left = &ast.Binary{Pos: p.toks[mark].Pos, Op: ast.OpMul, Left: left, Right: right}
		}
	}
}

// parseUnary is level 9: unary negate ("--"), distinct from binary minus.
// Power (level 10) binds tighter than unary negate, so the operand of a
// negate is itself a full power chain (spec.md §4.1).
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur().Kind == token.DBLMINUS {
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Pos: pos, Op: ast.OpNegate, Operand: operand}, nil
	}
	return p.parsePow()
}

// parsePow is level 10, left-associative across a chain (2^3^2 = (2^3)^2):
// each right-hand operand is parsed at parsePowOperand, one level down, so
// the loop here — not operand recursion — is what makes the chain
// left-associative.
func (p *Parser) parsePow() (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.CARET {
		opTok := p.advance()
		right, err := p.parsePowOperand()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Pos: opTok.Pos, Op: ast.OpPow, Left: left, Right: right}
	}
	return left, nil
}

// parsePowOperand parses a single exponent operand: an optional unary
// negate (e.g. 2^--3) wrapping one prefix-level primary, but not a further
// power chain — that's what keeps 2^3^2 left-associative instead of letting
// the right-hand side of the first ^ swallow the second.
func (p *Parser) parsePowOperand() (ast.Expr, error) {
	if p.cur().Kind == token.DBLMINUS {
		pos := p.advance().Pos
		operand, err := p.parsePowOperand()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Pos: pos, Op: ast.OpNegate, Operand: operand}, nil
	}
	return p.parsePrefix()
}

// parsePrefix is level 12: prefix functions ("not("). The open paren is
// part of the NOT token; the close paren is optional at end of line.
func (p *Parser) parsePrefix() (ast.Expr, error) {
	if p.cur().Kind == token.NOT {
		pos := p.advance().Pos
		inner, err := p.parseOrXor()
		if err != nil {
			return nil, err
		}
		p.consumeOptionalCloseParen()
		return &ast.Unary{Pos: pos, Op: ast.OpNot, Operand: inner}, nil
	}
	return p.parseGroup()
}

// parseGroup is level 13: parenthesized groupings. A close paren may be
// elided at end of line or before another grouping (spec.md §4.1); tib
// implements that simply by never requiring one — if it's there, it's
// consumed, and if the next token is instead another '(' (or NUMBER/IDENT/
// etc.), parseMul's implicit-multiplication handling picks it up naturally.
func (p *Parser) parseGroup() (ast.Expr, error) {
	if p.cur().Kind == token.LPAREN {
		p.advance()
		inner, err := p.parseOrXor()
		if err != nil {
			return nil, err
		}
		p.consumeOptionalCloseParen()
		return inner, nil
	}
	return p.parseLeaf()
}

// parseLeaf is level 14: numeric literals (plain and scientific-notation)
// and variable references.
func (p *Parser) parseLeaf() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, errs.New(errs.SyntaxError, "invalid number %q at %d:%d", tok.Text, tok.Pos.Line, tok.Pos.Column)
		}
		return &ast.NumberLit{Pos: tok.Pos, Val: v}, nil
	case token.SCIEXP:
		p.advance()
		v, err := parseSciExp(tok.Text)
		if err != nil {
			return nil, errs.New(errs.SyntaxError, "invalid scientific literal %q at %d:%d", tok.Text, tok.Pos.Line, tok.Pos.Column)
		}
		return &ast.NumberLit{Pos: tok.Pos, Val: v}, nil
	case token.IDENT:
		p.advance()
		return &ast.VarRef{Pos: tok.Pos, Var: identToVariable(tok)}, nil
	case token.EOF:
		return nil, errUnexpectedEOF(tok)
	default:
		return nil, errs.New(errs.UnexpectedToken, "unexpected token %v at %d:%d", tok.Kind, tok.Pos.Line, tok.Pos.Column)
	}
}

// parseSciExp interprets a SCIEXP token's text ("<mantissa>e<exp>" or
// "e<exp>" with an empty mantissa) as mantissa * 10^exp, per spec.md §6:
// "combined with a preceding number yields mantissa * 10^exp, or standalone
// is 10^exp".
func parseSciExp(text string) (float64, error) {
	idx := strings.IndexByte(text, 'e')
	mantissaStr, expStr := text[:idx], text[idx+1:]
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return 0, err
	}
	if mantissaStr == "" {
		return math.Pow(10, float64(exp)), nil
	}
	mantissa, err := strconv.ParseFloat(mantissaStr, 64)
	if err != nil {
		return 0, err
	}
	return mantissa * math.Pow(10, float64(exp)), nil
}
