package parser

import (
	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/lexer"
)

// Binding powers of the prefix operators. Binary operators take theirs from
// ast.BinaryKind.Precedence (1 for && and || up to 5 for * / %), so both
// prefix forms bind tighter than any infix operator and '-' binds tighter
// than '!'. Calls extend any operand.
const (
	precLowest = 0
	precNot    = 6
	precNeg    = 7
)

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.TokenStar:    ast.OpMul,
	lexer.TokenSlash:   ast.OpDiv,
	lexer.TokenPercent: ast.OpMod,
	lexer.TokenPlus:    ast.OpAdd,
	lexer.TokenMinus:   ast.OpSub,
	lexer.TokenGt:      ast.OpGt,
	lexer.TokenLt:      ast.OpLt,
	lexer.TokenGe:      ast.OpGe,
	lexer.TokenLe:      ast.OpLe,
	lexer.TokenEq:      ast.OpEq,
	lexer.TokenNe:      ast.OpNe,
	lexer.TokenAnd:     ast.OpAnd,
	lexer.TokenOr:      ast.OpOr,
}

var compoundOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokenPlusAssign:  ast.OpAddAssign,
	lexer.TokenMinusAssign: ast.OpSubAssign,
}

var incDecOps = map[lexer.TokenType]ast.IncDecOp{
	lexer.TokenInc: ast.OpInc,
	lexer.TokenDec: ast.OpDec,
}

// startsExpr reports whether the current token can begin an expression
func (p *Parser) startsExpr() bool {
	switch p.curToken.Type {
	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenLParen,
		lexer.TokenIdent, lexer.TokenEmbedded,
		lexer.TokenInt, lexer.TokenFloat, lexer.TokenString, lexer.TokenRune, lexer.TokenBool:
		return true
	}
	return false
}

// parseExpression parses a full expression
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseExpr(precLowest)
}

// parseExpr parses an operand and then absorbs every call suffix and every
// binary operator that binds tighter than minPrec. The right operand of a
// binary operator is parsed at that operator's own precedence, which makes
// equal-precedence chains left-associative.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		if p.curTokenIs(lexer.TokenLParen) {
			left, err = p.parseCall(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		op, ok := binaryOps[p.curToken.Type]
		if !ok {
			return left, nil
		}
		prec := op.Kind().Precedence()
		if prec <= minPrec {
			return left, nil
		}
		p.nextToken()

		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		bin, err := ast.NewBinary(op.Kind(), op, left, right)
		if err != nil {
			return nil, err
		}
		left = bin
	}
}

// parsePrefix parses a primary term or a prefix operator applied to one
func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokenMinus:
		return p.parseUnary(ast.OpNeg, precNeg)
	case lexer.TokenNot:
		return p.parseUnary(ast.OpNot, precNot)

	case lexer.TokenIdent:
		target := ast.Ident{Start: tok.Pos(), Name: tok.Literal}
		if p.peekTokenIs(lexer.TokenAssign) {
			p.nextToken()
			p.nextToken()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return ast.Assign{Target: target, Value: value}, nil
		}
		if op, ok := compoundOps[p.peekToken.Type]; ok {
			p.nextToken()
			p.nextToken()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			assign, err := ast.NewCompoundAssign(target, op, value)
			if err != nil {
				return nil, err
			}
			return assign, nil
		}
		if op, ok := incDecOps[p.peekToken.Type]; ok {
			p.nextToken()
			p.nextToken()
			return ast.IncDec{Target: target, Op: op}, nil
		}
		p.nextToken()
		return target, nil

	case lexer.TokenInt:
		p.nextToken()
		return ast.IntLit{Start: tok.Pos(), Raw: tok.Literal}, nil
	case lexer.TokenFloat:
		p.nextToken()
		return ast.FloatLit{Start: tok.Pos(), Raw: tok.Literal}, nil
	case lexer.TokenBool:
		p.nextToken()
		return ast.BoolLit{Start: tok.Pos(), Raw: tok.Literal}, nil
	case lexer.TokenString:
		p.nextToken()
		return ast.StringLit{Start: tok.Pos(), Raw: tok.Literal}, nil
	case lexer.TokenRune:
		p.nextToken()
		return ast.RuneLit{Start: tok.Pos(), Raw: tok.Literal}, nil
	case lexer.TokenEmbedded:
		p.nextToken()
		return ast.Embedded{Start: tok.Pos(), Raw: tok.Literal}, nil

	case lexer.TokenLParen:
		if _, err := p.openWith("parenthesized expression", lexer.TokenLParen); err != nil {
			return nil, err
		}
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.close(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return ast.Paren{Start: tok.Pos(), X: x}, nil
	}

	return nil, p.unexpected("expression")
}

func (p *Parser) parseUnary(op ast.UnaryOp, prec int) (ast.Expr, error) {
	tok := p.curToken
	p.nextToken()
	x, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	u, err := ast.NewUnary(tok.Pos(), op, x)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// parseCall parses the argument list applied to fn
func (p *Parser) parseCall(fn ast.Expr) (ast.Expr, error) {
	if _, err := p.openWith("call", lexer.TokenLParen); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if err := p.close(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return ast.Call{Func: fn, Args: args}, nil
}

// parseArgs parses a comma-separated argument list up to, not including,
// the closing ')'. A trailing comma is an error.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if p.curTokenIs(lexer.TokenRParen) {
		return nil, nil
	}
	var args []ast.Expr
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.got(lexer.TokenComma) {
			continue
		}
		if !p.curTokenIs(lexer.TokenRParen) {
			return nil, p.unexpected("','", "')'")
		}
		return args, nil
	}
}
