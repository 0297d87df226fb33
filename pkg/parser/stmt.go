package parser

import (
	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/lexer"
)

// parseStatement dispatches on the current token
func (p *Parser) parseStatement() (ast.Stmt, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	switch p.curToken.Type {
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenSwitch:
		return p.parseSwitch()
	case lexer.TokenBreak:
		tok := p.curToken
		p.nextToken()
		if _, err := p.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		return ast.Break{Start: tok.Pos()}, nil
	case lexer.TokenContinue:
		tok := p.curToken
		p.nextToken()
		if _, err := p.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		return ast.Continue{Start: tok.Pos()}, nil
	case lexer.TokenReturn:
		return p.parseReturn()
	}

	if p.startsExpr() {
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.got(lexer.TokenSemicolon)
		return ast.ExprStmt{X: x}, nil
	}
	return nil, p.unexpected("statement")
}

func (p *Parser) parseBlock() (ast.Block, error) {
	start, err := p.openWith("block", lexer.TokenLBrace)
	if err != nil {
		return ast.Block{}, err
	}
	items := p.parseDeclList(lexer.TokenRBrace)
	if err := p.close(lexer.TokenRBrace); err != nil {
		return ast.Block{}, err
	}
	return ast.Block{Start: start.Pos(), Items: items}, nil
}

// parseIf parses if cond stmt [else stmt]. An else always belongs to the
// nearest if that has none.
func (p *Parser) parseIf() (ast.If, error) {
	start := p.curToken
	p.nextToken() // 'if'

	cond, err := p.parseExpression()
	if err != nil {
		return ast.If{}, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return ast.If{}, err
	}
	stmt := ast.If{Start: start.Pos(), Cond: cond, Then: then}
	if p.got(lexer.TokenElse) {
		stmt.Else, err = p.parseStatement()
		if err != nil {
			return ast.If{}, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.While, error) {
	start := p.curToken
	p.nextToken() // 'while'

	cond, err := p.parseExpression()
	if err != nil {
		return ast.While{}, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return ast.While{}, err
	}
	return ast.While{Start: start.Pos(), Cond: cond, Body: body}, nil
}

// parseFor parses either loop form:
//
//	for init; cond; post body
//	for cond body
//
// An expression after 'for' is the init when ';' follows it and the
// condition otherwise.
func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.curToken
	p.nextToken() // 'for'

	var init ast.ForInit
	if p.startsVarDecl() {
		d, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		init = d
	} else {
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.curTokenIs(lexer.TokenSemicolon) {
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return ast.ForCond{Start: start.Pos(), Cond: x, Body: body}, nil
		}
		init = ast.ForInitExpr{X: x}
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	post, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.For{Start: start.Pos(), Init: init, Cond: cond, Post: post, Body: body}, nil
}

// parseSwitch parses switch subject { case ... default ... }
func (p *Parser) parseSwitch() (ast.Switch, error) {
	start := p.curToken
	p.nextToken() // 'switch'

	subject, err := p.parseExpression()
	if err != nil {
		return ast.Switch{}, err
	}
	if _, err := p.openWith("switch", lexer.TokenLBrace); err != nil {
		return ast.Switch{}, err
	}

	stmt := ast.Switch{Start: start.Pos(), Subject: subject}
	for {
		switch p.curToken.Type {
		case lexer.TokenCase:
			c, err := p.parseCaseClause()
			if err != nil {
				return ast.Switch{}, err
			}
			stmt.Cases = append(stmt.Cases, c)
		case lexer.TokenDefault:
			tok := p.curToken
			d, err := p.parseDefaultClause()
			if err != nil {
				return ast.Switch{}, err
			}
			if stmt.Default != nil {
				p.record(p.errorAt(ErrUnexpectedToken, tok,
					"duplicate default clause in switch (first at "+stmt.Default.Start.String()+")"))
				continue
			}
			stmt.Default = &d
		case lexer.TokenRBrace:
			if err := p.close(lexer.TokenRBrace); err != nil {
				return ast.Switch{}, err
			}
			return stmt, nil
		default:
			return ast.Switch{}, p.unexpected("'case'", "'default'", "'}'")
		}
	}
}

func (p *Parser) parseCaseClause() (ast.CaseClause, error) {
	start := p.curToken
	p.nextToken() // 'case'

	match, err := p.parseExpression()
	if err != nil {
		return ast.CaseClause{}, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.CaseClause{}, err
	}
	body := p.parseDeclList(lexer.TokenCase, lexer.TokenDefault, lexer.TokenRBrace)
	return ast.CaseClause{Start: start.Pos(), Match: match, Body: body}, nil
}

func (p *Parser) parseDefaultClause() (ast.DefaultClause, error) {
	start := p.curToken
	p.nextToken() // 'default'

	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.DefaultClause{}, err
	}
	body := p.parseDeclList(lexer.TokenCase, lexer.TokenDefault, lexer.TokenRBrace)
	return ast.DefaultClause{Start: start.Pos(), Body: body}, nil
}

// parseReturn parses return [expr];
func (p *Parser) parseReturn() (ast.Return, error) {
	start := p.curToken
	p.nextToken() // 'return'

	stmt := ast.Return{Start: start.Pos()}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return ast.Return{}, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return ast.Return{}, err
	}
	return stmt, nil
}
