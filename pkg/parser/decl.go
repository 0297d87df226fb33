package parser

import (
	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/lexer"
)

var typeNames = []string{"int", "float64", "string", "bool", "rune"}

// startsVarDecl reports whether the current tokens begin a variable
// declaration: either 'var' or an identifier followed by ':='.
func (p *Parser) startsVarDecl() bool {
	return p.curTokenIs(lexer.TokenVar) ||
		(p.curTokenIs(lexer.TokenIdent) && p.peekTokenIs(lexer.TokenDefine))
}

// parseDeclaration parses a variable declaration or a statement
func (p *Parser) parseDeclaration() (ast.Decl, error) {
	if p.startsVarDecl() {
		d, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		p.got(lexer.TokenSemicolon)
		return d, nil
	}
	return p.parseStatement()
}

// parseVarDecl parses one of
//
//	var name type = expr
//	var name type
//	name := expr
//
// The terminator is left to the caller.
func (p *Parser) parseVarDecl() (ast.VarDecl, error) {
	if p.curTokenIs(lexer.TokenIdent) {
		return p.parseShortVarDecl()
	}

	start := p.curToken
	p.nextToken() // 'var'

	nameTok, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return ast.VarDecl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.VarDecl{}, err
	}

	decl := ast.VarDecl{
		Start: start.Pos(),
		Name:  ast.Ident{Start: nameTok.Pos(), Name: nameTok.Literal},
		Form:  ast.FormZero,
		Type:  typ,
	}
	if !p.got(lexer.TokenAssign) {
		return decl, nil
	}
	init, err := p.parseExpression()
	if err != nil {
		return ast.VarDecl{}, err
	}
	decl.Form = ast.FormTyped
	decl.Init = init
	return decl, nil
}

func (p *Parser) parseShortVarDecl() (ast.VarDecl, error) {
	nameTok := p.curToken
	p.nextToken() // name
	p.nextToken() // ':='

	init, err := p.parseExpression()
	if err != nil {
		return ast.VarDecl{}, err
	}
	return ast.VarDecl{
		Start: nameTok.Pos(),
		Name:  ast.Ident{Start: nameTok.Pos(), Name: nameTok.Literal},
		Form:  ast.FormShort,
		Init:  init,
	}, nil
}

// parseType accepts exactly one built-in type keyword
func (p *Parser) parseType() (ast.Type, error) {
	if p.curToken.Type.IsTypeKeyword() {
		if typ, ok := ast.LookupType(p.curToken.Literal); ok {
			p.nextToken()
			return typ, nil
		}
	}
	return 0, p.unexpectedKind(ErrInvalidType, typeNames...)
}
