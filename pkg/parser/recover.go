package parser

import (
	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/lexer"
	"github.com/samber/lo"
)

// syncKeywords start a new statement or clause. Recovery stops in front of
// them.
var syncKeywords = []lexer.TokenType{
	lexer.TokenVar,
	lexer.TokenIf,
	lexer.TokenWhile,
	lexer.TokenFor,
	lexer.TokenSwitch,
	lexer.TokenBreak,
	lexer.TokenContinue,
	lexer.TokenReturn,
	lexer.TokenCase,
	lexer.TokenDefault,
}

// parseDeclList parses declarations until end of input or one of the stop
// tokens. A declaration that fails is recorded, skipped and replaced by a
// BadDecl so the rest of the list still parses.
func (p *Parser) parseDeclList(stop ...lexer.TokenType) []ast.Decl {
	var decls []ast.Decl
	for !p.abort && !p.curTokenIs(lexer.TokenEOF) && !p.curTokenIn(stop...) {
		// empty statement
		if p.got(lexer.TokenSemicolon) {
			continue
		}
		start := p.curToken
		mark := p.consumed
		open := len(p.open)
		d, err := p.parseDeclaration()
		if err != nil {
			line := p.curToken.Line
			p.record(err)
			p.open = p.open[:open]
			p.synchronize(mark, line)
			decls = append(decls, ast.BadDecl{Start: start.Pos(), End: p.curToken.Pos()})
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

// synchronize discards tokens up to the next statement boundary. A
// terminating ';' is consumed; '{', '}', statement keywords and the first
// token on a line after the error line are left for the caller, since ';'
// is optional at the end of a line. At least one token is discarded when
// the failed declaration consumed nothing, so the caller always makes
// progress.
func (p *Parser) synchronize(mark, line int) {
	if p.consumed == mark && !p.curTokenIs(lexer.TokenEOF) {
		skipped := p.curToken
		p.nextToken()
		if skipped.Type == lexer.TokenRBrace || skipped.Type == lexer.TokenSemicolon {
			return
		}
	}
	for {
		switch p.curToken.Type {
		case lexer.TokenEOF, lexer.TokenLBrace, lexer.TokenRBrace:
			return
		case lexer.TokenSemicolon:
			p.nextToken()
			return
		}
		if lo.Contains(syncKeywords, p.curToken.Type) || p.curToken.Line > line {
			return
		}
		p.nextToken()
	}
}
