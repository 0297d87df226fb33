// Package parser implements a recursive descent parser for golite
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/lexer"
	"github.com/samber/lo"
)

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 512

// Parser parses golite source code into an AST
type Parser struct {
	c         lexer.Cursor
	curToken  lexer.Token
	peekToken lexer.Token
	errors    ErrorList

	open      []openConstruct // delimiters awaiting their closer
	consumed  int             // tokens consumed so far
	depth     int
	maxDepth  int
	maxErrors int // 0 means unlimited
	abort     bool
}

// openConstruct records where an unclosed block, switch, call or
// parenthesized expression began.
type openConstruct struct {
	what string
	tok  lexer.Token
}

// Option configures a Parser
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithMaxErrors stops parsing after n diagnostics. 0 means no limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.maxErrors = n
		}
	}
}

// New creates a new Parser reading from c. The parser owns c for the rest
// of its life.
func New(c lexer.Cursor, opts ...Option) *Parser {
	p := &Parser{
		c:        c,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.curToken = c.Peek(0)
	p.peekToken = c.Peek(1)
	return p
}

// Parse parses a whole program from c. The program is always returned;
// the error is an ErrorList when any diagnostics were produced.
func Parse(c lexer.Cursor, opts ...Option) (*ast.Program, error) {
	p := New(c, opts...)
	prog := p.ParseProgram()
	return prog, p.Errors().Err()
}

// ParseString scans and parses src.
func ParseString(src string, opts ...Option) (*ast.Program, error) {
	return Parse(lexer.NewCursor(lexer.New(src)), opts...)
}

// ParseExpr parses src as a single expression followed by end of input.
func ParseExpr(src string, opts ...Option) (ast.Expr, error) {
	p := New(lexer.NewCursor(lexer.New(src)), opts...)
	x, err := p.parseExpression()
	if err == nil && !p.curTokenIs(lexer.TokenEOF) {
		err = p.unexpected("end of input")
	}
	if err != nil {
		p.record(err)
		return nil, p.Errors().Err()
	}
	return x, nil
}

// Errors returns the diagnostics collected so far
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseProgram parses declarations until the token stream is exhausted.
func (p *Parser) ParseProgram() *ast.Program {
	return &ast.Program{Decls: p.parseDeclList()}
}

func (p *Parser) nextToken() {
	p.c.Next()
	p.consumed++
	p.curToken = p.c.Peek(0)
	p.peekToken = p.c.Peek(1)
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) curTokenIn(ts ...lexer.TokenType) bool {
	return lo.Contains(ts, p.curToken.Type)
}

// got consumes the current token if it has type t.
func (p *Parser) got(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes and returns the current token if it has type t.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.curToken
	if tok.Type == t {
		p.nextToken()
		return tok, nil
	}
	return tok, p.unexpected(tokenName(t))
}

// openWith consumes the opening delimiter of a construct that must be
// closed before end of input.
func (p *Parser) openWith(what string, t lexer.TokenType) (lexer.Token, error) {
	tok, err := p.expect(t)
	if err != nil {
		return tok, err
	}
	p.open = append(p.open, openConstruct{what: what, tok: tok})
	return tok, nil
}

// close consumes the closing delimiter of the innermost open construct.
func (p *Parser) close(t lexer.TokenType) error {
	if _, err := p.expect(t); err != nil {
		return err
	}
	if n := len(p.open); n > 0 {
		p.open = p.open[:n-1]
	}
	return nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(ErrRecursionLimit, p.curToken,
			fmt.Sprintf("nesting exceeds limit of %d", p.maxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// unexpected reports that none of the expected alternatives matched the
// current token. At end of input inside an open construct the diagnostic
// becomes an unterminated-construct error.
func (p *Parser) unexpected(expected ...string) error {
	return p.unexpectedKind(ErrUnexpectedToken, expected...)
}

func (p *Parser) unexpectedKind(kind error, expected ...string) error {
	tok := p.curToken
	if tok.Type == lexer.TokenEOF && len(p.open) > 0 {
		inner := p.open[len(p.open)-1]
		err := p.errorAt(ErrUnterminated, tok, fmt.Sprintf("unterminated %s opened at %s",
			inner.what, inner.tok.Pos()))
		err.Expected = expected
		return err
	}
	msg := fmt.Sprintf("unexpected %s", describe(tok))
	if len(expected) > 0 {
		msg += ", expected " + joinExpected(expected)
	}
	err := p.errorAt(kind, tok, msg)
	err.Expected = expected
	return err
}

func (p *Parser) errorAt(kind error, tok lexer.Token, msg string) *SyntaxError {
	return &SyntaxError{
		Kind:   kind,
		Msg:    msg,
		Actual: tok.Text(),
		Pos:    tok.Pos(),
	}
}

// record adds err to the diagnostics, enforcing the error limit. Exceeding
// the nesting limit ends the parse.
func (p *Parser) record(err error) {
	if p.abort || err == nil {
		return
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		se = p.errorAt(ErrUnexpectedToken, p.curToken, err.Error())
	}
	// an error that unwinds through several constructs is reported once
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos == se.Pos {
		return
	}
	p.errors = append(p.errors, se)
	if errors.Is(se, ErrRecursionLimit) {
		p.abort = true
		return
	}
	if p.maxErrors > 0 && len(p.errors) >= p.maxErrors {
		p.errors = append(p.errors, p.errorAt(ErrTooManyErrors, p.curToken,
			"too many errors; aborting parse"))
		p.abort = true
	}
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokenIdent:
		return "identifier"
	case lexer.TokenEOF:
		return "end of input"
	}
	return "'" + t.String() + "'"
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIllegal:
		return fmt.Sprintf("illegal token %q", tok.Literal)
	case lexer.TokenIdent:
		return fmt.Sprintf("identifier %s", tok.Literal)
	}
	return "'" + tok.Text() + "'"
}

func joinExpected(expected []string) string {
	expected = lo.Uniq(expected)
	switch len(expected) {
	case 1:
		return expected[0]
	case 2:
		return expected[0] + " or " + expected[1]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}
